package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/rally-api/internal/service/racesim"
)

func setDatabaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("GIN_MODE", "debug")
	t.Setenv("DATABASE_HOST", "localhost")
	t.Setenv("DATABASE_USER", "rally")
	t.Setenv("DATABASE_DBNAME", "rally_db")
}

func TestLoad_DefaultsFromEnvOnly(t *testing.T) {
	setDatabaseEnv(t)

	cfg, err := Load("")

	require.NoError(t, err)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, "5432", cfg.Database.Port)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 100.0, cfg.Race.DistanceKm)
	assert.Equal(t, int64(1000), cfg.Race.EntryFee)
	assert.Equal(t, []int64{5000, 3500, 1500}, cfg.Race.Prizes)
	assert.Equal(t, string(racesim.FeePerTeam), cfg.Race.FeeMode)
	assert.Equal(t, "Bootcamp Rally", cfg.Race.NamePrefix)
}

func TestLoad_FileAndEnvOverrides(t *testing.T) {
	setDatabaseEnv(t)
	t.Setenv("RACE_FEE_MODE", "per_entrant")

	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := []byte(`
server:
  port: "9090"
race:
  distance_km: 42
  entry_fee: 250
  prizes: [900, 100]
`)
	require.NoError(t, os.WriteFile(path, yaml, 0o600))

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 42.0, cfg.Race.DistanceKm)
	assert.Equal(t, int64(250), cfg.Race.EntryFee)
	assert.Equal(t, []int64{900, 100}, cfg.Race.Prizes)
	assert.Equal(t, "per_entrant", cfg.Race.FeeMode, "Переменная окружения важнее файла")
}

func TestLoad_MissingFileIsNotFatal(t *testing.T) {
	setDatabaseEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))

	require.NoError(t, err)
	assert.NotNil(t, cfg)
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Database: DatabaseConfig{Host: "db", User: "u", DBName: "d", Password: "p"},
			Race: RaceConfig{
				DistanceKm: 100, EntryFee: 1000, Prizes: []int64{5000},
				FeeMode: "per_team", DegeneratePolicy: "dnf",
				ResultsCacheTTL: 300, LockTTL: 30,
			},
		}
	}

	assert.NoError(t, valid().Validate("release"))

	cfg := valid()
	cfg.Database.Password = ""
	assert.Error(t, cfg.Validate("release"), "Без пароля в release режиме")
	assert.NoError(t, cfg.Validate("debug"))

	cfg = valid()
	cfg.Database.Host = ""
	assert.Error(t, cfg.Validate("debug"))

	cfg = valid()
	cfg.Race.EntryFee = 0
	assert.ErrorIs(t, cfg.Validate("debug"), racesim.ErrInvalidConfig)

	cfg = valid()
	cfg.Race.DegeneratePolicy = "ignore"
	assert.ErrorIs(t, cfg.Validate("debug"), racesim.ErrInvalidConfig)

	cfg = valid()
	cfg.Race.ResultsCacheTTL = 0
	assert.NoError(t, cfg.Validate("debug"), "Нулевой TTL кеша допустим")
}

func TestConfig_Validate_LockTTL(t *testing.T) {
	tests := []struct {
		name     string
		lockTTL  int
		cacheTTL int
		wantErr  bool
	}{
		{"positive ttl", 30, 300, false},
		{"zero lock ttl", 0, 300, true},
		{"negative lock ttl", -5, 300, true},
		{"negative cache ttl", 30, -1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				Database: DatabaseConfig{Host: "db", User: "u", DBName: "d", Password: "p"},
				Race: RaceConfig{
					DistanceKm: 100, EntryFee: 1000, Prizes: []int64{5000},
					FeeMode: "per_team", DegeneratePolicy: "dnf",
					ResultsCacheTTL: tt.cacheTTL, LockTTL: tt.lockTTL,
				},
			}

			err := cfg.Validate("debug")
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoad_RejectsZeroLockTTL(t *testing.T) {
	setDatabaseEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("race:\n  lock_ttl_sec: 0\n"), 0o600))

	_, err := Load(path)

	assert.ErrorContains(t, err, "lock_ttl_sec")
}

func TestRaceConfig_Durations(t *testing.T) {
	r := RaceConfig{ResultsCacheTTL: 300, LockTTL: 30}

	assert.Equal(t, 300.0, r.ResultsCacheDuration().Seconds())
	assert.Equal(t, 30.0, r.LockDuration().Seconds())
}

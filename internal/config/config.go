package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/viper"

	"github.com/yourusername/rally-api/internal/service/racesim"
)

// Config хранит все настройки приложения
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Race     RaceConfig
}

// ServerConfig содержит настройки HTTP сервера
type ServerConfig struct {
	Port           string
	ReadTimeout    int
	WriteTimeout   int
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// DatabaseConfig содержит настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host           string
	Port           string
	User           string
	Password       string
	DBName         string
	SSLMode        string
	MigrationsPath string `mapstructure:"migrations_path"`
	MaxOpenConns   int    `mapstructure:"max_open_conns"`
	MaxIdleConns   int    `mapstructure:"max_idle_conns"`
}

// RedisConfig содержит унифицированные настройки подключения к Redis
// Поддерживает режимы: single, sentinel, cluster
type RedisConfig struct {
	// Mode: Режим работы Redis ("single", "sentinel", "cluster"). По умолчанию "single".
	Mode string `mapstructure:"mode"`

	// Addrs: Список адресов Redis (хост:порт).
	Addrs []string `mapstructure:"addrs"`

	// Addr: Адрес для режима 'single', если Addrs пустой.
	Addr string `mapstructure:"addr"`

	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`

	// MasterName: Имя мастер-сервера Redis (только для режима "sentinel")
	MasterName string `mapstructure:"master_name"`

	MaxRetries      int `mapstructure:"max_retries"`
	MinRetryBackoff int `mapstructure:"min_retry_backoff"` // мс
	MaxRetryBackoff int `mapstructure:"max_retry_backoff"` // мс
}

// RaceConfig содержит параметры заездов
type RaceConfig struct {
	DistanceKm       float64 `mapstructure:"distance_km"`
	EntryFee         int64   `mapstructure:"entry_fee"`
	Prizes           []int64 `mapstructure:"prizes"`
	FeeMode          string  `mapstructure:"fee_mode"`          // per_team | per_entrant
	DegeneratePolicy string  `mapstructure:"degenerate_policy"` // dnf | abort
	Seed             int64   `mapstructure:"seed"`              // 0: зерно от текущего времени
	NamePrefix       string  `mapstructure:"name_prefix"`
	ResultsCacheTTL  int     `mapstructure:"results_cache_ttl_sec"`
	LockTTL          int     `mapstructure:"lock_ttl_sec"`
}

// SimulatorConfig преобразует настройки в конфигурацию симулятора
func (r *RaceConfig) SimulatorConfig() *racesim.Config {
	prizes := make([]int64, len(r.Prizes))
	copy(prizes, r.Prizes)
	return &racesim.Config{
		DistanceKm:       r.DistanceKm,
		EntryFee:         r.EntryFee,
		PrizeSchedule:    prizes,
		FeeMode:          racesim.FeeMode(r.FeeMode),
		DegeneratePolicy: racesim.DegeneratePolicy(r.DegeneratePolicy),
	}
}

// ResultsCacheDuration возвращает время жизни кеша результатов
func (r *RaceConfig) ResultsCacheDuration() time.Duration {
	return time.Duration(r.ResultsCacheTTL) * time.Second
}

// LockDuration возвращает время жизни блокировки запуска заезда
func (r *RaceConfig) LockDuration() time.Duration {
	return time.Duration(r.LockTTL) * time.Second
}

// PostgresConnectionString формирует строку подключения к PostgreSQL
func (d *DatabaseConfig) PostgresConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

func setDefaults(vip *viper.Viper) {
	vip.SetDefault("server.port", "8080")
	vip.SetDefault("server.readTimeout", 15)
	vip.SetDefault("server.writeTimeout", 15)
	vip.SetDefault("server.allowed_origins", []string{"http://localhost:3000", "http://localhost:5173"})

	vip.SetDefault("database.port", "5432")
	vip.SetDefault("database.sslmode", "disable")
	vip.SetDefault("database.migrations_path", "file://migrations")
	vip.SetDefault("database.max_open_conns", 25)
	vip.SetDefault("database.max_idle_conns", 10)

	vip.SetDefault("redis.mode", "single")
	vip.SetDefault("redis.addr", "localhost:6379")

	vip.SetDefault("race.distance_km", racesim.DefaultDistanceKm)
	vip.SetDefault("race.entry_fee", racesim.DefaultEntryFee)
	vip.SetDefault("race.prizes", racesim.DefaultPrizeSchedule)
	vip.SetDefault("race.fee_mode", string(racesim.FeePerTeam))
	vip.SetDefault("race.degenerate_policy", string(racesim.DegenerateAsDNF))
	vip.SetDefault("race.seed", 0)
	vip.SetDefault("race.name_prefix", "Bootcamp Rally")
	vip.SetDefault("race.results_cache_ttl_sec", 300)
	vip.SetDefault("race.lock_ttl_sec", 30)
}

// Load загружает конфигурацию из файла и переменных окружения
func Load(configPath string) (*Config, error) {
	vip := viper.New() // Новый экземпляр Viper, чтобы избежать глобального состояния

	setDefaults(vip)

	// Привязка для секции Database
	vip.BindEnv("database.host", "DATABASE_HOST")
	vip.BindEnv("database.port", "DATABASE_PORT")
	vip.BindEnv("database.user", "DATABASE_USER")
	vip.BindEnv("database.password", "DATABASE_PASSWORD")
	vip.BindEnv("database.dbname", "DATABASE_DBNAME")
	vip.BindEnv("database.sslmode", "DATABASE_SSLMODE")
	vip.BindEnv("database.migrations_path", "DATABASE_MIGRATIONS_PATH")

	// Привязка для секции Redis
	vip.BindEnv("redis.mode", "REDIS_MODE")
	vip.BindEnv("redis.addrs", "REDIS_ADDRS")
	vip.BindEnv("redis.addr", "REDIS_ADDR")
	vip.BindEnv("redis.password", "REDIS_PASSWORD")
	vip.BindEnv("redis.db", "REDIS_DB")
	vip.BindEnv("redis.master_name", "REDIS_MASTER_NAME")

	// Привязка для Server
	vip.BindEnv("server.port", "SERVER_PORT")
	vip.BindEnv("server.allowed_origins", "ALLOWED_ORIGINS")

	// Привязка для секции Race
	vip.BindEnv("race.distance_km", "RACE_DISTANCE_KM")
	vip.BindEnv("race.entry_fee", "RACE_ENTRY_FEE")
	vip.BindEnv("race.fee_mode", "RACE_FEE_MODE")
	vip.BindEnv("race.degenerate_policy", "RACE_DEGENERATE_POLICY")
	vip.BindEnv("race.seed", "RACE_SEED")

	if configPath != "" {
		vip.SetConfigFile(configPath)
		// Файла может не быть: значения придут из окружения и умолчаний
		if err := vip.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); ok || os.IsNotExist(err) {
				log.Printf("Файл конфигурации '%s' не найден, используются переменные окружения/умолчания.", configPath)
			} else {
				log.Printf("Предупреждение: не удалось прочитать файл конфигурации '%s': %v", configPath, err)
			}
		}
	}

	var cfg Config
	if err := vip.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if os.Getenv("GIN_MODE") != "release" {
		log.Printf("--- Загруженные значения конфигурации ---")
		log.Printf("Database Host: %s", cfg.Database.Host)
		log.Printf("Database Port: %s", cfg.Database.Port)
		log.Printf("Database Name: %s", cfg.Database.DBName)
		log.Printf("Redis Addr: %s", cfg.Redis.Addr)
		log.Printf("Redis Mode: %s", cfg.Redis.Mode)
		log.Printf("Server Port: %s", cfg.Server.Port)
		log.Printf("Race: %.0f km, fee %d, prizes %v, fee mode %s", cfg.Race.DistanceKm, cfg.Race.EntryFee, cfg.Race.Prizes, cfg.Race.FeeMode)
		log.Printf("-----------------------------------------")
	}

	if err := cfg.Validate(os.Getenv("GIN_MODE")); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate проверяет обязательные параметры. В режиме, отличном от debug, требуется пароль БД.
func (c *Config) Validate(ginMode string) error {
	if c.Database.Host == "" || c.Database.DBName == "" || c.Database.User == "" {
		return fmt.Errorf("database configuration (host, dbname, user) is incomplete in config (check DATABASE_HOST, DATABASE_DBNAME, DATABASE_USER env vars)")
	}
	if ginMode != "debug" && c.Database.Password == "" {
		return fmt.Errorf("database password is required in production mode (check DATABASE_PASSWORD env var)")
	}
	if err := c.Race.SimulatorConfig().Validate(); err != nil {
		return fmt.Errorf("race configuration: %w", err)
	}
	// Без TTL блокировка запуска, оставшаяся после падения, навсегда заблокирует заезды
	if c.Race.LockTTL <= 0 {
		return fmt.Errorf("race configuration: lock_ttl_sec must be positive, got %d", c.Race.LockTTL)
	}
	if c.Race.ResultsCacheTTL < 0 {
		return fmt.Errorf("race configuration: results_cache_ttl_sec must not be negative, got %d", c.Race.ResultsCacheTTL)
	}
	return nil
}

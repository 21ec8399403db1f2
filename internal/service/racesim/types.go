package racesim

import (
	"fmt"
)

// Значения по умолчанию для заезда
const (
	DefaultDistanceKm = 100.0
	DefaultEntryFee   = 1000
)

// DefaultPrizeSchedule: призы за 1, 2 и 3 место
var DefaultPrizeSchedule = []int64{5000, 3500, 1500}

// FeeMode определяет, как списывается взнос за участие
type FeeMode string

const (
	// FeePerTeam: взнос списывается один раз с команды, сколько бы машин она ни выставила
	FeePerTeam FeeMode = "per_team"
	// FeePerEntrant: взнос списывается за каждую пару машина+гонщик
	FeePerEntrant FeeMode = "per_entrant"
)

// DegeneratePolicy определяет реакцию на вырожденный результат (скорость <= 0)
type DegeneratePolicy string

const (
	// DegenerateAsDNF: участник считается не финишировавшим, ошибка попадает в отчет
	DegenerateAsDNF DegeneratePolicy = "dnf"
	// DegenerateAbort: весь заезд прерывается с ошибкой
	DegenerateAbort DegeneratePolicy = "abort"
)

// Entrant: неизменяемая запись участника заезда: команда, машина, гонщик и характеристики машины
type Entrant struct {
	TeamID       uint
	TeamName     string
	CarID        uint
	CarName      string
	DriverID     uint
	DriverName   string
	BaseSpeedKmh float64 // км/ч, > 0
	Handling     float64 // [0, 1]
	Reliability  float64 // вероятность финиша, [0, 1]
	WeightKg     float64 // > 0
}

// Config содержит параметры заезда
type Config struct {
	DistanceKm float64
	EntryFee   int64

	// PrizeSchedule: призы по местам, индекс 0 соответствует 1 месту.
	// Места за пределами списка получают 0.
	PrizeSchedule []int64

	FeeMode          FeeMode
	DegeneratePolicy DegeneratePolicy
}

// DefaultConfig возвращает конфигурацию заезда по умолчанию
func DefaultConfig() *Config {
	prizes := make([]int64, len(DefaultPrizeSchedule))
	copy(prizes, DefaultPrizeSchedule)
	return &Config{
		DistanceKm:       DefaultDistanceKm,
		EntryFee:         DefaultEntryFee,
		PrizeSchedule:    prizes,
		FeeMode:          FeePerTeam,
		DegeneratePolicy: DegenerateAsDNF,
	}
}

// Validate проверяет корректность конфигурации
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("%w: config is nil", ErrInvalidConfig)
	}
	if !finitePositive(c.DistanceKm) {
		return fmt.Errorf("%w: distance_km must be positive, got %v", ErrInvalidConfig, c.DistanceKm)
	}
	if c.EntryFee <= 0 {
		return fmt.Errorf("%w: entry_fee must be positive, got %d", ErrInvalidConfig, c.EntryFee)
	}
	for i, p := range c.PrizeSchedule {
		if p < 0 {
			return fmt.Errorf("%w: prize for rank %d is negative", ErrInvalidConfig, i+1)
		}
	}
	switch c.FeeMode {
	case FeePerTeam, FeePerEntrant:
	default:
		return fmt.Errorf("%w: unknown fee mode %q", ErrInvalidConfig, c.FeeMode)
	}
	switch c.DegeneratePolicy {
	case DegenerateAsDNF, DegenerateAbort:
	default:
		return fmt.Errorf("%w: unknown degenerate policy %q", ErrInvalidConfig, c.DegeneratePolicy)
	}
	return nil
}

// PrizeFor возвращает приз за место rank (1-based)
func (c *Config) PrizeFor(rank int) int64 {
	if rank < 1 || rank > len(c.PrizeSchedule) {
		return 0
	}
	return c.PrizeSchedule[rank-1]
}

// Outcome: исход заезда для одного участника до расстановки мест
type Outcome struct {
	Entrant        Entrant
	Finished       bool
	ElapsedSeconds float64 // имеет смысл только при Finished
}

// Result: итог участника: место и приз присутствуют только у финишировавших
type Result struct {
	CarID          uint
	TeamID         uint
	DriverID       uint
	CarName        string
	TeamName       string
	DriverName     string
	Finished       bool
	ElapsedSeconds *float64
	Rank           *int
	Prize          int64
}

package entity

import (
	"time"
)

// Race представляет проведенный заезд
type Race struct {
	ID         uint      `gorm:"column:race_id;primaryKey" json:"race_id"`
	RunID      string    `gorm:"type:uuid;not null;uniqueIndex" json:"run_id"`
	Name       string    `gorm:"column:race_name;size:150;not null" json:"race_name"`
	DistanceKm float64   `gorm:"column:distance_km;not null" json:"distance_km"`
	FeePerTeam int64     `gorm:"column:fee_per_team;not null" json:"fee_per_team"`
	CreatedAt  time.Time `gorm:"index" json:"created_at"`
}

// TableName определяет имя таблицы для GORM
func (Race) TableName() string {
	return "racing.races"
}

// RaceResult: итог одной машины в заезде. Записывается один раз и больше не меняется.
type RaceResult struct {
	ID          uint     `gorm:"column:result_id;primaryKey" json:"result_id"`
	RaceID      uint     `gorm:"not null;index" json:"race_id"`
	CarID       uint     `gorm:"not null" json:"car_id"`
	TeamID      uint     `gorm:"not null;index" json:"team_id"`
	CarName     string   `gorm:"size:100;not null" json:"car_name"`
	TeamName    string   `gorm:"size:100;not null" json:"team_name"`
	MemberName  string   `gorm:"size:100;not null" json:"member_name"`
	Finished    bool     `gorm:"not null;default:false" json:"finished"`
	TimeSeconds *float64 `gorm:"column:time_seconds" json:"time_seconds,omitempty"`
	Position    *int     `json:"position,omitempty"`
	PrizeMoney  int64    `gorm:"not null;default:0" json:"prize_money"`
}

// TableName определяет имя таблицы для GORM
func (RaceResult) TableName() string {
	return "racing.race_results"
}

// IsPrizeWinner проверяет, получила ли машина приз
func (r *RaceResult) IsPrizeWinner() bool {
	return r.Finished && r.PrizeMoney > 0
}

// BudgetAdjustment: запись журнала изменения бюджета команды по итогам заезда
type BudgetAdjustment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	RaceID    uint      `gorm:"not null;index" json:"race_id"`
	TeamID    uint      `gorm:"not null;index" json:"team_id"`
	Delta     int64     `gorm:"not null" json:"delta"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName определяет имя таблицы для GORM
func (BudgetAdjustment) TableName() string {
	return "racing.budget_adjustments"
}

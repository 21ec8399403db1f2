package entity

import (
	"time"
)

// Допустимые диапазоны характеристик машины
const (
	MinBaseSpeedKmh = 100
	MaxBaseSpeedKmh = 300
	MinWeightKg     = 800
	MaxWeightKg     = 2000

	DefaultBaseSpeedKmh = 150
	DefaultHandling     = 0.8
	DefaultReliability  = 0.9
	DefaultWeightKg     = 1200
)

// Car представляет машину команды
type Car struct {
	ID           uint      `gorm:"column:car_id;primaryKey" json:"car_id"`
	TeamID       uint      `gorm:"not null;index" json:"team_id"`
	Name         string    `gorm:"column:car_name;size:100;not null" json:"car_name"`
	BaseSpeedKmh float64   `gorm:"column:base_speed_kmh;not null" json:"base_speed_kmh"`
	Handling     float64   `gorm:"not null" json:"handling"`
	Reliability  float64   `gorm:"not null" json:"reliability"`
	WeightKg     float64   `gorm:"column:weight_kg;not null" json:"weight_kg"`
	CreatedAt    time.Time `json:"created_at"`
}

// TableName определяет имя таблицы для GORM
func (Car) TableName() string {
	return "racing.cars"
}

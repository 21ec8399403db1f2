package entity

import (
	"time"
)

// DefaultTeamBudget: стартовый бюджет новой команды (EUR)
const DefaultTeamBudget = 10000

// Team представляет гоночную команду
type Team struct {
	ID        uint      `gorm:"column:team_id;primaryKey" json:"team_id"`
	Name      string    `gorm:"column:team_name;size:100;not null;uniqueIndex" json:"team_name"`
	Budget    int64     `gorm:"not null;default:0" json:"budget"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (Team) TableName() string {
	return "racing.teams"
}

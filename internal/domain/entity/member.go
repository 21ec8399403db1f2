package entity

import (
	"time"
)

// Member представляет участника команды (гонщика)
type Member struct {
	ID        uint      `gorm:"column:member_id;primaryKey" json:"member_id"`
	TeamID    uint      `gorm:"not null;index" json:"team_id"`
	Name      string    `gorm:"column:member_name;size:100;not null" json:"member_name"`
	CarID     *uint     `gorm:"uniqueIndex" json:"car_id,omitempty"` // у машины не больше одного гонщика
	CreatedAt time.Time `json:"created_at"`
}

// TableName определяет имя таблицы для GORM
func (Member) TableName() string {
	return "racing.team_members"
}

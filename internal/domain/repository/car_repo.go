package repository

import (
	"github.com/yourusername/rally-api/internal/domain/entity"
)

// CarRepository определяет методы для работы с машинами
type CarRepository interface {
	Create(car *entity.Car) error
	GetByID(id uint) (*entity.Car, error)
	ListByTeam(teamID uint) ([]entity.Car, error)
}

package repository

import (
	"github.com/yourusername/rally-api/internal/domain/entity"
)

// TeamRepository определяет методы для работы с командами
type TeamRepository interface {
	Create(team *entity.Team) error
	GetByID(id uint) (*entity.Team, error)
	List() ([]entity.Team, error)
	// GetRoster возвращает гонщиков всех команд с закрепленными машинами (машина может отсутствовать)
	GetRoster() ([]entity.RosterRow, error)
}

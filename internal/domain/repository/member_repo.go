package repository

import (
	"github.com/yourusername/rally-api/internal/domain/entity"
)

// MemberRepository определяет методы для работы с участниками команд
type MemberRepository interface {
	Create(member *entity.Member) error
	ListByTeam(teamID uint) ([]entity.Member, error)
	// AssignCars атомарно применяет назначения member_id -> car_id (nil снимает машину)
	AssignCars(teamID uint, assignments map[uint]*uint) error
}

package postgres

import (
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/yourusername/rally-api/internal/domain/entity"
	apperrors "github.com/yourusername/rally-api/internal/pkg/errors"
)

// MemberRepo реализует repository.MemberRepository
type MemberRepo struct {
	db *gorm.DB
}

// NewMemberRepo создает новый репозиторий участников команд
func NewMemberRepo(db *gorm.DB) *MemberRepo {
	return &MemberRepo{db: db}
}

// Create добавляет участника в команду
func (r *MemberRepo) Create(member *entity.Member) error {
	return r.db.Create(member).Error
}

// ListByTeam возвращает участников команды
func (r *MemberRepo) ListByTeam(teamID uint) ([]entity.Member, error) {
	var members []entity.Member
	err := r.db.Where("team_id = ?", teamID).Order("member_id").Find(&members).Error
	return members, err
}

// AssignCars применяет назначения машин в одной транзакции.
// Сначала снимаются все затронутые назначения, чтобы обмен машинами между
// гонщиками не упирался в уникальный индекс car_id.
func (r *MemberRepo) AssignCars(teamID uint, assignments map[uint]*uint) error {
	if len(assignments) == 0 {
		return nil
	}

	memberIDs := make([]uint, 0, len(assignments))
	for id := range assignments {
		memberIDs = append(memberIDs, id)
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&entity.Member{}).
			Where("team_id = ? AND member_id IN ?", teamID, memberIDs).
			Update("car_id", nil).Error; err != nil {
			return err
		}

		for memberID, carID := range assignments {
			if carID == nil {
				continue
			}
			res := tx.Model(&entity.Member{}).
				Where("team_id = ? AND member_id = ?", teamID, memberID).
				Update("car_id", *carID)
			if res.Error != nil {
				if isUniqueViolation(res.Error) {
					return fmt.Errorf("%w: car #%d is already assigned", apperrors.ErrConflict, *carID)
				}
				return res.Error
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("%w: member #%d in team #%d", apperrors.ErrNotFound, memberID, teamID)
			}
		}

		log.Printf("[MemberRepo] Назначения машин обновлены для команды #%d (%d участников)", teamID, len(assignments))
		return nil
	})
}

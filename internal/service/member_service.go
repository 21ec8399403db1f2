package service

import (
	"fmt"
	"log"
	"strings"

	"github.com/yourusername/rally-api/internal/domain/entity"
	"github.com/yourusername/rally-api/internal/domain/repository"
	apperrors "github.com/yourusername/rally-api/internal/pkg/errors"
)

// MemberService предоставляет методы для работы с участниками команд
type MemberService struct {
	memberRepo repository.MemberRepository
	teamRepo   repository.TeamRepository
	carRepo    repository.CarRepository
}

// NewMemberService создает новый сервис участников
func NewMemberService(
	memberRepo repository.MemberRepository,
	teamRepo repository.TeamRepository,
	carRepo repository.CarRepository,
) *MemberService {
	return &MemberService{
		memberRepo: memberRepo,
		teamRepo:   teamRepo,
		carRepo:    carRepo,
	}
}

// AddMember добавляет гонщика в команду
func (s *MemberService) AddMember(teamID uint, name string) (*entity.Member, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: member name cannot be empty", apperrors.ErrValidation)
	}

	team, err := s.teamRepo.GetByID(teamID)
	if err != nil {
		return nil, err
	}

	member := &entity.Member{TeamID: team.ID, Name: name}
	if err := s.memberRepo.Create(member); err != nil {
		log.Printf("[MemberService] Ошибка при добавлении участника %q в команду #%d: %v", name, teamID, err)
		return nil, err
	}

	log.Printf("[MemberService] Участник #%d %q добавлен в команду %q", member.ID, member.Name, team.Name)
	return member, nil
}

// ListTeamMembers возвращает участников команды
func (s *MemberService) ListTeamMembers(teamID uint) ([]entity.Member, error) {
	if _, err := s.teamRepo.GetByID(teamID); err != nil {
		return nil, err
	}
	return s.memberRepo.ListByTeam(teamID)
}

// AssignCars назначает машины гонщикам команды (nil снимает машину).
// Все гонщики и машины должны принадлежать команде, машина закрепляется не более чем за одним гонщиком.
func (s *MemberService) AssignCars(teamID uint, assignments map[uint]*uint) error {
	if _, err := s.teamRepo.GetByID(teamID); err != nil {
		return err
	}

	members, err := s.memberRepo.ListByTeam(teamID)
	if err != nil {
		return err
	}
	cars, err := s.carRepo.ListByTeam(teamID)
	if err != nil {
		return err
	}

	teamCars := make(map[uint]bool, len(cars))
	for _, c := range cars {
		teamCars[c.ID] = true
	}

	// Итоговое состояние: текущие назначения, поверх которых применены новые
	final := make(map[uint]*uint, len(members))
	for _, m := range members {
		final[m.ID] = m.CarID
	}
	for memberID, carID := range assignments {
		if _, ok := final[memberID]; !ok {
			return fmt.Errorf("%w: member #%d does not belong to team #%d", apperrors.ErrValidation, memberID, teamID)
		}
		if carID != nil && !teamCars[*carID] {
			return fmt.Errorf("%w: car #%d does not belong to team #%d", apperrors.ErrValidation, *carID, teamID)
		}
		final[memberID] = carID
	}

	taken := make(map[uint]uint, len(final))
	for memberID, carID := range final {
		if carID == nil {
			continue
		}
		if other, dup := taken[*carID]; dup {
			return fmt.Errorf("%w: each member must have a unique car (car #%d assigned to members #%d and #%d)",
				apperrors.ErrValidation, *carID, other, memberID)
		}
		taken[*carID] = memberID
	}

	if err := s.memberRepo.AssignCars(teamID, assignments); err != nil {
		log.Printf("[MemberService] Ошибка при назначении машин команде #%d: %v", teamID, err)
		return err
	}
	return nil
}

package service

import (
	"fmt"
	"log"
	"strings"

	"github.com/yourusername/rally-api/internal/domain/entity"
	"github.com/yourusername/rally-api/internal/domain/repository"
	apperrors "github.com/yourusername/rally-api/internal/pkg/errors"
)

// TeamService предоставляет методы для работы с командами
type TeamService struct {
	teamRepo repository.TeamRepository
}

// NewTeamService создает новый сервис команд
func NewTeamService(teamRepo repository.TeamRepository) *TeamService {
	return &TeamService{
		teamRepo: teamRepo,
	}
}

// CreateTeam регистрирует новую команду со стартовым бюджетом
func (s *TeamService) CreateTeam(name string, budget int64) (*entity.Team, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: team name cannot be empty", apperrors.ErrValidation)
	}
	if budget < 0 {
		return nil, fmt.Errorf("%w: budget cannot be negative", apperrors.ErrValidation)
	}

	team := &entity.Team{Name: name, Budget: budget}
	if err := s.teamRepo.Create(team); err != nil {
		log.Printf("[TeamService] Ошибка при создании команды %q: %v", name, err)
		return nil, err
	}

	log.Printf("[TeamService] Команда #%d %q создана с бюджетом %d", team.ID, team.Name, team.Budget)
	return team, nil
}

// GetTeam возвращает команду по ID
func (s *TeamService) GetTeam(id uint) (*entity.Team, error) {
	return s.teamRepo.GetByID(id)
}

// ListTeams возвращает все команды с бюджетами
func (s *TeamService) ListTeams() ([]entity.Team, error) {
	return s.teamRepo.List()
}

// GetRoster возвращает состав команд с назначенными машинами
func (s *TeamService) GetRoster() ([]entity.RosterRow, error) {
	return s.teamRepo.GetRoster()
}

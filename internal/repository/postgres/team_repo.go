package postgres

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/yourusername/rally-api/internal/domain/entity"
	apperrors "github.com/yourusername/rally-api/internal/pkg/errors"
)

// TeamRepo реализует repository.TeamRepository
type TeamRepo struct {
	db *gorm.DB
}

// NewTeamRepo создает новый репозиторий команд
func NewTeamRepo(db *gorm.DB) *TeamRepo {
	return &TeamRepo{db: db}
}

// Create создает новую команду
func (r *TeamRepo) Create(team *entity.Team) error {
	if err := r.db.Create(team).Error; err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: team %q already exists", apperrors.ErrConflict, team.Name)
		}
		return err
	}
	return nil
}

// GetByID возвращает команду по ID
func (r *TeamRepo) GetByID(id uint) (*entity.Team, error) {
	var team entity.Team
	err := r.db.Where("team_id = ?", id).First(&team).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &team, nil
}

// List возвращает все команды, отсортированные по ID
func (r *TeamRepo) List() ([]entity.Team, error) {
	var teams []entity.Team
	err := r.db.Order("team_id").Find(&teams).Error
	return teams, err
}

// GetRoster возвращает состав команд: гонщик и его машина (если назначена)
func (r *TeamRepo) GetRoster() ([]entity.RosterRow, error) {
	var rows []entity.RosterRow
	err := r.db.Raw(`
		SELECT t.team_name, m.member_name, c.car_name
		FROM racing.team_members m
		LEFT JOIN racing.teams t ON m.team_id = t.team_id
		LEFT JOIN racing.cars c ON m.car_id = c.car_id
		ORDER BY t.team_name, m.member_name`).
		Scan(&rows).Error
	return rows, err
}

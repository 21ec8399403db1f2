package postgres

import (
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/yourusername/rally-api/internal/domain/entity"
	apperrors "github.com/yourusername/rally-api/internal/pkg/errors"
	"github.com/yourusername/rally-api/internal/service/racesim"
)

// RaceRepo реализует repository.RaceRepository
type RaceRepo struct {
	db *gorm.DB
}

// NewRaceRepo создает новый репозиторий заездов
func NewRaceRepo(db *gorm.DB) *RaceRepo {
	return &RaceRepo{db: db}
}

// ListEntrants возвращает машины с закрепленным гонщиком. Машины без гонщика не участвуют.
func (r *RaceRepo) ListEntrants() ([]entity.EntrantRow, error) {
	var rows []entity.EntrantRow
	err := r.db.Raw(`
		SELECT c.car_id, c.car_name, c.team_id, t.team_name,
		       c.base_speed_kmh, c.handling, c.reliability, c.weight_kg,
		       tm.member_id, tm.member_name
		FROM racing.cars c
		JOIN racing.teams t ON c.team_id = t.team_id
		JOIN racing.team_members tm ON c.car_id = tm.car_id
		ORDER BY c.car_id`).
		Scan(&rows).Error
	return rows, err
}

// SaveRace сохраняет заезд, его результаты и применяет дельты бюджетов в одной транзакции
func (r *RaceRepo) SaveRace(race *entity.Race, results []entity.RaceResult, budgetDeltas map[uint]int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(race).Error; err != nil {
			return fmt.Errorf("failed to save race: %w", err)
		}

		for i := range results {
			results[i].RaceID = race.ID
		}
		if len(results) > 0 {
			if err := tx.Create(&results).Error; err != nil {
				return fmt.Errorf("failed to save race results: %w", err)
			}
		}

		// Фиксированный порядок команд, чтобы параллельные транзакции брали блокировки одинаково
		for _, teamID := range racesim.Settlement(budgetDeltas).TeamIDs() {
			delta := budgetDeltas[teamID]
			res := tx.Model(&entity.Team{}).
				Where("team_id = ?", teamID).
				Update("budget", gorm.Expr("budget + ?", delta))
			if res.Error != nil {
				return fmt.Errorf("failed to adjust budget of team #%d: %w", teamID, res.Error)
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("%w: team #%d", apperrors.ErrNotFound, teamID)
			}
			if err := tx.Create(&entity.BudgetAdjustment{RaceID: race.ID, TeamID: teamID, Delta: delta}).Error; err != nil {
				return fmt.Errorf("failed to record budget adjustment: %w", err)
			}
		}

		log.Printf("[RaceRepo] Заезд #%d сохранен: %d результатов, %d команд", race.ID, len(results), len(budgetDeltas))
		return nil
	})
}

// GetByID возвращает заезд по ID
func (r *RaceRepo) GetByID(id uint) (*entity.Race, error) {
	var race entity.Race
	err := r.db.Where("race_id = ?", id).First(&race).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &race, nil
}

// List возвращает заезды, начиная с последнего, с пагинацией и общим количеством
func (r *RaceRepo) List(limit, offset int) ([]entity.Race, int64, error) {
	var races []entity.Race
	var total int64

	// Используем транзакцию для согласованности чтения данных и общего количества
	tx := r.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()
	if tx.Error != nil {
		return nil, 0, tx.Error
	}

	if err := tx.Model(&entity.Race{}).Count(&total).Error; err != nil {
		tx.Rollback()
		return nil, 0, err
	}

	err := tx.Order("race_id DESC").
		Limit(limit).
		Offset(offset).
		Find(&races).Error
	if err != nil {
		tx.Rollback()
		return nil, 0, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, 0, err
	}

	return races, total, nil
}

// GetResults возвращает результаты заезда: сначала места по порядку, затем сошедшие
func (r *RaceRepo) GetResults(raceID uint) ([]entity.RaceResult, error) {
	var results []entity.RaceResult
	err := r.db.Where("race_id = ?", raceID).
		Order("position ASC NULLS LAST, result_id ASC").
		Find(&results).Error
	return results, err
}

package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/yourusername/rally-api/internal/domain/entity"
	apperrors "github.com/yourusername/rally-api/internal/pkg/errors"
)

// CarRepo реализует repository.CarRepository
type CarRepo struct {
	db *gorm.DB
}

// NewCarRepo создает новый репозиторий машин
func NewCarRepo(db *gorm.DB) *CarRepo {
	return &CarRepo{db: db}
}

// Create сохраняет машину
func (r *CarRepo) Create(car *entity.Car) error {
	return r.db.Create(car).Error
}

// GetByID возвращает машину по ID
func (r *CarRepo) GetByID(id uint) (*entity.Car, error) {
	var car entity.Car
	err := r.db.Where("car_id = ?", id).First(&car).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &car, nil
}

// ListByTeam возвращает машины команды
func (r *CarRepo) ListByTeam(teamID uint) ([]entity.Car, error) {
	var cars []entity.Car
	err := r.db.Where("team_id = ?", teamID).Order("car_id").Find(&cars).Error
	return cars, err
}

package service

import (
	"fmt"
	"log"
	"strings"

	"github.com/yourusername/rally-api/internal/domain/entity"
	"github.com/yourusername/rally-api/internal/domain/repository"
	apperrors "github.com/yourusername/rally-api/internal/pkg/errors"
)

// AddCarParams: параметры новой машины. Пустые характеристики получают значения по умолчанию.
type AddCarParams struct {
	Name         string
	BaseSpeedKmh *float64
	Handling     *float64
	Reliability  *float64
	WeightKg     *float64
}

// CarService предоставляет методы для работы с машинами
type CarService struct {
	carRepo  repository.CarRepository
	teamRepo repository.TeamRepository
}

// NewCarService создает новый сервис машин
func NewCarService(carRepo repository.CarRepository, teamRepo repository.TeamRepository) *CarService {
	return &CarService{
		carRepo:  carRepo,
		teamRepo: teamRepo,
	}
}

// AddCar добавляет машину в команду
func (s *CarService) AddCar(teamID uint, params AddCarParams) (*entity.Car, error) {
	team, err := s.teamRepo.GetByID(teamID)
	if err != nil {
		return nil, err
	}

	car := &entity.Car{
		TeamID:       team.ID,
		Name:         strings.TrimSpace(params.Name),
		BaseSpeedKmh: valueOr(params.BaseSpeedKmh, entity.DefaultBaseSpeedKmh),
		Handling:     valueOr(params.Handling, entity.DefaultHandling),
		Reliability:  valueOr(params.Reliability, entity.DefaultReliability),
		WeightKg:     valueOr(params.WeightKg, entity.DefaultWeightKg),
	}
	if err := validateCar(car); err != nil {
		return nil, err
	}

	if err := s.carRepo.Create(car); err != nil {
		log.Printf("[CarService] Ошибка при создании машины %q для команды #%d: %v", car.Name, teamID, err)
		return nil, err
	}

	log.Printf("[CarService] Машина #%d %q добавлена в команду %q", car.ID, car.Name, team.Name)
	return car, nil
}

// ListTeamCars возвращает машины команды
func (s *CarService) ListTeamCars(teamID uint) ([]entity.Car, error) {
	if _, err := s.teamRepo.GetByID(teamID); err != nil {
		return nil, err
	}
	return s.carRepo.ListByTeam(teamID)
}

func validateCar(car *entity.Car) error {
	if car.Name == "" {
		return fmt.Errorf("%w: car name cannot be empty", apperrors.ErrValidation)
	}
	if car.BaseSpeedKmh < entity.MinBaseSpeedKmh || car.BaseSpeedKmh > entity.MaxBaseSpeedKmh {
		return fmt.Errorf("%w: base speed must be within [%d, %d] km/h", apperrors.ErrValidation, entity.MinBaseSpeedKmh, entity.MaxBaseSpeedKmh)
	}
	if car.Handling < 0 || car.Handling > 1 {
		return fmt.Errorf("%w: handling must be within [0, 1]", apperrors.ErrValidation)
	}
	if car.Reliability < 0 || car.Reliability > 1 {
		return fmt.Errorf("%w: reliability must be within [0, 1]", apperrors.ErrValidation)
	}
	if car.WeightKg < entity.MinWeightKg || car.WeightKg > entity.MaxWeightKg {
		return fmt.Errorf("%w: weight must be within [%d, %d] kg", apperrors.ErrValidation, entity.MinWeightKg, entity.MaxWeightKg)
	}
	return nil
}

func valueOr(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

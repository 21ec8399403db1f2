package repository

import (
	"github.com/yourusername/rally-api/internal/domain/entity"
)

// RaceRepository определяет методы для работы с заездами и их результатами
type RaceRepository interface {
	// ListEntrants возвращает все машины, за которыми закреплен гонщик
	ListEntrants() ([]entity.EntrantRow, error)
	// SaveRace в одной транзакции сохраняет заезд, результаты и применяет дельты бюджетов
	SaveRace(race *entity.Race, results []entity.RaceResult, budgetDeltas map[uint]int64) error
	GetByID(id uint) (*entity.Race, error)
	List(limit, offset int) ([]entity.Race, int64, error)
	GetResults(raceID uint) ([]entity.RaceResult, error)
}

package handler

import (
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/yourusername/rally-api/internal/domain/entity"
)

// MockTeamRepo реализует repository.TeamRepository
type MockTeamRepo struct {
	mock.Mock
}

func (m *MockTeamRepo) Create(team *entity.Team) error {
	args := m.Called(team)
	return args.Error(0)
}

func (m *MockTeamRepo) GetByID(id uint) (*entity.Team, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Team), args.Error(1)
}

func (m *MockTeamRepo) List() ([]entity.Team, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Team), args.Error(1)
}

func (m *MockTeamRepo) GetRoster() ([]entity.RosterRow, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.RosterRow), args.Error(1)
}

// MockCarRepo реализует repository.CarRepository
type MockCarRepo struct {
	mock.Mock
}

func (m *MockCarRepo) Create(car *entity.Car) error {
	args := m.Called(car)
	return args.Error(0)
}

func (m *MockCarRepo) GetByID(id uint) (*entity.Car, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Car), args.Error(1)
}

func (m *MockCarRepo) ListByTeam(teamID uint) ([]entity.Car, error) {
	args := m.Called(teamID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Car), args.Error(1)
}

// MockMemberRepo реализует repository.MemberRepository
type MockMemberRepo struct {
	mock.Mock
}

func (m *MockMemberRepo) Create(member *entity.Member) error {
	args := m.Called(member)
	return args.Error(0)
}

func (m *MockMemberRepo) ListByTeam(teamID uint) ([]entity.Member, error) {
	args := m.Called(teamID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Member), args.Error(1)
}

func (m *MockMemberRepo) AssignCars(teamID uint, assignments map[uint]*uint) error {
	args := m.Called(teamID, assignments)
	return args.Error(0)
}

// MockRaceRepo реализует repository.RaceRepository
type MockRaceRepo struct {
	mock.Mock
}

func (m *MockRaceRepo) ListEntrants() ([]entity.EntrantRow, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.EntrantRow), args.Error(1)
}

func (m *MockRaceRepo) SaveRace(race *entity.Race, results []entity.RaceResult, budgetDeltas map[uint]int64) error {
	args := m.Called(race, results, budgetDeltas)
	return args.Error(0)
}

func (m *MockRaceRepo) GetByID(id uint) (*entity.Race, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Race), args.Error(1)
}

func (m *MockRaceRepo) List(limit, offset int) ([]entity.Race, int64, error) {
	args := m.Called(limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]entity.Race), args.Get(1).(int64), args.Error(2)
}

func (m *MockRaceRepo) GetResults(raceID uint) ([]entity.RaceResult, error) {
	args := m.Called(raceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.RaceResult), args.Error(1)
}

// MockCacheRepo реализует repository.CacheRepository
type MockCacheRepo struct {
	mock.Mock
}

func (m *MockCacheRepo) Delete(key string) error {
	args := m.Called(key)
	return args.Error(0)
}

func (m *MockCacheRepo) SetJSON(key string, value interface{}, expiration time.Duration) error {
	args := m.Called(key, value, expiration)
	return args.Error(0)
}

func (m *MockCacheRepo) GetJSON(key string, dest interface{}) error {
	args := m.Called(key, dest)
	return args.Error(0)
}

func (m *MockCacheRepo) SetNX(key string, value interface{}, expiration time.Duration) (bool, error) {
	args := m.Called(key, value, expiration)
	return args.Bool(0), args.Error(1)
}

func (m *MockCacheRepo) ReleaseLock(key, token string) (bool, error) {
	args := m.Called(key, token)
	return args.Bool(0), args.Error(1)
}

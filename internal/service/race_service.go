package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/rally-api/internal/domain/entity"
	"github.com/yourusername/rally-api/internal/domain/repository"
	apperrors "github.com/yourusername/rally-api/internal/pkg/errors"
	"github.com/yourusername/rally-api/internal/service/racesim"
)

// EventRaceFinished: событие ленты заездов после сохранения результатов
const EventRaceFinished = "race:finished"

const (
	raceStartLockKey   = "race:start_lock"
	raceResultsKeyFmt  = "race:%d:results"
	raceNameTimeLayout = "2006-01-02 15:04:05"
)

// RaceOptions: параметры запуска заездов, не относящиеся к самой симуляции
type RaceOptions struct {
	NamePrefix      string
	Seed            int64 // 0: зерно от текущего времени
	ResultsCacheTTL time.Duration
	LockTTL         time.Duration
}

// RaceRun: итог запуска заезда
type RaceRun struct {
	Race          *entity.Race        `json:"race"`
	Results       []entity.RaceResult `json:"results"`
	BudgetChanges map[uint]int64      `json:"budget_changes"`
	Rejected      []string            `json:"rejected,omitempty"`
	Degenerate    []string            `json:"degenerate,omitempty"`
}

// RaceEventPublisher рассылает события заездов подписчикам
type RaceEventPublisher interface {
	PublishRaceFinished(run *RaceRun) error
}

// RaceService запускает заезды и выдает их результаты
type RaceService struct {
	raceRepo  repository.RaceRepository
	cacheRepo repository.CacheRepository
	publisher RaceEventPublisher
	simConfig *racesim.Config
	opts      RaceOptions

	now       func() time.Time
	newSource func() racesim.Source
}

// NewRaceService создает новый сервис заездов. cacheRepo может быть nil:
// тогда нет ни блокировки запуска, ни кеша результатов.
func NewRaceService(
	raceRepo repository.RaceRepository,
	cacheRepo repository.CacheRepository,
	simConfig *racesim.Config,
	opts RaceOptions,
) *RaceService {
	if opts.NamePrefix == "" {
		opts.NamePrefix = "Bootcamp Rally"
	}
	s := &RaceService{
		raceRepo:  raceRepo,
		cacheRepo: cacheRepo,
		simConfig: simConfig,
		opts:      opts,
		now:       time.Now,
	}
	s.newSource = s.defaultSource
	return s
}

// SetSourceFactory подменяет источник случайности для новых заездов
func (s *RaceService) SetSourceFactory(factory func() racesim.Source) {
	if factory == nil {
		s.newSource = s.defaultSource
		return
	}
	s.newSource = factory
}

// SetEventPublisher подключает рассылку событий о завершенных заездах
func (s *RaceService) SetEventPublisher(publisher RaceEventPublisher) {
	s.publisher = publisher
}

func (s *RaceService) defaultSource() racesim.Source {
	if s.opts.Seed != 0 {
		return racesim.NewSource(s.opts.Seed)
	}
	return racesim.NewTimeSource()
}

// StartRace проводит заезд по всем машинам с гонщиками, сохраняет результаты
// и применяет изменения бюджетов в одной транзакции.
func (s *RaceService) StartRace(ctx context.Context) (*RaceRun, error) {
	if s.cacheRepo != nil {
		token := uuid.NewString()
		acquired, err := s.cacheRepo.SetNX(raceStartLockKey, token, s.opts.LockTTL)
		if err != nil {
			return nil, fmt.Errorf("failed to acquire race start lock: %w", err)
		}
		if !acquired {
			return nil, fmt.Errorf("%w: another race is already starting", apperrors.ErrConflict)
		}
		defer func() {
			released, err := s.cacheRepo.ReleaseLock(raceStartLockKey, token)
			if err != nil {
				log.Printf("[RaceService] Не удалось снять блокировку запуска: %v", err)
			} else if !released {
				log.Printf("[RaceService] Блокировка запуска истекла до завершения заезда и не снята (lock_ttl_sec слишком мал?)")
			}
		}()
	}

	rows, err := s.raceRepo.ListEntrants()
	if err != nil {
		return nil, fmt.Errorf("failed to load entrants: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no cars registered with an assigned driver", apperrors.ErrValidation)
	}

	sim, err := racesim.NewSimulator(s.simConfig, s.newSource())
	if err != nil {
		return nil, err
	}
	report, err := sim.Run(toEntrants(rows))
	if err != nil {
		log.Printf("[RaceService] Заезд прерван: %v", err)
		return nil, err
	}
	if len(report.Results) == 0 {
		return nil, fmt.Errorf("%w: no valid entrants (%d rejected)", apperrors.ErrValidation, len(report.Rejected))
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	now := s.now()
	race := &entity.Race{
		RunID:      uuid.NewString(),
		Name:       fmt.Sprintf("%s %s", s.opts.NamePrefix, now.Format(raceNameTimeLayout)),
		DistanceKm: s.simConfig.DistanceKm,
		FeePerTeam: s.simConfig.EntryFee,
		CreatedAt:  now,
	}
	results := toRaceResults(racesim.SortForDisplay(report.Results))

	if err := s.raceRepo.SaveRace(race, results, report.Settlement); err != nil {
		log.Printf("[RaceService] Ошибка при сохранении заезда %q: %v", race.Name, err)
		return nil, err
	}
	// SaveRace проставляет RaceID в results
	s.cacheResults(race.ID, results)

	log.Printf("[RaceService] Заезд #%d %q завершен: %d участников, %d финишировали, %d призеров, %d отклонено, сальдо бюджетов %d",
		race.ID, race.Name, len(results), countFinished(results), countPrizeWinners(results),
		len(report.Rejected), report.Settlement.Total())

	run := &RaceRun{
		Race:          race,
		Results:       results,
		BudgetChanges: report.Settlement,
		Rejected:      errorStrings(report.Rejected),
		Degenerate:    errorStrings(report.Degenerate),
	}
	if s.publisher != nil {
		// Заезд уже сохранен: ошибка рассылки не отменяет результат
		if err := s.publisher.PublishRaceFinished(run); err != nil {
			log.Printf("[RaceService] Не удалось разослать событие заезда #%d: %v", race.ID, err)
		}
	}
	return run, nil
}

// GetRace возвращает заезд по ID
func (s *RaceService) GetRace(id uint) (*entity.Race, error) {
	return s.raceRepo.GetByID(id)
}

// ListRaces возвращает пагинированный список заездов, новые первыми
func (s *RaceService) ListRaces(page, pageSize int) ([]entity.Race, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	} else if pageSize > 100 {
		pageSize = 100
	}

	offset := (page - 1) * pageSize

	races, total, err := s.raceRepo.List(pageSize, offset)
	if err != nil {
		log.Printf("[RaceService] Ошибка при получении списка заездов (page %d, size %d): %v", page, pageSize, err)
		return nil, 0, err
	}
	return races, total, nil
}

// GetRaceResults возвращает таблицу результатов заезда: призеры по местам, затем сошедшие
func (s *RaceService) GetRaceResults(raceID uint) ([]entity.RaceResult, error) {
	if _, err := s.raceRepo.GetByID(raceID); err != nil {
		return nil, err
	}

	if s.cacheRepo != nil {
		var cached []entity.RaceResult
		err := s.cacheRepo.GetJSON(resultsCacheKey(raceID), &cached)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			log.Printf("[RaceService] Ошибка чтения кеша результатов заезда #%d: %v", raceID, err)
		}
	}

	results, err := s.raceRepo.GetResults(raceID)
	if err != nil {
		return nil, err
	}
	s.cacheResults(raceID, results)
	return results, nil
}

func (s *RaceService) cacheResults(raceID uint, results []entity.RaceResult) {
	if s.cacheRepo == nil {
		return
	}
	if err := s.cacheRepo.SetJSON(resultsCacheKey(raceID), results, s.opts.ResultsCacheTTL); err != nil {
		log.Printf("[RaceService] Не удалось закешировать результаты заезда #%d: %v", raceID, err)
	}
}

func resultsCacheKey(raceID uint) string {
	return fmt.Sprintf(raceResultsKeyFmt, raceID)
}

func toEntrants(rows []entity.EntrantRow) []racesim.Entrant {
	entrants := make([]racesim.Entrant, len(rows))
	for i, r := range rows {
		entrants[i] = racesim.Entrant{
			TeamID:       r.TeamID,
			TeamName:     r.TeamName,
			CarID:        r.CarID,
			CarName:      r.CarName,
			DriverID:     r.MemberID,
			DriverName:   r.MemberName,
			BaseSpeedKmh: r.BaseSpeedKmh,
			Handling:     r.Handling,
			Reliability:  r.Reliability,
			WeightKg:     r.WeightKg,
		}
	}
	return entrants
}

func toRaceResults(results []racesim.Result) []entity.RaceResult {
	out := make([]entity.RaceResult, len(results))
	for i, r := range results {
		out[i] = entity.RaceResult{
			CarID:       r.CarID,
			TeamID:      r.TeamID,
			CarName:     r.CarName,
			TeamName:    r.TeamName,
			MemberName:  r.DriverName,
			Finished:    r.Finished,
			TimeSeconds: r.ElapsedSeconds,
			Position:    r.Rank,
			PrizeMoney:  r.Prize,
		}
	}
	return out
}

func countFinished(results []entity.RaceResult) int {
	n := 0
	for _, r := range results {
		if r.Finished {
			n++
		}
	}
	return n
}

func countPrizeWinners(results []entity.RaceResult) int {
	n := 0
	for i := range results {
		if results[i].IsPrizeWinner() {
			n++
		}
	}
	return n
}

func errorStrings(errs []*racesim.EntrantError) []string {
	if len(errs) == 0 {
		return nil
	}
	out := make([]string, len(errs))
	for i, e := range errs {
		out[i] = e.Error()
	}
	return out
}

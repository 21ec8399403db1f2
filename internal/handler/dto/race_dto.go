package dto

import (
	"math"
	"time"

	"github.com/yourusername/rally-api/internal/domain/entity"
	"github.com/yourusername/rally-api/internal/service"
	"github.com/yourusername/rally-api/internal/service/racesim"
)

// RaceResponse представляет заезд в формате для ответа клиенту
type RaceResponse struct {
	ID         uint      `json:"race_id"`
	RunID      string    `json:"run_id"`
	Name       string    `json:"race_name"`
	DistanceKm float64   `json:"distance_km"`
	FeePerTeam int64     `json:"fee_per_team"`
	CreatedAt  time.Time `json:"created_at"`
}

// RaceResultResponse представляет строку таблицы результатов
type RaceResultResponse struct {
	Position    *int     `json:"position"`
	CarID       uint     `json:"car_id"`
	CarName     string   `json:"car_name"`
	TeamID      uint     `json:"team_id"`
	TeamName    string   `json:"team_name"`
	Driver      string   `json:"driver"`
	Finished    bool     `json:"finished"`
	TimeSeconds *float64 `json:"time_seconds"` // округлено до сотых
	PrizeMoney  int64    `json:"prize_money"`
}

// RaceRunResponse: ответ на запуск заезда
type RaceRunResponse struct {
	Race          *RaceResponse         `json:"race"`
	Results       []*RaceResultResponse `json:"results"`
	BudgetChanges []BudgetChange        `json:"budget_changes"`
	Rejected      []string              `json:"rejected,omitempty"`
	Degenerate    []string              `json:"degenerate,omitempty"`
}

// BudgetChange: изменение бюджета команды по итогам заезда
type BudgetChange struct {
	TeamID uint  `json:"team_id"`
	Delta  int64 `json:"delta"`
}

// PaginatedRaceResponse представляет пагинированный список заездов
type PaginatedRaceResponse struct {
	Races   []*RaceResponse `json:"races"`
	Total   int64           `json:"total"`
	Page    int             `json:"page"`
	PerPage int             `json:"per_page"`
}

// NewRaceResponse создает DTO для заезда
func NewRaceResponse(race *entity.Race) *RaceResponse {
	return &RaceResponse{
		ID:         race.ID,
		RunID:      race.RunID,
		Name:       race.Name,
		DistanceKm: race.DistanceKm,
		FeePerTeam: race.FeePerTeam,
		CreatedAt:  race.CreatedAt,
	}
}

// NewRaceResultResponse создает DTO для строки результатов
func NewRaceResultResponse(r *entity.RaceResult) *RaceResultResponse {
	resp := &RaceResultResponse{
		Position:   r.Position,
		CarID:      r.CarID,
		CarName:    r.CarName,
		TeamID:     r.TeamID,
		TeamName:   r.TeamName,
		Driver:     r.MemberName,
		Finished:   r.Finished,
		PrizeMoney: r.PrizeMoney,
	}
	if r.Finished && r.TimeSeconds != nil {
		rounded := RoundSeconds(*r.TimeSeconds)
		resp.TimeSeconds = &rounded
	}
	return resp
}

// NewListRaceResultResponse создает список DTO результатов
func NewListRaceResultResponse(results []entity.RaceResult) []*RaceResultResponse {
	out := make([]*RaceResultResponse, len(results))
	for i := range results {
		out[i] = NewRaceResultResponse(&results[i])
	}
	return out
}

// NewRaceRunResponse создает DTO итогов запуска заезда
func NewRaceRunResponse(run *service.RaceRun) *RaceRunResponse {
	settlement := racesim.Settlement(run.BudgetChanges)
	changes := make([]BudgetChange, 0, len(settlement))
	for _, id := range settlement.TeamIDs() {
		changes = append(changes, BudgetChange{TeamID: id, Delta: settlement[id]})
	}
	return &RaceRunResponse{
		Race:          NewRaceResponse(run.Race),
		Results:       NewListRaceResultResponse(run.Results),
		BudgetChanges: changes,
		Rejected:      run.Rejected,
		Degenerate:    run.Degenerate,
	}
}

// NewPaginatedRaceResponse создает пагинированный список заездов
func NewPaginatedRaceResponse(races []entity.Race, total int64, page, perPage int) *PaginatedRaceResponse {
	list := make([]*RaceResponse, len(races))
	for i := range races {
		list[i] = NewRaceResponse(&races[i])
	}
	return &PaginatedRaceResponse{
		Races:   list,
		Total:   total,
		Page:    page,
		PerPage: perPage,
	}
}

// RoundSeconds округляет время до сотых секунды
func RoundSeconds(v float64) float64 {
	return math.Round(v*100) / 100
}

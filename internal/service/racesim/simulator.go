package racesim

import (
	"errors"
	"fmt"
	"log"
)

// Report: итог одного запуска симулятора
type Report struct {
	Results    []Result
	Settlement Settlement

	// Rejected: участники, отклоненные валидацией. В результатах и расчетах их нет.
	Rejected []*EntrantError
	// Degenerate: участники с вырожденным исходом, засчитанные как сошедшие
	Degenerate []*EntrantError
}

// Simulator проводит заезд над снимком участников.
// Не предназначен для конкурентного использования: источник случайности не разделяется.
type Simulator struct {
	config *Config
	source Source
}

// NewSimulator создает симулятор с заданной конфигурацией и источником случайности
func NewSimulator(config *Config, source Source) (*Simulator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if source == nil {
		return nil, errors.New("random source is required")
	}
	return &Simulator{config: config, source: source}, nil
}

// Run проводит заезд: валидация, розыгрыш исходов, расстановка мест, расчет бюджетов.
// Пустой список участников дает пустой отчет без ошибки.
func (s *Simulator) Run(entrants []Entrant) (*Report, error) {
	report := &Report{Settlement: Settlement{}}
	outcomes := make([]Outcome, 0, len(entrants))

	for _, e := range entrants {
		if err := ValidateEntrant(e); err != nil {
			log.Printf("[RaceSimulator] Участник отклонен: car #%d: %v", e.CarID, err)
			report.Rejected = append(report.Rejected, entrantError(e, err))
			continue
		}

		outcome, err := GenerateOutcome(e, s.source, s.config.DistanceKm)
		if err != nil {
			if s.config.DegeneratePolicy == DegenerateAbort {
				return nil, fmt.Errorf("race aborted: %w", entrantError(e, err))
			}
			log.Printf("[RaceSimulator] Вырожденный исход, засчитан сход: car #%d: %v", e.CarID, err)
			report.Degenerate = append(report.Degenerate, entrantError(e, err))
			outcome = Outcome{Entrant: e}
		}
		outcomes = append(outcomes, outcome)
	}

	report.Results = Rank(outcomes, s.config)
	report.Settlement = Settle(report.Results, s.config.EntryFee, s.config.FeeMode)
	return report, nil
}

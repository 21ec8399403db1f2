package racesim

import (
	"sort"
)

// Rank расставляет места и призы.
// Финишировавшие сортируются по времени по возрастанию; при равном времени
// выше стоит тот, кто раньше во входном списке. Результаты возвращаются
// в порядке входа, каждый участник ровно один раз.
func Rank(outcomes []Outcome, cfg *Config) []Result {
	results := make([]Result, len(outcomes))
	finishers := make([]int, 0, len(outcomes))

	for i, o := range outcomes {
		results[i] = Result{
			CarID:      o.Entrant.CarID,
			TeamID:     o.Entrant.TeamID,
			DriverID:   o.Entrant.DriverID,
			CarName:    o.Entrant.CarName,
			TeamName:   o.Entrant.TeamName,
			DriverName: o.Entrant.DriverName,
			Finished:   o.Finished,
		}
		if o.Finished {
			elapsed := o.ElapsedSeconds
			results[i].ElapsedSeconds = &elapsed
			finishers = append(finishers, i)
		}
	}

	sort.SliceStable(finishers, func(a, b int) bool {
		return outcomes[finishers[a]].ElapsedSeconds < outcomes[finishers[b]].ElapsedSeconds
	})

	for pos, idx := range finishers {
		rank := pos + 1
		results[idx].Rank = &rank
		results[idx].Prize = cfg.PrizeFor(rank)
	}

	return results
}

// SortForDisplay упорядочивает результаты для таблицы: сначала места по возрастанию,
// затем сошедшие в исходном порядке. Исходный слайс не изменяется.
func SortForDisplay(results []Result) []Result {
	sorted := make([]Result, len(results))
	copy(sorted, results)
	sort.SliceStable(sorted, func(i, j int) bool {
		ri, rj := sorted[i].Rank, sorted[j].Rank
		switch {
		case ri != nil && rj != nil:
			return *ri < *rj
		case ri != nil:
			return true
		default:
			return false
		}
	})
	return sorted
}

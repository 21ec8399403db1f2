package racesim

import (
	"sort"
)

// Settlement: изменение бюджета по командам после заезда (team_id -> дельта)
type Settlement map[uint]int64

// Settle рассчитывает дельты бюджетов: взнос со всех участвовавших команд
// и призы тем, кто занял призовые места.
func Settle(results []Result, entryFee int64, mode FeeMode) Settlement {
	s := make(Settlement)
	charged := make(map[uint]bool)

	for _, r := range results {
		if mode == FeePerEntrant || !charged[r.TeamID] {
			s[r.TeamID] -= entryFee
			charged[r.TeamID] = true
		}
	}

	for _, r := range results {
		if r.Prize > 0 {
			s[r.TeamID] += r.Prize
		}
	}

	return s
}

// TeamIDs возвращает ID команд в порядке возрастания, чтобы применять дельты детерминированно
func (s Settlement) TeamIDs() []uint {
	ids := make([]uint, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Total: чистая сумма всех дельт
func (s Settlement) Total() int64 {
	var total int64
	for _, d := range s {
		total += d
	}
	return total
}

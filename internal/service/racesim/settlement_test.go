package racesim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func placed(teamID uint, rank int, prize int64) Result {
	r := rank
	return Result{TeamID: teamID, Finished: true, Rank: &r, Prize: prize}
}

func dnf(teamID uint) Result {
	return Result{TeamID: teamID}
}

func TestSettle_WinnerAndLoser(t *testing.T) {
	// Команда X выигрывает 5000, команда Y не получает приз
	results := []Result{placed(1, 1, 5000), placed(2, 2, 0)}

	s := Settle(results, 1000, FeePerTeam)

	assert.Equal(t, int64(4000), s[1])
	assert.Equal(t, int64(-1000), s[2])
}

func TestSettle_NonFinisherStillPays(t *testing.T) {
	s := Settle([]Result{dnf(3)}, 1000, FeePerTeam)

	assert.Equal(t, int64(-1000), s[3])
}

func TestSettle_FeeModes(t *testing.T) {
	results := []Result{placed(1, 1, 5000), placed(1, 2, 3500), dnf(2)}

	perTeam := Settle(results, 1000, FeePerTeam)
	perEntrant := Settle(results, 1000, FeePerEntrant)

	assert.Equal(t, int64(7500), perTeam[1], "Взнос один раз на команду")
	assert.Equal(t, int64(6500), perEntrant[1], "Взнос за каждую машину")
	assert.Equal(t, int64(-1000), perTeam[2])
	assert.Equal(t, int64(-1000), perEntrant[2])
}

func TestSettle_Empty(t *testing.T) {
	s := Settle(nil, 1000, FeePerTeam)

	assert.Empty(t, s)
	assert.Empty(t, s.TeamIDs())
	assert.Zero(t, s.Total())
}

func TestSettlement_TeamIDsSorted(t *testing.T) {
	s := Settlement{9: -1000, 2: 4000, 5: -1000}

	assert.Equal(t, []uint{2, 5, 9}, s.TeamIDs())
	assert.Equal(t, int64(2000), s.Total())
}

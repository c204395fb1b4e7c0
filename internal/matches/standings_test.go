package matches

import (
	"testing"

	"pelada-manager/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeStandingsCountsOnlyFinished(t *testing.T) {
	teams := []domain.Team{
		{ID: 1, Name: "Time 1"},
		{ID: 2, Name: "Time 2"},
	}
	matchList := []domain.Match{
		{ID: 1, HomeTeamID: 1, AwayTeamID: 2, HomeScore: 3, AwayScore: 1, Status: domain.MatchStatusFinished},
		{ID: 2, HomeTeamID: 2, AwayTeamID: 1, HomeScore: 5, AwayScore: 0, Status: domain.MatchStatusRunning},
		{ID: 3, HomeTeamID: 1, AwayTeamID: 2, Status: domain.MatchStatusScheduled},
	}

	standings := ComputeStandings(matchList, teams)
	require.Len(t, standings, 2)

	assert.Equal(t, "Time 1", standings[0].TeamName)
	assert.Equal(t, 1, standings[0].Wins)
	assert.Equal(t, 3, standings[0].GoalsFor)
	assert.Equal(t, 1, standings[1].Losses)
	assert.Equal(t, 1, standings[1].GoalsFor, "running and scheduled matches contribute nothing")
}

func TestComputeStandingsSortOrder(t *testing.T) {
	teams := []domain.Team{
		{ID: 1, Name: "Time 1"},
		{ID: 2, Name: "Time 2"},
		{ID: 3, Name: "Time 3"},
	}
	// Time 2 and Time 3 both win once; Time 3's extra draw breaks the tie,
	// Time 1 sinks with no wins.
	matchList := []domain.Match{
		{ID: 1, HomeTeamID: 2, AwayTeamID: 1, HomeScore: 2, AwayScore: 0, Status: domain.MatchStatusFinished},
		{ID: 2, HomeTeamID: 3, AwayTeamID: 1, HomeScore: 1, AwayScore: 0, Status: domain.MatchStatusFinished},
		{ID: 3, HomeTeamID: 3, AwayTeamID: 1, HomeScore: 1, AwayScore: 1, Status: domain.MatchStatusFinished},
	}

	standings := ComputeStandings(matchList, teams)
	require.Len(t, standings, 3)
	assert.Equal(t, "Time 3", standings[0].TeamName)
	assert.Equal(t, "Time 2", standings[1].TeamName)
	assert.Equal(t, "Time 1", standings[2].TeamName)
}

func TestComputeStandingsGoalsForTieBreak(t *testing.T) {
	teams := []domain.Team{
		{ID: 1, Name: "Time 1"},
		{ID: 2, Name: "Time 2"},
		{ID: 3, Name: "Time 3"},
	}
	// Times 1 and 2 have identical records; Time 2 scored more
	matchList := []domain.Match{
		{ID: 1, HomeTeamID: 1, AwayTeamID: 3, HomeScore: 1, AwayScore: 0, Status: domain.MatchStatusFinished},
		{ID: 2, HomeTeamID: 2, AwayTeamID: 3, HomeScore: 4, AwayScore: 0, Status: domain.MatchStatusFinished},
	}

	standings := ComputeStandings(matchList, teams)
	assert.Equal(t, "Time 2", standings[0].TeamName)
	assert.Equal(t, "Time 1", standings[1].TeamName)
}

func TestComputeStandingsEveryTeamAppears(t *testing.T) {
	teams := []domain.Team{{ID: 1, Name: "Time 1"}, {ID: 2, Name: "Time 2"}}

	standings := ComputeStandings(nil, teams)
	require.Len(t, standings, 2)
	for _, s := range standings {
		assert.Zero(t, s.Wins)
		assert.Zero(t, s.Draws)
		assert.Zero(t, s.Losses)
		assert.Zero(t, s.GoalsFor)
	}
}

// Results must stay consistent: per team, wins+draws+losses equals the
// finished matches it took part in.
func TestComputeStandingsRecordSum(t *testing.T) {
	teams := []domain.Team{
		{ID: 1, Name: "Time 1"},
		{ID: 2, Name: "Time 2"},
		{ID: 3, Name: "Time 3"},
	}
	matchList := []domain.Match{
		{ID: 1, HomeTeamID: 1, AwayTeamID: 2, HomeScore: 2, AwayScore: 2, Status: domain.MatchStatusFinished},
		{ID: 2, HomeTeamID: 2, AwayTeamID: 3, HomeScore: 1, AwayScore: 0, Status: domain.MatchStatusFinished},
		{ID: 3, HomeTeamID: 3, AwayTeamID: 1, HomeScore: 0, AwayScore: 3, Status: domain.MatchStatusFinished},
		{ID: 4, HomeTeamID: 1, AwayTeamID: 2, HomeScore: 1, AwayScore: 0, Status: domain.MatchStatusRunning},
	}

	played := map[int64]int{}
	for _, m := range matchList {
		if m.Status == domain.MatchStatusFinished {
			played[m.HomeTeamID]++
			played[m.AwayTeamID]++
		}
	}

	for _, s := range ComputeStandings(matchList, teams) {
		assert.Equal(t, played[s.TeamID], s.Wins+s.Draws+s.Losses, "team %s", s.TeamName)
	}
}

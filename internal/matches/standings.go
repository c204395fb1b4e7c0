package matches

import (
	"sort"

	"pelada-manager/internal/domain"
)

// ComputeStandings derives win/draw/loss records and goals-for from a
// pelada's matches. Only finished matches count. Teams with no finished
// matches still appear with zero records. Sort order: wins desc, draws desc,
// goals-for desc; points never participate in the sort, they are derived at
// formatting time.
func ComputeStandings(matchList []domain.Match, teams []domain.Team) []domain.TeamStanding {
	byID := make(map[int64]*domain.TeamStanding, len(teams))
	ordered := make([]*domain.TeamStanding, 0, len(teams))
	for _, t := range teams {
		s := &domain.TeamStanding{TeamID: t.ID, TeamName: t.Name}
		byID[t.ID] = s
		ordered = append(ordered, s)
	}

	for _, m := range matchList {
		if m.Status != domain.MatchStatusFinished {
			continue
		}
		home, homeOK := byID[m.HomeTeamID]
		away, awayOK := byID[m.AwayTeamID]
		if !homeOK || !awayOK {
			continue
		}

		home.GoalsFor += m.HomeScore
		away.GoalsFor += m.AwayScore

		switch {
		case m.HomeScore > m.AwayScore:
			home.Wins++
			away.Losses++
		case m.HomeScore < m.AwayScore:
			away.Wins++
			home.Losses++
		default:
			home.Draws++
			away.Draws++
		}
	}

	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		if a.Wins != b.Wins {
			return a.Wins > b.Wins
		}
		if a.Draws != b.Draws {
			return a.Draws > b.Draws
		}
		return a.GoalsFor > b.GoalsFor
	})

	standings := make([]domain.TeamStanding, len(ordered))
	for i, s := range ordered {
		standings[i] = *s
	}
	return standings
}

package matches

import (
	"sort"

	"pelada-manager/internal/domain"
)

// SortKey selects the player-statistics column being sorted
type SortKey string

const (
	// SortDefault orders by the composite score goals+assists-ownGoals
	SortDefault SortKey = ""
	SortGoals   SortKey = "goals"
	SortAssists SortKey = "assists"
)

// SortState is the current table ordering. The zero value is the default
// composite ordering, descending.
type SortState struct {
	Key       SortKey
	Ascending bool
}

// Toggle returns the state after the user selects key: picking a new column
// sorts it descending, picking the active column flips the direction.
func (s SortState) Toggle(key SortKey) SortState {
	if s.Key == key {
		return SortState{Key: key, Ascending: !s.Ascending}
	}
	return SortState{Key: key, Ascending: false}
}

// ComputePlayerStats derives per-player statistics for a pelada. The
// server-supplied rows are the preferred source; when they are empty and
// match events exist, statistics are rebuilt by counting the event log.
// Matches played counts only finished matches whose per-match lineup (not
// the pelada-level roster) includes the player.
func ComputePlayerStats(
	serverStats []domain.PlayerStats,
	events []domain.MatchEvent,
	matchList []domain.Match,
	lineups map[int64][]domain.MatchLineupEntry,
	players []domain.Player,
) []domain.PlayerStats {
	if len(serverStats) > 0 {
		return append([]domain.PlayerStats(nil), serverStats...)
	}

	byID := make(map[int64]*domain.PlayerStats, len(players))
	ordered := make([]*domain.PlayerStats, 0, len(players))
	statFor := func(playerID int64, name string) *domain.PlayerStats {
		if s, ok := byID[playerID]; ok {
			return s
		}
		s := &domain.PlayerStats{PlayerID: playerID, Name: name}
		byID[playerID] = s
		ordered = append(ordered, s)
		return s
	}
	for _, p := range players {
		statFor(p.ID, p.Name)
	}

	if len(events) > 0 {
		for _, ev := range events {
			s := statFor(ev.PlayerID, "")
			switch ev.EventType {
			case domain.EventGoal:
				s.Goals++
			case domain.EventAssist:
				s.Assists++
			case domain.EventOwnGoal:
				s.OwnGoals++
			}
		}
	}

	finished := make(map[int64]bool, len(matchList))
	for _, m := range matchList {
		if m.Status == domain.MatchStatusFinished {
			finished[m.ID] = true
		}
	}
	for matchID, entries := range lineups {
		if !finished[matchID] {
			continue
		}
		for _, entry := range entries {
			statFor(entry.PlayerID, "").MatchesPlayed++
		}
	}

	stats := make([]domain.PlayerStats, len(ordered))
	for i, s := range ordered {
		stats[i] = *s
	}
	return stats
}

// SortPlayerStats orders stats in place according to state. Goals ties break
// on higher assists, assists ties on higher goals; the default composite
// ordering has no secondary key beyond stable order.
func SortPlayerStats(stats []domain.PlayerStats, state SortState) {
	less := func(a, b domain.PlayerStats) bool {
		switch state.Key {
		case SortGoals:
			if a.Goals != b.Goals {
				return a.Goals > b.Goals
			}
			return a.Assists > b.Assists
		case SortAssists:
			if a.Assists != b.Assists {
				return a.Assists > b.Assists
			}
			return a.Goals > b.Goals
		default:
			return composite(a) > composite(b)
		}
	}

	sort.SliceStable(stats, func(i, j int) bool {
		if state.Ascending {
			return less(stats[j], stats[i])
		}
		return less(stats[i], stats[j])
	})
}

func composite(s domain.PlayerStats) int {
	return s.Goals + s.Assists - s.OwnGoals
}

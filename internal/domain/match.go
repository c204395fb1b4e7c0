package domain

import "time"

// MatchStatus is the finite status progression of a match
type MatchStatus string

const (
	MatchStatusScheduled MatchStatus = "scheduled"
	MatchStatusRunning   MatchStatus = "running"
	MatchStatusFinished  MatchStatus = "finished"
)

// Match belongs to exactly one pelada, ordered by sequence
type Match struct {
	ID         int64       `json:"id"`
	PeladaID   int64       `json:"pelada_id"`
	Sequence   int         `json:"sequence"`
	HomeTeamID int64       `json:"home_team_id"`
	AwayTeamID int64       `json:"away_team_id"`
	HomeScore  int         `json:"home_score"`
	AwayScore  int         `json:"away_score"`
	Status     MatchStatus `json:"status"`
}

// MatchEventType categorizes an entry in a match's event log
type MatchEventType string

const (
	EventGoal    MatchEventType = "goal"
	EventAssist  MatchEventType = "assist"
	EventOwnGoal MatchEventType = "own_goal"
)

// MatchEvent is one row of a match's append-only event log. Goals and own
// goals are mirrored by score deltas applied through a separate call.
type MatchEvent struct {
	ID        int64          `json:"id"`
	MatchID   int64          `json:"match_id"`
	PlayerID  int64          `json:"player_id"`
	EventType MatchEventType `json:"event_type"`
	CreatedAt time.Time      `json:"created_at"`
}

// MatchLineupEntry assigns a player to a team for one specific match,
// allowing substitutions distinct from the pelada-level team roster.
type MatchLineupEntry struct {
	MatchID  int64 `json:"match_id"`
	TeamID   int64 `json:"team_id"`
	PlayerID int64 `json:"player_id"`
}

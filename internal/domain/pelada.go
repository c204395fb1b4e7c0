package domain

import "time"

// PeladaStatus is the finite status progression of a session. Transitions are
// backend-owned; the client only mirrors them.
type PeladaStatus string

const (
	PeladaStatusOpen          PeladaStatus = "open"
	PeladaStatusAttendance    PeladaStatus = "attendance"
	PeladaStatusTeamSelection PeladaStatus = "team_selection"
	PeladaStatusRunning       PeladaStatus = "running"
	PeladaStatusVoting        PeladaStatus = "voting"
	PeladaStatusClosed        PeladaStatus = "closed"
)

// Pelada is a single informal match-day session belonging to an organization
type Pelada struct {
	ID             int64        `json:"id"`
	OrganizationID int64        `json:"organization_id"`
	ScheduledAt    *time.Time   `json:"scheduled_at,omitempty"`
	NumTeams       int          `json:"num_teams"`
	PlayersPerTeam int          `json:"players_per_team"`
	Status         PeladaStatus `json:"status"`
}

// VotingInfo describes what the current player may do in the voting phase
type VotingInfo struct {
	CanVote         bool     `json:"can_vote"`
	HasVoted        bool     `json:"has_voted"`
	EligiblePlayers []Player `json:"eligible_players"`
	Message         string   `json:"message,omitempty"`
}

// PlayerVote rates one eligible player
type PlayerVote struct {
	PlayerID int64   `json:"player_id"`
	Score    float64 `json:"score"`
}

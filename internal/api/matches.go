package api

import (
	"context"

	"pelada-manager/internal/domain"
)

// CreateMatchRequest schedules a match between two of a pelada's teams
type CreateMatchRequest struct {
	PeladaID   int64 `json:"pelada_id"`
	HomeTeamID int64 `json:"home_team_id"`
	AwayTeamID int64 `json:"away_team_id"`
}

// CreateMatch schedules a new match
func (c *Client) CreateMatch(ctx context.Context, req *CreateMatchRequest) (*domain.Match, error) {
	var match domain.Match
	if err := c.Post(ctx, "/api/matches", req, &match); err != nil {
		return nil, err
	}
	return &match, nil
}

// UpdateMatchScoreRequest persists a full (home, away, status) triple in one
// call. Scores are absolute values, not deltas.
type UpdateMatchScoreRequest struct {
	HomeScore int                `json:"home_score"`
	AwayScore int                `json:"away_score"`
	Status    domain.MatchStatus `json:"status"`
}

// UpdateMatchScore persists a match's score and derived status
func (c *Client) UpdateMatchScore(ctx context.Context, matchID int64, home, away int, status domain.MatchStatus) error {
	req := &UpdateMatchScoreRequest{HomeScore: home, AwayScore: away, Status: status}
	return c.Put(ctx, pathf("/api/matches/%d/score", matchID), req, nil)
}

// CreateMatchEvent appends one row to a match's event log
func (c *Client) CreateMatchEvent(ctx context.Context, matchID, playerID int64, eventType domain.MatchEventType) (*domain.MatchEvent, error) {
	req := map[string]interface{}{
		"player_id":  playerID,
		"event_type": eventType,
	}
	var event domain.MatchEvent
	if err := c.Post(ctx, pathf("/api/matches/%d/events", matchID), req, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

// DeleteMatchEvent removes one row from a match's event log
func (c *Client) DeleteMatchEvent(ctx context.Context, matchID, eventID int64) error {
	return c.Delete(ctx, pathf("/api/matches/%d/events/%d", matchID, eventID))
}

// ReplaceLineupRequest swaps one player for another in a match's lineup
type ReplaceLineupRequest struct {
	TeamID      int64 `json:"team_id"`
	OutPlayerID int64 `json:"out_player_id"`
	InPlayerID  int64 `json:"in_player_id"`
}

// ReplaceLineupPlayer substitutes a player within one match's lineup without
// touching the pelada-level team roster
func (c *Client) ReplaceLineupPlayer(ctx context.Context, matchID, teamID, outPlayerID, inPlayerID int64) error {
	req := &ReplaceLineupRequest{TeamID: teamID, OutPlayerID: outPlayerID, InPlayerID: inPlayerID}
	return c.Post(ctx, pathf("/api/matches/%d/lineups/replace", matchID), req, nil)
}

// FinishMatch irreversibly marks a match as finished
func (c *Client) FinishMatch(ctx context.Context, matchID int64) error {
	return c.Post(ctx, pathf("/api/matches/%d/finish", matchID), nil, nil)
}

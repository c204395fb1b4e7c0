package api

import (
	"context"
	"time"

	"pelada-manager/internal/domain"
)

// CreatePeladaRequest configures a new session. SkipAttendance lets admins
// jump straight to team selection for pickup games organized on the spot.
type CreatePeladaRequest struct {
	OrganizationID int64      `json:"organization_id"`
	ScheduledAt    *time.Time `json:"scheduled_at,omitempty"`
	NumTeams       int        `json:"num_teams"`
	PlayersPerTeam int        `json:"players_per_team"`
	SkipAttendance bool       `json:"skip_attendance,omitempty"`
}

// CreatePelada creates a new session
func (c *Client) CreatePelada(ctx context.Context, req *CreatePeladaRequest) (*domain.Pelada, error) {
	var pelada domain.Pelada
	if err := c.Post(ctx, "/api/peladas", req, &pelada); err != nil {
		return nil, err
	}
	return &pelada, nil
}

// GetPelada fetches one session by ID
func (c *Client) GetPelada(ctx context.Context, id int64) (*domain.Pelada, error) {
	var pelada domain.Pelada
	if err := c.Get(ctx, pathf("/api/peladas/%d", id), &pelada); err != nil {
		return nil, err
	}
	return &pelada, nil
}

// DeletePelada deletes a session
func (c *Client) DeletePelada(ctx context.Context, id int64) error {
	return c.Delete(ctx, pathf("/api/peladas/%d", id))
}

// BeginPelada advances the session out of its setup phases into running
func (c *Client) BeginPelada(ctx context.Context, id int64) error {
	return c.Post(ctx, pathf("/api/peladas/%d/begin", id), nil, nil)
}

// ClosePelada irreversibly closes a session
func (c *Client) ClosePelada(ctx context.Context, id int64) error {
	return c.Post(ctx, pathf("/api/peladas/%d/close", id), nil, nil)
}

// StartVoting opens the post-session voting phase
func (c *Client) StartVoting(ctx context.Context, id int64) error {
	return c.Post(ctx, pathf("/api/peladas/%d/start_voting", id), nil, nil)
}

// GetDashboardData fetches the combined match/standings payload for a session
func (c *Client) GetDashboardData(ctx context.Context, id int64) (*domain.DashboardData, error) {
	var data domain.DashboardData
	if err := c.Get(ctx, pathf("/api/peladas/%d/dashboard-data", id), &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// GetPeladaDetails fetches the combined roster payload for a session
func (c *Client) GetPeladaDetails(ctx context.Context, id int64) (*domain.PeladaDetails, error) {
	var details domain.PeladaDetails
	if err := c.Get(ctx, pathf("/api/peladas/%d/full-details", id), &details); err != nil {
		return nil, err
	}
	return &details, nil
}

package api

import (
	"context"

	"pelada-manager/internal/domain"
)

// CreatePlayerRequest adds a user to an organization's roster
type CreatePlayerRequest struct {
	OrganizationID int64    `json:"organization_id"`
	UserID         int64    `json:"user_id"`
	Grade          *float64 `json:"grade,omitempty"`
	PositionID     *int64   `json:"position_id,omitempty"`
}

// CreatePlayer adds a roster membership record
func (c *Client) CreatePlayer(ctx context.Context, req *CreatePlayerRequest) (*domain.Player, error) {
	var player domain.Player
	if err := c.Post(ctx, "/api/players", req, &player); err != nil {
		return nil, err
	}
	return &player, nil
}

// DeletePlayer removes a roster membership record
func (c *Client) DeletePlayer(ctx context.Context, playerID int64) error {
	return c.Delete(ctx, pathf("/api/players/%d", playerID))
}

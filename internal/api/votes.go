package api

import (
	"context"

	"pelada-manager/internal/domain"
)

// GetVotingInfo returns what the current player may do in a pelada's voting
// phase: eligibility, whether they already voted and who they may rate
func (c *Client) GetVotingInfo(ctx context.Context, peladaID int64) (*domain.VotingInfo, error) {
	var info domain.VotingInfo
	if err := c.Get(ctx, pathf("/api/peladas/%d/voting", peladaID), &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// CastVotes submits the current player's ratings for a pelada
func (c *Client) CastVotes(ctx context.Context, peladaID int64, votes []domain.PlayerVote) error {
	req := map[string][]domain.PlayerVote{"votes": votes}
	return c.Post(ctx, pathf("/api/peladas/%d/votes", peladaID), req, nil)
}

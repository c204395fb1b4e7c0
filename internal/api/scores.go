package api

import "context"

// GetNormalizedScores fetches backend-computed skill scores for exactly the
// given player IDs in one batch call
func (c *Client) GetNormalizedScores(ctx context.Context, playerIDs []int64) (map[int64]float64, error) {
	req := map[string][]int64{"player_ids": playerIDs}
	var scores map[int64]float64
	if err := c.Post(ctx, "/api/scores/normalized", req, &scores); err != nil {
		return nil, err
	}
	return scores, nil
}

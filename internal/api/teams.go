package api

import (
	"context"

	"pelada-manager/internal/domain"
)

// CreateTeam creates a team scoped to a pelada
func (c *Client) CreateTeam(ctx context.Context, peladaID int64, name string) (*domain.Team, error) {
	req := map[string]string{"name": name}
	var team domain.Team
	if err := c.Post(ctx, pathf("/api/peladas/%d/teams", peladaID), req, &team); err != nil {
		return nil, err
	}
	return &team, nil
}

// DeleteTeam deletes a team and its assignments
func (c *Client) DeleteTeam(ctx context.Context, teamID int64) error {
	return c.Delete(ctx, pathf("/api/teams/%d", teamID))
}

// AddTeamPlayer assigns a player to a team's pelada-level roster
func (c *Client) AddTeamPlayer(ctx context.Context, teamID, playerID int64) error {
	req := map[string]int64{"player_id": playerID}
	return c.Post(ctx, pathf("/api/teams/%d/players", teamID), req, nil)
}

// RemoveTeamPlayer removes a player from a team's pelada-level roster,
// returning them to the bench
func (c *Client) RemoveTeamPlayer(ctx context.Context, teamID, playerID int64) error {
	return c.Delete(ctx, pathf("/api/teams/%d/players/%d", teamID, playerID))
}

// RandomizeTeamsRequest is the input the backend balancing algorithm works
// from: the full ordered player pool and the team size.
type RandomizeTeamsRequest struct {
	PlayerIDs      []int64 `json:"player_ids"`
	PlayersPerTeam int     `json:"players_per_team"`
}

// RandomizeTeams asks the backend to redistribute the given players across
// the pelada's teams. The client only assembles the input; the balancing
// algorithm itself lives behind this call.
func (c *Client) RandomizeTeams(ctx context.Context, peladaID int64, playerIDs []int64, playersPerTeam int) error {
	req := &RandomizeTeamsRequest{PlayerIDs: playerIDs, PlayersPerTeam: playersPerTeam}
	return c.Post(ctx, pathf("/api/peladas/%d/teams/randomize", peladaID), req, nil)
}

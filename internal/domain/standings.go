package domain

// TeamStanding aggregates one team's results across a pelada's finished
// matches. Points are not stored; they are derived at formatting time.
type TeamStanding struct {
	TeamID   int64  `json:"team_id"`
	TeamName string `json:"team_name"`
	Wins     int    `json:"wins"`
	Draws    int    `json:"draws"`
	Losses   int    `json:"losses"`
	GoalsFor int    `json:"goals_for"`
}

// Points returns the classic 3-1-0 score for the standing
func (s TeamStanding) Points() int {
	return s.Wins*3 + s.Draws
}

// PlayerStats aggregates one player's contribution within a pelada
type PlayerStats struct {
	PlayerID      int64  `json:"player_id"`
	Name          string `json:"name"`
	Goals         int    `json:"goals"`
	Assists       int    `json:"assists"`
	OwnGoals      int    `json:"own_goals"`
	MatchesPlayed int    `json:"matches_played"`
}

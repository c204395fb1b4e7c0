package domain

// DashboardData is the combined per-pelada read backing the match/session
// engine: one payload instead of a request per collection.
type DashboardData struct {
	Pelada       Pelada                       `json:"pelada"`
	Matches      []Match                      `json:"matches"`
	Teams        []Team                       `json:"teams"`
	Users        []User                       `json:"users"`
	Players      []Player                     `json:"players"`
	MatchEvents  []MatchEvent                 `json:"match_events"`
	PlayerStats  []PlayerStats                `json:"player_stats"`
	TeamPlayers  map[int64][]int64            `json:"team_players"`  // team ID -> pelada-level roster
	MatchLineups map[int64][]MatchLineupEntry `json:"match_lineups"` // match ID -> per-match lineup
}

// PeladaDetails is the combined read backing the roster screen: the pelada,
// teams with their rosters, the bench and normalized scores in one payload.
type PeladaDetails struct {
	Pelada           Pelada            `json:"pelada"`
	Teams            []TeamWithPlayers `json:"teams"`
	AvailablePlayers []Player          `json:"available_players"`
	VotingInfo       *VotingInfo       `json:"voting_info,omitempty"`
	Scores           map[int64]float64 `json:"scores,omitempty"` // normalized score per player
}

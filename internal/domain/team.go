package domain

// Team is scoped to exactly one pelada
type Team struct {
	ID       int64  `json:"id"`
	PeladaID int64  `json:"pelada_id"`
	Name     string `json:"name"`
}

// TeamWithPlayers is a team together with its current pelada-level roster
type TeamWithPlayers struct {
	Team
	Players []Player `json:"players"`
}

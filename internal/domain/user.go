package domain

// User represents an authenticated account. Roster membership is modelled
// separately as Player, one record per organization.
type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Player is a user's roster membership record within one organization
type Player struct {
	ID             int64    `json:"id"`
	UserID         int64    `json:"user_id"`
	OrganizationID int64    `json:"organization_id"`
	Name           string   `json:"name"`
	Grade          *float64 `json:"grade,omitempty"`
	PositionID     *int64   `json:"position_id,omitempty"`
}

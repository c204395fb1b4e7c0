package domain

import "time"

// Organization is the top-level tenant grouping players, peladas and admins
type Organization struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// InvitationStatus represents the lifecycle of an organization invitation
type InvitationStatus string

const (
	InvitationStatusPending  InvitationStatus = "pending"
	InvitationStatusAccepted InvitationStatus = "accepted"
	InvitationStatusRevoked  InvitationStatus = "revoked"
)

// OrganizationInvitation invites a user into an organization. Either targeted
// (email set) or a public join link (token only).
type OrganizationInvitation struct {
	ID             int64            `json:"id"`
	OrganizationID int64            `json:"organization_id"`
	Email          string           `json:"email,omitempty"`
	Token          string           `json:"token"`
	Status         InvitationStatus `json:"status"`
	CreatedAt      time.Time        `json:"created_at"`
}

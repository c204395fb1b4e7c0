package api

import (
	"context"

	"pelada-manager/internal/domain"
)

// CreateInvitation creates an invitation into an organization. An empty email
// produces a public join link identified only by its token.
func (c *Client) CreateInvitation(ctx context.Context, orgID int64, email string) (*domain.OrganizationInvitation, error) {
	req := map[string]string{}
	if email != "" {
		req["email"] = email
	}

	var inv domain.OrganizationInvitation
	if err := c.Post(ctx, pathf("/api/organizations/%d/invitations", orgID), req, &inv); err != nil {
		return nil, err
	}
	return &inv, nil
}

// RevokeInvitation marks a pending invitation as revoked
func (c *Client) RevokeInvitation(ctx context.Context, orgID, invitationID int64) error {
	return c.Delete(ctx, pathf("/api/organizations/%d/invitations/%d", orgID, invitationID))
}

// AcceptInvitation redeems an invitation token for the current user
func (c *Client) AcceptInvitation(ctx context.Context, token string) error {
	req := map[string]string{"token": token}
	return c.Post(ctx, "/api/invitations/accept", req, nil)
}

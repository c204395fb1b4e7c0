package api

import (
	"context"
	"net/url"
	"strconv"

	"pelada-manager/internal/domain"
	"pelada-manager/pkg/errors"
)

// ListOrganizations returns the organizations visible to the current user
func (c *Client) ListOrganizations(ctx context.Context) ([]domain.Organization, error) {
	var orgs []domain.Organization
	if err := c.Get(ctx, "/api/organizations", &orgs); err != nil {
		return nil, err
	}
	return orgs, nil
}

// GetOrganization fetches one organization by ID
func (c *Client) GetOrganization(ctx context.Context, id int64) (*domain.Organization, error) {
	var org domain.Organization
	if err := c.Get(ctx, pathf("/api/organizations/%d", id), &org); err != nil {
		return nil, err
	}
	return &org, nil
}

// CreateOrganization creates a new organization owned by the current user
func (c *Client) CreateOrganization(ctx context.Context, name string) (*domain.Organization, error) {
	req := map[string]string{"name": name}
	var org domain.Organization
	if err := c.Post(ctx, "/api/organizations", req, &org); err != nil {
		return nil, err
	}
	return &org, nil
}

// DeleteOrganization deletes an organization. Destructive; callers are
// expected to have collected explicit confirmation first.
func (c *Client) DeleteOrganization(ctx context.Context, id int64) error {
	return c.Delete(ctx, pathf("/api/organizations/%d", id))
}

// ListPlayers returns one page of an organization's roster
func (c *Client) ListPlayers(ctx context.Context, orgID int64, page, perPage int) ([]domain.Player, *PageInfo, error) {
	params := url.Values{}
	if page > 0 {
		params.Set("page", strconv.Itoa(page))
	}
	if perPage > 0 {
		params.Set("per_page", strconv.Itoa(perPage))
	}

	var players []domain.Player
	info, err := c.GetPaginated(ctx, pathf("/api/organizations/%d/players", orgID), params, &players)
	if err != nil {
		return nil, nil, err
	}
	return players, info, nil
}

// ListAdmins returns the users with management rights over an organization
func (c *Client) ListAdmins(ctx context.Context, orgID int64) ([]domain.User, error) {
	var admins []domain.User
	if err := c.Get(ctx, pathf("/api/organizations/%d/admins", orgID), &admins); err != nil {
		return nil, err
	}
	return admins, nil
}

// AddAdmin grants a user management rights over an organization
func (c *Client) AddAdmin(ctx context.Context, orgID, userID int64) error {
	req := map[string]int64{"user_id": userID}
	return c.Post(ctx, pathf("/api/organizations/%d/admins", orgID), req, nil)
}

// RemoveAdmin revokes a user's management rights. Removing the last remaining
// admin is rejected before any delete call is issued, so an organization can
// never be left without one.
func (c *Client) RemoveAdmin(ctx context.Context, orgID, userID int64) error {
	admins, err := c.ListAdmins(ctx, orgID)
	if err != nil {
		return err
	}
	if len(admins) <= 1 {
		return errors.NewValidationError("cannot remove the last admin of an organization", nil)
	}
	return c.Delete(ctx, pathf("/api/organizations/%d/admins/%d", orgID, userID))
}

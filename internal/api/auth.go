package api

import (
	"context"

	"pelada-manager/internal/domain"
)

// SignInRequest is the credentials payload for session creation
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignInResponse carries the issued token and the signed-in user
type SignInResponse struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

// SignIn exchanges credentials for a session token
func (c *Client) SignIn(ctx context.Context, email, password string) (*SignInResponse, error) {
	var resp SignInResponse
	if err := c.Post(ctx, "/api/auth/sign_in", &SignInRequest{Email: email, Password: password}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SignOut invalidates the current session on the backend
func (c *Client) SignOut(ctx context.Context) error {
	return c.Delete(ctx, "/api/auth/sign_out")
}

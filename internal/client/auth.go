package client

import (
	"context"
	"net/http"

	"mrcog-admin/internal/dto"
)

// Login exchanges credentials for a bearer token. The call itself carries no
// Authorization header requirement; any stored token is simply ignored by
// the endpoint.
func (c *Client) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	var resp dto.LoginResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Logout notifies the backend that the session ended. Best-effort; the
// client-side purge does not depend on it succeeding.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/auth/logout", nil, nil, nil)
}

// Profile fetches the server-side view of the logged-in admin.
func (c *Client) Profile(ctx context.Context) (*dto.ProfileResponse, error) {
	var resp dto.ProfileResponse
	if err := c.do(ctx, http.MethodGet, "/auth/profile", nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

package inventory

import (
	"context"
	"net/http"
)

// AuthAPI covers /auth endpoints.
type AuthAPI struct {
	c *Client
}

// Login exchanges credentials for a bearer token.
func (a *AuthAPI) Login(ctx context.Context, creds LoginCredentials) (*AuthResponse, error) {
	var resp AuthResponse
	if err := a.c.doRequest(ctx, http.MethodPost, "/auth/login", nil, creds, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Register creates an account and returns its bearer token.
func (a *AuthAPI) Register(ctx context.Context, data RegisterData) (*AuthResponse, error) {
	var resp AuthResponse
	if err := a.c.doRequest(ctx, http.MethodPost, "/auth/register", nil, data, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Validate checks the token carried by ctx. A nil error means the token is
// still accepted; callers inspect the Kind to tell rejection from an
// unreachable API.
func (a *AuthAPI) Validate(ctx context.Context) error {
	return a.c.doRequest(ctx, http.MethodGet, "/auth/validate", nil, nil, nil)
}

package client

import (
	"context"
	"net/http"

	"github.com/2beens/fitrack/internal/users"
)

// Register creates a new account and stores the returned token.
func (c *Client) Register(ctx context.Context, params users.RegisterRequest) (*users.User, error) {
	var resp users.LoginResponse
	_, err := c.do(ctx, http.MethodPost, "/api/auth/register", params, &resp)
	if err != nil {
		return nil, err
	}

	if err := c.tokenStore.Save(resp.Token); err != nil {
		return nil, err
	}
	return resp.User, nil
}

// Login authenticates and stores the returned token for all following
// calls.
func (c *Client) Login(ctx context.Context, email, password string) (*users.User, error) {
	var resp users.LoginResponse
	_, err := c.do(ctx, http.MethodPost, "/api/auth/login", users.LoginRequest{
		Email:    email,
		Password: password,
	}, &resp)
	if err != nil {
		return nil, err
	}

	if err := c.tokenStore.Save(resp.Token); err != nil {
		return nil, err
	}
	return resp.User, nil
}

// Logout revokes the token backend-side and drops it locally either way.
func (c *Client) Logout(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil)
	if clearErr := c.tokenStore.Clear(); clearErr != nil && err == nil {
		return clearErr
	}
	return err
}

func (c *Client) Me(ctx context.Context) (*users.User, error) {
	var user users.User
	if _, err := c.do(ctx, http.MethodGet, "/api/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfile patches the given profile fields, empty fields stay
// unchanged.
func (c *Client) UpdateProfile(ctx context.Context, params users.UpdateProfileRequest) (*users.User, error) {
	var user users.User
	if _, err := c.do(ctx, http.MethodPatch, "/api/me", params, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) SubmitOnboarding(ctx context.Context, params users.OnboardingRequest) (*users.User, error) {
	var user users.User
	if _, err := c.do(ctx, http.MethodPost, "/api/onboarding", params, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

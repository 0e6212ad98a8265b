package api

import (
	"context"

	"github.com/betbot/sportsbook/internal/domain"
)

// LoginRequest are the credentials for /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest creates a new account.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse carries the bearer token for subsequent calls.
type AuthResponse struct {
	Token string `json:"token"`
}

// Login exchanges credentials for a bearer token. Storing the token is the
// session layer's job, not the client's.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	out := &AuthResponse{}
	resp, err := c.newRequest(ctx).
		SetBody(req).
		SetResult(out).
		SetError(&errorBody{}).
		Post("/auth/login")
	if err := c.checkResponse(resp, err, "login"); err != nil {
		return nil, err
	}
	return out, nil
}

// Register creates an account and returns its first bearer token.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	out := &AuthResponse{}
	resp, err := c.newRequest(ctx).
		SetBody(req).
		SetResult(out).
		SetError(&errorBody{}).
		Post("/auth/register")
	if err := c.checkResponse(resp, err, "register"); err != nil {
		return nil, err
	}
	return out, nil
}

// Logout invalidates the current token server-side.
func (c *Client) Logout(ctx context.Context) error {
	resp, err := c.newRequest(ctx).
		SetError(&errorBody{}).
		Post("/auth/logout")
	return c.checkResponse(resp, err, "logout")
}

// Profile fetches the authenticated account.
func (c *Client) Profile(ctx context.Context) (*domain.User, error) {
	out := &domain.User{}
	resp, err := c.newRequest(ctx).
		SetResult(out).
		SetError(&errorBody{}).
		Get("/auth/profile")
	if err := c.checkResponse(resp, err, "profile"); err != nil {
		return nil, err
	}
	return out, nil
}

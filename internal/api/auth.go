package api

import (
	"context"
	"net/http"
	"time"
)

// Account statuses as reported by the backend.
const (
	AccountStatusActive    = "active"
	AccountStatusSuspended = "suspended"
	AccountStatusInactive  = "inactive"
)

// Account is the backend's authoritative view of a user. Distinct from
// the session's narrowed projection; see internal/identity for the
// mapping.
type Account struct {
	ID           int64         `json:"id"`
	Email        string        `json:"email"`
	Name         string        `json:"name"`
	AccountType  string        `json:"account_type"`
	Status       string        `json:"status"`
	ProfileImage string        `json:"profile_image,omitempty"`
	Roles        []AccountRole `json:"roles,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
}

// AccountRole is the nested role/permission summary on an account.
type AccountRole struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Permissions []string `json:"permissions,omitempty"`
}

// LoginRequest carries credentials for the login endpoint.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginResponse is the issued session: the account plus a bearer token.
type LoginResponse struct {
	User  Account `json:"user"`
	Token string  `json:"token"`
}

// Login authenticates with email and password.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	req := LoginRequest{Email: email, Password: password}
	if err := c.validateRequest(req); err != nil {
		return nil, err
	}

	var resp LoginResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/auth/login", req, &resp); err != nil {
		return nil, err
	}

	// A fresh credential starts a fresh failure episode.
	c.ResetAuthFailure()
	return &resp, nil
}

// Logout invalidates the token server-side. Best effort: callers clear
// the local session regardless of the outcome.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/v1/auth/logout", nil, nil)
}

// CurrentUser retrieves the authoritative record for the session owner.
func (c *Client) CurrentUser(ctx context.Context) (*Account, error) {
	var account Account
	if err := c.do(ctx, http.MethodGet, "/api/v1/auth/me", nil, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

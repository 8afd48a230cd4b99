package api

import (
	"context"
	"fmt"
	"net/http"
)

// Role is an assignable back-office role with its permission set.
type Role struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Permissions []string `json:"permissions,omitempty"`
}

// ListRolesResponse is the full role catalogue; roles are few enough
// that the endpoint is not paginated.
type ListRolesResponse struct {
	Roles []Role `json:"roles"`
}

// ListRoles retrieves all roles with their permissions.
func (c *Client) ListRoles(ctx context.Context) (*ListRolesResponse, error) {
	var resp ListRolesResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/roles", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetRole retrieves a role by ID.
func (c *Client) GetRole(ctx context.Context, id int64) (*Role, error) {
	var role Role
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/v1/roles/%d", id), nil, &role); err != nil {
		return nil, err
	}
	return &role, nil
}

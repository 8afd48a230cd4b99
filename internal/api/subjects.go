package api

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// Subject is a taught discipline (mathematics, history, ...).
type Subject struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Code        string    `json:"code"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// SubjectRequest is the create/update payload for a subject.
type SubjectRequest struct {
	Name        string `json:"name" validate:"required,min=2"`
	Code        string `json:"code" validate:"required,alphanum,min=2,max=16"`
	Description string `json:"description,omitempty"`
}

// ListSubjectsResponse is a paginated page of subjects.
type ListSubjectsResponse struct {
	Subjects   []Subject `json:"subjects"`
	TotalCount int       `json:"total_count"`
	Page       int       `json:"page"`
	PageSize   int       `json:"page_size"`
}

// ListSubjects retrieves a page of subjects.
func (c *Client) ListSubjects(ctx context.Context, opts ListOptions) (*ListSubjectsResponse, error) {
	var resp ListSubjectsResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/subjects"+opts.query(), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetSubject retrieves a subject by ID.
func (c *Client) GetSubject(ctx context.Context, id int64) (*Subject, error) {
	var subject Subject
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/v1/subjects/%d", id), nil, &subject); err != nil {
		return nil, err
	}
	return &subject, nil
}

// CreateSubject creates a new subject.
func (c *Client) CreateSubject(ctx context.Context, req SubjectRequest) (*Subject, error) {
	if err := c.validateRequest(req); err != nil {
		return nil, err
	}
	var subject Subject
	if err := c.do(ctx, http.MethodPost, "/api/v1/subjects", req, &subject); err != nil {
		return nil, err
	}
	return &subject, nil
}

// UpdateSubject updates an existing subject.
func (c *Client) UpdateSubject(ctx context.Context, id int64, req SubjectRequest) (*Subject, error) {
	if err := c.validateRequest(req); err != nil {
		return nil, err
	}
	var subject Subject
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/v1/subjects/%d", id), req, &subject); err != nil {
		return nil, err
	}
	return &subject, nil
}

// DeleteSubject deletes a subject.
func (c *Client) DeleteSubject(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/v1/subjects/%d", id), nil, nil)
}

package api

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// Teacher is a member of the teaching staff.
type Teacher struct {
	ID        int64     `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	SubjectID int64     `json:"subject_id,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// FullName returns the display name for lists.
func (t Teacher) FullName() string {
	return t.FirstName + " " + t.LastName
}

// TeacherRequest is the create/update payload for a teacher.
type TeacherRequest struct {
	FirstName string `json:"first_name" validate:"required,min=1"`
	LastName  string `json:"last_name" validate:"required,min=1"`
	Email     string `json:"email" validate:"required,email"`
	SubjectID int64  `json:"subject_id,omitempty" validate:"omitempty,gt=0"`
}

// ListTeachersResponse is a paginated page of teachers.
type ListTeachersResponse struct {
	Teachers   []Teacher `json:"teachers"`
	TotalCount int       `json:"total_count"`
	Page       int       `json:"page"`
	PageSize   int       `json:"page_size"`
}

// ListTeachers retrieves a page of teachers.
func (c *Client) ListTeachers(ctx context.Context, opts ListOptions) (*ListTeachersResponse, error) {
	var resp ListTeachersResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/teachers"+opts.query(), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetTeacher retrieves a teacher by ID.
func (c *Client) GetTeacher(ctx context.Context, id int64) (*Teacher, error) {
	var teacher Teacher
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/v1/teachers/%d", id), nil, &teacher); err != nil {
		return nil, err
	}
	return &teacher, nil
}

// CreateTeacher creates a new teacher.
func (c *Client) CreateTeacher(ctx context.Context, req TeacherRequest) (*Teacher, error) {
	if err := c.validateRequest(req); err != nil {
		return nil, err
	}
	var teacher Teacher
	if err := c.do(ctx, http.MethodPost, "/api/v1/teachers", req, &teacher); err != nil {
		return nil, err
	}
	return &teacher, nil
}

// UpdateTeacher updates an existing teacher.
func (c *Client) UpdateTeacher(ctx context.Context, id int64, req TeacherRequest) (*Teacher, error) {
	if err := c.validateRequest(req); err != nil {
		return nil, err
	}
	var teacher Teacher
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/v1/teachers/%d", id), req, &teacher); err != nil {
		return nil, err
	}
	return &teacher, nil
}

// DeleteTeacher deletes a teacher.
func (c *Client) DeleteTeacher(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/v1/teachers/%d", id), nil, nil)
}

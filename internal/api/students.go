package api

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// Student statuses as reported by the backend.
const (
	StudentStatusActive    = "active"
	StudentStatusSuspended = "suspended"
	StudentStatusGraduated = "graduated"
)

// Student is an enrolled learner.
type Student struct {
	ID        int64     `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// FullName returns the display name for lists.
func (s Student) FullName() string {
	return s.FirstName + " " + s.LastName
}

// StudentRequest is the create/update payload for a student.
type StudentRequest struct {
	FirstName string `json:"first_name" validate:"required,min=1"`
	LastName  string `json:"last_name" validate:"required,min=1"`
	Email     string `json:"email" validate:"required,email"`
	Status    string `json:"status,omitempty" validate:"omitempty,oneof=active suspended graduated"`
}

// ListStudentsResponse is a paginated page of students.
type ListStudentsResponse struct {
	Students   []Student `json:"students"`
	TotalCount int       `json:"total_count"`
	Page       int       `json:"page"`
	PageSize   int       `json:"page_size"`
}

// ListStudents retrieves a page of students.
func (c *Client) ListStudents(ctx context.Context, opts ListOptions) (*ListStudentsResponse, error) {
	var resp ListStudentsResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/students"+opts.query(), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetStudent retrieves a student by ID.
func (c *Client) GetStudent(ctx context.Context, id int64) (*Student, error) {
	var student Student
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/v1/students/%d", id), nil, &student); err != nil {
		return nil, err
	}
	return &student, nil
}

// CreateStudent creates a new student.
func (c *Client) CreateStudent(ctx context.Context, req StudentRequest) (*Student, error) {
	if err := c.validateRequest(req); err != nil {
		return nil, err
	}
	var student Student
	if err := c.do(ctx, http.MethodPost, "/api/v1/students", req, &student); err != nil {
		return nil, err
	}
	return &student, nil
}

// UpdateStudent updates an existing student.
func (c *Client) UpdateStudent(ctx context.Context, id int64, req StudentRequest) (*Student, error) {
	if err := c.validateRequest(req); err != nil {
		return nil, err
	}
	var student Student
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/v1/students/%d", id), req, &student); err != nil {
		return nil, err
	}
	return &student, nil
}

// DeleteStudent deletes a student.
func (c *Client) DeleteStudent(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/v1/students/%d", id), nil, nil)
}

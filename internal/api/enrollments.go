package api

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// Enrollment links a student to a course.
type Enrollment struct {
	ID        int64     `json:"id"`
	StudentID int64     `json:"student_id"`
	CourseID  int64     `json:"course_id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// EnrollmentRequest is the create payload for an enrollment.
type EnrollmentRequest struct {
	StudentID int64 `json:"student_id" validate:"required,gt=0"`
	CourseID  int64 `json:"course_id" validate:"required,gt=0"`
}

// ListEnrollmentsResponse is a paginated page of enrollments.
type ListEnrollmentsResponse struct {
	Enrollments []Enrollment `json:"enrollments"`
	TotalCount  int          `json:"total_count"`
	Page        int          `json:"page"`
	PageSize    int          `json:"page_size"`
}

// ListEnrollments retrieves a page of enrollments, optionally filtered
// by course.
func (c *Client) ListEnrollments(ctx context.Context, courseID int64, opts ListOptions) (*ListEnrollmentsResponse, error) {
	path := "/api/v1/enrollments" + opts.query()
	if courseID > 0 {
		sep := "?"
		if opts.query() != "" {
			sep = "&"
		}
		path += fmt.Sprintf("%scourse_id=%d", sep, courseID)
	}
	var resp ListEnrollmentsResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CreateEnrollment enrolls a student in a course.
func (c *Client) CreateEnrollment(ctx context.Context, req EnrollmentRequest) (*Enrollment, error) {
	if err := c.validateRequest(req); err != nil {
		return nil, err
	}
	var enrollment Enrollment
	if err := c.do(ctx, http.MethodPost, "/api/v1/enrollments", req, &enrollment); err != nil {
		return nil, err
	}
	return &enrollment, nil
}

// DeleteEnrollment withdraws a student from a course.
func (c *Client) DeleteEnrollment(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/v1/enrollments/%d", id), nil, nil)
}

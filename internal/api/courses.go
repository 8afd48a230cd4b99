package api

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// Course is a scheduled offering of a subject, taught by one teacher.
type Course struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	SubjectID int64     `json:"subject_id"`
	TeacherID int64     `json:"teacher_id"`
	Capacity  int       `json:"capacity"`
	Enrolled  int       `json:"enrolled"`
	CreatedAt time.Time `json:"created_at"`
}

// CourseRequest is the create/update payload for a course.
type CourseRequest struct {
	Name      string `json:"name" validate:"required,min=2"`
	Code      string `json:"code" validate:"required,min=2,max=16"`
	SubjectID int64  `json:"subject_id" validate:"required,gt=0"`
	TeacherID int64  `json:"teacher_id" validate:"required,gt=0"`
	Capacity  int    `json:"capacity" validate:"gte=0"`
}

// ListCoursesResponse is a paginated page of courses.
type ListCoursesResponse struct {
	Courses    []Course `json:"courses"`
	TotalCount int      `json:"total_count"`
	Page       int      `json:"page"`
	PageSize   int      `json:"page_size"`
}

// ListCourses retrieves a page of courses.
func (c *Client) ListCourses(ctx context.Context, opts ListOptions) (*ListCoursesResponse, error) {
	var resp ListCoursesResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/courses"+opts.query(), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetCourse retrieves a course by ID.
func (c *Client) GetCourse(ctx context.Context, id int64) (*Course, error) {
	var course Course
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/v1/courses/%d", id), nil, &course); err != nil {
		return nil, err
	}
	return &course, nil
}

// CreateCourse creates a new course.
func (c *Client) CreateCourse(ctx context.Context, req CourseRequest) (*Course, error) {
	if err := c.validateRequest(req); err != nil {
		return nil, err
	}
	var course Course
	if err := c.do(ctx, http.MethodPost, "/api/v1/courses", req, &course); err != nil {
		return nil, err
	}
	return &course, nil
}

// UpdateCourse updates an existing course.
func (c *Client) UpdateCourse(ctx context.Context, id int64, req CourseRequest) (*Course, error) {
	if err := c.validateRequest(req); err != nil {
		return nil, err
	}
	var course Course
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/v1/courses/%d", id), req, &course); err != nil {
		return nil, err
	}
	return &course, nil
}

// DeleteCourse deletes a course.
func (c *Client) DeleteCourse(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/v1/courses/%d", id), nil, nil)
}

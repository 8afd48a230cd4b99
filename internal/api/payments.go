package api

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// Payment statuses as reported by the backend.
const (
	PaymentStatusPending  = "pending"
	PaymentStatusPaid     = "paid"
	PaymentStatusOverdue  = "overdue"
	PaymentStatusRefunded = "refunded"
)

// Payment is a tuition or fee payment by a student.
type Payment struct {
	ID        int64     `json:"id"`
	StudentID int64     `json:"student_id"`
	Amount    float64   `json:"amount"`
	Currency  string    `json:"currency"`
	Status    string    `json:"status"`
	Method    string    `json:"method,omitempty"`
	PaidAt    time.Time `json:"paid_at,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// PaymentRequest is the create payload for a payment.
type PaymentRequest struct {
	StudentID int64   `json:"student_id" validate:"required,gt=0"`
	Amount    float64 `json:"amount" validate:"required,gt=0"`
	Currency  string  `json:"currency" validate:"required,len=3"`
	Method    string  `json:"method,omitempty"`
}

// ListPaymentsResponse is a paginated page of payments.
type ListPaymentsResponse struct {
	Payments   []Payment `json:"payments"`
	TotalCount int       `json:"total_count"`
	Page       int       `json:"page"`
	PageSize   int       `json:"page_size"`
}

// ListPayments retrieves a page of payments.
func (c *Client) ListPayments(ctx context.Context, opts ListOptions) (*ListPaymentsResponse, error) {
	var resp ListPaymentsResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/payments"+opts.query(), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetPayment retrieves a payment by ID.
func (c *Client) GetPayment(ctx context.Context, id int64) (*Payment, error) {
	var payment Payment
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/v1/payments/%d", id), nil, &payment); err != nil {
		return nil, err
	}
	return &payment, nil
}

// CreatePayment records a new payment.
func (c *Client) CreatePayment(ctx context.Context, req PaymentRequest) (*Payment, error) {
	if err := c.validateRequest(req); err != nil {
		return nil, err
	}
	var payment Payment
	if err := c.do(ctx, http.MethodPost, "/api/v1/payments", req, &payment); err != nil {
		return nil, err
	}
	return &payment, nil
}

// RefundPayment marks a payment as refunded.
func (c *Client) RefundPayment(ctx context.Context, id int64) (*Payment, error) {
	var payment Payment
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/v1/payments/%d/refund", id), nil, &payment); err != nil {
		return nil, err
	}
	return &payment, nil
}

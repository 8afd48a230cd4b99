// Package api is the HTTP client for the school-management backend.
// The transport layer deliberately does not depend on the session
// package: the credential is read through an injected provider
// function, so the low-level client stays below the session in the
// dependency order.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"sync/atomic"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/schoolctl/schoolctl/internal/log"
)

// DefaultTimeout bounds every outbound request so a hung backend cannot
// leave a verifying overlay showing indefinitely.
const DefaultTimeout = 15 * time.Second

// TokenFunc supplies the current bearer credential. It is called per
// request, so implementations should read the persisted session state
// rather than capture a token value.
type TokenFunc func() string

// Config configures a Client.
type Config struct {
	BaseURL string

	// Timeout bounds each request. Zero means DefaultTimeout.
	Timeout time.Duration

	// TokenFunc is the injected credential provider. Nil means all
	// requests go out unauthenticated.
	TokenFunc TokenFunc

	// OnAuthFailure is invoked when a response classifies as an
	// authentication failure. The client guarantees at most one
	// invocation per failure episode, even under concurrent requests.
	OnAuthFailure func()

	Logger *log.Logger
}

// Client is the school-management API client.
type Client struct {
	baseURL       string
	httpClient    *http.Client
	tokenFunc     TokenFunc
	onAuthFailure func()
	authFailed    atomic.Bool
	logger        *log.Logger
	validate      *validator.Validate
}

// NewClient creates a new API client.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.DefaultLogger()
	}
	return &Client{
		baseURL:       cfg.BaseURL,
		httpClient:    &http.Client{Timeout: timeout},
		tokenFunc:     cfg.TokenFunc,
		onAuthFailure: cfg.OnAuthFailure,
		logger:        logger.WithGroup("api"),
		validate:      validator.New(),
	}
}

// ResetAuthFailure re-arms the authentication failure hook. Called
// after a successful login so a later expiry triggers the hook again.
func (c *Client) ResetAuthFailure() {
	c.authFailed.Store(false)
}

// errorBody is the backend's error envelope.
type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

// do performs a JSON request and decodes the response into out.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", requestID)

	// Readback happens per request: the provider reads persisted
	// session state, so a token set by another code path is picked up
	// without any in-memory handoff.
	if c.tokenFunc != nil {
		if token := c.tokenFunc(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.transportError(method, path, requestID, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("request completed",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"request_id", requestID,
		"duration", time.Since(start).String())

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.statusError(resp, requestID)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// transportError classifies connection-level failures. Timeouts are a
// generic failure, never an authentication failure.
func (c *Client) transportError(method, path, requestID string, err error) error {
	kind := KindTransport
	if os.IsTimeout(err) || errors.Is(err, context.DeadlineExceeded) {
		kind = KindTimeout
	}
	c.logger.Warn("request failed",
		"method", method,
		"path", path,
		"kind", kind.String(),
		"request_id", requestID,
		"error", err.Error())
	return &Error{Kind: kind, Message: fmt.Sprintf("%s %s failed", method, path), RequestID: requestID, Err: err}
}

// statusError maps a non-2xx response into a classified Error and, for
// authentication failures, fires the auth-failure hook at most once.
func (c *Client) statusError(resp *http.Response, requestID string) error {
	raw, _ := io.ReadAll(resp.Body)

	var eb errorBody
	_ = json.Unmarshal(raw, &eb)
	message := eb.Message
	if message == "" {
		message = eb.Error
	}
	if message == "" {
		message = string(raw)
	}

	apiErr := &Error{
		StatusCode: resp.StatusCode,
		Code:       eb.Code,
		Message:    message,
		RequestID:  requestID,
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		apiErr.Kind = KindAuthentication
		// CAS latch: concurrently failing requests must not stack
		// session clears and redirects.
		if c.authFailed.CompareAndSwap(false, true) && c.onAuthFailure != nil {
			c.onAuthFailure()
		}
	case resp.StatusCode == http.StatusForbidden:
		apiErr.Kind = KindAuthorization
	case resp.StatusCode == http.StatusNotFound:
		apiErr.Kind = KindNotFound
	case resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnprocessableEntity:
		apiErr.Kind = KindValidation
	case resp.StatusCode >= 500:
		apiErr.Kind = KindServer
	default:
		apiErr.Kind = KindServer
	}
	return apiErr
}

// validateRequest rejects a malformed payload before it reaches the
// network layer.
func (c *Client) validateRequest(req any) error {
	if err := c.validate.Struct(req); err != nil {
		return &Error{Kind: KindValidation, Message: "invalid request", Err: err}
	}
	return nil
}

// ListOptions are the shared pagination and filter knobs for list calls.
type ListOptions struct {
	Page     int
	PageSize int
	Search   string
}

// query encodes the options as a URL query string, starting with "?"
// when non-empty.
func (o ListOptions) query() string {
	v := url.Values{}
	if o.Page > 0 {
		v.Set("page", fmt.Sprint(o.Page))
	}
	if o.PageSize > 0 {
		v.Set("page_size", fmt.Sprint(o.PageSize))
	}
	if o.Search != "" {
		v.Set("search", o.Search)
	}
	if len(v) == 0 {
		return ""
	}
	return "?" + v.Encode()
}

package errors

import (
	"fmt"
	"strings"
)

// ErrorCode represents a unique error identifier
type ErrorCode string

// Error categories
const (
	// Authentication errors (AUTH-001 to AUTH-099)
	ErrCodeAuthRequired     ErrorCode = "AUTH-001"
	ErrCodeAuthInvalid      ErrorCode = "AUTH-002"
	ErrCodeAuthExpired      ErrorCode = "AUTH-003"
	ErrCodeAuthForbidden    ErrorCode = "AUTH-004"
	ErrCodeAuthLoginFailed  ErrorCode = "AUTH-005"
	ErrCodeAuthLogoutFailed ErrorCode = "AUTH-006"

	// Session errors (SESSION-001 to SESSION-099)
	ErrCodeSessionLoad    ErrorCode = "SESSION-001"
	ErrCodeSessionSave    ErrorCode = "SESSION-002"
	ErrCodeSessionDecrypt ErrorCode = "SESSION-003"
	ErrCodeSessionVersion ErrorCode = "SESSION-004"

	// API errors (API-001 to API-099)
	ErrCodeAPIRequest    ErrorCode = "API-001"
	ErrCodeAPIResponse   ErrorCode = "API-002"
	ErrCodeAPITimeout    ErrorCode = "API-003"
	ErrCodeAPIValidation ErrorCode = "API-004"
	ErrCodeAPINotFound   ErrorCode = "API-005"
	ErrCodeAPIServer     ErrorCode = "API-006"

	// Configuration errors (CONFIG-001 to CONFIG-099)
	ErrCodeConfigNotFound ErrorCode = "CONFIG-001"
	ErrCodeConfigInvalid  ErrorCode = "CONFIG-002"
	ErrCodeConfigParse    ErrorCode = "CONFIG-003"

	// File I/O errors (IO-001 to IO-099)
	ErrCodeFileNotFound    ErrorCode = "IO-001"
	ErrCodeFileReadFailed  ErrorCode = "IO-002"
	ErrCodeFileWriteFailed ErrorCode = "IO-003"
	ErrCodeDirectoryFailed ErrorCode = "IO-004"
)

// SchoolctlError represents an enhanced error with code, suggestions, and documentation
type SchoolctlError struct {
	Code        ErrorCode
	Message     string
	Suggestions []string
	DocsURL     string
	Cause       error
}

// Error implements the error interface
func (e *SchoolctlError) Error() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("[%s] %s", e.Code, e.Message))

	if e.Cause != nil {
		b.WriteString(fmt.Sprintf(": %v", e.Cause))
	}

	if len(e.Suggestions) > 0 {
		b.WriteString("\n\nSuggestions:")
		for _, suggestion := range e.Suggestions {
			b.WriteString(fmt.Sprintf("\n  • %s", suggestion))
		}
	}

	if e.DocsURL != "" {
		b.WriteString(fmt.Sprintf("\n\nDocumentation: %s", e.DocsURL))
	}

	return b.String()
}

// Unwrap implements error unwrapping for errors.Is and errors.As
func (e *SchoolctlError) Unwrap() error {
	return e.Cause
}

// New creates a new SchoolctlError
func New(code ErrorCode, message string) *SchoolctlError {
	return &SchoolctlError{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a new SchoolctlError wrapping an existing error
func Wrap(code ErrorCode, message string, cause error) *SchoolctlError {
	return &SchoolctlError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WithSuggestion adds a suggestion to the error
func (e *SchoolctlError) WithSuggestion(suggestion string) *SchoolctlError {
	e.Suggestions = append(e.Suggestions, suggestion)
	return e
}

// WithSuggestions adds multiple suggestions to the error
func (e *SchoolctlError) WithSuggestions(suggestions ...string) *SchoolctlError {
	e.Suggestions = append(e.Suggestions, suggestions...)
	return e
}

// WithDocs adds a documentation URL to the error
func (e *SchoolctlError) WithDocs(url string) *SchoolctlError {
	e.DocsURL = url
	return e
}

// Common error constructors for frequently used errors

// NewAuthRequiredError creates a not-logged-in error
func NewAuthRequiredError() *SchoolctlError {
	return New(ErrCodeAuthRequired, "not logged in").
		WithSuggestion("Run 'schoolctl auth login' to authenticate").
		WithSuggestion("Check 'schoolctl auth status' to inspect the current session")
}

// NewAuthInvalidError creates an invalid-credential error
func NewAuthInvalidError() *SchoolctlError {
	return New(ErrCodeAuthInvalid, "session credential is invalid or expired").
		WithSuggestion("Run 'schoolctl auth login' to re-authenticate")
}

// NewAuthForbiddenError creates an insufficient-permission error
func NewAuthForbiddenError(action string) *SchoolctlError {
	return New(ErrCodeAuthForbidden, fmt.Sprintf("permission denied: %s", action)).
		WithSuggestion("Contact an administrator if you need access to this resource").
		WithSuggestion("Run 'schoolctl roles list' to review available roles")
}

// NewSessionLoadError creates a session restore error
func NewSessionLoadError(path string, cause error) *SchoolctlError {
	return Wrap(ErrCodeSessionLoad, fmt.Sprintf("failed to restore session from %s", path), cause).
		WithSuggestion("Run 'schoolctl auth login' to create a fresh session").
		WithSuggestion("Delete the session file if it is corrupted")
}

// NewConfigInvalidError creates a config validation error
func NewConfigInvalidError(details string) *SchoolctlError {
	return New(ErrCodeConfigInvalid, fmt.Sprintf("invalid configuration: %s", details)).
		WithSuggestion("Check ~/.schoolctl/config.yaml for typos").
		WithSuggestion("Unset conflicting SCHOOLCTL_* environment variables")
}

// NewAPITimeoutError creates a request timeout error
func NewAPITimeoutError(path string) *SchoolctlError {
	return New(ErrCodeAPITimeout, fmt.Sprintf("request timed out: %s", path)).
		WithSuggestion("Check your network connection").
		WithSuggestion("Increase request_timeout in the configuration if the backend is slow")
}

// NewFileNotFoundError creates a file not found error
func NewFileNotFoundError(path string) *SchoolctlError {
	return New(ErrCodeFileNotFound, fmt.Sprintf("file not found: %s", path)).
		WithSuggestion("Check if the file path is correct").
		WithSuggestion("Verify the file exists and you have read permissions")
}

package ux

import (
	"fmt"

	"github.com/schoolctl/schoolctl/internal/api"
)

// ErrorWithSuggestion wraps an error with a helpful recovery suggestion
type ErrorWithSuggestion struct {
	Err        error
	Suggestion string
}

// Error implements the error interface
func (e *ErrorWithSuggestion) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("%v\n\n💡 Suggestion: %s", e.Err, e.Suggestion)
	}
	return e.Err.Error()
}

// Unwrap provides access to the underlying error
func (e *ErrorWithSuggestion) Unwrap() error {
	return e.Err
}

// NewErrorWithSuggestion creates a new error with a suggestion
func NewErrorWithSuggestion(err error, suggestion string) error {
	if err == nil {
		return nil
	}
	return &ErrorWithSuggestion{
		Err:        err,
		Suggestion: suggestion,
	}
}

// EnhanceError analyzes an API error and adds a contextual suggestion.
// Authorization failures stay inline: the session is intact and the
// user just lacks permission; only authentication failures should ever
// steer the user back to login.
func EnhanceError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case api.IsAuthentication(err):
		return NewErrorWithSuggestion(err,
			"Your session is no longer valid. Run 'schoolctl auth login' to sign in again")
	case api.IsAuthorization(err):
		return NewErrorWithSuggestion(err,
			"Your account lacks permission for this action; ask an administrator for access")
	case api.IsTimeout(err):
		return NewErrorWithSuggestion(err,
			"The backend did not answer in time; check connectivity or raise request_timeout")
	case api.IsValidation(err):
		return NewErrorWithSuggestion(err,
			"Fix the rejected fields and retry")
	case api.IsNotFound(err):
		return NewErrorWithSuggestion(err,
			"The record does not exist; it may have been deleted by another administrator")
	}

	return err
}

package exitcode

import (
	"errors"
	"os"

	"github.com/schoolctl/schoolctl/internal/api"
)

// Exit codes for consistent error handling across the CLI
const (
	// Success indicates successful execution
	Success = 0

	// GeneralError indicates a general error condition
	GeneralError = 1

	// UsageError indicates invalid command usage (bad flags, missing args, etc.)
	UsageError = 2

	// AuthError indicates an authentication failure (no valid session)
	AuthError = 3

	// ForbiddenError indicates the session is valid but lacks permission
	ForbiddenError = 4

	// NetworkError indicates a network connectivity issue or timeout
	NetworkError = 5

	// ValidationError indicates a request payload rejected before sending
	ValidationError = 6

	// Interrupted indicates the command was cancelled by the user
	Interrupted = 130
)

// Exit terminates the program with the given exit code
func Exit(code int) {
	os.Exit(code)
}

// ExitWithError exits with an appropriate code based on error type
func ExitWithError(err error) {
	if err == nil {
		Exit(Success)
		return
	}
	Exit(DetermineExitCode(err))
}

// DetermineExitCode analyzes an error and returns the appropriate exit code.
// The authentication/authorization distinction is preserved all the way to
// the process exit status.
func DetermineExitCode(err error) int {
	if err == nil {
		return Success
	}

	switch {
	case api.IsAuthentication(err):
		return AuthError
	case api.IsAuthorization(err):
		return ForbiddenError
	case api.IsValidation(err):
		return ValidationError
	case api.IsTimeout(err):
		return NetworkError
	}

	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		return GeneralError
	}

	return GeneralError
}

// Description returns a human-readable description of an exit code
func Description(code int) string {
	switch code {
	case Success:
		return "Success"
	case GeneralError:
		return "General error"
	case UsageError:
		return "Usage error (invalid flags or arguments)"
	case AuthError:
		return "Authentication error (no valid session)"
	case ForbiddenError:
		return "Permission denied"
	case NetworkError:
		return "Network error or timeout"
	case ValidationError:
		return "Validation error (request rejected before sending)"
	case Interrupted:
		return "Interrupted"
	default:
		return "Unknown error"
	}
}

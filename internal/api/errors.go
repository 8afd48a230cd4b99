package api

import (
	"errors"
	"fmt"
)

// Kind classifies an API failure. The authentication/authorization
// split is the load-bearing distinction: 401 clears the session and
// redirects, 403 is surfaced to the caller with the session untouched,
// and everything else passes through for caller-level handling.
type Kind int

const (
	// KindTransport covers connection-level failures (DNS, refused, reset).
	KindTransport Kind = iota
	// KindTimeout is a client-enforced deadline expiry. Never treated as
	// identity-invalidating.
	KindTimeout
	// KindAuthentication means the credential is missing, invalid, or
	// expired (401).
	KindAuthentication
	// KindAuthorization means the credential is valid but insufficient
	// for the action (403).
	KindAuthorization
	// KindValidation means the payload was rejected, either client-side
	// before sending or by the backend (400/422).
	KindValidation
	// KindNotFound means the resource does not exist (404).
	KindNotFound
	// KindServer covers backend failures (5xx).
	KindServer
)

// String returns a short label for the kind.
func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindTimeout:
		return "timeout"
	case KindAuthentication:
		return "authentication"
	case KindAuthorization:
		return "authorization"
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindServer:
		return "server"
	default:
		return "unknown"
	}
}

// Error is a classified API failure.
type Error struct {
	Kind       Kind
	StatusCode int
	Code       string // backend machine-readable code, when provided
	Message    string
	RequestID  string
	Err        error
}

// Error implements the error interface
func (e *Error) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if msg == "" {
		msg = fmt.Sprintf("request failed with status %d", e.StatusCode)
	}
	if e.RequestID != "" {
		return fmt.Sprintf("%s: %s (request %s)", e.Kind, msg, e.RequestID)
	}
	return fmt.Sprintf("%s: %s", e.Kind, msg)
}

// Unwrap implements error unwrapping for errors.Is and errors.As
func (e *Error) Unwrap() error {
	return e.Err
}

// Timeout implements the net.Error convention for timeout checks.
func (e *Error) Timeout() bool {
	return e.Kind == KindTimeout
}

func isKind(err error, kind Kind) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == kind
}

// IsAuthentication reports whether err is an authentication failure
// (credential missing/invalid/expired).
func IsAuthentication(err error) bool { return isKind(err, KindAuthentication) }

// IsAuthorization reports whether err is an authorization failure
// (credential valid, action forbidden).
func IsAuthorization(err error) bool { return isKind(err, KindAuthorization) }

// IsValidation reports whether err is a validation failure.
func IsValidation(err error) bool { return isKind(err, KindValidation) }

// IsTimeout reports whether err is a client-enforced timeout.
func IsTimeout(err error) bool { return isKind(err, KindTimeout) }

// IsNotFound reports whether err is a missing-resource failure.
func IsNotFound(err error) bool { return isKind(err, KindNotFound) }

package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchoolctlError_Error(t *testing.T) {
	err := New(ErrCodeAuthRequired, "not logged in")
	assert.Contains(t, err.Error(), "[AUTH-001]")
	assert.Contains(t, err.Error(), "not logged in")
}

func TestSchoolctlError_WithSuggestions(t *testing.T) {
	err := New(ErrCodeConfigInvalid, "bad value").
		WithSuggestion("check the config file").
		WithSuggestions("unset the env var", "run with --help")

	require.Len(t, err.Suggestions, 3)
	assert.Contains(t, err.Error(), "Suggestions:")
	assert.Contains(t, err.Error(), "check the config file")
}

func TestSchoolctlError_WithDocs(t *testing.T) {
	err := New(ErrCodeAPIServer, "backend error").WithDocs("https://docs.school.example/errors")
	assert.Contains(t, err.Error(), "Documentation: https://docs.school.example/errors")
}

func TestWrap_Unwraps(t *testing.T) {
	cause := stderrors.New("disk full")
	err := Wrap(ErrCodeSessionSave, "failed to persist session", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "disk full")
}

func TestNewSessionLoadError(t *testing.T) {
	cause := stderrors.New("unexpected end of JSON input")
	err := NewSessionLoadError("/home/u/.schoolctl/session.json", cause)

	assert.Equal(t, ErrCodeSessionLoad, err.Code)
	assert.ErrorIs(t, err, cause)
	assert.NotEmpty(t, err.Suggestions)
}

func TestNewAuthRequiredError(t *testing.T) {
	err := NewAuthRequiredError()
	assert.Equal(t, ErrCodeAuthRequired, err.Code)
	assert.Contains(t, err.Error(), "auth login")
}

package exitcode

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/schoolctl/schoolctl/internal/api"
)

func TestDetermineExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil error", nil, Success},
		{"plain error", errors.New("boom"), GeneralError},
		{"authentication failure", &api.Error{Kind: api.KindAuthentication}, AuthError},
		{"authorization failure", &api.Error{Kind: api.KindAuthorization}, ForbiddenError},
		{"validation failure", &api.Error{Kind: api.KindValidation}, ValidationError},
		{"timeout", &api.Error{Kind: api.KindTimeout}, NetworkError},
		{"server error", &api.Error{Kind: api.KindServer}, GeneralError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetermineExitCode(tt.err))
		})
	}
}

func TestDetermineExitCode_WrappedError(t *testing.T) {
	wrapped := &api.Error{Kind: api.KindAuthorization, Err: errors.New("insufficient role")}
	assert.Equal(t, ForbiddenError, DetermineExitCode(wrapped))
}

func TestDescription(t *testing.T) {
	assert.Equal(t, "Success", Description(Success))
	assert.Equal(t, "Interrupted", Description(Interrupted))
	assert.Equal(t, "Unknown error", Description(99))
}

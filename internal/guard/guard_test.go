package guard

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schoolctl/schoolctl/internal/api"
	"github.com/schoolctl/schoolctl/internal/identity"
	"github.com/schoolctl/schoolctl/internal/session"
)

func TestDecide(t *testing.T) {
	tests := []struct {
		name  string
		state State
		want  Decision
	}{
		{
			name:  "no token",
			state: State{},
			want:  Redirect,
		},
		{
			name:  "no token even with settled fetch",
			state: State{FetchSettled: true, FetchSucceeded: true, Authenticated: true},
			want:  Redirect,
		},
		{
			name:  "token with fetch in flight",
			state: State{TokenPresent: true},
			want:  RenderVerifying,
		},
		{
			name:  "token with failed fetch",
			state: State{TokenPresent: true, FetchSettled: true},
			want:  Redirect,
		},
		{
			name:  "fetch ok but session not authenticated",
			state: State{TokenPresent: true, FetchSettled: true, FetchSucceeded: true},
			want:  Redirect,
		},
		{
			name:  "fully verified",
			state: State{TokenPresent: true, FetchSettled: true, FetchSucceeded: true, Authenticated: true},
			want:  Render,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decide(tt.state))
		})
	}
}

func TestDecision_String(t *testing.T) {
	assert.Equal(t, "redirect", Redirect.String())
	assert.Equal(t, "render_verifying", RenderVerifying.String())
	assert.Equal(t, "render", Render.String())
}

type staticFetcher struct {
	account *api.Account
	err     error
}

func (f staticFetcher) CurrentUser(ctx context.Context) (*api.Account, error) {
	return f.account, f.err
}

func TestEvaluate_AgainstLiveSession(t *testing.T) {
	account := &api.Account{
		ID:     42,
		Email:  "admin@school.example",
		Name:   "Ada Admin",
		Status: api.AccountStatusActive,
	}

	store, err := session.New(session.NewMemoryStorage(), nil)
	require.NoError(t, err)
	query := identity.New(store, staticFetcher{account: account})

	// Anonymous session redirects immediately.
	assert.Equal(t, Redirect, Evaluate(store, query.Snapshot()))

	// Logged in but unverified: optimistic render under the overlay.
	store.Login(identity.Project(account), "tok-abc")
	query.Invalidate()
	assert.Equal(t, RenderVerifying, Evaluate(store, query.Snapshot()))

	// Verification settles successfully.
	result := query.Refresh(context.Background())
	assert.Equal(t, Render, Evaluate(store, result))

	// Logout redirects regardless of the last fetch outcome.
	store.Logout()
	assert.Equal(t, Redirect, Evaluate(store, result))
}

package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testUser() *User {
	return &User{
		ID:    "42",
		Email: "admin@school.example",
		Name:  "Ada Admin",
		Role:  "admin",
	}
}

func TestStore_Login_SetsAuthenticatedState(t *testing.T) {
	storage := NewMemoryStorage()
	store, err := New(storage, nil)
	require.NoError(t, err)

	assert.False(t, store.IsAuthenticated())
	assert.Nil(t, store.User())
	assert.Empty(t, store.Token())

	store.Login(testUser(), "tok-abc")

	assert.True(t, store.IsAuthenticated())
	assert.Equal(t, "tok-abc", store.Token())
	require.NotNil(t, store.User())
	assert.Equal(t, "admin@school.example", store.User().Email)
}

func TestStore_AuthenticatedFlag_TracksUserAndToken(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(s *Store)
		wantAuth bool
	}{
		{
			name:     "user without token",
			mutate:   func(s *Store) { s.SetUser(testUser()) },
			wantAuth: false,
		},
		{
			name:     "token without user",
			mutate:   func(s *Store) { s.SetToken("tok-abc") },
			wantAuth: false,
		},
		{
			name: "user then token",
			mutate: func(s *Store) {
				s.SetUser(testUser())
				s.SetToken("tok-abc")
			},
			wantAuth: true,
		},
		{
			name: "token then user",
			mutate: func(s *Store) {
				s.SetToken("tok-abc")
				s.SetUser(testUser())
			},
			wantAuth: true,
		},
		{
			name: "token cleared after login",
			mutate: func(s *Store) {
				s.Login(testUser(), "tok-abc")
				s.SetToken("")
			},
			wantAuth: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, err := New(NewMemoryStorage(), nil)
			require.NoError(t, err)

			tt.mutate(store)

			assert.Equal(t, tt.wantAuth, store.IsAuthenticated())
			// The flag must agree with the fields it is derived from.
			derived := store.User() != nil && store.Token() != ""
			assert.Equal(t, derived, store.IsAuthenticated())
		})
	}
}

func TestStore_Logout_Idempotent(t *testing.T) {
	storage := NewMemoryStorage()
	store, err := New(storage, nil)
	require.NoError(t, err)

	store.Login(testUser(), "tok-abc")
	require.True(t, store.IsAuthenticated())

	store.Logout()
	assert.False(t, store.IsAuthenticated())
	assert.Nil(t, store.User())
	assert.Empty(t, store.Token())

	// A second logout observes the same cleared state.
	store.Logout()
	assert.False(t, store.IsAuthenticated())
	assert.Nil(t, store.User())
	assert.Empty(t, store.Token())

	rec, err := storage.Load()
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Empty(t, rec.State.Token)
	assert.Nil(t, rec.State.User)
	assert.False(t, rec.State.IsAuthenticated)
}

func TestStore_Persistence_ExcludesLoadingFlag(t *testing.T) {
	storage := NewMemoryStorage()
	store, err := New(storage, nil)
	require.NoError(t, err)

	store.Login(testUser(), "tok-abc")
	saves := storage.SaveCount()

	store.SetLoading(true)
	store.SetLoading(false)

	assert.Equal(t, saves, storage.SaveCount(), "loading flag must not trigger writes")
}

func TestNew_RestoresPersistedSession(t *testing.T) {
	storage := NewMemoryStorage()
	first, err := New(storage, nil)
	require.NoError(t, err)
	first.Login(testUser(), "tok-abc")

	second, err := New(storage, nil)
	require.NoError(t, err)

	assert.True(t, second.IsAuthenticated())
	assert.Equal(t, "tok-abc", second.Token())
	require.NotNil(t, second.User())
	assert.Equal(t, "42", second.User().ID)
}

func TestNew_DerivesFlagInsteadOfTrustingRecord(t *testing.T) {
	storage := NewMemoryStorage()
	// A hand-tampered record claims authentication without a token.
	require.NoError(t, storage.Save(&Record{
		State:   State{User: testUser(), IsAuthenticated: true},
		Version: StateVersion,
	}))

	store, err := New(storage, nil)
	require.NoError(t, err)

	assert.False(t, store.IsAuthenticated())
}

func TestStore_User_ReturnsIsolatedCopy(t *testing.T) {
	store, err := New(NewMemoryStorage(), nil)
	require.NoError(t, err)
	store.Login(testUser(), "tok-abc")

	got := store.User()
	got.Email = "mutated@school.example"

	assert.Equal(t, "admin@school.example", store.User().Email)
}

func TestUser_Equal(t *testing.T) {
	a := testUser()
	b := testUser()
	assert.True(t, a.Equal(b))

	b.Role = "teacher"
	assert.False(t, a.Equal(b))

	var nilUser *User
	assert.False(t, a.Equal(nilUser))
	assert.True(t, nilUser.Equal(nil))

	a.Extra = map[string]any{"dept": "science"}
	c := testUser()
	c.Extra = map[string]any{"dept": "science"}
	assert.True(t, a.Equal(c))
	c.Extra["dept"] = "math"
	assert.False(t, a.Equal(c))
}

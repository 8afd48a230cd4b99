// Package session holds the client's single source of truth for "who is
// logged in": the identity projection, the bearer token, and the derived
// authentication flag, persisted across process restarts.
package session

import (
	"reflect"
	"sync"

	"github.com/schoolctl/schoolctl/internal/log"
)

// User is the narrowed identity projection kept in the session. It is
// derived from the backend's full account record; Extra carries fields
// the projection does not model explicitly.
type User struct {
	ID     string         `json:"id"`
	Email  string         `json:"email"`
	Name   string         `json:"name"`
	Role   string         `json:"role,omitempty"`
	Avatar string         `json:"avatar,omitempty"`
	Extra  map[string]any `json:"extra,omitempty"`
}

// Equal reports whether two projections match field by field.
func (u *User) Equal(other *User) bool {
	if u == nil || other == nil {
		return u == other
	}
	return u.ID == other.ID &&
		u.Email == other.Email &&
		u.Name == other.Name &&
		u.Role == other.Role &&
		u.Avatar == other.Avatar &&
		reflect.DeepEqual(u.Extra, other.Extra)
}

// Clone returns a deep copy so callers cannot mutate the store's state.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	if u.Extra != nil {
		c.Extra = make(map[string]any, len(u.Extra))
		for k, v := range u.Extra {
			c.Extra[k] = v
		}
	}
	return &c
}

// Store is the process-wide session state. All mutations go through
// Login/Logout/SetUser/SetToken so the authenticated flag is recomputed
// in the same critical section as the field it depends on; no caller can
// observe user and token out of sync with isAuthenticated.
//
// The store is dependency-injected rather than an ambient global, so
// tests can instantiate isolated sessions with their own storage.
type Store struct {
	mu            sync.RWMutex
	user          *User
	token         string
	authenticated bool
	loading       bool

	storage Storage
	logger  *log.Logger
}

// New creates a Store backed by the given storage adapter, restoring
// any previously persisted state. A missing or empty storage record
// yields an anonymous session, not an error.
func New(storage Storage, logger *log.Logger) (*Store, error) {
	if logger == nil {
		logger = log.DefaultLogger()
	}
	s := &Store{storage: storage, logger: logger}

	if storage != nil {
		rec, err := storage.Load()
		if err != nil {
			return nil, err
		}
		if rec != nil {
			s.user = rec.State.User
			s.token = rec.State.Token
			// Never trust the persisted flag over the derived one.
			s.authenticated = s.user != nil && s.token != ""
			logger.Debug("session restored",
				"authenticated", s.authenticated,
				"has_user", s.user != nil)
		}
	}

	return s, nil
}

// Login unconditionally replaces both identity and credential and marks
// the session authenticated. It has no error conditions; a failure to
// persist is logged and the in-memory state stands.
func (s *Store) Login(user *User, token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = user.Clone()
	s.token = token
	s.authenticated = true
	s.loading = false
	s.persistLocked()
}

// Logout clears both identity and credential. Idempotent.
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
	s.token = ""
	s.authenticated = false
	s.persistLocked()
}

// SetUser updates the identity projection and recomputes the
// authenticated flag against the current token.
func (s *Store) SetUser(user *User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = user.Clone()
	s.authenticated = s.user != nil && s.token != ""
	s.persistLocked()
}

// SetToken updates the credential and recomputes the authenticated flag
// against the current user.
func (s *Store) SetToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.authenticated = s.user != nil && s.token != ""
	s.persistLocked()
}

// SetLoading flags an in-flight auth operation. UI hint only: it does
// not affect authentication state and is never persisted, so a stale
// loading flag cannot survive a restart.
func (s *Store) SetLoading(loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = loading
}

// User returns a copy of the current identity projection, or nil.
func (s *Store) User() *User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user.Clone()
}

// Token returns the current bearer credential, or "" when anonymous.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// IsAuthenticated reports whether both user and token are present.
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authenticated
}

// IsLoading reports whether an auth operation is in flight.
func (s *Store) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// persistLocked writes {token, user, isAuthenticated} through the
// storage adapter. Must be called with s.mu held. The loading flag is
// deliberately excluded from the persisted record.
func (s *Store) persistLocked() {
	if s.storage == nil {
		return
	}
	rec := &Record{
		State: State{
			Token:           s.token,
			User:            s.user.Clone(),
			IsAuthenticated: s.authenticated,
		},
		Version: StateVersion,
	}
	if err := s.storage.Save(rec); err != nil {
		s.logger.Warn("failed to persist session", "error", err.Error())
	}
}

package identity

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/schoolctl/schoolctl/internal/api"
	"github.com/schoolctl/schoolctl/internal/log"
	"github.com/schoolctl/schoolctl/internal/session"
)

// ErrNoToken is returned when the identity query is consulted for an
// anonymous session. There is nothing to fetch without a credential.
var ErrNoToken = errors.New("identity: no token in session")

// DefaultFreshFor is how long a fetched record is treated as fresh.
// Rapid navigation inside this window does not re-issue the fetch.
const DefaultFreshFor = 5 * time.Minute

// Status tags a Result.
type Status int

const (
	// StatusLoading means no cached identity exists and the fetch has
	// not settled.
	StatusLoading Status = iota
	// StatusStale means the value is a synthetic record rebuilt from
	// the cached session projection; the authoritative fetch has not
	// settled yet.
	StatusStale
	// StatusFresh means the value is the backend's record, fetched
	// within the freshness window.
	StatusFresh
	// StatusError means the fetch settled with a failure.
	StatusError
)

// String returns a short label for the status.
func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusStale:
		return "stale"
	case StatusFresh:
		return "fresh"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// Result is the explicit two-phase outcome of the identity query.
// Consumers switch on Status instead of relying on caching side
// effects.
type Result struct {
	Status  Status
	Account *api.Account
	Err     error
}

// Settled reports whether the fetch has completed, successfully or not.
func (r Result) Settled() bool {
	return r.Status == StatusFresh || r.Status == StatusError
}

// Succeeded reports whether the fetch settled successfully.
func (r Result) Succeeded() bool {
	return r.Status == StatusFresh
}

// Fetcher retrieves the authoritative current-user record. Satisfied by
// *api.Client.
type Fetcher interface {
	CurrentUser(ctx context.Context) (*api.Account, error)
}

// Query reconciles the backend's account record against the session
// store. All writes go through the store's exposed operations; the
// query never mutates session fields directly.
type Query struct {
	store    *session.Store
	fetcher  Fetcher
	freshFor time.Duration
	logger   *log.Logger

	mu        sync.Mutex
	account   *api.Account
	err       error
	settled   bool
	fetchedAt time.Time
	inflight  chan struct{}
}

// Option configures a Query.
type Option func(*Query)

// WithFreshFor overrides the freshness window.
func WithFreshFor(d time.Duration) Option {
	return func(q *Query) { q.freshFor = d }
}

// New creates an identity query bound to the given store and fetcher.
func New(store *session.Store, fetcher Fetcher, opts ...Option) *Query {
	q := &Query{
		store:    store,
		fetcher:  fetcher,
		freshFor: DefaultFreshFor,
		logger:   log.DefaultLogger().WithGroup("identity"),
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Snapshot returns the best immediately-available result without
// touching the network. With a token and a cached projection present,
// the caller gets a synthetic stale record and is never blocked waiting
// for the fetch.
func (q *Query) Snapshot() Result {
	if q.store.Token() == "" {
		return Result{Status: StatusError, Err: ErrNoToken}
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	if q.settled {
		if q.err != nil {
			return Result{Status: StatusError, Err: q.err}
		}
		if time.Since(q.fetchedAt) < q.freshFor {
			return Result{Status: StatusFresh, Account: q.account}
		}
	}

	if cached := q.store.User(); cached != nil {
		return Result{Status: StatusStale, Account: Synthetic(cached)}
	}
	return Result{Status: StatusLoading}
}

// Refresh returns a settled result, fetching unless the current record
// is still fresh. Concurrent callers share a single in-flight fetch;
// authentication and authorization failures are not retried here, they
// settle into an error result for the caller to inspect.
func (q *Query) Refresh(ctx context.Context) Result {
	if q.store.Token() == "" {
		return Result{Status: StatusError, Err: ErrNoToken}
	}

	q.mu.Lock()
	if q.settled && q.err == nil && time.Since(q.fetchedAt) < q.freshFor {
		account := q.account
		q.mu.Unlock()
		return Result{Status: StatusFresh, Account: account}
	}

	if q.inflight != nil {
		done := q.inflight
		q.mu.Unlock()
		select {
		case <-done:
			return q.settledResult()
		case <-ctx.Done():
			return Result{Status: StatusError, Err: ctx.Err()}
		}
	}

	done := make(chan struct{})
	q.inflight = done
	q.mu.Unlock()

	account, err := q.fetcher.CurrentUser(ctx)

	q.mu.Lock()
	q.inflight = nil
	q.settled = true
	q.fetchedAt = time.Now()
	q.account = account
	q.err = err
	if err == nil {
		q.writeBackLocked(account)
	} else {
		// Clearing the session on auth failures is the transport
		// interceptor's job, not ours; duplicating it here would race
		// a second logout.
		q.logger.Debug("identity fetch failed", "error", err.Error())
	}
	q.mu.Unlock()
	close(done)

	return q.settledResult()
}

// Invalidate discards the settled record, forcing the next Refresh to
// fetch. Called after login and logout.
func (q *Query) Invalidate() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.account = nil
	q.err = nil
	q.settled = false
	q.fetchedAt = time.Time{}
}

func (q *Query) settledResult() Result {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.err != nil {
		return Result{Status: StatusError, Err: q.err}
	}
	return Result{Status: StatusFresh, Account: q.account}
}

// writeBackLocked projects the fetched record and updates the store
// only when at least one field differs, so two racing fetches converge
// idempotently instead of churning dependent state.
func (q *Query) writeBackLocked(account *api.Account) {
	projected := Project(account)
	if projected.Equal(q.store.User()) {
		return
	}
	q.store.SetUser(projected)
}

package identity

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schoolctl/schoolctl/internal/api"
	"github.com/schoolctl/schoolctl/internal/session"
)

type stubFetcher struct {
	mu      sync.Mutex
	calls   int
	account *api.Account
	err     error
	block   chan struct{}
}

func (f *stubFetcher) CurrentUser(ctx context.Context) (*api.Account, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.block != nil {
		<-f.block
	}
	return f.account, f.err
}

func (f *stubFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func adminAccount() *api.Account {
	return &api.Account{
		ID:     42,
		Email:  "admin@school.example",
		Name:   "Ada Admin",
		Status: api.AccountStatusActive,
		Roles:  []api.AccountRole{{ID: 1, Name: "admin"}},
	}
}

func loggedInStore(t *testing.T) (*session.Store, *session.MemoryStorage) {
	t.Helper()
	storage := session.NewMemoryStorage()
	store, err := session.New(storage, nil)
	require.NoError(t, err)
	store.Login(Project(adminAccount()), "tok-abc")
	return store, storage
}

func TestQuery_Snapshot_NoToken(t *testing.T) {
	store, _ := loggedInStore(t)
	store.Logout()
	q := New(store, &stubFetcher{account: adminAccount()})

	result := q.Snapshot()
	assert.Equal(t, StatusError, result.Status)
	assert.ErrorIs(t, result.Err, ErrNoToken)
}

func TestQuery_Snapshot_ServesSyntheticWithoutFetching(t *testing.T) {
	store, _ := loggedInStore(t)
	fetcher := &stubFetcher{account: adminAccount()}
	q := New(store, fetcher)

	result := q.Snapshot()

	assert.Equal(t, StatusStale, result.Status)
	assert.False(t, result.Settled())
	require.NotNil(t, result.Account)
	assert.Equal(t, api.AccountStatusActive, result.Account.Status)
	assert.Equal(t, "admin@school.example", result.Account.Email)
	assert.Equal(t, 0, fetcher.callCount(), "snapshot must never touch the network")
}

func TestQuery_Snapshot_LoadingWithoutCache(t *testing.T) {
	storage := session.NewMemoryStorage()
	store, err := session.New(storage, nil)
	require.NoError(t, err)
	store.SetToken("tok-abc")

	q := New(store, &stubFetcher{account: adminAccount()})
	result := q.Snapshot()

	assert.Equal(t, StatusLoading, result.Status)
	assert.Nil(t, result.Account)
}

func TestQuery_Refresh_SettlesFresh(t *testing.T) {
	store, _ := loggedInStore(t)
	fetcher := &stubFetcher{account: adminAccount()}
	q := New(store, fetcher)

	result := q.Refresh(context.Background())

	assert.Equal(t, StatusFresh, result.Status)
	assert.True(t, result.Settled())
	assert.True(t, result.Succeeded())
	require.NotNil(t, result.Account)
	assert.Equal(t, int64(42), result.Account.ID)

	snap := q.Snapshot()
	assert.Equal(t, StatusFresh, snap.Status, "snapshot inside freshness window reuses the record")
	assert.Equal(t, 1, fetcher.callCount())
}

func TestQuery_Refresh_FreshnessWindowSkipsFetch(t *testing.T) {
	store, _ := loggedInStore(t)
	fetcher := &stubFetcher{account: adminAccount()}
	q := New(store, fetcher)

	q.Refresh(context.Background())
	q.Refresh(context.Background())
	assert.Equal(t, 1, fetcher.callCount())

	q.Invalidate()
	q.Refresh(context.Background())
	assert.Equal(t, 2, fetcher.callCount())
}

func TestQuery_Refresh_NoWriteBackWhenProjectionUnchanged(t *testing.T) {
	store, storage := loggedInStore(t)
	fetcher := &stubFetcher{account: adminAccount()}
	q := New(store, fetcher)

	saves := storage.SaveCount()
	result := q.Refresh(context.Background())

	assert.Equal(t, StatusFresh, result.Status)
	assert.Equal(t, saves, storage.SaveCount(),
		"identical projection must not write dependent state")
}

func TestQuery_Refresh_WritesBackOnChange(t *testing.T) {
	store, storage := loggedInStore(t)
	changed := adminAccount()
	changed.Name = "Ada A. Admin"
	fetcher := &stubFetcher{account: changed}
	q := New(store, fetcher)

	saves := storage.SaveCount()
	q.Refresh(context.Background())

	assert.Equal(t, saves+1, storage.SaveCount())
	require.NotNil(t, store.User())
	assert.Equal(t, "Ada A. Admin", store.User().Name)
	assert.True(t, store.IsAuthenticated())
}

func TestQuery_Refresh_ConcurrentCallersShareOneFetch(t *testing.T) {
	store, _ := loggedInStore(t)
	fetcher := &stubFetcher{account: adminAccount(), block: make(chan struct{})}
	q := New(store, fetcher)

	var wg sync.WaitGroup
	results := make([]Result, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = q.Refresh(context.Background())
		}(i)
	}

	// Let all callers pile up on the in-flight fetch before it settles.
	time.Sleep(50 * time.Millisecond)
	close(fetcher.block)
	wg.Wait()

	assert.Equal(t, 1, fetcher.callCount())
	for _, r := range results {
		assert.Equal(t, StatusFresh, r.Status)
	}
}

func TestQuery_Refresh_ErrorSettlesWithoutClearingSession(t *testing.T) {
	store, _ := loggedInStore(t)
	fetchErr := errors.New("backend unavailable")
	q := New(store, &stubFetcher{err: fetchErr})

	result := q.Refresh(context.Background())

	assert.Equal(t, StatusError, result.Status)
	assert.True(t, result.Settled())
	assert.False(t, result.Succeeded())
	assert.ErrorIs(t, result.Err, fetchErr)

	// Credential teardown belongs to the transport layer.
	assert.True(t, store.IsAuthenticated())
	assert.Equal(t, "tok-abc", store.Token())

	snap := q.Snapshot()
	assert.Equal(t, StatusError, snap.Status)
}

func TestQuery_Refresh_ContextCancelledWhileWaiting(t *testing.T) {
	store, _ := loggedInStore(t)
	fetcher := &stubFetcher{account: adminAccount(), block: make(chan struct{})}
	q := New(store, fetcher)

	go q.Refresh(context.Background())
	time.Sleep(20 * time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	result := q.Refresh(ctx)

	assert.Equal(t, StatusError, result.Status)
	assert.ErrorIs(t, result.Err, context.Canceled)

	close(fetcher.block)
}

func TestQuery_Refresh_NoToken(t *testing.T) {
	storage := session.NewMemoryStorage()
	store, err := session.New(storage, nil)
	require.NoError(t, err)

	fetcher := &stubFetcher{account: adminAccount()}
	q := New(store, fetcher)

	result := q.Refresh(context.Background())
	assert.Equal(t, StatusError, result.Status)
	assert.ErrorIs(t, result.Err, ErrNoToken)
	assert.Equal(t, 0, fetcher.callCount())
}

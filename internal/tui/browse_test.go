package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schoolctl/schoolctl/internal/api"
	"github.com/schoolctl/schoolctl/internal/guard"
	"github.com/schoolctl/schoolctl/internal/identity"
	"github.com/schoolctl/schoolctl/internal/session"
)

type staticFetcher struct {
	account *api.Account
	err     error
}

func (f staticFetcher) CurrentUser(ctx context.Context) (*api.Account, error) {
	return f.account, f.err
}

func testAccount() *api.Account {
	return &api.Account{
		ID:     42,
		Email:  "admin@school.example",
		Name:   "Ada Admin",
		Status: api.AccountStatusActive,
	}
}

func noRows(ctx context.Context) ([][]string, error) {
	return nil, nil
}

func newTestModel(t *testing.T, loggedIn bool, fetcher identity.Fetcher) BrowseModel {
	t.Helper()
	store, err := session.New(session.NewMemoryStorage(), nil)
	require.NoError(t, err)
	if loggedIn {
		store.Login(identity.Project(testAccount()), "tok-abc")
	}
	query := identity.New(store, fetcher)
	return NewBrowse(store, query, "Students", []string{"ID", "NAME"}, noRows)
}

func TestBrowse_AnonymousSessionRedirects(t *testing.T) {
	m := newTestModel(t, false, staticFetcher{account: testAccount()})

	assert.True(t, m.Redirected())
	assert.NotNil(t, m.Init(), "init must quit immediately on redirect")
	assert.Contains(t, m.View(), "auth login")
}

func TestBrowse_CachedSessionRendersUnderOverlay(t *testing.T) {
	m := newTestModel(t, true, staticFetcher{account: testAccount()})

	assert.False(t, m.Redirected())
	assert.Equal(t, guard.RenderVerifying, m.decision)
	assert.Contains(t, m.View(), "verifying session")
}

func TestBrowse_IdentitySettledRemovesOverlay(t *testing.T) {
	fetcher := staticFetcher{account: testAccount()}
	m := newTestModel(t, true, fetcher)

	result := m.query.Refresh(context.Background())
	updated, cmd := m.Update(identityMsg{result: result})
	m = updated.(BrowseModel)

	assert.Nil(t, cmd)
	assert.Equal(t, guard.Render, m.decision)
	assert.NotContains(t, m.View(), "verifying session")
}

func TestBrowse_FailedVerificationQuitsToRedirect(t *testing.T) {
	fetcher := staticFetcher{err: errors.New("token expired")}
	m := newTestModel(t, true, fetcher)

	result := m.query.Refresh(context.Background())
	updated, cmd := m.Update(identityMsg{result: result})
	m = updated.(BrowseModel)

	assert.True(t, m.Redirected())
	require.NotNil(t, cmd)
}

func TestBrowse_RowsRendered(t *testing.T) {
	m := newTestModel(t, true, staticFetcher{account: testAccount()})

	updated, _ := m.Update(rowsMsg{rows: [][]string{{"1", "Ada Lovelace"}}})
	m = updated.(BrowseModel)

	view := m.View()
	assert.Contains(t, view, "Ada Lovelace")
	assert.Contains(t, view, "NAME")
}

func TestBrowse_LoadFailureRendered(t *testing.T) {
	m := newTestModel(t, true, staticFetcher{account: testAccount()})

	updated, _ := m.Update(rowsMsg{err: errors.New("backend unavailable")})
	m = updated.(BrowseModel)

	assert.Contains(t, m.View(), "backend unavailable")
}

func TestBrowse_QuitKey(t *testing.T) {
	m := newTestModel(t, true, staticFetcher{account: testAccount()})

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
}

func TestBrowse_RefreshKeyReloadsRows(t *testing.T) {
	m := newTestModel(t, true, staticFetcher{account: testAccount()})
	updated, _ := m.Update(rowsMsg{rows: [][]string{{"1", "Ada"}}})
	m = updated.(BrowseModel)
	require.True(t, m.loaded)

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	m = updated.(BrowseModel)

	assert.False(t, m.loaded)
	require.NotNil(t, cmd)
}

// Package tui renders the interactive browse view for protected
// resource lists. The view is guard-driven: it renders optimistically
// from cached identity under a verification overlay until the identity
// fetch settles, and falls back to a login redirect message when the
// session turns out to be invalid.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/schoolctl/schoolctl/internal/guard"
	"github.com/schoolctl/schoolctl/internal/identity"
	"github.com/schoolctl/schoolctl/internal/session"
)

// RowLoader fetches the rows for the protected list being browsed.
type RowLoader func(ctx context.Context) ([][]string, error)

// identityMsg carries the settled identity query result.
type identityMsg struct {
	result identity.Result
}

// rowsMsg carries the loaded list rows, or the load failure.
type rowsMsg struct {
	rows [][]string
	err  error
}

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99")).Padding(0, 1)
	verifyingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	redirectStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
	colHeaderStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	errStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	helpStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// BrowseModel is the bubbletea model for a protected resource list.
type BrowseModel struct {
	store   *session.Store
	query   *identity.Query
	loader  RowLoader
	title   string
	headers []string

	spinner  spinner.Model
	decision guard.Decision
	result   identity.Result
	rows     [][]string
	loadErr  error
	loaded   bool
	width    int
	quitting bool
}

// NewBrowse creates a browse model for the given resource list.
func NewBrowse(store *session.Store, query *identity.Query, title string, headers []string, loader RowLoader) BrowseModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = verifyingStyle

	m := BrowseModel{
		store:   store,
		query:   query,
		loader:  loader,
		title:   title,
		headers: headers,
		spinner: sp,
	}
	// Initial decision from the synchronous snapshot; with no token this
	// is terminal and no fetch is ever issued.
	m.result = query.Snapshot()
	m.decision = guard.Evaluate(store, m.result)
	return m
}

// Init kicks off the identity verification and the row load. Neither
// blocks rendering: the first frame draws from cached state.
func (m BrowseModel) Init() tea.Cmd {
	if m.decision == guard.Redirect {
		return tea.Quit
	}
	return tea.Batch(m.spinner.Tick, m.verifyIdentity(), m.loadRows())
}

// verifyIdentity settles the identity query off the UI loop.
func (m BrowseModel) verifyIdentity() tea.Cmd {
	return func() tea.Msg {
		return identityMsg{result: m.query.Refresh(context.Background())}
	}
}

// loadRows fetches the list in the background.
func (m BrowseModel) loadRows() tea.Cmd {
	return func() tea.Msg {
		rows, err := m.loader(context.Background())
		return rowsMsg{rows: rows, err: err}
	}
}

// Update handles messages
func (m BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "r":
			m.loaded = false
			m.loadErr = nil
			return m, m.loadRows()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width

	case identityMsg:
		m.result = msg.result
		m.decision = guard.Evaluate(m.store, m.result)
		if m.decision == guard.Redirect {
			m.quitting = true
			return m, tea.Quit
		}

	case rowsMsg:
		m.loaded = true
		m.rows = msg.rows
		m.loadErr = msg.err

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View renders the current state
func (m BrowseModel) View() string {
	if m.decision == guard.Redirect {
		return redirectStyle.Render("Session is not valid. Run 'schoolctl auth login' to sign in.") + "\n"
	}

	s := titleStyle.Render(m.title) + "\n\n"

	if m.decision == guard.RenderVerifying {
		s += m.spinner.View() + verifyingStyle.Render(" verifying session…") + "\n\n"
	}

	switch {
	case m.loadErr != nil:
		s += errStyle.Render("failed to load: "+m.loadErr.Error()) + "\n"
	case !m.loaded:
		s += m.spinner.View() + " loading…\n"
	case len(m.rows) == 0:
		s += helpStyle.Render("no records") + "\n"
	default:
		s += renderTable(m.headers, m.rows)
	}

	s += "\n" + helpStyle.Render("r refresh • q quit") + "\n"
	return s
}

// Redirected reports whether the view ended on a login redirect.
func (m BrowseModel) Redirected() bool {
	return m.decision == guard.Redirect
}

func renderTable(headers []string, rows [][]string) string {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	out := ""
	line := ""
	for i, h := range headers {
		line += pad(h, widths[i]) + "  "
	}
	out += colHeaderStyle.Render(line) + "\n"
	for _, row := range rows {
		line = ""
		for i, cell := range row {
			line += pad(cell, widths[i]) + "  "
		}
		out += line + "\n"
	}
	return out
}

func pad(s string, width int) string {
	for len(s) < width {
		s += " "
	}
	return s
}

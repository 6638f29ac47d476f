package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"scoreline/internal/models"
	"scoreline/internal/tasks"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	MatchListView ViewState = iota
	MatchDetailView
	SnapshotView
	ResultView
)

// Model represents the TUI application state.
type Model struct {
	ctx    context.Context
	view   ViewState
	engine *tasks.FlowEngine
	store  tasks.SnapshotStore

	width  int
	height int

	matchList   list.Model
	matches     []models.Match
	filterInput textinput.Model
	filtering   bool

	detail      *models.Match
	commentList list.Model

	progressChan chan tasks.ProgressUpdate
	progress     tasks.ProgressUpdate
	result       *tasks.SnapshotResult
	err          error

	help help.Model
	keys keyMap
}

type matchesFetchedMsg struct {
	matches []models.Match
	err     error
}

type matchFetchedMsg struct {
	match *models.Match
	err   error
}

type progressUpdateMsg tasks.ProgressUpdate

type snapshotCompleteMsg struct {
	result *tasks.SnapshotResult
	err    error
}

// NewModel creates a new TUI model with the provided dependencies. The store
// may be nil, which disables the snapshot action.
func NewModel(ctx context.Context, engine *tasks.FlowEngine, store tasks.SnapshotStore) *Model {
	input := textinput.New()
	input.Placeholder = "filter by team or competition"
	input.Prompt = "/ "
	input.CharLimit = 64

	return &Model{
		ctx:         ctx,
		view:        MatchListView,
		engine:      engine,
		store:       store,
		filterInput: input,
		help:        help.New(),
		keys:        newKeyMap(),
	}
}

// Init initializes the TUI by fetching the match list.
func (m *Model) Init() tea.Cmd {
	return m.fetchMatches()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.matchList.Width() == 0 {
			m.matchList.SetSize(msg.Width-4, msg.Height-8)
		}
		if m.commentList.Width() == 0 {
			m.commentList.SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case MatchListView:
			return m.handleMatchListKeys(msg)
		case MatchDetailView:
			return m.handleDetailKeys(msg)
		case ResultView:
			return m.handleResultKeys(msg)
		}

	case matchesFetchedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		m.matches = msg.matches
		m.matchList = list.New(matchItems(msg.matches), list.NewDefaultDelegate(), 0, 0)
		m.matchList.Title = "Matches"
		m.matchList.SetFilteringEnabled(false)
		m.matchList.SetSize(m.width-4, m.height-8)
		return m, nil

	case matchFetchedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.view = MatchListView
			return m, nil
		}
		m.detail = msg.match
		items := make([]list.Item, len(msg.match.Comments))
		for i, c := range msg.match.Comments {
			items[i] = commentItem{comment: c}
		}
		m.commentList = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.commentList.Title = fmt.Sprintf("Comments on '%s'", msg.match.Headline())
		m.commentList.SetSize(m.width-4, m.height-8)
		m.view = MatchDetailView
		return m, nil

	case progressUpdateMsg:
		m.progress = tasks.ProgressUpdate(msg)
		return m, m.waitForProgress()

	case snapshotCompleteMsg:
		m.result = msg.result
		m.err = msg.err
		m.view = ResultView
		m.progressChan = nil
		return m, nil
	}

	return m.updateLists(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil && m.view != ResultView && m.view != MatchListView {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}

	switch m.view {
	case MatchListView:
		return m.renderMatchList()
	case MatchDetailView:
		return m.renderDetail()
	case SnapshotView:
		return m.renderSnapshot()
	case ResultView:
		return m.renderResult()
	default:
		return ""
	}
}

func (m *Model) handleMatchListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.filtering {
		switch msg.String() {
		case "esc":
			m.filtering = false
			m.filterInput.SetValue("")
			m.filterInput.Blur()
			m.matchList.SetItems(matchItems(m.matches))
			return m, nil
		case "enter":
			m.filtering = false
			m.filterInput.Blur()
			return m, nil
		}

		var cmd tea.Cmd
		m.filterInput, cmd = m.filterInput.Update(msg)
		filtered := models.FilterMatches(m.matches, m.filterInput.Value())
		m.matchList.SetItems(matchItems(filtered))
		return m, cmd
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "/":
		m.filtering = true
		return m, m.filterInput.Focus()
	case "s":
		if m.store != nil {
			m.view = SnapshotView
			return m, m.startSnapshot()
		}
	case "r":
		return m, m.fetchMatches()
	case "enter":
		selected := m.matchList.SelectedItem()
		if selected != nil {
			if item, ok := selected.(matchItem); ok {
				return m, m.fetchMatch(item.match.ID)
			}
		}
	}

	var cmd tea.Cmd
	m.matchList, cmd = m.matchList.Update(msg)
	return m, cmd
}

func (m *Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = MatchListView
		m.detail = nil
		return m, nil
	}

	var cmd tea.Cmd
	m.commentList, cmd = m.commentList.Update(msg)
	return m, cmd
}

func (m *Model) handleResultKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "r":
		m.view = MatchListView
		m.result = nil
		m.err = nil
		return m, m.fetchMatches()
	}
	return m, nil
}

func (m *Model) updateLists(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case MatchListView:
		m.matchList, cmd = m.matchList.Update(msg)
	case MatchDetailView:
		m.commentList, cmd = m.commentList.Update(msg)
	}
	return m, cmd
}

func (m *Model) fetchMatches() tea.Cmd {
	return func() tea.Msg {
		matches, err := m.engine.Matches().List(m.ctx)
		return matchesFetchedMsg{matches: matches, err: err}
	}
}

func (m *Model) fetchMatch(id int64) tea.Cmd {
	return func() tea.Msg {
		match, err := m.engine.Matches().Get(m.ctx, id)
		return matchFetchedMsg{match: match, err: err}
	}
}

func (m *Model) startSnapshot() tea.Cmd {
	m.progressChan = make(chan tasks.ProgressUpdate, 50)
	progressChan := m.progressChan

	go func() {
		result, err := m.engine.Snapshot(m.ctx, m.store, tasks.SnapshotOptions{Detail: true}, progressChan)
		m.result = result
		m.err = err
		close(progressChan)
	}()

	return m.waitForProgress()
}

func (m *Model) waitForProgress() tea.Cmd {
	return func() tea.Msg {
		if m.progressChan == nil {
			return snapshotCompleteMsg{result: m.result, err: m.err}
		}

		update, ok := <-m.progressChan
		if !ok {
			return snapshotCompleteMsg{result: m.result, err: m.err}
		}
		return progressUpdateMsg(update)
	}
}

func (m *Model) renderMatchList() string {
	header := ""
	if m.filtering || m.filterInput.Value() != "" {
		header = m.filterInput.View() + "\n"
	}
	if m.err != nil {
		header += styles.warn.Render(fmt.Sprintf("Error: %v", m.err)) + "\n"
	}

	helpKeys := []key.Binding{m.keys.enter, m.keys.filter, m.keys.snapshot, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s%s\n\n%s", header, m.matchList.View(), helpView)
}

func (m *Model) renderDetail() string {
	if m.detail == nil {
		return ""
	}

	title := styles.title.Render(m.detail.Headline())
	info := fmt.Sprintf("Competition: %s\nStatus: %s", m.detail.CompetitionName(), m.detail.Status)
	if m.detail.UTCDate != nil {
		info += fmt.Sprintf("\nKickoff: %s", m.detail.UTCDate.UTC().Format("2006-01-02 15:04 MST"))
	}

	helpKeys := []key.Binding{m.keys.back, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n%s\n\n%s\n\n%s", title, info, m.commentList.View(), helpView)
}

func (m *Model) renderSnapshot() string {
	title := styles.title.Render("Snapshotting Matches")

	var phase string
	switch m.progress.Phase {
	case tasks.PhaseFetchList:
		phase = "Fetching match list..."
	case tasks.PhaseFetchDetail, tasks.PhasePersist:
		phase = fmt.Sprintf("Saving matches (%d/%d)", m.progress.Step, m.progress.Total)
	default:
		phase = "Processing..."
	}

	return fmt.Sprintf("%s\n\n%s\n%s", title, phase, m.progress.Message)
}

func (m *Model) renderResult() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Snapshot failed: %v\n\nPress r to retry, q to quit", m.err))
	}

	if m.result == nil {
		return styles.err.Render("No result available\n\nPress r to retry, q to quit")
	}

	title := styles.ok.Render("✓ Snapshot Complete!")
	info := fmt.Sprintf("\nSaved: %d/%d matches", m.result.Saved, m.result.Total)

	var failed string
	if m.result.Failed > 0 || len(m.result.Errors) > 0 {
		failed = fmt.Sprintf("\n\n%s", styles.warn.Render(fmt.Sprintf("%d failures:", len(m.result.Errors))))
		for _, err := range m.result.Errors {
			failed += fmt.Sprintf("\n  • %v", err)
		}
	}

	helpKeys := []key.Binding{m.keys.restart, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s%s%s\n\n%s", title, info, failed, helpView)
}

// Package tui provides the interactive terminal interface for nmtui.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/notmuch-tui/nmtui/internal/message"
	"github.com/notmuch-tui/nmtui/internal/notmuch"
	"github.com/notmuch-tui/nmtui/internal/render"
)

// fetchAheadMargin is how close the selection may get to the end of the
// loaded rows before a larger re-query is issued (infinite scroll).
const fetchAheadMargin = 5

// defaultResultLimit is the initial result window when Options doesn't
// override it.
const defaultResultLimit = 50

// flashDuration is how long a flash notification stays on the status line.
// A variable so tests can shrink the tick delay.
var flashDuration = 4 * time.Second

// viewLevel represents the current navigation depth.
type viewLevel int

const (
	levelList viewLevel = iota
	levelPager
	levelError // Full-screen query failure; any key acknowledges
)

// modalType represents the type of modal dialog.
type modalType int

const (
	modalNone modalType = iota
	modalAttachments
)

// Options configuration for the TUI.
type Options struct {
	// Query is the initial search query.
	Query string

	// InitialLimit is the first result window size; it grows as the user
	// scrolls toward the end of the loaded rows.
	InitialLimit int

	// OpenID, when non-empty, skips the result list and opens the pager
	// directly on one message (the `view` command).
	OpenID string

	Version string
}

// pagerDoc holds one extracted message: the headers and body are kept
// unflowed so a terminal resize can re-wrap without re-fetching.
type pagerDoc struct {
	idTerm      string
	subject     string
	from        string
	to          string
	date        string
	body        string
	attachments []message.Attachment
}

// Model is the main TUI model following the Elm architecture.
type Model struct {
	index notmuch.Index

	version string

	// Result list state
	query        string
	rows         []notmuch.SearchRow
	cursor       int
	scrollOffset int
	loadLimit    int
	initialLimit int
	fullyLoaded  bool
	loadingMore  bool

	// Pager state
	doc      pagerDoc
	lines    []string
	pagerTop int

	// Navigation
	level    viewLevel
	listOnly bool // true when started on a list (error view quits instead of going back)
	viewOnly bool // true when started directly on one message

	// Modal state
	modal       modalType
	modalCursor int

	// Inline search bar
	searchActive bool
	searchInput  textinput.Model

	// Terminal dimensions
	width  int
	height int

	// Loading state
	loading bool
	errMsg  string

	// Request tracking to ignore stale async results
	searchRequestID uint64
	showRequestID   uint64

	// Flash message (temporary notification)
	flashMessage   string
	flashExpiresAt time.Time

	quitting bool
}

// New creates a new TUI model with the given options.
func New(index notmuch.Index, opts Options) Model {
	ti := textinput.New()
	ti.Placeholder = "search"
	ti.CharLimit = 200
	ti.Width = 50

	limit := opts.InitialLimit
	if limit <= 0 {
		limit = defaultResultLimit
	}

	m := Model{
		index:        index,
		version:      opts.Version,
		query:        opts.Query,
		loadLimit:    limit,
		initialLimit: limit,
		searchInput:  ti,
		width:        80,
		height:       24,
		loading:      true,
	}
	if opts.OpenID != "" {
		m.level = levelPager
		m.viewOnly = true
		m.doc.idTerm = opts.OpenID
	} else {
		m.listOnly = true
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	if m.viewOnly {
		return m.loadMessage(m.doc.idTerm)
	}
	return m.loadSearch()
}

// pageSize is the number of result rows visible at once: terminal height
// minus the header and status lines.
func (m Model) pageSize() int {
	h := m.height - 2
	if h < 1 {
		h = 1
	}
	return h
}

// pagerPageSize is the number of body lines visible at once in the pager:
// terminal height minus the status line.
func (m Model) pagerPageSize() int {
	h := m.height - 1
	if h < 1 {
		h = 1
	}
	return h
}

// searchLoadedMsg is sent when search results are loaded.
type searchLoadedMsg struct {
	rows      []notmuch.SearchRow
	limit     int
	err       error
	requestID uint64 // To detect stale responses
}

// messageLoadedMsg is sent when a message has been extracted.
type messageLoadedMsg struct {
	doc       pagerDoc
	err       error
	requestID uint64 // To detect stale responses
}

// saveResultMsg carries the per-file summary of an attachment save.
type saveResultMsg struct {
	summary string
}

// flashClearMsg clears the flash message after timeout.
type flashClearMsg struct{}

// loadSearch runs the current query with the current load limit.
func (m Model) loadSearch() tea.Cmd {
	requestID := m.searchRequestID
	query := m.query
	limit := m.loadLimit
	index := m.index
	return func() (msg tea.Msg) {
		// Recover from panics so the TUI never becomes unresponsive
		defer func() {
			if r := recover(); r != nil {
				msg = searchLoadedMsg{err: fmt.Errorf("search panic: %v", r), requestID: requestID}
			}
		}()
		rows, err := index.Search(context.Background(), query, limit)
		return searchLoadedMsg{rows: rows, limit: limit, err: err, requestID: requestID}
	}
}

// loadMessage shows and extracts one message for the pager.
func (m Model) loadMessage(idTerm string) tea.Cmd {
	requestID := m.showRequestID
	index := m.index
	return func() (msg tea.Msg) {
		defer func() {
			if r := recover(); r != nil {
				msg = messageLoadedMsg{err: fmt.Errorf("show panic: %v", r), requestID: requestID}
			}
		}()

		shown, err := index.Show(context.Background(), idTerm)
		if err != nil {
			return messageLoadedMsg{err: err, requestID: requestID}
		}

		body, attachments := message.ExtractAll(shown.Body, func(partID int) ([]byte, error) {
			return index.PartContent(context.Background(), idTerm, partID)
		})

		return messageLoadedMsg{
			doc: pagerDoc{
				idTerm:      idTerm,
				subject:     shown.Subject,
				from:        shown.From,
				to:          shown.To,
				date:        shown.Date,
				body:        body,
				attachments: attachments,
			},
			requestID: requestID,
		}
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.reflowPager()
		m.clampPagerTop()
		m.ensureCursorVisible()
		return m, nil

	case searchLoadedMsg:
		return m.handleSearchLoaded(msg)

	case messageLoadedMsg:
		return m.handleMessageLoaded(msg)

	case saveResultMsg:
		m.modal = modalNone
		return m.showFlash(msg.summary)

	case flashClearMsg:
		if time.Now().After(m.flashExpiresAt) {
			m.flashMessage = ""
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleSearchLoaded(msg searchLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.requestID != m.searchRequestID {
		return m, nil // Stale response from a superseded query
	}
	m.loading = false
	m.loadingMore = false
	if msg.err != nil {
		m.errMsg = msg.err.Error()
		m.level = levelError
		return m, nil
	}

	m.rows = msg.rows
	m.fullyLoaded = len(msg.rows) < msg.limit
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.ensureCursorVisible()
	return m, nil
}

func (m Model) handleMessageLoaded(msg messageLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.requestID != m.showRequestID {
		return m, nil
	}
	m.loading = false
	if msg.err != nil {
		m.errMsg = msg.err.Error()
		m.level = levelError
		return m, nil
	}

	m.doc = msg.doc
	m.level = levelPager
	m.pagerTop = 0
	m.reflowPager()
	return m, nil
}

// reflowPager rebuilds the pager's line buffer from the stored document at
// the current terminal width.
func (m *Model) reflowPager() {
	if m.doc.body == "" {
		return // No message extracted yet
	}
	m.lines = render.Reflow(m.composeDoc(), m.width)
}

// composeDoc renders the extracted message as one raw text document:
// headers, attachment manifest, separator, body.
func (m Model) composeDoc() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Subject: %s\n", m.doc.subject)
	if m.doc.from != "" {
		fmt.Fprintf(&sb, "From: %s\n", m.doc.from)
	}
	if m.doc.to != "" {
		fmt.Fprintf(&sb, "To: %s\n", m.doc.to)
	}
	if m.doc.date != "" {
		fmt.Fprintf(&sb, "Date: %s\n", m.doc.date)
	}

	if len(m.doc.attachments) > 0 {
		sb.WriteString("\nAttachments:\n")
		for i, att := range m.doc.attachments {
			if att.ContentType != "" {
				fmt.Fprintf(&sb, "[%d] %s (%s)\n", i+1, att.Filename, att.ContentType)
			} else {
				fmt.Fprintf(&sb, "[%d] %s\n", i+1, att.Filename)
			}
		}
	}

	sepWidth := m.width
	if sepWidth > 80 {
		sepWidth = 80
	}
	if sepWidth < 1 {
		sepWidth = 1
	}
	sb.WriteString("\n" + strings.Repeat("-", sepWidth) + "\n\n")
	sb.WriteString(m.doc.body)
	return sb.String()
}

// showFlash displays a transient status-line notification.
func (m Model) showFlash(text string) (tea.Model, tea.Cmd) {
	m.flashMessage = text
	m.flashExpiresAt = time.Now().Add(flashDuration)
	return m, tea.Tick(flashDuration, func(time.Time) tea.Msg {
		return flashClearMsg{}
	})
}

// maybeFetchMore grows the result window when the selection nears the end
// of the loaded rows. The query re-runs from scratch with the larger limit
// so ordering stays stable even if the underlying result set changed.
func (m *Model) maybeFetchMore() tea.Cmd {
	if m.fullyLoaded || m.loadingMore || len(m.rows) == 0 {
		return nil
	}
	if m.cursor < len(m.rows)-fetchAheadMargin {
		return nil
	}
	m.loadingMore = true
	m.loadLimit += m.pageSize()
	m.searchRequestID++
	return m.loadSearch()
}

// Quitting reports whether the user quit the session (used for exit codes).
func (m Model) Quitting() bool {
	return m.quitting
}

// Err reports the failure the session ended on, if any. A session that
// quits from the full-screen error view surfaces that error to the caller
// so the process can exit non-zero.
func (m Model) Err() error {
	if m.quitting && m.errMsg != "" {
		return errors.New(m.errMsg)
	}
	return nil
}

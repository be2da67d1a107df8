package tui

import (
	"fmt"
	"regexp"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/notmuch-tui/nmtui/internal/message"
	"github.com/notmuch-tui/nmtui/internal/notmuch"
	"github.com/notmuch-tui/nmtui/internal/notmuch/notmuchtest"
)

func init() {
	// Keep flash ticks from stalling drained command chains.
	flashDuration = time.Millisecond
}

// colorProfileMu serializes tests that mutate the global lipgloss color
// profile.
var colorProfileMu sync.Mutex

// forceColorProfile pins lipgloss to plain ASCII output so rendered views
// can be asserted on without ANSI noise. Restored via t.Cleanup.
func forceColorProfile(t *testing.T) {
	t.Helper()
	colorProfileMu.Lock()
	orig := lipgloss.ColorProfile()
	lipgloss.SetColorProfile(termenv.Ascii)
	t.Cleanup(func() {
		lipgloss.SetColorProfile(orig)
		colorProfileMu.Unlock()
	})
}

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;?]*[ -/]*[@-~]`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

// testRows builds n distinct search rows, newest first.
func testRows(n int) []notmuch.SearchRow {
	rows := make([]notmuch.SearchRow, n)
	for i := range rows {
		rows[i] = notmuch.SearchRow{
			ID:          fmt.Sprintf("thread:%04d", i),
			Authors:     fmt.Sprintf("author%d", i),
			Subject:     fmt.Sprintf("subject %d", i),
			Tags:        []string{"inbox"},
			Timestamp:   int64(1700000000 - i),
			DateDisplay: "Today",
		}
	}
	return rows
}

// modelConfig holds construction knobs for test models.
type modelConfig struct {
	rows        []notmuch.SearchRow
	msg         *notmuch.Message
	parts       map[int][]byte
	width       int
	height      int
	limit       int
	fullyLoaded bool
	query       string
}

// newListModel builds a Model sitting on a loaded result list backed by a
// mock index. Defaults: 80x12 terminal (page size 10), query "tag:inbox".
func newListModel(t *testing.T, cfg modelConfig) (Model, *notmuchtest.MockIndex) {
	t.Helper()
	if cfg.width == 0 {
		cfg.width = 80
	}
	if cfg.height == 0 {
		cfg.height = 12
	}
	if cfg.query == "" {
		cfg.query = "tag:inbox"
	}
	if cfg.limit == 0 {
		cfg.limit = 10
	}

	mock := &notmuchtest.MockIndex{
		SearchRows: cfg.rows,
		Message:    cfg.msg,
		Parts:      cfg.parts,
	}

	m := New(mock, Options{Query: cfg.query, InitialLimit: cfg.limit})
	m.width = cfg.width
	m.height = cfg.height
	m.loading = false

	loaded := cfg.rows
	if len(loaded) > cfg.limit {
		loaded = loaded[:cfg.limit]
	}
	m.rows = loaded
	m.fullyLoaded = cfg.fullyLoaded || len(loaded) < cfg.limit
	return m, mock
}

// keyMsg builds a KeyMsg for a named key ("j", "enter", "pgdown", ...).
func keyMsg(key string) tea.KeyMsg {
	switch key {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "pgup":
		return tea.KeyMsg{Type: tea.KeyPgUp}
	case "pgdown":
		return tea.KeyMsg{Type: tea.KeyPgDown}
	case "home":
		return tea.KeyMsg{Type: tea.KeyHome}
	case "end":
		return tea.KeyMsg{Type: tea.KeyEnd}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "ctrl+f":
		return tea.KeyMsg{Type: tea.KeyCtrlF}
	case "ctrl+b":
		return tea.KeyMsg{Type: tea.KeyCtrlB}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
}

// press applies one key and runs the returned command chain to completion,
// feeding resulting messages back into the model like the bubbletea
// runtime would.
func press(t *testing.T, m Model, key string) Model {
	t.Helper()
	return drain(t, m, keyMsg(key))
}

// drain applies msg and then any messages produced by the resulting
// commands (batches included) until no commands remain.
func drain(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	queue := []tea.Msg{msg}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]

		updated, cmd := m.Update(next)
		m = updated.(Model)
		queue = append(queue, collect(cmd)...)
	}
	return m
}

// collect runs a command tree and gathers its emitted messages, skipping
// scheduled ticks so tests stay deterministic.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	out := cmd()
	switch typed := out.(type) {
	case nil:
		return nil
	case tea.BatchMsg:
		var msgs []tea.Msg
		for _, sub := range typed {
			msgs = append(msgs, collect(sub)...)
		}
		return msgs
	case flashClearMsg:
		return nil // Don't fast-forward flash expiry
	default:
		return []tea.Msg{out}
	}
}

func resizeMsg(width, height int) tea.WindowSizeMsg {
	return tea.WindowSizeMsg{Width: width, Height: height}
}

// plainPart is shorthand for an inline text part.
func plainPart(id int, content string) *notmuch.Part {
	return &notmuch.Part{ID: id, ContentType: "text/plain", Content: content}
}

// testMessage builds a simple one-part message.
func testMessage(subject, body string, atts ...message.Attachment) *notmuch.Message {
	parts := []*notmuch.Part{plainPart(1, body)}
	for _, att := range atts {
		parts = append(parts, &notmuch.Part{
			ID:          att.PartID,
			ContentType: att.ContentType,
			Filename:    att.Filename,
			Disposition: "attachment",
		})
	}
	return &notmuch.Message{
		Subject: subject,
		From:    "sender@example.com",
		To:      "me@example.com",
		Date:    "Tue, 14 Nov 2023 10:13:20 -0000",
		Body:    parts,
	}
}

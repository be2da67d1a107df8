package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// handleKey routes a key event to the active view's handler.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	if m.searchActive {
		return m.handleSearchInputKeys(msg)
	}
	if m.modal == modalAttachments {
		return m.handleAttachmentModalKeys(msg)
	}

	switch m.level {
	case levelError:
		return m.handleErrorKeys(msg)
	case levelPager:
		return m.handlePagerKeys(msg)
	default:
		return m.handleListKeys(msg)
	}
}

// handleErrorKeys dismisses the full-screen error view. A failure with no
// result list to fall back to ends the session.
func (m Model) handleErrorKeys(_ tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.viewOnly || len(m.rows) == 0 {
		// Keep errMsg so the command layer can exit non-zero.
		m.quitting = true
		return m, tea.Quit
	}
	m.errMsg = ""
	m.level = levelList
	return m, nil
}

// handleListKeys handles keys in the result list view.
func (m Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if m.navigateList(key) {
		return m, m.maybeFetchMore()
	}

	switch key {
	case "q":
		m.quitting = true
		return m, tea.Quit

	case "/":
		m.searchActive = true
		m.searchInput.SetValue("")
		return m, m.searchInput.Focus()

	case "enter":
		if len(m.rows) == 0 || m.cursor >= len(m.rows) {
			return m, nil
		}
		m.loading = true
		m.showRequestID++
		return m, m.loadMessage(m.rows[m.cursor].ID)
	}
	return m, nil
}

// handlePagerKeys handles keys in the message pager.
func (m Model) handlePagerKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if m.navigatePager(key) {
		return m, nil
	}

	switch key {
	case "q", "esc":
		if m.viewOnly {
			m.quitting = true
			return m, tea.Quit
		}
		// Back to the result list; its state is untouched.
		m.level = levelList
		return m, nil

	case "Q":
		m.quitting = true
		return m, tea.Quit

	case "s":
		if len(m.doc.attachments) == 0 {
			return m.showFlash("No attachments.")
		}
		m.modal = modalAttachments
		m.modalCursor = 0
		return m, nil
	}
	return m, nil
}

// handleSearchInputKeys handles keys while the inline search bar is active.
func (m Model) handleSearchInputKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		query := m.searchInput.Value()
		m.searchActive = false
		m.searchInput.Blur()
		if query == "" {
			return m, nil
		}
		// New query: replace everything, reset the result window.
		m.query = query
		m.rows = nil
		m.cursor = 0
		m.scrollOffset = 0
		m.loadLimit = m.initialLimit
		m.fullyLoaded = false
		m.loading = true
		m.searchRequestID++
		return m, m.loadSearch()

	case "esc":
		m.searchActive = false
		m.searchInput.Blur()
		return m, nil

	default:
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		return m, cmd
	}
}

// handleAttachmentModalKeys handles the save-attachment picker.
func (m Model) handleAttachmentModalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	count := len(m.doc.attachments)

	switch msg.String() {
	case "esc", "q":
		m.modal = modalNone
		return m, nil

	case "up", "k":
		if m.modalCursor > 0 {
			m.modalCursor--
		}
		return m, nil

	case "down", "j":
		if m.modalCursor < count-1 {
			m.modalCursor++
		}
		return m, nil

	case "enter":
		if m.modalCursor >= count {
			return m, nil
		}
		return m, m.saveAttachments(m.doc.attachments[m.modalCursor : m.modalCursor+1])

	case "a":
		return m, m.saveAttachments(m.doc.attachments)
	}
	return m, nil
}

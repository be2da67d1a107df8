package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Monochrome theme - adaptive for light and dark terminals
var (
	bgBase   = lipgloss.AdaptiveColor{Light: "#ffffff", Dark: "#000000"}
	bgCursor = lipgloss.AdaptiveColor{Light: "#e0e0e0", Dark: "#282828"}

	titleBarStyle = lipgloss.NewStyle().
			Bold(true).
			Background(lipgloss.AdaptiveColor{Light: "#e0e0e0", Dark: "#333333"}).
			Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#ffffff"}).
			Padding(0, 1)

	cursorRowStyle = lipgloss.NewStyle().
			Background(bgCursor)

	normalRowStyle = lipgloss.NewStyle().
			Background(bgBase)

	footerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#555555", Dark: "#999999"}).
			Background(bgBase).
			Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Background(bgBase)

	loadingStyle = lipgloss.NewStyle().
			Italic(true).
			Background(bgBase)

	flashStyle = lipgloss.NewStyle().
			Italic(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#996600", Dark: "#ffcc00"}).
			Background(bgBase)

	modalTitleStyle = lipgloss.NewStyle().
			Bold(true)
)

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	if m.modal == modalAttachments {
		return m.renderAttachmentModal()
	}

	switch m.level {
	case levelError:
		return m.renderError()
	case levelPager:
		return m.renderPager()
	default:
		return m.renderList()
	}
}

// renderError paints the full-screen query-failure view.
func (m Model) renderError() string {
	var sb strings.Builder
	sb.WriteString(errorStyle.Render("Error"))
	sb.WriteString("\n\n")
	for _, line := range strings.Split(m.errMsg, "\n") {
		sb.WriteString(truncateRunes(line, m.width-1))
		sb.WriteByte('\n')
	}
	sb.WriteString("\n")
	sb.WriteString(footerStyle.Render("Press any key to continue"))
	return sb.String()
}

// renderList paints the search result list: header, rows, status line.
func (m Model) renderList() string {
	var sb strings.Builder

	header := fmt.Sprintf("Results: %s (%d found)", m.query, len(m.rows))
	if !m.fullyLoaded && len(m.rows) > 0 {
		header = fmt.Sprintf("Results: %s (%d+ found)", m.query, len(m.rows))
	}
	sb.WriteString(titleBarStyle.Render(padRight(header, m.width-2)))
	sb.WriteByte('\n')

	switch {
	case m.loading && len(m.rows) == 0:
		sb.WriteString(loadingStyle.Render(fmt.Sprintf("Searching for: %q...", m.query)))
		sb.WriteByte('\n')
	case len(m.rows) == 0:
		sb.WriteString(fmt.Sprintf("No results found for: %s", m.query))
		sb.WriteByte('\n')
	default:
		pageSize := m.pageSize()
		for i := 0; i < pageSize; i++ {
			idx := m.scrollOffset + i
			if idx >= len(m.rows) {
				sb.WriteByte('\n')
				continue
			}
			line := truncateRunes(formatRow(idx, m.rows[idx]), m.width)
			if idx == m.cursor {
				sb.WriteString(cursorRowStyle.Render(padRight(line, m.width)))
			} else {
				sb.WriteString(normalRowStyle.Render(line))
			}
			sb.WriteByte('\n')
		}
	}

	sb.WriteString(m.renderListFooter())
	return sb.String()
}

// renderListFooter builds the list status line: search bar, fetch
// indicator, flash, or the key help.
func (m Model) renderListFooter() string {
	if m.searchActive {
		return footerStyle.Render("/" + m.searchInput.View())
	}
	if m.loadingMore {
		return footerStyle.Render("Fetching more results...")
	}
	if m.flashMessage != "" {
		return flashStyle.Render(truncateRunes(m.flashMessage, m.width-2))
	}
	return footerStyle.Render("[j/k] Nav  [Enter] Open  [C-f/C-b] Page  [/] Search  [q] Quit")
}

// renderPager paints the message view: body lines then status line.
func (m Model) renderPager() string {
	var sb strings.Builder

	if m.loading {
		sb.WriteString(loadingStyle.Render("Loading message..."))
		sb.WriteByte('\n')
		return sb.String()
	}

	pageSize := m.pagerPageSize()
	for i := 0; i < pageSize; i++ {
		idx := m.pagerTop + i
		if idx >= len(m.lines) {
			sb.WriteByte('\n')
			continue
		}
		sb.WriteString(truncateRunes(m.lines[idx], m.width))
		sb.WriteByte('\n')
	}

	if m.flashMessage != "" {
		sb.WriteString(flashStyle.Render(truncateRunes(m.flashMessage, m.width-2)))
	} else {
		help := "[j/k] Scroll  [C-f/C-b] Page  [s] Save attachment  [q] Back  [Q] Quit"
		if m.viewOnly {
			help = "[j/k] Scroll  [C-f/C-b] Page  [s] Save attachment  [q] Quit"
		}
		pos := fmt.Sprintf(" (%d/%d)", m.pagerTop+1, len(m.lines))
		sb.WriteString(footerStyle.Render(truncateRunes(help+pos, m.width-2)))
	}
	return sb.String()
}

// renderAttachmentModal paints the attachment picker over a cleared
// screen, mirroring the pager's save prompt.
func (m Model) renderAttachmentModal() string {
	var sb strings.Builder
	sb.WriteString(modalTitleStyle.Render("Attachments:"))
	sb.WriteByte('\n')

	for i, att := range m.doc.attachments {
		line := fmt.Sprintf("%d. %s", i+1, att.Filename)
		if att.ContentType != "" {
			line += fmt.Sprintf(" (%s)", att.ContentType)
		}
		line = truncateRunes(line, m.width-2)
		if i == m.modalCursor {
			sb.WriteString(cursorRowStyle.Render(padRight(line, m.width-2)))
		} else {
			sb.WriteString(line)
		}
		sb.WriteByte('\n')
	}

	sb.WriteByte('\n')
	sb.WriteString(footerStyle.Render("[Enter] Save selected  [a] Save all  [Esc] Cancel"))
	return sb.String()
}

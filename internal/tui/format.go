package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
	"github.com/notmuch-tui/nmtui/internal/notmuch"
)

// padRight pads a string with spaces to fill width terminal cells.
// Uses lipgloss.Width to correctly handle ANSI codes and full-width
// characters.
func padRight(s string, width int) string {
	sw := lipgloss.Width(s)
	if sw >= width {
		return ansi.Truncate(s, width, "")
	}
	return s + strings.Repeat(" ", width-sw)
}

// truncateRunes truncates a string to fit within maxWidth terminal cells,
// sanitizing control characters that could break the display layout.
func truncateRunes(s string, maxWidth int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", "")
	s = strings.ReplaceAll(s, "\t", " ")

	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth <= 3 {
		return runewidth.Truncate(s, maxWidth, "")
	}
	return runewidth.Truncate(s, maxWidth, "...")
}

// formatRow renders one search result line:
// "  3. Today 10:13  Ana, Bob          | Subject here (inbox, unread)".
func formatRow(index int, row notmuch.SearchRow) string {
	authors := runewidth.FillRight(truncateRunes(row.Authors, 20), 20)
	line := fmt.Sprintf("%3d. %-12s %s | %s", index+1, truncateRunes(row.DateDisplay, 12), authors, row.Subject)
	if len(row.Tags) > 0 {
		line += " (" + strings.Join(row.Tags, ", ") + ")"
	}
	return line
}

package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/notmuch-tui/nmtui/internal/message"
)

// fallbackAttachmentName is used when a part carries no filename.
const fallbackAttachmentName = "attachment.bin"

// saveAttachments writes the selected attachments to the current working
// directory, fetching each part's raw bytes from the index tool. Failures
// are per-file: one bad part never aborts the rest. Existing files are
// overwritten.
func (m Model) saveAttachments(selected []message.Attachment) tea.Cmd {
	index := m.index
	idTerm := m.doc.idTerm
	return func() tea.Msg {
		results := make([]string, 0, len(selected))
		for _, att := range selected {
			name := filepath.Base(att.Filename)
			if name == "" || name == "." || name == string(filepath.Separator) {
				name = fallbackAttachmentName
			}

			data, err := index.PartContent(context.Background(), idTerm, att.PartID)
			if err != nil {
				results = append(results, fmt.Sprintf("%s: fetch failed: %v", name, err))
				continue
			}
			if err := os.WriteFile(name, data, 0o644); err != nil {
				results = append(results, fmt.Sprintf("%s: %v", name, err))
				continue
			}
			abs, err := filepath.Abs(name)
			if err != nil {
				abs = name
			}
			results = append(results, "saved "+abs)
		}
		return saveResultMsg{summary: strings.Join(results, "; ")}
	}
}

package cmd

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/notmuch-tui/nmtui/internal/config"
	"github.com/notmuch-tui/nmtui/internal/notmuch"
	"github.com/notmuch-tui/nmtui/internal/tui"
	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search [terms...]",
	Short: "Browse search results in the interactive list",
	Long: `Browse notmuch search results in an interactive list.

With no terms, the configured default query is used (tag:inbox minus the
excluded tags). Terms are joined with spaces and passed to notmuch
unchanged, so the full notmuch query syntax is available:

  nmtui search from:alice tag:unread
  nmtui search 'subject:"quarterly report"'

Keys:
  j/k, arrows   Move selection
  C-f/C-b       Page down/up
  g/G           First/last result
  Enter         Open the selected message
  /             New search query
  q             Quit

Scrolling past the end of the loaded results fetches more automatically.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(tui.Options{
			Query:        resolveQuery(cfg, args),
			InitialLimit: cfg.Search.ResultLimit,
			Version:      Version,
		})
	},
}

// resolveQuery joins the command-line terms into one notmuch query, falling
// back to the configured default when none were given.
func resolveQuery(cfg *config.Config, args []string) string {
	if query := strings.TrimSpace(strings.Join(args, " ")); query != "" {
		return query
	}
	return cfg.DefaultSearchQuery()
}

// runTUI starts the full-screen interface with the configured index tool.
func runTUI(opts tui.Options) error {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return fmt.Errorf("stdout is not a terminal (nmtui is interactive-only)")
	}

	logger.Debug("starting tui", "query", opts.Query, "open_id", opts.OpenID)

	client := &notmuch.Client{Bin: cfg.Notmuch.Bin}
	model := tui.New(client, opts)
	p := tea.NewProgram(model, tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	if m, ok := final.(tui.Model); ok {
		if err := m.Err(); err != nil {
			return err
		}
	}
	return nil
}

func init() {
	rootCmd.AddCommand(searchCmd)
}

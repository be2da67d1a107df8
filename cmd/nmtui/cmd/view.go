package cmd

import (
	"github.com/notmuch-tui/nmtui/internal/tui"
	"github.com/spf13/cobra"
)

var viewCmd = &cobra.Command{
	Use:   "view <id-term>",
	Short: "Open one message directly in the pager",
	Long: `Open one message directly in the pager, skipping the result list.

The argument is a notmuch id term, e.g. id:20230101120000.abc@example.com
or thread:0000000000001234. HTML bodies are converted to text; press s to
save attachments into the current directory.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(tui.Options{
			OpenID:  args[0],
			Version: Version,
		})
	},
}

func init() {
	rootCmd.AddCommand(viewCmd)
}

package cli

import (
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-index pages as their files change",
	Long: `Watches the page folder and keeps the index current until interrupted.

A page file that is created or written is re-indexed. A page file or
folder that is removed or renamed takes its pages out of the index.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	if pageWatcher == nil {
		return notConfigured("watch")
	}

	cmd.Println("Watching for page changes. Press Ctrl+C to stop.")
	return pageWatcher.Run(cmd.Context())
}

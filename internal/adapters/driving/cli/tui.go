package cli

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/pageindex/internal/adapters/driving/tui"
	"github.com/custodia-labs/pageindex/internal/core/domain"
)

var (
	tuiLanguage string
	tuiLimit    int
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive search UI",
	Long: `Launch an interactive terminal UI for searching the page index.

Type a query and press enter to search. Results show the title, score,
path and a snippet of the content match. Open a result to see the stored
index record of the page.

Controls:
  enter    - Search / open result
  ↑/k, ↓/j - Navigate results
  n        - New search
  esc      - Back
  ?        - Help
  q        - Quit`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	tuiCmd.Flags().StringVarP(&tuiLanguage, "language", "l", "", "language to search (default from config)")
	tuiCmd.Flags().IntVarP(&tuiLimit, "limit", "n", 0, "maximum number of results (default from config)")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Panic in TUI: %v\nStack trace:\n%s\n", r, debug.Stack())
			err = fmt.Errorf("TUI panic: %v", r)
		}
	}()

	app, err := newTUIApp(cmd)
	if err != nil {
		return err
	}

	if runErr := app.Run(); runErr != nil {
		return fmt.Errorf("TUI error: %w", runErr)
	}
	return nil
}

// newTUIApp builds the TUI over the configured services.
func newTUIApp(cmd *cobra.Command) (*tui.App, error) {
	if searchService == nil {
		return nil, notConfigured("search")
	}

	app, err := tui.NewApp(&tui.Ports{
		Search: searchService,
		Index:  indexService,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create TUI: %w", err)
	}

	return app.
		WithContext(cmd.Context()).
		WithSearchOptions(domain.SearchOptions{Language: tuiLanguage, Limit: tuiLimit}), nil
}

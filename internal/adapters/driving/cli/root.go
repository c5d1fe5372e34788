// Package cli provides the pageindex command-line interface.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/pageindex/internal/core/ports/driving"
	"github.com/custodia-labs/pageindex/internal/logger"
)

// PageWatcher follows the page folder and keeps the index current.
type PageWatcher interface {
	Run(ctx context.Context) error
}

// Services holds everything the commands call into.
type Services struct {
	Index    driving.IndexService
	Search   driving.SearchService
	Settings driving.SettingsService
	Watcher  PageWatcher

	// InitErr explains why Index, Search or Watcher are missing.
	InitErr error
}

var (
	version = "dev"
	verbose bool

	indexService    driving.IndexService
	searchService   driving.SearchService
	settingsService driving.SettingsService
	pageWatcher     PageWatcher
	initErr         error
)

var rootCmd = &cobra.Command{
	Use:   "pageindex",
	Short: "Search and index page documents",
	Long: `pageindex keeps a text index over page documents and searches it.

Pages are JSON documents stored in one folder per language. Titles and
content are matched as case-insensitive substrings, title matches rank
above content matches, and each hit shows a snippet around the match.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print debug logs to stderr")
}

// SetServices wires the services used by every command.
func SetServices(s Services) {
	indexService = s.Index
	searchService = s.Search
	settingsService = s.Settings
	pageWatcher = s.Watcher
	initErr = s.InitErr
}

// SetVersion sets the version printed by the version command.
func SetVersion(v string) {
	version = v
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// notConfigured reports a missing service, with the startup error when there is one.
func notConfigured(name string) error {
	if initErr != nil {
		return fmt.Errorf("%s service not configured: %w", name, initErr)
	}
	return fmt.Errorf("%s service not configured", name)
}

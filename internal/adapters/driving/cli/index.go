package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/pageindex/internal/core/domain"
)

var (
	indexLanguage   string
	reindexLanguage string
	reindexClear    bool
	reindexJSON     bool
	showJSON        bool
)

var indexCmd = &cobra.Command{
	Use:   "index [page-id]",
	Short: "Index a single page",
	Long: `Reads a page from the page folder and writes its index record.
Indexing a page that is already indexed replaces its record.`,
	Args: cobra.ExactArgs(1),
	RunE: runIndex,
}

var reindexCmd = &cobra.Command{
	Use:   "reindex",
	Short: "Re-index every page of a language",
	Long: `Indexes every page found for the language. Pages that fail are
counted and reported; the run carries on with the rest.

Use --clear to empty the index first, dropping pages that no longer exist.`,
	Args: cobra.NoArgs,
	RunE: runReindex,
}

var removeCmd = &cobra.Command{
	Use:   "remove [page-id]",
	Short: "Remove a page from the index",
	Args:  cobra.ExactArgs(1),
	RunE:  runRemove,
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every page from the index",
	Args:  cobra.NoArgs,
	RunE:  runClear,
}

var showCmd = &cobra.Command{
	Use:   "show [page-id]",
	Short: "Show the index record of a page",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show how many pages are indexed",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func init() {
	indexCmd.Flags().StringVarP(&indexLanguage, "language", "l", "", "language of the page (default from config)")
	reindexCmd.Flags().StringVarP(&reindexLanguage, "language", "l", "", "language to re-index (default from config)")
	reindexCmd.Flags().BoolVar(&reindexClear, "clear", false, "clear the whole index before re-indexing")
	reindexCmd.Flags().BoolVar(&reindexJSON, "json", false, "output the run summary as JSON")
	showCmd.Flags().BoolVar(&showJSON, "json", false, "output the record as JSON")

	rootCmd.AddCommand(indexCmd)
	rootCmd.AddCommand(reindexCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(clearCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(statusCmd)
}

// effectiveLanguage falls back to the configured default language.
func effectiveLanguage(lang string) string {
	if lang != "" {
		return lang
	}
	if settingsService != nil {
		if settings, err := settingsService.Get(); err == nil && settings.Search.DefaultLanguage != "" {
			return settings.Search.DefaultLanguage
		}
	}
	return domain.DefaultLanguage
}

func runIndex(cmd *cobra.Command, args []string) error {
	if indexService == nil {
		return notConfigured("index")
	}

	pageID := args[0]
	lang := effectiveLanguage(indexLanguage)
	if err := indexService.IndexPage(cmd.Context(), pageID, lang); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("page %s not found in %s", pageID, lang)
		}
		return fmt.Errorf("failed to index page: %w", err)
	}

	cmd.Println(outputStyles.Success.Render(fmt.Sprintf("Indexed %s (%s)", pageID, lang)))
	return nil
}

func runReindex(cmd *cobra.Command, _ []string) error {
	if indexService == nil {
		return notConfigured("index")
	}

	ctx := cmd.Context()
	if reindexClear {
		if err := indexService.ClearIndex(ctx); err != nil {
			return fmt.Errorf("failed to clear index: %w", err)
		}
	}

	result := indexService.IndexAllPages(ctx, effectiveLanguage(reindexLanguage))

	if reindexJSON {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal result: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Printf("Reindexed %s: %d indexed, %d errors\n", result.Language, result.Indexed, result.Errors)
	cmd.Println(outputStyles.Muted.Render("Run: " + result.RunID))
	if result.Errors > 0 {
		cmd.Println(outputStyles.Warning.Render("Some pages failed; run with --verbose for details."))
	}
	return nil
}

func runRemove(cmd *cobra.Command, args []string) error {
	if indexService == nil {
		return notConfigured("index")
	}

	if err := indexService.RemoveFromIndex(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to remove page: %w", err)
	}

	cmd.Printf("Removed %s from the index\n", args[0])
	return nil
}

func runClear(cmd *cobra.Command, _ []string) error {
	if indexService == nil {
		return notConfigured("index")
	}

	if err := indexService.ClearIndex(cmd.Context()); err != nil {
		return fmt.Errorf("failed to clear index: %w", err)
	}

	cmd.Println("Index cleared")
	return nil
}

func runShow(cmd *cobra.Command, args []string) error {
	if indexService == nil {
		return notConfigured("index")
	}

	page, err := indexService.GetIndexedPage(cmd.Context(), args[0])
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("page %s is not indexed", args[0])
		}
		return fmt.Errorf("failed to read page: %w", err)
	}

	if showJSON {
		data, err := json.MarshalIndent(page, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal page: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	st := outputStyles
	cmd.Println(st.Title.Render(page.Title))
	cmd.Printf("  ID:       %s\n", page.PageID)
	cmd.Printf("  Language: %s\n", page.Language)
	cmd.Printf("  Path:     %s\n", st.Path.Render(page.Path))
	cmd.Printf("  Modified: %s\n", formatEpoch(page.ModifiedAt))
	cmd.Printf("  Indexed:  %s\n", formatEpoch(page.IndexedAt))
	cmd.Println()
	cmd.Println(page.Content)
	return nil
}

func runStatus(cmd *cobra.Command, _ []string) error {
	if indexService == nil {
		return notConfigured("index")
	}

	n, err := indexService.IndexedCount(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to count pages: %w", err)
	}

	cmd.Printf("Indexed pages: %d\n", n)
	if settingsService != nil {
		if settings, err := settingsService.Get(); err == nil {
			cmd.Printf("Storage:       %s\n", settings.Storage.Backend.Description())
			cmd.Printf("Pages:         %s\n", settings.Pages.Root)
		}
	}
	return nil
}

func formatEpoch(sec int64) string {
	if sec == 0 {
		return "-"
	}
	return time.Unix(sec, 0).UTC().Format(time.RFC3339)
}

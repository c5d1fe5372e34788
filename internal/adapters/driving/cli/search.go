package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	tuistyles "github.com/custodia-labs/pageindex/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/pageindex/internal/core/domain"
)

var (
	searchLanguage string
	searchLimit    int
	searchJSON     bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search indexed pages",
	Long: `Finds pages whose title or content contain the query, ignoring case.

A title match scores 10 and a content match scores 3. Results are sorted
by score, newest page first on ties. Content matches show a snippet of
the text around the first occurrence.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVarP(&searchLanguage, "language", "l", "", "language to search (default from config)")
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 0, "maximum number of results (default from config)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := args[0]

	if searchService == nil {
		return notConfigured("search")
	}

	opts := domain.SearchOptions{
		Language: searchLanguage,
		Limit:    searchLimit,
	}

	results, err := searchService.Search(cmd.Context(), query, opts)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputSearchJSON(cmd, results)
	}

	return outputSearchTable(cmd, query, results)
}

func outputSearchJSON(cmd *cobra.Command, results []domain.SearchResult) error {
	if results == nil {
		results = []domain.SearchResult{}
	}
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, query string, results []domain.SearchResult) error {
	if len(results) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	st := outputStyles
	cmd.Printf("Results for %q:\n", query)
	cmd.Println()
	for i := range results {
		// Format: [N] Title (Score)
		cmd.Printf("  [%d] %s %s\n", i+1,
			tuistyles.Mark(results[i].Title, query, st.Highlight),
			st.Score.Render(fmt.Sprintf("(%d)", results[i].Score)))
		if results[i].Path != "" {
			cmd.Printf("      %s\n", st.Path.Render(results[i].Path))
		}
		for _, m := range results[i].Matches {
			if m.Type == domain.MatchContent {
				cmd.Printf("      %s\n", tuistyles.Mark(m.Text, query, st.Highlight))
			}
		}
		cmd.Println()
	}
	cmd.Println(st.Muted.Render(fmt.Sprintf("%d result(s)", len(results))))

	return nil
}

package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/pageindex/internal/core/domain"
)

const (
	// minQueryRunes is the shortest query the search tool runs.
	minQueryRunes = 2

	// maxMatchRunes caps the length of each match text returned.
	maxMatchRunes = 100
)

// SearchInput is the input schema for the search_pages tool.
type SearchInput struct {
	Query    string `json:"query" jsonschema:"text to find in page titles and content"`
	Language string `json:"language,omitempty" jsonschema:"language to search (default en)"`
	Limit    int    `json:"limit,omitempty" jsonschema:"maximum number of results to return (default 20)"`
}

// SearchOutput is the output schema for the search_pages tool.
type SearchOutput struct {
	Results []SearchResultOutput `json:"results"`
	Count   int                  `json:"count"`
}

// SearchResultOutput represents a single search result.
type SearchResultOutput struct {
	PageID     string        `json:"page_id"`
	Title      string        `json:"title"`
	Path       string        `json:"path"`
	Score      int           `json:"score"`
	Matches    []MatchOutput `json:"matches"`
	MatchCount int           `json:"match_count"`
}

// MatchOutput is one place the query matched.
type MatchOutput struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// PageInput names a page for the index_page and remove_page tools.
type PageInput struct {
	PageID   string `json:"page_id" jsonschema:"unique id of the page"`
	Language string `json:"language,omitempty" jsonschema:"language of the page (default en)"`
}

// PageOutput reports the outcome of a single-page tool.
type PageOutput struct {
	PageID string `json:"page_id"`
	Status string `json:"status"`
}

// ReindexInput is the input schema for the reindex_pages tool.
type ReindexInput struct {
	Language string `json:"language,omitempty" jsonschema:"language to re-index (default en)"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_pages",
		Description: "Search page titles and content for a phrase in one language",
	}, s.handleSearch)

	if s.ports.Index == nil {
		return
	}

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "index_page",
		Description: "Index or re-index a single page",
	}, s.handleIndexPage)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "reindex_pages",
		Description: "Re-index every page of a language",
	}, s.handleReindex)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "remove_page",
		Description: "Remove a page from the index",
	}, s.handleRemovePage)
}

// handleSearch handles the search_pages tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	output := SearchOutput{Results: []SearchResultOutput{}}
	if len([]rune(input.Query)) < minQueryRunes {
		return nil, output, nil
	}

	opts := domain.SearchOptions{Language: input.Language, Limit: input.Limit}
	results, err := s.ports.Search.Search(ctx, input.Query, opts)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output.Results = make([]SearchResultOutput, len(results))
	output.Count = len(results)
	for i := range results {
		matches := make([]MatchOutput, len(results[i].Matches))
		for j, m := range results[i].Matches {
			matches[j] = MatchOutput{Type: string(m.Type), Text: truncate(m.Text, maxMatchRunes)}
		}
		output.Results[i] = SearchResultOutput{
			PageID:     results[i].PageID,
			Title:      results[i].Title,
			Path:       results[i].Path,
			Score:      results[i].Score,
			Matches:    matches,
			MatchCount: results[i].MatchCount,
		}
	}

	return nil, output, nil
}

func (s *Server) handleIndexPage(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input PageInput,
) (*mcp.CallToolResult, PageOutput, error) {
	if s.ports.Index == nil {
		return nil, PageOutput{}, ErrIndexingUnavailable
	}
	if err := s.ports.Index.IndexPage(ctx, input.PageID, input.Language); err != nil {
		return nil, PageOutput{}, err
	}
	return nil, PageOutput{PageID: input.PageID, Status: "indexed"}, nil
}

func (s *Server) handleReindex(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ReindexInput,
) (*mcp.CallToolResult, domain.IndexAllResult, error) {
	if s.ports.Index == nil {
		return nil, domain.IndexAllResult{}, ErrIndexingUnavailable
	}
	return nil, s.ports.Index.IndexAllPages(ctx, input.Language), nil
}

func (s *Server) handleRemovePage(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input PageInput,
) (*mcp.CallToolResult, PageOutput, error) {
	if s.ports.Index == nil {
		return nil, PageOutput{}, ErrIndexingUnavailable
	}
	if err := s.ports.Index.RemoveFromIndex(ctx, input.PageID); err != nil {
		return nil, PageOutput{}, err
	}
	return nil, PageOutput{PageID: input.PageID, Status: "removed"}, nil
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/custodia-labs/pageindex/internal/core/domain"
	"github.com/custodia-labs/pageindex/internal/core/ports/driven"
	"github.com/custodia-labs/pageindex/internal/core/ports/driving"
	"github.com/custodia-labs/pageindex/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// Snippet window, in runes.
const (
	snippetLength = 150
	snippetLead   = 75
	ellipsis      = "..."
)

// SearchService runs substring queries against the index store.
type SearchService struct {
	store           driven.IndexStore
	defaultLanguage string
	defaultLimit    int
}

// NewSearchService creates a new search service.
func NewSearchService(store driven.IndexStore) *SearchService {
	return &SearchService{
		store:           store,
		defaultLanguage: domain.DefaultLanguage,
		defaultLimit:    domain.DefaultSearchLimit,
	}
}

// SetDefaults overrides the language and limit used when SearchOptions
// leaves them unset. Empty or non-positive values are ignored.
func (s *SearchService) SetDefaults(language string, limit int) {
	if language != "" {
		s.defaultLanguage = language
	}
	if limit > 0 {
		s.defaultLimit = limit
	}
}

// Search returns pages in the language whose title or content contain the
// query, best first. The store caps candidates at the limit before they are
// scored, so ranking reorders the newest matches rather than the whole index.
func (s *SearchService) Search(
	ctx context.Context, query string, opts domain.SearchOptions,
) ([]domain.SearchResult, error) {
	logger.Section("Search Execution")
	logger.Debug("Query: %q", query)

	// The query is matched as given; only a blank one short-circuits.
	if strings.TrimSpace(query) == "" {
		logger.Debug("Empty query, returning no results")
		return []domain.SearchResult{}, nil
	}

	language := opts.Language
	if language == "" {
		language = s.defaultLanguage
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = s.defaultLimit
	}
	logger.Debug("Language: %s, Limit: %d", language, limit)

	candidates, err := s.store.QueryByLanguageAndSubstring(ctx, language, query, limit)
	if err != nil {
		logger.Warn("Search failed: %v", err)
		return nil, fmt.Errorf("%w: search: %w", domain.ErrStoreFailure, err)
	}
	logger.Debug("Candidates: %d", len(candidates))

	results := make([]domain.SearchResult, 0, len(candidates))
	for i := range candidates {
		results = append(results, scorePage(&candidates[i], query))
	}

	// Stable: equal scores keep the store's newest-first order.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	logger.Info("Final results: %d", len(results))
	return results, nil
}

// scorePage tests the title and the content independently.
func scorePage(page *domain.IndexedPage, query string) domain.SearchResult {
	result := domain.SearchResult{
		PageID:  page.PageID,
		Title:   page.Title,
		Path:    page.Path,
		Matches: []domain.Match{},
	}

	if domain.ContainsFold(page.Title, query) {
		result.Score += domain.TitleMatchScore
		result.Matches = append(result.Matches, domain.Match{
			Type: domain.MatchTitle,
			Text: page.Title,
		})
	}

	if domain.ContainsFold(page.Content, query) {
		result.Score += domain.ContentMatchScore
		result.Matches = append(result.Matches, domain.Match{
			Type: domain.MatchContent,
			Text: ExtractSnippet(page.Content, query),
		})
	}

	result.MatchCount = len(result.Matches)
	return result
}

// ExtractSnippet returns up to 150 runes of text around the first
// case-insensitive occurrence of query, with "..." marking cut ends.
// If query does not occur, the first 150 runes are returned.
func ExtractSnippet(text, query string) string {
	runes := []rune(text)

	pos := domain.IndexFoldRunes(runes, []rune(query))
	if pos < 0 {
		return string(runes[:min(snippetLength, len(runes))]) + ellipsis
	}

	start := max(0, pos-snippetLead)
	end := min(start+snippetLength, len(runes))
	snippet := strings.TrimSpace(string(runes[start:end]))

	if start > 0 {
		snippet = ellipsis + snippet
	}
	if len(runes) > end {
		snippet += ellipsis
	}
	return snippet
}

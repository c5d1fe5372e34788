package driving

import (
	"context"

	"github.com/custodia-labs/pageindex/internal/core/domain"
)

// IndexService maintains the search index.
type IndexService interface {
	// IndexPage indexes or re-indexes a single page.
	IndexPage(ctx context.Context, pageID, language string) error

	// IndexAllPages re-indexes every page the provider lists for a language.
	// Per-page failures are counted, not returned.
	IndexAllPages(ctx context.Context, language string) domain.IndexAllResult

	// RemoveFromIndex deletes a page from the index regardless of language.
	RemoveFromIndex(ctx context.Context, pageID string) error

	// ClearIndex deletes every indexed page.
	ClearIndex(ctx context.Context) error

	// GetIndexedPage returns the index record for a page, or
	// domain.ErrNotFound when it is not indexed.
	GetIndexedPage(ctx context.Context, pageID string) (*domain.IndexedPage, error)

	// IndexedCount returns how many pages are indexed across all languages.
	IndexedCount(ctx context.Context) (int, error)
}

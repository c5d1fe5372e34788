package driven

import (
	"context"

	"github.com/custodia-labs/pageindex/internal/core/domain"
)

// IndexStore persists IndexedPage records.
// Backed by SQLite, bleve or memory.
type IndexStore interface {
	// Get retrieves a record by page ID.
	// Returns domain.ErrNotFound if no record exists.
	Get(ctx context.Context, pageID string) (*domain.IndexedPage, error)

	// Upsert inserts the record or replaces the one with the same PageID.
	// A replaced record keeps the language it was first stored under.
	Upsert(ctx context.Context, page domain.IndexedPage) error

	// QueryByLanguageAndSubstring returns at most limit records in the
	// language whose title or content contains term, ignoring case.
	// Records are ordered by ModifiedAt descending, then PageID ascending.
	QueryByLanguageAndSubstring(ctx context.Context, language, term string, limit int) ([]domain.IndexedPage, error)

	// DeleteByID removes the record for a page. Deleting a missing
	// record is not an error.
	DeleteByID(ctx context.Context, pageID string) error

	// DeleteAll removes every record.
	DeleteAll(ctx context.Context) error

	// Count returns the number of records across all languages.
	Count(ctx context.Context) (int, error)

	// Close releases resources.
	Close() error
}

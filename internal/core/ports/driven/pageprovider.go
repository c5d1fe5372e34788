package driven

import (
	"context"

	"github.com/custodia-labs/pageindex/internal/core/domain"
)

// PageProvider serves page documents. The index never writes pages.
type PageProvider interface {
	// GetPage returns the page with the given id in the given language.
	// Returns domain.ErrNotFound if the page does not exist.
	GetPage(ctx context.Context, id, language string) (*domain.PageDocument, error)

	// ListPages returns every page known for the language.
	// On error, any pages read before the failure may still be returned.
	ListPages(ctx context.Context, language string) ([]domain.PageDocument, error)
}

package driving

import (
	"context"

	"github.com/custodia-labs/pageindex/internal/core/domain"
)

// SearchService provides search capabilities to external actors.
type SearchService interface {
	// Search finds indexed pages whose title or content contain the query.
	Search(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.SearchResult, error)
}

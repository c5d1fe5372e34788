package tui

import (
	"context"

	"github.com/custodia-labs/pageindex/internal/core/domain"
)

// MockSearchService implements driving.SearchService for testing.
type MockSearchService struct {
	SearchFunc func(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.SearchResult, error)
}

func (m *MockSearchService) Search(
	ctx context.Context,
	query string,
	opts domain.SearchOptions,
) ([]domain.SearchResult, error) {
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, query, opts)
	}
	return []domain.SearchResult{}, nil
}

// MockIndexService implements driving.IndexService for testing.
type MockIndexService struct {
	Pages map[string]*domain.IndexedPage
}

func (m *MockIndexService) IndexPage(context.Context, string, string) error { return nil }

func (m *MockIndexService) IndexAllPages(_ context.Context, language string) domain.IndexAllResult {
	return domain.IndexAllResult{Language: language}
}

func (m *MockIndexService) RemoveFromIndex(context.Context, string) error { return nil }

func (m *MockIndexService) ClearIndex(context.Context) error { return nil }

func (m *MockIndexService) GetIndexedPage(_ context.Context, pageID string) (*domain.IndexedPage, error) {
	if p, ok := m.Pages[pageID]; ok {
		return p, nil
	}
	return nil, domain.ErrNotFound
}

func (m *MockIndexService) IndexedCount(context.Context) (int, error) { return len(m.Pages), nil }

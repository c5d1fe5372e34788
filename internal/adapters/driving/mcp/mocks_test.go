package mcp

import (
	"context"

	"github.com/custodia-labs/pageindex/internal/core/domain"
	"github.com/custodia-labs/pageindex/internal/core/ports/driving"
)

var (
	_ driving.SearchService = (*mockSearchService)(nil)
	_ driving.IndexService  = (*mockIndexService)(nil)
)

// mockSearchService is a mock implementation of driving.SearchService.
type mockSearchService struct {
	results []domain.SearchResult
	err     error

	calls    int
	lastOpts domain.SearchOptions
}

func (m *mockSearchService) Search(
	_ context.Context,
	_ string,
	opts domain.SearchOptions,
) ([]domain.SearchResult, error) {
	m.calls++
	m.lastOpts = opts
	return m.results, m.err
}

// mockIndexService is a mock implementation of driving.IndexService.
type mockIndexService struct {
	page      *domain.IndexedPage
	count     int
	reindexed domain.IndexAllResult
	err       error

	lastID       string
	lastLanguage string
}

func (m *mockIndexService) IndexPage(_ context.Context, pageID, language string) error {
	m.lastID, m.lastLanguage = pageID, language
	return m.err
}

func (m *mockIndexService) IndexAllPages(_ context.Context, language string) domain.IndexAllResult {
	m.lastLanguage = language
	return m.reindexed
}

func (m *mockIndexService) RemoveFromIndex(_ context.Context, pageID string) error {
	m.lastID = pageID
	return m.err
}

func (m *mockIndexService) ClearIndex(_ context.Context) error {
	return m.err
}

func (m *mockIndexService) GetIndexedPage(_ context.Context, pageID string) (*domain.IndexedPage, error) {
	m.lastID = pageID
	if m.err != nil {
		return nil, m.err
	}
	if m.page == nil {
		return nil, domain.ErrNotFound
	}
	return m.page, nil
}

func (m *mockIndexService) IndexedCount(_ context.Context) (int, error) {
	return m.count, m.err
}

// Package memory provides in-memory implementations of driven ports,
// used by tests and by the "memory" storage backend.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/pageindex/internal/core/domain"
	"github.com/custodia-labs/pageindex/internal/core/ports/driven"
)

// Ensure IndexStore implements the interface.
var _ driven.IndexStore = (*IndexStore)(nil)

// IndexStore is an in-memory implementation of driven.IndexStore.
type IndexStore struct {
	mu    sync.RWMutex
	pages map[string]domain.IndexedPage
}

// NewIndexStore creates a new in-memory index store.
func NewIndexStore() *IndexStore {
	return &IndexStore{
		pages: make(map[string]domain.IndexedPage),
	}
}

// Get retrieves a record by page ID.
func (s *IndexStore) Get(_ context.Context, pageID string) (*domain.IndexedPage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	page, ok := s.pages[pageID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &page, nil
}

// Upsert inserts a record or updates the one with the same page ID.
// An existing record keeps its language.
func (s *IndexStore) Upsert(_ context.Context, page domain.IndexedPage) error {
	if page.PageID == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.pages[page.PageID]; ok {
		page.Language = existing.Language
	}
	s.pages[page.PageID] = page
	return nil
}

// QueryByLanguageAndSubstring returns the newest matching records.
func (s *IndexStore) QueryByLanguageAndSubstring(
	_ context.Context, language, term string, limit int,
) ([]domain.IndexedPage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []domain.IndexedPage
	for id := range s.pages {
		page := s.pages[id]
		if page.Language != language {
			continue
		}
		if domain.ContainsFold(page.Title, term) || domain.ContainsFold(page.Content, term) {
			result = append(result, page)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].ModifiedAt != result[j].ModifiedAt {
			return result[i].ModifiedAt > result[j].ModifiedAt
		}
		return result[i].PageID < result[j].PageID
	})

	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// DeleteByID removes a record.
func (s *IndexStore) DeleteByID(_ context.Context, pageID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pages, pageID)
	return nil
}

// DeleteAll removes every record.
func (s *IndexStore) DeleteAll(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pages = make(map[string]domain.IndexedPage)
	return nil
}

// Count returns the number of stored records.
func (s *IndexStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.pages), nil
}

// Close is a no-op.
func (s *IndexStore) Close() error {
	return nil
}

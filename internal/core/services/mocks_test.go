package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/pageindex/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/pageindex/internal/core/domain"
	"github.com/custodia-labs/pageindex/internal/core/ports/driven"
)

// --- Mock implementations ---

// mockPageProvider implements driven.PageProvider for testing.
type mockPageProvider struct {
	mu       sync.Mutex
	pages    map[string]domain.PageDocument
	getErrs  map[string]error
	list     []domain.PageDocument
	listErr  error
	getCalls int
}

func newMockPageProvider(pages ...domain.PageDocument) *mockPageProvider {
	m := &mockPageProvider{
		pages:   make(map[string]domain.PageDocument),
		getErrs: make(map[string]error),
	}
	for _, p := range pages {
		m.pages[p.ID] = p
		m.list = append(m.list, p)
	}
	return m
}

func (m *mockPageProvider) GetPage(_ context.Context, id, _ string) (*domain.PageDocument, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.getCalls++
	if err, ok := m.getErrs[id]; ok {
		return nil, err
	}
	page, ok := m.pages[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &page, nil
}

func (m *mockPageProvider) ListPages(_ context.Context, _ string) ([]domain.PageDocument, error) {
	return m.list, m.listErr
}

// failingStore wraps a memory store and fails selected operations.
type failingStore struct {
	*memory.IndexStore
	upsertErr error
	queryErr  error
	deleteErr error
}

var _ driven.IndexStore = (*failingStore)(nil)

func newFailingStore() *failingStore {
	return &failingStore{IndexStore: memory.NewIndexStore()}
}

func (f *failingStore) Upsert(ctx context.Context, page domain.IndexedPage) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	return f.IndexStore.Upsert(ctx, page)
}

func (f *failingStore) QueryByLanguageAndSubstring(
	ctx context.Context, language, term string, limit int,
) ([]domain.IndexedPage, error) {
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	return f.IndexStore.QueryByLanguageAndSubstring(ctx, language, term, limit)
}

func (f *failingStore) DeleteByID(ctx context.Context, pageID string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	return f.IndexStore.DeleteByID(ctx, pageID)
}

func (f *failingStore) DeleteAll(ctx context.Context) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	return f.IndexStore.DeleteAll(ctx)
}

var errDiskFull = errors.New("disk full")

func strPtr(s string) *string { return &s }

// textPage builds a page with a single text widget.
func textPage(id, title, content string, modified int64) domain.PageDocument {
	return domain.PageDocument{
		ID:       id,
		Title:    title,
		Path:     "en/" + id,
		Modified: modified,
		Layout: &domain.Layout{Rows: []domain.Row{
			{Widgets: []domain.Widget{{Type: "text", Content: strPtr(content)}}},
		}},
	}
}

func countOf(t *testing.T, store driven.IndexStore) int {
	t.Helper()
	n, err := store.Count(context.Background())
	require.NoError(t, err)
	return n
}

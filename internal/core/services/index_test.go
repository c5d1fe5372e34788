package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/pageindex/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/pageindex/internal/core/domain"
)

func fixedClock(sec int64) func() time.Time {
	return func() time.Time { return time.Unix(sec, 0) }
}

func TestNewIndexService(t *testing.T) {
	svc := NewIndexService(newMockPageProvider(), memory.NewIndexStore())
	require.NotNil(t, svc)
	assert.NotNil(t, svc.now)
	assert.NotNil(t, svc.newID)
}

func TestIndexService_IndexPage_Insert(t *testing.T) {
	pages := newMockPageProvider(textPage("page-1", "Welcome", "<b>Hi</b> there", 1000))
	store := memory.NewIndexStore()
	svc := NewIndexService(pages, store)
	svc.now = fixedClock(5000)
	ctx := context.Background()

	require.NoError(t, svc.IndexPage(ctx, "page-1", "en"))

	saved, err := store.Get(ctx, "page-1")
	require.NoError(t, err)
	assert.Equal(t, domain.IndexedPage{
		PageID:     "page-1",
		Language:   "en",
		Title:      "Welcome",
		Content:    "Hi there",
		Path:       "en/page-1",
		ModifiedAt: 1000,
		IndexedAt:  5000,
	}, *saved)
}

func TestIndexService_IndexPage_Idempotent(t *testing.T) {
	pages := newMockPageProvider(textPage("page-1", "Welcome", "Body", 1000))
	store := memory.NewIndexStore()
	svc := NewIndexService(pages, store)
	ctx := context.Background()

	svc.now = fixedClock(5000)
	require.NoError(t, svc.IndexPage(ctx, "page-1", "en"))
	first, err := store.Get(ctx, "page-1")
	require.NoError(t, err)

	svc.now = fixedClock(6000)
	require.NoError(t, svc.IndexPage(ctx, "page-1", "en"))
	second, err := store.Get(ctx, "page-1")
	require.NoError(t, err)

	assert.Equal(t, 1, countOf(t, store))
	assert.Equal(t, first.Title, second.Title)
	assert.Equal(t, first.Content, second.Content)
	assert.Equal(t, first.Path, second.Path)
	assert.GreaterOrEqual(t, second.IndexedAt, first.IndexedAt)
	assert.Equal(t, int64(6000), second.IndexedAt)
}

func TestIndexService_IndexPage_UpdatesChangedPage(t *testing.T) {
	pages := newMockPageProvider(textPage("page-1", "Old", "old body", 1000))
	store := memory.NewIndexStore()
	svc := NewIndexService(pages, store)
	ctx := context.Background()

	require.NoError(t, svc.IndexPage(ctx, "page-1", "en"))
	pages.pages["page-1"] = textPage("page-1", "New", "new body", 2000)
	require.NoError(t, svc.IndexPage(ctx, "page-1", "en"))

	saved, err := store.Get(ctx, "page-1")
	require.NoError(t, err)
	assert.Equal(t, "New", saved.Title)
	assert.Equal(t, "new body", saved.Content)
	assert.Equal(t, int64(2000), saved.ModifiedAt)
	assert.Equal(t, 1, countOf(t, store))
}

func TestIndexService_IndexPage_KeepsIndexedLanguage(t *testing.T) {
	pages := newMockPageProvider(textPage("page-1", "Home", "English body", 1000))
	store := memory.NewIndexStore()
	svc := NewIndexService(pages, store)
	ctx := context.Background()

	require.NoError(t, svc.IndexPage(ctx, "page-1", "en"))
	pages.pages["page-1"] = textPage("page-1", "Thuis", "Nederlandse tekst", 2000)
	require.NoError(t, svc.IndexPage(ctx, "page-1", "nl"))

	saved, err := store.Get(ctx, "page-1")
	require.NoError(t, err)
	assert.Equal(t, "en", saved.Language)
	assert.Equal(t, "Thuis", saved.Title)
	assert.Equal(t, "Nederlandse tekst", saved.Content)
	assert.Equal(t, int64(2000), saved.ModifiedAt)
	assert.Equal(t, 1, countOf(t, store))
}

func TestIndexService_IndexPage_Defaults(t *testing.T) {
	pages := newMockPageProvider(domain.PageDocument{ID: "page-1"})
	store := memory.NewIndexStore()
	svc := NewIndexService(pages, store)
	svc.now = fixedClock(7000)
	ctx := context.Background()

	require.NoError(t, svc.IndexPage(ctx, "page-1", ""))

	saved, err := store.Get(ctx, "page-1")
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultTitle, saved.Title)
	assert.Equal(t, domain.DefaultLanguage, saved.Language)
	assert.Equal(t, "", saved.Content)
	assert.Equal(t, int64(7000), saved.ModifiedAt)
	assert.Equal(t, int64(7000), saved.IndexedAt)
}

func TestIndexService_IndexPage_NotFound(t *testing.T) {
	store := memory.NewIndexStore()
	svc := NewIndexService(newMockPageProvider(), store)

	err := svc.IndexPage(context.Background(), "missing", "en")

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 0, countOf(t, store))
}

func TestIndexService_IndexPage_EmptyID(t *testing.T) {
	svc := NewIndexService(newMockPageProvider(), memory.NewIndexStore())
	err := svc.IndexPage(context.Background(), "", "en")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestIndexService_IndexPage_FetchErrorLeavesStore(t *testing.T) {
	pages := newMockPageProvider(textPage("page-1", "Welcome", "Body", 1000))
	store := memory.NewIndexStore()
	svc := NewIndexService(pages, store)
	ctx := context.Background()

	require.NoError(t, svc.IndexPage(ctx, "page-1", "en"))
	pages.getErrs["page-1"] = errDiskFull

	err := svc.IndexPage(ctx, "page-1", "en")
	require.Error(t, err)
	assert.ErrorIs(t, err, errDiskFull)

	saved, err := store.Get(ctx, "page-1")
	require.NoError(t, err)
	assert.Equal(t, "Welcome", saved.Title)
}

func TestIndexService_IndexPage_StoreFailure(t *testing.T) {
	store := newFailingStore()
	store.upsertErr = errDiskFull
	svc := NewIndexService(newMockPageProvider(textPage("page-1", "T", "C", 1)), store)

	err := svc.IndexPage(context.Background(), "page-1", "en")

	assert.ErrorIs(t, err, domain.ErrStoreFailure)
	assert.ErrorIs(t, err, errDiskFull)
	assert.Equal(t, 0, countOf(t, store))
}

func TestIndexService_IndexAllPages(t *testing.T) {
	pages := newMockPageProvider(
		textPage("page-1", "One", "first", 1),
		textPage("page-2", "Two", "second", 2),
		textPage("page-3", "Three", "third", 3),
	)
	pages.getErrs["page-2"] = errDiskFull
	store := memory.NewIndexStore()
	svc := NewIndexService(pages, store)
	svc.newID = func() string { return "run-1" }

	result := svc.IndexAllPages(context.Background(), "en")

	assert.Equal(t, domain.IndexAllResult{RunID: "run-1", Language: "en", Indexed: 2, Errors: 1}, result)
	assert.Equal(t, 2, countOf(t, store))
}

func TestIndexService_IndexAllPages_SkipsPagesWithoutID(t *testing.T) {
	pages := newMockPageProvider(textPage("page-1", "One", "first", 1))
	pages.list = append(pages.list, domain.PageDocument{Title: "navigation"})
	svc := NewIndexService(pages, memory.NewIndexStore())

	result := svc.IndexAllPages(context.Background(), "en")

	assert.Equal(t, 1, result.Indexed)
	assert.Equal(t, 0, result.Errors)
}

func TestIndexService_IndexAllPages_ListingFailure(t *testing.T) {
	pages := newMockPageProvider()
	pages.listErr = errDiskFull
	svc := NewIndexService(pages, memory.NewIndexStore())

	result := svc.IndexAllPages(context.Background(), "en")

	assert.Equal(t, 0, result.Indexed)
	assert.Equal(t, 1, result.Errors)
	assert.NotEmpty(t, result.RunID)
}

func TestIndexService_IndexAllPages_PartialListing(t *testing.T) {
	pages := newMockPageProvider(textPage("page-1", "One", "first", 1))
	pages.listErr = errDiskFull
	store := memory.NewIndexStore()
	svc := NewIndexService(pages, store)

	result := svc.IndexAllPages(context.Background(), "en")

	assert.Equal(t, 1, result.Indexed)
	assert.Equal(t, 1, result.Errors)
	assert.Equal(t, 1, countOf(t, store))
}

func TestIndexService_IndexAllPages_Cancelled(t *testing.T) {
	pages := newMockPageProvider(
		textPage("page-1", "One", "first", 1),
		textPage("page-2", "Two", "second", 2),
	)
	svc := NewIndexService(pages, memory.NewIndexStore())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := svc.IndexAllPages(ctx, "en")

	assert.Equal(t, 0, result.Indexed)
	assert.Equal(t, 1, result.Errors)
	assert.Equal(t, 0, pages.getCalls)
}

func TestIndexService_IndexAllPages_DefaultLanguage(t *testing.T) {
	svc := NewIndexService(newMockPageProvider(), memory.NewIndexStore())
	result := svc.IndexAllPages(context.Background(), "")
	assert.Equal(t, domain.DefaultLanguage, result.Language)
}

func TestIndexService_RemoveFromIndex(t *testing.T) {
	store := memory.NewIndexStore()
	svc := NewIndexService(newMockPageProvider(), store)
	ctx := context.Background()
	require.NoError(t, store.Upsert(ctx, domain.IndexedPage{PageID: "page-1", Language: "nl"}))
	require.NoError(t, store.Upsert(ctx, domain.IndexedPage{PageID: "page-2", Language: "en"}))

	require.NoError(t, svc.RemoveFromIndex(ctx, "page-1"))

	_, err := store.Get(ctx, "page-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 1, countOf(t, store))
}

func TestIndexService_RemoveFromIndex_Nonexistent(t *testing.T) {
	store := memory.NewIndexStore()
	svc := NewIndexService(newMockPageProvider(), store)
	ctx := context.Background()
	require.NoError(t, store.Upsert(ctx, domain.IndexedPage{PageID: "page-1"}))

	assert.NoError(t, svc.RemoveFromIndex(ctx, "nonexistent"))
	assert.Equal(t, 1, countOf(t, store))
}

func TestIndexService_RemoveFromIndex_StoreFailure(t *testing.T) {
	store := newFailingStore()
	store.deleteErr = errDiskFull
	svc := NewIndexService(newMockPageProvider(), store)

	err := svc.RemoveFromIndex(context.Background(), "page-1")
	assert.ErrorIs(t, err, domain.ErrStoreFailure)
}

func TestIndexService_ClearIndex(t *testing.T) {
	store := memory.NewIndexStore()
	svc := NewIndexService(newMockPageProvider(), store)
	ctx := context.Background()
	require.NoError(t, store.Upsert(ctx, domain.IndexedPage{PageID: "a"}))
	require.NoError(t, store.Upsert(ctx, domain.IndexedPage{PageID: "b"}))

	require.NoError(t, svc.ClearIndex(ctx))
	assert.Equal(t, 0, countOf(t, store))
}

func TestIndexService_ClearIndex_StoreFailure(t *testing.T) {
	store := newFailingStore()
	store.deleteErr = errDiskFull
	svc := NewIndexService(newMockPageProvider(), store)

	err := svc.ClearIndex(context.Background())
	assert.ErrorIs(t, err, domain.ErrStoreFailure)
	assert.ErrorIs(t, err, errDiskFull)
}

func TestIndexService_IndexedCount(t *testing.T) {
	store := memory.NewIndexStore()
	svc := NewIndexService(newMockPageProvider(), store)
	ctx := context.Background()
	require.NoError(t, store.Upsert(ctx, domain.IndexedPage{PageID: "a", Language: "en"}))
	require.NoError(t, store.Upsert(ctx, domain.IndexedPage{PageID: "b", Language: "nl"}))

	n, err := svc.IndexedCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestIndexService_GetIndexedPage(t *testing.T) {
	store := memory.NewIndexStore()
	svc := NewIndexService(newMockPageProvider(), store)
	ctx := context.Background()
	require.NoError(t, store.Upsert(ctx, domain.IndexedPage{PageID: "a", Language: "en", Title: "A"}))

	t.Run("indexed", func(t *testing.T) {
		page, err := svc.GetIndexedPage(ctx, "a")
		require.NoError(t, err)
		assert.Equal(t, "A", page.Title)
	})

	t.Run("not indexed", func(t *testing.T) {
		page, err := svc.GetIndexedPage(ctx, "missing")
		assert.Nil(t, page)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("empty id", func(t *testing.T) {
		_, err := svc.GetIndexedPage(ctx, "")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestIndexService_SetDefaultLanguage(t *testing.T) {
	pages := newMockPageProvider(textPage("welkom", "Welkom", "Hallo", 100))
	store := memory.NewIndexStore()
	svc := NewIndexService(pages, store)
	ctx := context.Background()

	svc.SetDefaultLanguage("")
	require.NoError(t, svc.IndexPage(ctx, "welkom", ""))
	page, err := store.Get(ctx, "welkom")
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultLanguage, page.Language)

	svc.SetDefaultLanguage("nl")
	require.NoError(t, svc.IndexPage(ctx, "welkom", ""))
	page, err = store.Get(ctx, "welkom")
	require.NoError(t, err)
	assert.Equal(t, "nl", page.Language)

	result := svc.IndexAllPages(ctx, "")
	assert.Equal(t, "nl", result.Language)
	assert.Equal(t, 1, result.Indexed)
}

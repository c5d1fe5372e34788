package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/pageindex/internal/core/domain"
	"github.com/custodia-labs/pageindex/internal/core/ports/driven"
	"github.com/custodia-labs/pageindex/internal/core/ports/driving"
	"github.com/custodia-labs/pageindex/internal/logger"
)

// Ensure IndexService implements the interface.
var _ driving.IndexService = (*IndexService)(nil)

// IndexService keeps the index store in step with the page provider.
type IndexService struct {
	pages driven.PageProvider
	store driven.IndexStore
	now   func() time.Time
	newID func() string

	defaultLanguage string
}

// NewIndexService creates a new index service.
func NewIndexService(pages driven.PageProvider, store driven.IndexStore) *IndexService {
	return &IndexService{
		pages: pages,
		store: store,
		now:   time.Now,
		newID: uuid.NewString,

		defaultLanguage: domain.DefaultLanguage,
	}
}

// SetDefaultLanguage sets the language used when a caller passes none.
func (s *IndexService) SetDefaultLanguage(language string) {
	if language != "" {
		s.defaultLanguage = language
	}
}

// IndexPage fetches a page, flattens it and upserts its index record.
// A missing page returns domain.ErrNotFound and leaves the store untouched.
func (s *IndexService) IndexPage(ctx context.Context, pageID, language string) error {
	if pageID == "" {
		return fmt.Errorf("%w: page id is required", domain.ErrInvalidInput)
	}
	if language == "" {
		language = s.defaultLanguage
	}

	page, err := s.pages.GetPage(ctx, pageID, language)
	if err != nil {
		logger.Debug("Index %s (%s): fetch failed: %v", pageID, language, err)
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("page %s: %w", pageID, domain.ErrNotFound)
		}
		return fmt.Errorf("fetching page %s: %w", pageID, err)
	}
	if page == nil {
		return fmt.Errorf("page %s: %w", pageID, domain.ErrNotFound)
	}

	now := s.now().Unix()
	record := domain.IndexedPage{
		PageID:     pageID,
		Language:   language,
		Title:      page.Title,
		Content:    ExtractContent(page),
		Path:       page.Path,
		ModifiedAt: page.Modified,
		IndexedAt:  now,
	}
	if record.Title == "" {
		record.Title = domain.DefaultTitle
	}
	if record.ModifiedAt == 0 {
		record.ModifiedAt = now
	}

	if err := s.store.Upsert(ctx, record); err != nil {
		logger.Warn("Index %s (%s): store write failed: %v", pageID, language, err)
		return fmt.Errorf("%w: upserting %s: %w", domain.ErrStoreFailure, pageID, err)
	}

	logger.Debug("Indexed %s (%s): %d chars of content", pageID, language, len(record.Content))
	return nil
}

// IndexAllPages re-indexes every page the provider lists for the language.
// Pages without an id are skipped. A listing failure counts as one error;
// pages returned alongside it are still indexed.
func (s *IndexService) IndexAllPages(ctx context.Context, language string) domain.IndexAllResult {
	if language == "" {
		language = s.defaultLanguage
	}
	result := domain.IndexAllResult{
		RunID:    s.newID(),
		Language: language,
	}

	logger.Section("Reindex " + language)
	defer logger.Timed("Reindex " + language)()
	logger.Debug("Run: %s", result.RunID)

	pages, err := s.pages.ListPages(ctx, language)
	if err != nil {
		logger.Warn("Reindex %s: %v: %v", result.RunID, domain.ErrListingFailure, err)
		result.Errors++
	}
	logger.Debug("Listed %d pages", len(pages))

	for i := range pages {
		if pages[i].ID == "" {
			continue
		}
		if ctx.Err() != nil {
			logger.Warn("Reindex %s: stopped: %v", result.RunID, ctx.Err())
			result.Errors++
			break
		}
		if err := s.IndexPage(ctx, pages[i].ID, language); err != nil {
			logger.Warn("Reindex %s: page %s: %v", result.RunID, pages[i].ID, err)
			result.Errors++
			continue
		}
		result.Indexed++
	}

	logger.Info("Reindex %s: indexed=%d errors=%d", result.RunID, result.Indexed, result.Errors)
	return result
}

// RemoveFromIndex deletes a page from the index. Removing a page that is
// not indexed succeeds.
func (s *IndexService) RemoveFromIndex(ctx context.Context, pageID string) error {
	if pageID == "" {
		return fmt.Errorf("%w: page id is required", domain.ErrInvalidInput)
	}
	if err := s.store.DeleteByID(ctx, pageID); err != nil {
		logger.Warn("Remove %s: %v", pageID, err)
		return fmt.Errorf("%w: deleting %s: %w", domain.ErrStoreFailure, pageID, err)
	}
	logger.Debug("Removed %s from index", pageID)
	return nil
}

// ClearIndex deletes every indexed page.
func (s *IndexService) ClearIndex(ctx context.Context) error {
	if err := s.store.DeleteAll(ctx); err != nil {
		logger.Warn("Clear index: %v", err)
		return fmt.Errorf("%w: clearing index: %w", domain.ErrStoreFailure, err)
	}
	logger.Info("Index cleared")
	return nil
}

// GetIndexedPage returns the stored index record for a page.
func (s *IndexService) GetIndexedPage(ctx context.Context, pageID string) (*domain.IndexedPage, error) {
	if pageID == "" {
		return nil, fmt.Errorf("%w: page id is required", domain.ErrInvalidInput)
	}
	page, err := s.store.Get(ctx, pageID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("page %s: %w", pageID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("%w: reading %s: %w", domain.ErrStoreFailure, pageID, err)
	}
	return page, nil
}

// IndexedCount returns how many pages are indexed.
func (s *IndexService) IndexedCount(ctx context.Context) (int, error) {
	n, err := s.store.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: counting: %w", domain.ErrStoreFailure, err)
	}
	return n, nil
}

// Package bleve provides a driven.IndexStore backed by an embedded bleve index.
//
// Title and content are indexed as single lowercase tokens so a regexp query
// can find arbitrary substrings. Hits are re-checked with domain.ContainsFold
// so matching agrees with the other stores.
package bleve

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/custom"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/token/lowercase"
	"github.com/blevesearch/bleve/v2/analysis/tokenizer/single"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/blevesearch/bleve/v2/search"
	"github.com/blevesearch/bleve/v2/search/query"

	"github.com/custodia-labs/pageindex/internal/core/domain"
	"github.com/custodia-labs/pageindex/internal/core/ports/driven"
	"github.com/custodia-labs/pageindex/internal/logger"
)

// Ensure IndexStore implements the interface.
var _ driven.IndexStore = (*IndexStore)(nil)

const (
	// LowerKeywordAnalyzer keeps a field as one lowercased token.
	LowerKeywordAnalyzer = "lower_keyword"

	fieldLanguage   = "language"
	fieldTitle      = "title"
	fieldTitleLC    = "title_lc"
	fieldContent    = "content"
	fieldContentLC  = "content_lc"
	fieldPath       = "path"
	fieldModifiedAt = "modified_at"
	fieldIndexedAt  = "indexed_at"

	deleteBatchSize = 500
)

var storedFields = []string{
	fieldLanguage, fieldTitle, fieldContent, fieldPath, fieldModifiedAt, fieldIndexedAt,
}

// ErrClosed is returned by operations on a closed store.
var ErrClosed = errors.New("index is closed")

// IndexStore is a bleve-backed search index.
type IndexStore struct {
	mu     sync.RWMutex
	index  bleve.Index
	path   string
	closed bool
}

// NewIndexStore opens the bleve index at path, creating it if needed.
// If path is empty, an in-memory index is created.
func NewIndexStore(path string) (*IndexStore, error) {
	indexMapping, err := createIndexMapping()
	if err != nil {
		return nil, fmt.Errorf("creating index mapping: %w", err)
	}

	var idx bleve.Index
	if path == "" {
		idx, err = bleve.NewMemOnly(indexMapping)
	} else {
		idx, err = openOrCreate(path, indexMapping)
	}
	if err != nil {
		return nil, fmt.Errorf("opening index: %w", err)
	}

	return &IndexStore{index: idx, path: path}, nil
}

func openOrCreate(path string, indexMapping mapping.IndexMapping) (bleve.Index, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	if err := validateIndexIntegrity(path); err != nil {
		// The index is derived data; a re-index rebuilds it.
		logger.Warn("Bleve index at %s is corrupted, recreating: %v", path, err)
		if err := os.RemoveAll(path); err != nil {
			return nil, fmt.Errorf("removing corrupted index: %w", err)
		}
	}

	idx, err := bleve.Open(path)
	if errors.Is(err, bleve.ErrorIndexPathDoesNotExist) {
		return bleve.New(path, indexMapping)
	}
	return idx, err
}

// validateIndexIntegrity reports a half-written index directory.
func validateIndexIntegrity(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}

	data, err := os.ReadFile(filepath.Join(path, "index_meta.json"))
	if err != nil {
		return fmt.Errorf("reading index_meta.json: %w", err)
	}
	if len(data) == 0 {
		return errors.New("index_meta.json is empty")
	}
	var meta map[string]any
	if err := json.Unmarshal(data, &meta); err != nil {
		return fmt.Errorf("index_meta.json is corrupt: %w", err)
	}
	return nil
}

// createIndexMapping stores display fields and indexes lowercase copies
// of title and content for substring matching.
func createIndexMapping() (*mapping.IndexMappingImpl, error) {
	indexMapping := bleve.NewIndexMapping()

	err := indexMapping.AddCustomAnalyzer(LowerKeywordAnalyzer, map[string]any{
		"type":          custom.Name,
		"tokenizer":     single.Name,
		"token_filters": []string{lowercase.Name},
	})
	if err != nil {
		return nil, fmt.Errorf("adding custom analyzer: %w", err)
	}

	page := bleve.NewDocumentStaticMapping()

	language := bleve.NewKeywordFieldMapping()
	language.Analyzer = keyword.Name
	language.IncludeInAll = false
	page.AddFieldMappingsAt(fieldLanguage, language)

	page.AddFieldMappingsAt(fieldTitle, storedOnly(), lowerKeyword(fieldTitleLC))
	page.AddFieldMappingsAt(fieldContent, storedOnly(), lowerKeyword(fieldContentLC))
	page.AddFieldMappingsAt(fieldPath, storedOnly())

	page.AddFieldMappingsAt(fieldModifiedAt, bleve.NewNumericFieldMapping())
	page.AddFieldMappingsAt(fieldIndexedAt, bleve.NewNumericFieldMapping())

	indexMapping.DefaultMapping = page
	indexMapping.DefaultAnalyzer = keyword.Name
	return indexMapping, nil
}

func storedOnly() *mapping.FieldMapping {
	fm := bleve.NewTextFieldMapping()
	fm.Index = false
	fm.Store = true
	fm.IncludeInAll = false
	fm.IncludeTermVectors = false
	fm.DocValues = false
	return fm
}

func lowerKeyword(name string) *mapping.FieldMapping {
	fm := bleve.NewTextFieldMapping()
	fm.Name = name
	fm.Analyzer = LowerKeywordAnalyzer
	fm.Store = false
	fm.IncludeInAll = false
	fm.IncludeTermVectors = false
	fm.DocValues = false
	return fm
}

// Path returns the index directory, empty for in-memory indexes.
func (s *IndexStore) Path() string {
	return s.path
}

// Get retrieves a record by page ID.
func (s *IndexStore) Get(ctx context.Context, pageID string) (*domain.IndexedPage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, ErrClosed
	}
	return s.lookup(ctx, pageID)
}

// lookup reads one document; the caller holds the lock.
func (s *IndexStore) lookup(ctx context.Context, pageID string) (*domain.IndexedPage, error) {
	req := bleve.NewSearchRequest(bleve.NewDocIDQuery([]string{pageID}))
	req.Fields = storedFields
	req.Size = 1

	result, err := s.index.SearchInContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("looking up page: %w", err)
	}
	if len(result.Hits) == 0 {
		return nil, domain.ErrNotFound
	}
	page := pageFromHit(result.Hits[0])
	return &page, nil
}

// Upsert indexes the record, replacing any document with the same ID.
// An existing document keeps its language.
func (s *IndexStore) Upsert(ctx context.Context, page domain.IndexedPage) error {
	if page.PageID == "" {
		return fmt.Errorf("%w: page id is required", domain.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}

	existing, err := s.lookup(ctx, page.PageID)
	switch {
	case err == nil:
		page.Language = existing.Language
	case !errors.Is(err, domain.ErrNotFound):
		return err
	}

	doc := map[string]any{
		fieldLanguage:   page.Language,
		fieldTitle:      page.Title,
		fieldContent:    page.Content,
		fieldPath:       page.Path,
		fieldModifiedAt: float64(page.ModifiedAt),
		fieldIndexedAt:  float64(page.IndexedAt),
	}
	if err := s.index.Index(page.PageID, doc); err != nil {
		return fmt.Errorf("indexing page %s: %w", page.PageID, err)
	}
	return nil
}

// QueryByLanguageAndSubstring returns the newest records in the language
// whose title or content contain term.
//
// Hits are re-checked with domain.ContainsFold, since lowercase tokens and
// rune folding differ for a few scripts. Rejected hits would leave a short
// page, so hits are read in pages until limit records pass or the index
// runs out.
func (s *IndexStore) QueryByLanguageAndSubstring(
	ctx context.Context, language, term string, limit int,
) ([]domain.IndexedPage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, ErrClosed
	}

	size := limit
	if size <= 0 {
		count, err := s.index.DocCount()
		if err != nil {
			return nil, fmt.Errorf("counting documents: %w", err)
		}
		size = max(int(count), 1)
	}

	q := substringQuery(language, term)
	var pages []domain.IndexedPage
	for from := 0; ; from += size {
		req := bleve.NewSearchRequestOptions(q, size, from, false)
		req.Fields = storedFields
		req.SortBy([]string{"-" + fieldModifiedAt, "_id"})

		result, err := s.index.SearchInContext(ctx, req)
		if err != nil {
			return nil, fmt.Errorf("querying search index: %w", err)
		}

		for _, hit := range result.Hits {
			page := pageFromHit(hit)
			if !domain.ContainsFold(page.Title, term) && !domain.ContainsFold(page.Content, term) {
				continue
			}
			pages = append(pages, page)
			if limit > 0 && len(pages) == limit {
				return pages, nil
			}
		}

		if len(result.Hits) < size || uint64(from+size) >= result.Total {
			return pages, nil
		}
	}
}

// substringQuery matches language exactly and title or content by
// case-insensitive substring.
func substringQuery(language, term string) query.Query {
	lang := bleve.NewTermQuery(language)
	lang.SetField(fieldLanguage)

	pattern := "(?s).*" + regexp.QuoteMeta(strings.ToLower(term)) + ".*"
	title := bleve.NewRegexpQuery(pattern)
	title.SetField(fieldTitleLC)
	content := bleve.NewRegexpQuery(pattern)
	content.SetField(fieldContentLC)

	return bleve.NewConjunctionQuery(lang, bleve.NewDisjunctionQuery(title, content))
}

// DeleteByID removes a record.
func (s *IndexStore) DeleteByID(_ context.Context, pageID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}

	if err := s.index.Delete(pageID); err != nil {
		return fmt.Errorf("deleting page: %w", err)
	}
	return nil
}

// DeleteAll removes every record in batches.
func (s *IndexStore) DeleteAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}

	for {
		req := bleve.NewSearchRequest(bleve.NewMatchAllQuery())
		req.Size = deleteBatchSize
		req.Fields = []string{}

		result, err := s.index.SearchInContext(ctx, req)
		if err != nil {
			return fmt.Errorf("listing documents: %w", err)
		}
		if len(result.Hits) == 0 {
			return nil
		}

		batch := s.index.NewBatch()
		for _, hit := range result.Hits {
			batch.Delete(hit.ID)
		}
		if err := s.index.Batch(batch); err != nil {
			return fmt.Errorf("clearing search index: %w", err)
		}
	}
}

// Count returns the number of indexed pages.
func (s *IndexStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return 0, ErrClosed
	}
	n, err := s.index.DocCount()
	return int(n), err
}

// Close closes the index.
func (s *IndexStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	return s.index.Close()
}

func pageFromHit(hit *search.DocumentMatch) domain.IndexedPage {
	return domain.IndexedPage{
		PageID:     hit.ID,
		Language:   stringField(hit.Fields, fieldLanguage),
		Title:      stringField(hit.Fields, fieldTitle),
		Content:    stringField(hit.Fields, fieldContent),
		Path:       stringField(hit.Fields, fieldPath),
		ModifiedAt: int64Field(hit.Fields, fieldModifiedAt),
		IndexedAt:  int64Field(hit.Fields, fieldIndexedAt),
	}
}

func stringField(fields map[string]any, name string) string {
	s, _ := fields[name].(string)
	return s
}

// int64Field reads a numeric stored field; bleve returns numbers as float64.
func int64Field(fields map[string]any, name string) int64 {
	f, _ := fields[name].(float64)
	return int64(f)
}

// Package backend provides factory functions that build the driven adapters
// selected by application settings.
package backend

import (
	"fmt"
	"path/filepath"

	"github.com/custodia-labs/pageindex/internal/adapters/driven/pages/cached"
	"github.com/custodia-labs/pageindex/internal/adapters/driven/pages/folder"
	blevestore "github.com/custodia-labs/pageindex/internal/adapters/driven/storage/bleve"
	"github.com/custodia-labs/pageindex/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/pageindex/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/pageindex/internal/core/domain"
	"github.com/custodia-labs/pageindex/internal/core/ports/driven"
	"github.com/custodia-labs/pageindex/internal/logger"
)

// bleveDirName is the bleve index directory inside the data directory.
const bleveDirName = "index.bleve"

// InitResult holds the adapters built from settings.
type InitResult struct {
	IndexStore driven.IndexStore

	// Pages is what the index service reads; Folder wrapped in Cache
	// when caching is enabled.
	Pages  driven.PageProvider
	Folder *folder.Provider
	Cache  *cached.Provider // Nil when pages.cache_size is 0.
}

// Close releases all resources held by InitResult.
func (r *InitResult) Close() error {
	if r.IndexStore != nil {
		return r.IndexStore.Close()
	}
	return nil
}

// Invalidate drops a page from the cache, if there is one.
func (r *InitResult) Invalidate(id, language string) {
	if r.Cache != nil {
		r.Cache.Invalidate(id, language)
	}
}

// Init builds every driven adapter the services need.
func Init(settings *domain.AppSettings) (*InitResult, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	store, err := CreateIndexStore(&settings.Storage)
	if err != nil {
		return nil, err
	}

	result := &InitResult{IndexStore: store}
	result.Folder, result.Cache = CreatePageProvider(&settings.Pages)
	result.Pages = result.Folder
	if result.Cache != nil {
		result.Pages = result.Cache
	}

	logger.Debug("Storage: %s, pages: %s, cache: %d pages for %s",
		settings.Storage.Backend, settings.Pages.Root, settings.Pages.CacheSize, settings.Pages.CacheTTL)
	return result, nil
}

// CreateIndexStore opens the configured index store.
func CreateIndexStore(settings *domain.StorageSettings) (driven.IndexStore, error) {
	switch settings.Backend {
	case domain.StorageSQLite:
		store, err := sqlite.NewStore(settings.DataDir)
		if err != nil {
			return nil, fmt.Errorf("%w: opening sqlite: %w", domain.ErrStoreFailure, err)
		}
		return store, nil

	case domain.StorageBleve:
		dataDir := settings.DataDir
		if dataDir == "" {
			dir, err := sqlite.DefaultDataDir()
			if err != nil {
				return nil, err
			}
			dataDir = dir
		}
		store, err := blevestore.NewIndexStore(filepath.Join(dataDir, bleveDirName))
		if err != nil {
			return nil, fmt.Errorf("%w: opening bleve: %w", domain.ErrStoreFailure, err)
		}
		return store, nil

	case domain.StorageMemory:
		return memory.NewIndexStore(), nil

	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedBackend, settings.Backend)
	}
}

// CreatePageProvider builds the folder provider and, when the cache is
// enabled, the cache in front of it.
func CreatePageProvider(settings *domain.PageSettings) (*folder.Provider, *cached.Provider) {
	files := folder.New(settings.Root)
	if settings.CacheSize <= 0 {
		return files, nil
	}
	return files, cached.New(files, settings.CacheSize, settings.CacheTTL)
}

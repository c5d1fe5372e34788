package domain

import (
	"fmt"
	"time"
)

// StorageBackend names an index store implementation.
type StorageBackend string

// Available storage backends.
const (
	// StorageSQLite keeps the index in a SQLite database file.
	StorageSQLite StorageBackend = "sqlite"

	// StorageBleve keeps the index in an embedded bleve index.
	StorageBleve StorageBackend = "bleve"

	// StorageMemory keeps the index in process memory only.
	StorageMemory StorageBackend = "memory"
)

// IsValid returns true if the backend is recognised.
func (b StorageBackend) IsValid() bool {
	switch b {
	case StorageSQLite, StorageBleve, StorageMemory:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (b StorageBackend) String() string {
	return string(b)
}

// Description returns a human-readable description of the backend.
func (b StorageBackend) Description() string {
	switch b {
	case StorageSQLite:
		return "SQLite database"
	case StorageBleve:
		return "Bleve index"
	case StorageMemory:
		return "In-memory (not persisted)"
	default:
		return "Unknown"
	}
}

// AllStorageBackends returns all available storage backends.
func AllStorageBackends() []StorageBackend {
	return []StorageBackend{StorageSQLite, StorageBleve, StorageMemory}
}

// StorageSettings selects and locates the index store.
type StorageSettings struct {
	Backend StorageBackend

	// DataDir holds the index files. Empty means ~/.pageindex/data.
	DataDir string
}

// PageSettings locates page documents and sizes the page cache.
type PageSettings struct {
	// Root is the directory with one folder per language.
	Root string

	// CacheSize is the number of cached pages. Zero disables the cache.
	CacheSize int

	// CacheTTL is how long a cached page stays valid.
	CacheTTL time.Duration
}

// SearchSettings holds search defaults.
type SearchSettings struct {
	DefaultLanguage string
	DefaultLimit    int
}

// AppSettings holds all application settings.
type AppSettings struct {
	Storage StorageSettings
	Pages   PageSettings
	Search  SearchSettings
}

// DefaultAppSettings returns settings with sensible defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Storage: StorageSettings{
			Backend: StorageSQLite,
		},
		Pages: PageSettings{
			Root:      "./pages",
			CacheSize: 256,
			CacheTTL:  30 * time.Second,
		},
		Search: SearchSettings{
			DefaultLanguage: DefaultLanguage,
			DefaultLimit:    DefaultSearchLimit,
		},
	}
}

// Validate checks that the settings can be used to build the index.
func (s AppSettings) Validate() error {
	if !s.Storage.Backend.IsValid() {
		return fmt.Errorf("%w: %q", ErrUnsupportedBackend, s.Storage.Backend)
	}
	if s.Pages.Root == "" {
		return fmt.Errorf("%w: pages.root is empty", ErrInvalidInput)
	}
	if s.Pages.CacheSize < 0 {
		return fmt.Errorf("%w: pages.cache_size must not be negative", ErrInvalidInput)
	}
	if s.Search.DefaultLanguage == "" {
		return fmt.Errorf("%w: search.default_language is empty", ErrInvalidInput)
	}
	if s.Search.DefaultLimit <= 0 {
		return fmt.Errorf("%w: search.default_limit must be positive", ErrInvalidInput)
	}
	return nil
}

// Setting is one configuration key with its effective value.
type Setting struct {
	Key   string `json:"key"`
	Value string `json:"value"`

	// IsDefault is true when the value was not set in the config file.
	IsDefault bool `json:"isDefault"`
}

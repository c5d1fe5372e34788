package services

import (
	"fmt"
	"strconv"
	"time"

	"github.com/custodia-labs/pageindex/internal/core/domain"
	"github.com/custodia-labs/pageindex/internal/core/ports/driven"
	"github.com/custodia-labs/pageindex/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyStorageBackend = "storage.backend"
	keyStorageDataDir = "storage.data_dir"
	keyPagesRoot      = "pages.root"
	keyPagesCacheSize = "pages.cache_size"
	keyPagesCacheTTL  = "pages.cache_ttl_seconds"
	keySearchLanguage = "search.default_language"
	keySearchLimit    = "search.default_limit"
)

// settingKeys lists every key in display order.
var settingKeys = []string{
	keyStorageBackend,
	keyStorageDataDir,
	keyPagesRoot,
	keyPagesCacheSize,
	keyPagesCacheTTL,
	keySearchLanguage,
	keySearchLimit,
}

// intKeys hold integers; the rest hold strings.
var intKeys = map[string]bool{
	keyPagesCacheSize: true,
	keyPagesCacheTTL:  true,
	keySearchLimit:    true,
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Storage: domain.StorageSettings{
			Backend: s.getBackend(defaults.Storage.Backend),
			DataDir: s.configStore.GetString(keyStorageDataDir),
		},
		Pages: domain.PageSettings{
			Root:      s.getString(keyPagesRoot, defaults.Pages.Root),
			CacheSize: s.getInt(keyPagesCacheSize, defaults.Pages.CacheSize),
			CacheTTL: time.Duration(s.getInt(keyPagesCacheTTL,
				int(defaults.Pages.CacheTTL/time.Second))) * time.Second,
		},
		Search: domain.SearchSettings{
			DefaultLanguage: s.getString(keySearchLanguage, defaults.Search.DefaultLanguage),
			DefaultLimit:    s.getInt(keySearchLimit, defaults.Search.DefaultLimit),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if err := settings.Validate(); err != nil {
		return err
	}

	values := []struct {
		key   string
		value any
	}{
		{keyStorageBackend, settings.Storage.Backend.String()},
		{keyStorageDataDir, settings.Storage.DataDir},
		{keyPagesRoot, settings.Pages.Root},
		{keyPagesCacheSize, settings.Pages.CacheSize},
		{keyPagesCacheTTL, int(settings.Pages.CacheTTL / time.Second)},
		{keySearchLanguage, settings.Search.DefaultLanguage},
		{keySearchLimit, settings.Search.DefaultLimit},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}
	return nil
}

// GetValue returns the effective value of one key.
func (s *SettingsService) GetValue(key string) (string, error) {
	if !isKnownKey(key) {
		return "", fmt.Errorf("%w: unknown key %q", domain.ErrInvalidInput, key)
	}
	settings, err := s.Get()
	if err != nil {
		return "", err
	}
	return valueOf(settings, key), nil
}

// SetValue parses value for key, checks the result and persists it.
func (s *SettingsService) SetValue(key, value string) error {
	if !isKnownKey(key) {
		return fmt.Errorf("%w: unknown key %q", domain.ErrInvalidInput, key)
	}

	var typed any = value
	if intKeys[key] {
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be an integer", domain.ErrInvalidInput, key)
		}
		typed = n
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}
	applyValue(settings, key, typed)
	if err := settings.Validate(); err != nil {
		return err
	}

	return s.configStore.Set(key, typed)
}

// List returns every known key with its effective value.
func (s *SettingsService) List() []domain.Setting {
	settings, _ := s.Get() //nolint:errcheck // Get never fails
	list := make([]domain.Setting, 0, len(settingKeys))
	for _, key := range settingKeys {
		_, exists := s.configStore.Get(key)
		list = append(list, domain.Setting{
			Key:       key,
			Value:     valueOf(settings, key),
			IsDefault: !exists,
		})
	}
	return list
}

// Validate checks that the current settings are usable.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}
	if raw := s.configStore.GetString(keyStorageBackend); raw != "" && !domain.StorageBackend(raw).IsValid() {
		return fmt.Errorf("%w: %q", domain.ErrUnsupportedBackend, raw)
	}
	return settings.Validate()
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

// getInt treats an explicit zero as set, so cache_size = 0 disables the cache.
func (s *SettingsService) getInt(key string, defaultVal int) int {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetInt(key)
}

func (s *SettingsService) getBackend(defaultVal domain.StorageBackend) domain.StorageBackend {
	val := s.configStore.GetString(keyStorageBackend)
	if val == "" {
		return defaultVal
	}
	backend := domain.StorageBackend(val)
	if !backend.IsValid() {
		return defaultVal
	}
	return backend
}

func isKnownKey(key string) bool {
	for _, k := range settingKeys {
		if k == key {
			return true
		}
	}
	return false
}

func valueOf(settings *domain.AppSettings, key string) string {
	switch key {
	case keyStorageBackend:
		return settings.Storage.Backend.String()
	case keyStorageDataDir:
		return settings.Storage.DataDir
	case keyPagesRoot:
		return settings.Pages.Root
	case keyPagesCacheSize:
		return strconv.Itoa(settings.Pages.CacheSize)
	case keyPagesCacheTTL:
		return strconv.Itoa(int(settings.Pages.CacheTTL / time.Second))
	case keySearchLanguage:
		return settings.Search.DefaultLanguage
	case keySearchLimit:
		return strconv.Itoa(settings.Search.DefaultLimit)
	default:
		return ""
	}
}

func applyValue(settings *domain.AppSettings, key string, value any) {
	switch key {
	case keyStorageBackend:
		settings.Storage.Backend = domain.StorageBackend(value.(string))
	case keyStorageDataDir:
		settings.Storage.DataDir = value.(string)
	case keyPagesRoot:
		settings.Pages.Root = value.(string)
	case keyPagesCacheSize:
		settings.Pages.CacheSize = value.(int)
	case keyPagesCacheTTL:
		settings.Pages.CacheTTL = time.Duration(value.(int)) * time.Second
	case keySearchLanguage:
		settings.Search.DefaultLanguage = value.(string)
	case keySearchLimit:
		settings.Search.DefaultLimit = value.(int)
	}
}

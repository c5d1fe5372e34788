package driving

import "github.com/custodia-labs/pageindex/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings, defaults filled in.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// GetValue returns the effective value of one key.
	// Returns domain.ErrInvalidInput for unknown keys.
	GetValue(key string) (string, error)

	// SetValue parses and persists one key.
	// Returns domain.ErrInvalidInput for unknown keys or bad values.
	SetValue(key, value string) error

	// List returns every known key in a stable order.
	List() []domain.Setting

	// Validate checks that the current settings are usable.
	Validate() error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings
}

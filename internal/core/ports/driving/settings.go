package driving

import "github.com/custodia-labs/chunk-annotator/internal/core/domain"

// SettingsService manages server settings.
type SettingsService interface {
	// Get retrieves current server settings.
	Get() (*domain.ServerSettings, error)

	// Save persists server settings.
	Save(settings *domain.ServerSettings) error

	// Set updates a single setting from its string form.
	Set(key, value string) error

	// Keys returns every recognised setting key.
	Keys() []string

	// GetDefaults returns default settings.
	GetDefaults() domain.ServerSettings
}

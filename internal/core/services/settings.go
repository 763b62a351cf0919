package services

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/custodia-labs/chunk-annotator/internal/core/domain"
	"github.com/custodia-labs/chunk-annotator/internal/core/ports/driven"
	"github.com/custodia-labs/chunk-annotator/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	KeyServerPort     = "server.port"
	KeyLogLevel       = "log.level"
	KeyLogJSON        = "log.json"
	KeyArchiveEnabled = "archive.enabled"
	KeyArchiveDir     = "archive.dir"
	KeyRateLimit      = "http.rate_limit"
	KeyBurst          = "http.burst"
	KeyMetricsEnabled = "metrics.enabled"
	KeyChunkSize      = "chunk.size"
	KeyChunkOverlap   = "chunk.overlap"
)

// SettingsService manages server settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current server settings. Missing or invalid values fall
// back to their defaults.
func (s *SettingsService) Get() (*domain.ServerSettings, error) {
	defaults := domain.DefaultServerSettings()

	settings := &domain.ServerSettings{
		Log: domain.LogSettings{
			Level: s.getLogLevel(defaults.Log.Level),
			JSON:  s.getBool(KeyLogJSON, defaults.Log.JSON),
		},
		HTTP: domain.HTTPSettings{
			Port:           s.getNonNegativeInt(KeyServerPort, defaults.HTTP.Port),
			RateLimit:      s.getNonNegativeInt(KeyRateLimit, defaults.HTTP.RateLimit),
			Burst:          s.getNonNegativeInt(KeyBurst, defaults.HTTP.Burst),
			MetricsEnabled: s.getBool(KeyMetricsEnabled, defaults.HTTP.MetricsEnabled),
		},
		Archive: domain.ArchiveSettings{
			Enabled: s.getBool(KeyArchiveEnabled, defaults.Archive.Enabled),
			Dir:     s.configStore.GetString(KeyArchiveDir),
		},
		Chunk: domain.ChunkSettings{
			Size:    s.getNonNegativeInt(KeyChunkSize, defaults.Chunk.Size),
			Overlap: s.getNonNegativeInt(KeyChunkOverlap, defaults.Chunk.Overlap),
		},
	}

	return settings, nil
}

// Save validates and persists server settings.
func (s *SettingsService) Save(settings *domain.ServerSettings) error {
	if err := validateSettings(settings); err != nil {
		return err
	}

	values := []struct {
		key   string
		value any
	}{
		{KeyServerPort, settings.HTTP.Port},
		{KeyLogLevel, settings.Log.Level.String()},
		{KeyLogJSON, settings.Log.JSON},
		{KeyArchiveEnabled, settings.Archive.Enabled},
		{KeyArchiveDir, settings.Archive.Dir},
		{KeyRateLimit, settings.HTTP.RateLimit},
		{KeyBurst, settings.HTTP.Burst},
		{KeyMetricsEnabled, settings.HTTP.MetricsEnabled},
		{KeyChunkSize, settings.Chunk.Size},
		{KeyChunkOverlap, settings.Chunk.Overlap},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}
	return nil
}

// Set parses value according to key and persists the updated settings.
func (s *SettingsService) Set(key, value string) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	switch key {
	case KeyServerPort:
		settings.HTTP.Port, err = parseInt(key, value)
	case KeyLogLevel:
		settings.Log.Level = domain.LogLevel(strings.ToLower(value))
	case KeyLogJSON:
		settings.Log.JSON, err = parseBool(key, value)
	case KeyArchiveEnabled:
		settings.Archive.Enabled, err = parseBool(key, value)
	case KeyArchiveDir:
		settings.Archive.Dir = value
	case KeyRateLimit:
		settings.HTTP.RateLimit, err = parseInt(key, value)
	case KeyBurst:
		settings.HTTP.Burst, err = parseInt(key, value)
	case KeyMetricsEnabled:
		settings.HTTP.MetricsEnabled, err = parseBool(key, value)
	case KeyChunkSize:
		settings.Chunk.Size, err = parseInt(key, value)
	case KeyChunkOverlap:
		settings.Chunk.Overlap, err = parseInt(key, value)
	default:
		return fmt.Errorf("%w: unknown setting %q (valid: %s)",
			domain.ErrInvalidInput, key, strings.Join(s.Keys(), ", "))
	}
	if err != nil {
		return err
	}

	return s.Save(settings)
}

// Keys returns every recognised setting key.
func (s *SettingsService) Keys() []string {
	return []string{
		KeyServerPort,
		KeyLogLevel,
		KeyLogJSON,
		KeyArchiveEnabled,
		KeyArchiveDir,
		KeyRateLimit,
		KeyBurst,
		KeyMetricsEnabled,
		KeyChunkSize,
		KeyChunkOverlap,
	}
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.ServerSettings {
	return domain.DefaultServerSettings()
}

func validateSettings(settings *domain.ServerSettings) error {
	if !settings.Log.Level.IsValid() {
		return fmt.Errorf("%w: invalid log level %q", domain.ErrInvalidInput, settings.Log.Level)
	}
	if settings.HTTP.Port < 0 || settings.HTTP.Port > 65535 {
		return fmt.Errorf("%w: port out of range: %d", domain.ErrInvalidInput, settings.HTTP.Port)
	}
	if settings.HTTP.RateLimit < 0 {
		return fmt.Errorf("%w: rate limit must be non-negative", domain.ErrInvalidInput)
	}
	if settings.HTTP.Burst < 0 {
		return fmt.Errorf("%w: burst must be non-negative", domain.ErrInvalidInput)
	}
	if settings.Chunk.Size <= 0 {
		return fmt.Errorf("%w: chunk size must be positive", domain.ErrInvalidInput)
	}
	if settings.Chunk.Overlap < 0 || settings.Chunk.Overlap >= settings.Chunk.Size {
		return fmt.Errorf("%w: chunk overlap must be between 0 and the chunk size", domain.ErrInvalidInput)
	}
	return nil
}

func parseInt(key, value string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", domain.ErrInvalidInput, key)
	}
	return n, nil
}

func parseBool(key, value string) (bool, error) {
	b, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return false, fmt.Errorf("%w: %s must be true or false", domain.ErrInvalidInput, key)
	}
	return b, nil
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getNonNegativeInt(key string, defaultVal int) int {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	val := s.configStore.GetInt(key)
	if val < 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getLogLevel(defaultVal domain.LogLevel) domain.LogLevel {
	val := s.configStore.GetString(KeyLogLevel)
	if val == "" {
		return defaultVal
	}
	level := domain.LogLevel(val)
	if !level.IsValid() {
		return defaultVal
	}
	return level
}

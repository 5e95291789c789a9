package services

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/custodia-labs/milon/internal/core/domain"
	"github.com/custodia-labs/milon/internal/core/ports/driven"
	"github.com/custodia-labs/milon/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	KeyDictionaryPath    = "dictionary.path"
	KeySuggestMax        = "suggest.max_results"
	KeySuggestDistance   = "suggest.max_distance"
	KeySuggestConfusions = "suggest.max_confusions"
	KeyRestoreFinals     = "analyzer.restore_finals"
)

var settingKeys = []string{
	KeyDictionaryPath,
	KeySuggestMax,
	KeySuggestDistance,
	KeySuggestConfusions,
	KeyRestoreFinals,
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
	}
}

// Get retrieves current settings, falling back to defaults for unset keys.
func (s *SettingsService) Get() (*domain.Settings, error) {
	defaults := domain.DefaultSettings()

	settings := &domain.Settings{
		Dictionary: domain.DictionarySettings{
			Path: s.getString(KeyDictionaryPath, defaults.Dictionary.Path),
		},
		Suggest: domain.SuggestSettings{
			MaxResults:    s.getInt(KeySuggestMax, defaults.Suggest.MaxResults),
			MaxDistance:   s.getInt(KeySuggestDistance, defaults.Suggest.MaxDistance),
			MaxConfusions: s.getInt(KeySuggestConfusions, defaults.Suggest.MaxConfusions),
		},
		Analyzer: domain.AnalyzerSettings{
			RestoreFinals: s.getBool(KeyRestoreFinals, defaults.Analyzer.RestoreFinals),
		},
	}

	return settings, nil
}

// Save validates and persists every setting.
func (s *SettingsService) Save(settings *domain.Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}

	if err := s.configStore.Set(KeyDictionaryPath, settings.Dictionary.Path); err != nil {
		return fmt.Errorf("save dictionary path: %w", err)
	}
	if err := s.configStore.Set(KeySuggestMax, settings.Suggest.MaxResults); err != nil {
		return fmt.Errorf("save max_results: %w", err)
	}
	if err := s.configStore.Set(KeySuggestDistance, settings.Suggest.MaxDistance); err != nil {
		return fmt.Errorf("save max_distance: %w", err)
	}
	if err := s.configStore.Set(KeySuggestConfusions, settings.Suggest.MaxConfusions); err != nil {
		return fmt.Errorf("save max_confusions: %w", err)
	}
	if err := s.configStore.Set(KeyRestoreFinals, settings.Analyzer.RestoreFinals); err != nil {
		return fmt.Errorf("save restore_finals: %w", err)
	}

	return nil
}

// Set parses value for key and stores it if the resulting settings are
// valid.
func (s *SettingsService) Set(key, value string) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	var stored any
	switch key {
	case KeyDictionaryPath:
		settings.Dictionary.Path = strings.TrimSpace(value)
		stored = settings.Dictionary.Path
	case KeySuggestMax, KeySuggestDistance, KeySuggestConfusions:
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("%w: %s must be an integer", domain.ErrInvalidInput, key)
		}
		switch key {
		case KeySuggestMax:
			settings.Suggest.MaxResults = n
		case KeySuggestDistance:
			settings.Suggest.MaxDistance = n
		default:
			settings.Suggest.MaxConfusions = n
		}
		stored = n
	case KeyRestoreFinals:
		b, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("%w: %s must be true or false", domain.ErrInvalidInput, key)
		}
		settings.Analyzer.RestoreFinals = b
		stored = b
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	if err := settings.Validate(); err != nil {
		return err
	}
	if err := s.configStore.Set(key, stored); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Reset removes key so its default applies again.
func (s *SettingsService) Reset(key string) error {
	if !isSettingKey(key) {
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}
	return s.configStore.Delete(key)
}

// Keys lists the recognised setting keys.
func (s *SettingsService) Keys() []string {
	out := make([]string, len(settingKeys))
	copy(out, settingKeys)
	return out
}

// GetDefaults returns the default settings.
func (s *SettingsService) GetDefaults() domain.Settings {
	return domain.DefaultSettings()
}

func isSettingKey(key string) bool {
	for _, k := range settingKeys {
		if k == key {
			return true
		}
	}
	return false
}

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

// getInt keeps an explicit zero; zero is meaningful for the edit limits.
func (s *SettingsService) getInt(key string, defaultVal int) int {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetInt(key)
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

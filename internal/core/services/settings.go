package services

import (
	"time"

	"github.com/redline-labs/redline-cli/internal/core/domain"
	"github.com/redline-labs/redline-cli/internal/core/ports/driven"
)

// Configuration keys.
const (
	keyMarginCardGap       = "margin.card_gap"
	keyMarginDefaultHeight = "margin.default_card_height"
	keyMarginDebounceMs    = "margin.debounce_ms"
	keyPaletteColors       = "palette.colors"
	keySidebarVisible      = "sidebar.visible"
	keyAssistantRate       = "assistant.rate_per_second"
	keyAssistantBurst      = "assistant.burst"
)

// SettingsService reads and writes typed application settings over the
// key/value config store. Missing or invalid values fall back to
// defaults.
type SettingsService struct {
	store driven.ConfigStore
}

// NewSettingsService creates a settings service.
func NewSettingsService(store driven.ConfigStore) *SettingsService {
	return &SettingsService{store: store}
}

// Get returns the current settings with defaults applied.
func (s *SettingsService) Get() *domain.AppSettings {
	settings := domain.DefaultAppSettings()
	if s.store == nil {
		return settings
	}

	if v := s.store.GetFloat(keyMarginCardGap); v > 0 {
		settings.Margin.CardGap = v
	}
	if v := s.store.GetFloat(keyMarginDefaultHeight); v > 0 {
		settings.Margin.DefaultCardHeight = v
	}
	if v := s.store.GetInt(keyMarginDebounceMs); v > 0 {
		settings.Margin.DebounceInterval = time.Duration(v) * time.Millisecond
	}
	if colors := s.store.GetStringSlice(keyPaletteColors); len(colors) > 0 {
		settings.Palette = domain.Palette(colors)
	}
	if _, ok := s.store.Get(keySidebarVisible); ok {
		settings.SidebarVisible = s.store.GetBool(keySidebarVisible)
	}
	if v := s.store.GetFloat(keyAssistantRate); v > 0 {
		settings.Assistant.RatePerSecond = v
	}
	if v := s.store.GetInt(keyAssistantBurst); v > 0 {
		settings.Assistant.Burst = v
	}

	settings.Normalise()
	return settings
}

// Save persists the settings to the config store.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if s.store == nil || settings == nil {
		return domain.ErrInvalidInput
	}
	settings.Normalise()

	if err := s.store.Set(keyMarginCardGap, settings.Margin.CardGap); err != nil {
		return err
	}
	if err := s.store.Set(keyMarginDefaultHeight, settings.Margin.DefaultCardHeight); err != nil {
		return err
	}
	if err := s.store.Set(keyMarginDebounceMs, int(settings.Margin.DebounceInterval/time.Millisecond)); err != nil {
		return err
	}
	if err := s.store.Set(keyPaletteColors, []string(settings.Palette)); err != nil {
		return err
	}
	if err := s.store.Set(keySidebarVisible, settings.SidebarVisible); err != nil {
		return err
	}
	if err := s.store.Set(keyAssistantRate, settings.Assistant.RatePerSecond); err != nil {
		return err
	}
	return s.store.Set(keyAssistantBurst, settings.Assistant.Burst)
}

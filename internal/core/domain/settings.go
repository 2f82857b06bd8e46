package domain

import "time"

// Layout defaults used when no configuration overrides them.
const (
	// DefaultCardGap is the minimum vertical gap between comment cards.
	DefaultCardGap = 12.0

	// DefaultCardHeight is assumed for cards that are not yet mounted.
	DefaultCardHeight = 120.0

	// DefaultReconcileDebounce lets asynchronous highlight injection
	// settle before remeasuring.
	DefaultReconcileDebounce = 500 * time.Millisecond
)

// MarginSettings configures the comment margin layout.
type MarginSettings struct {
	// CardGap is the minimum gap between adjacent cards.
	CardGap float64

	// DefaultCardHeight is used before a card reports its height.
	DefaultCardHeight float64

	// DebounceInterval delays recomputation after list changes.
	DebounceInterval time.Duration
}

// AssistantSettings configures assistant directive handling.
type AssistantSettings struct {
	// RatePerSecond caps dispatched directives per second.
	RatePerSecond float64

	// Burst is the dispatch burst allowance.
	Burst int
}

// AppSettings is the typed application configuration.
type AppSettings struct {
	// Margin configures the comment margin layout.
	Margin MarginSettings

	// Palette is the ordered card colour palette.
	Palette Palette

	// SidebarVisible is the initial sidebar visibility.
	SidebarVisible bool

	// Assistant configures directive dispatch.
	Assistant AssistantSettings
}

// DefaultAppSettings returns settings with all defaults applied.
func DefaultAppSettings() *AppSettings {
	return &AppSettings{
		Margin: MarginSettings{
			CardGap:           DefaultCardGap,
			DefaultCardHeight: DefaultCardHeight,
			DebounceInterval:  DefaultReconcileDebounce,
		},
		Palette:        DefaultPalette(),
		SidebarVisible: true,
		Assistant: AssistantSettings{
			RatePerSecond: 5,
			Burst:         10,
		},
	}
}

// Normalise replaces zero or negative values with defaults so a
// partially populated settings file still yields a usable config.
func (s *AppSettings) Normalise() {
	if s.Margin.CardGap <= 0 {
		s.Margin.CardGap = DefaultCardGap
	}
	if s.Margin.DefaultCardHeight <= 0 {
		s.Margin.DefaultCardHeight = DefaultCardHeight
	}
	if s.Margin.DebounceInterval <= 0 {
		s.Margin.DebounceInterval = DefaultReconcileDebounce
	}
	if len(s.Palette) == 0 {
		s.Palette = DefaultPalette()
	}
	if s.Assistant.RatePerSecond <= 0 {
		s.Assistant.RatePerSecond = 5
	}
	if s.Assistant.Burst <= 0 {
		s.Assistant.Burst = 10
	}
}

package tui

import (
	"github.com/Veraticus/the-thread-must-fit/internal/matching"
	"github.com/Veraticus/the-thread-must-fit/internal/storage"
	"github.com/Veraticus/the-thread-must-fit/internal/tui/themes"
	"github.com/Veraticus/the-thread-must-fit/internal/units"
)

// Config holds TUI configuration.
type Config struct {
	Theme        themes.Theme
	Engine       *matching.Engine
	History      storage.HistoryStore
	Unit         units.Unit
	Width        int
	Height       int
	HistoryLimit int
	ShowHelp     bool
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Theme:        themes.Default,
		Unit:         units.Millimetre,
		Width:        80,
		Height:       24,
		HistoryLimit: storage.DefaultHistoryLimit,
		ShowHelp:     true,
	}
}

// WithEngine sets the identification engine.
func WithEngine(engine *matching.Engine) Option {
	return func(c *Config) {
		c.Engine = engine
	}
}

// WithHistory sets the session history store. Without one, results are not
// remembered.
func WithHistory(history storage.HistoryStore) Option {
	return func(c *Config) {
		c.History = history
	}
}

// WithTheme sets the visual theme.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) {
		c.Theme = theme
	}
}

// WithUnit sets the unit the caliper readings are typed in.
func WithUnit(unit units.Unit) Option {
	return func(c *Config) {
		c.Unit = unit
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

// WithHistoryLimit sets how many history entries are shown.
func WithHistoryLimit(limit int) Option {
	return func(c *Config) {
		if limit > 0 {
			c.HistoryLimit = limit
		}
	}
}

// WithHelp toggles the key help footer.
func WithHelp(show bool) Option {
	return func(c *Config) {
		c.ShowHelp = show
	}
}

// Package config resolves bolt's settings from the config file, BOLT_
// environment variables and command-line flags.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Veraticus/the-thread-must-fit/internal/common"
	"github.com/Veraticus/the-thread-must-fit/internal/matching"
	"github.com/Veraticus/the-thread-must-fit/internal/storage"
	"github.com/Veraticus/the-thread-must-fit/internal/units"
	"github.com/spf13/viper"
)

// Config is the resolved application configuration.
type Config struct {
	Logging  LoggingConfig
	UI       UIConfig
	History  HistoryConfig
	Matching matching.Tolerances
}

// LoggingConfig controls the slog handler.
type LoggingConfig struct {
	Level  string
	Format string
}

// HistoryConfig controls the session history store.
type HistoryConfig struct {
	Path  string
	Limit int
}

// UIConfig controls presentation.
type UIConfig struct {
	Unit  units.Unit
	Theme string
}

// SetDefaults registers every key with its default value.
func SetDefaults(v *viper.Viper) {
	tol := matching.DefaultTolerances()

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("matching.diameter_tolerance", tol.DiameterMm)
	v.SetDefault("matching.under_tolerance", tol.UnderMm)
	v.SetDefault("matching.pitch_tolerance", tol.PitchMm)
	v.SetDefault("matching.tie_break_epsilon", tol.TieBreakEpsilon)
	v.SetDefault("matching.max_alternatives", tol.MaxAlternatives)
	v.SetDefault("history.path", storage.MemoryPath)
	v.SetDefault("history.limit", storage.DefaultHistoryLimit)
	v.SetDefault("ui.unit", string(units.Millimetre))
	v.SetDefault("ui.theme", "default")
}

// Load resolves the configuration from Viper (config file, BOLT_ environment
// variables and bound flags) and validates it.
func Load(v *viper.Viper) (Config, error) {
	SetDefaults(v)

	cfg := Config{
		Logging: LoggingConfig{
			Level:  strings.ToLower(v.GetString("logging.level")),
			Format: strings.ToLower(v.GetString("logging.format")),
		},
		Matching: matching.Tolerances{
			DiameterMm:      v.GetFloat64("matching.diameter_tolerance"),
			UnderMm:         v.GetFloat64("matching.under_tolerance"),
			PitchMm:         v.GetFloat64("matching.pitch_tolerance"),
			TieBreakEpsilon: v.GetFloat64("matching.tie_break_epsilon"),
			MaxAlternatives: v.GetInt("matching.max_alternatives"),
		},
		History: HistoryConfig{
			Path:  v.GetString("history.path"),
			Limit: v.GetInt("history.limit"),
		},
		UI: UIConfig{
			Theme: v.GetString("ui.theme"),
		},
	}

	if cfg.History.Path != storage.MemoryPath {
		cfg.History.Path = ExpandPath(cfg.History.Path)
	}

	unit, err := units.ParseUnit(v.GetString("ui.unit"))
	if err != nil {
		return Config{}, fmt.Errorf("%w: ui.unit: %w", common.ErrInvalidConfig, err)
	}
	cfg.UI.Unit = unit

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the resolved values.
func (c Config) Validate() error {
	if _, err := common.ParseLevel(c.Logging.Level); err != nil {
		return err
	}
	if c.Logging.Format != "console" && c.Logging.Format != "json" {
		return fmt.Errorf("%w: invalid log format: %s", common.ErrInvalidConfig, c.Logging.Format)
	}
	if err := c.Matching.Validate(); err != nil {
		return err
	}
	if c.History.Limit <= 0 {
		return fmt.Errorf("%w: history.limit must be positive, got %d", common.ErrInvalidConfig, c.History.Limit)
	}
	if strings.TrimSpace(c.History.Path) == "" {
		return fmt.Errorf("%w: history.path", common.ErrMissingConfig)
	}
	return nil
}

// ExpandPath resolves a leading ~ to the home directory and then expands
// $VAR references, so history.path can be written as ~/.local/share/bolt.db
// or $XDG_DATA_HOME/bolt.db. The path is returned unchanged when the home
// directory is unknown.
func ExpandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return os.ExpandEnv(path)
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Veraticus/the-thread-must-fit/internal/common"
	"github.com/Veraticus/the-thread-must-fit/internal/matching"
	"github.com/Veraticus/the-thread-must-fit/internal/storage"
	"github.com/Veraticus/the-thread-must-fit/internal/units"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, matching.DefaultTolerances(), cfg.Matching)
	assert.Equal(t, storage.MemoryPath, cfg.History.Path)
	assert.Equal(t, storage.DefaultHistoryLimit, cfg.History.Limit)
	assert.Equal(t, units.Millimetre, cfg.UI.Unit)
	assert.Equal(t, "default", cfg.UI.Theme)
}

func TestLoad_Overrides(t *testing.T) {
	v := viper.New()
	v.Set("logging.level", "DEBUG")
	v.Set("logging.format", "json")
	v.Set("matching.diameter_tolerance", 0.5)
	v.Set("matching.max_alternatives", 5)
	v.Set("history.limit", 10)
	v.Set("ui.unit", "inch")

	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.InDelta(t, 0.5, cfg.Matching.DiameterMm, 1e-9)
	assert.InDelta(t, 0.25, cfg.Matching.UnderMm, 1e-9)
	assert.Equal(t, 5, cfg.Matching.MaxAlternatives)
	assert.Equal(t, 10, cfg.History.Limit)
	assert.Equal(t, units.Inch, cfg.UI.Unit)
}

func TestLoad_ExpandsHistoryPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	v := viper.New()
	v.Set("history.path", "~/bolt/history.db")

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "bolt", "history.db"), cfg.History.Path)
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte("matching:\n  pitch_tolerance: 0.1\nui:\n  unit: mm\n  theme: catppuccin-mocha\n")
	require.NoError(t, os.WriteFile(path, content, 0o600))

	v := viper.New()
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.InDelta(t, 0.1, cfg.Matching.PitchMm, 1e-9)
	assert.Equal(t, "catppuccin-mocha", cfg.UI.Theme)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		value any
		name  string
		key   string
	}{
		{name: "log level", key: "logging.level", value: "verbose"},
		{name: "log format", key: "logging.format", value: "xml"},
		{name: "negative tolerance", key: "matching.diameter_tolerance", value: -0.1},
		{name: "zero pitch tolerance", key: "matching.pitch_tolerance", value: 0},
		{name: "history limit", key: "history.limit", value: 0},
		{name: "unit", key: "ui.unit", value: "furlong"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := viper.New()
			v.Set(tt.key, tt.value)

			_, err := Load(v)
			require.Error(t, err)
			assert.ErrorIs(t, err, common.ErrInvalidConfig)
		})
	}
}

func TestValidate_EmptyHistoryPath(t *testing.T) {
	cfg, err := Load(viper.New())
	require.NoError(t, err)

	cfg.History.Path = " "
	assert.ErrorIs(t, cfg.Validate(), common.ErrMissingConfig)
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	t.Setenv("BOLT_TEST_DIR", "/tmp/bolt")

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "tilde", in: "~", want: home},
		{name: "tilde prefix", in: "~/history.db", want: filepath.Join(home, "history.db")},
		{name: "env var", in: "$BOLT_TEST_DIR/history.db", want: "/tmp/bolt/history.db"},
		{name: "plain", in: "/var/lib/bolt.db", want: "/var/lib/bolt.db"},
		{name: "other user left alone", in: "~shop/history.db", want: "~shop/history.db"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandPath(tt.in))
		})
	}
}

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Veraticus/the-thread-must-fit/internal/common"
	"github.com/Veraticus/the-thread-must-fit/internal/model"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// executeCommand runs the CLI in isolation and returns what it printed.
func executeCommand(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Setenv("HOME", t.TempDir())
	cfgFile = ""

	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)

	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := executeCommand(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "bolt version dev\n", out)
}

func TestIdentify_JSON(t *testing.T) {
	out, err := executeCommand(t, "",
		"identify", "--diameter", "7.95", "--pitch", "1.25", "--length", "25", "--system", "metric", "--json")
	require.NoError(t, err)

	var got identifyOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))

	assert.True(t, got.Identified)
	assert.Equal(t, "M8 x 1.25 x 25mm", got.Specification)
	require.NotNil(t, got.Best)
	assert.Equal(t, "M8", got.Best.Designation)
	assert.Equal(t, "coarse", got.Best.PitchType)
	require.NotNil(t, got.LengthCheck)
	assert.True(t, got.LengthCheck.IsStandard)
	assert.Equal(t, "metric", got.Measurements.System)
}

func TestIdentify_Whitworth_Inches(t *testing.T) {
	out, err := executeCommand(t, "",
		"--unit", "inch", "identify", "-d", "5/16", "-p", "18", "-s", "whitworth", "--json")
	require.NoError(t, err)

	var got identifyOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.NotNil(t, got.Best)
	assert.Equal(t, "5/16", got.Best.Designation)
	assert.InDelta(t, 7.9375, got.Measurements.DiameterMm, 1e-9)
}

func TestIdentify_Text(t *testing.T) {
	out, err := executeCommand(t, "", "identify", "--diameter", "7.95", "--pitch", "1.25", "--head", "hex")
	require.NoError(t, err)

	assert.Contains(t, out, "Best match")
	assert.Contains(t, out, "M8 x 1.25")
	assert.Contains(t, out, "Head: Hexagonal")
}

func TestIdentify_Errors(t *testing.T) {
	tests := []struct {
		wantErr error
		name    string
		wantMsg string
		args    []string
	}{
		{
			name:    "bad diameter",
			args:    []string{"identify", "--diameter", "abc"},
			wantErr: common.ErrInvalidMeasurement,
		},
		{
			name:    "diameter out of range",
			args:    []string{"identify", "--diameter", "80"},
			wantErr: common.ErrInvalidMeasurement,
		},
		{
			name:    "unknown system",
			args:    []string{"identify", "--diameter", "8", "--system", "martian"},
			wantMsg: `unknown system "martian"`,
		},
		{
			name:    "unknown head",
			args:    []string{"identify", "--diameter", "8", "--head", "wing"},
			wantErr: common.ErrNotFound,
			wantMsg: `unknown head type "wing"`,
		},
		{
			name:    "bad metric pitch",
			args:    []string{"identify", "--diameter", "8", "--pitch", "1.1", "--system", "metric"},
			wantErr: common.ErrInvalidMeasurement,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := executeCommand(t, "", tt.args...)
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			if tt.wantMsg != "" {
				assert.Contains(t, cliError(err), tt.wantMsg)
			}
		})
	}
}

func TestIdentify_RequiresDiameter(t *testing.T) {
	_, err := executeCommand(t, "", "identify", "--pitch", "1.25")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "diameter")
}

func TestMatches(t *testing.T) {
	out, err := executeCommand(t, "", "matches", "7.95")
	require.NoError(t, err)
	assert.Contains(t, out, "M8")
	assert.Contains(t, out, "5/16")

	_, err = executeCommand(t, "", "matches", "7.95", "--tolerance=-1")
	assert.Error(t, err)
}

func TestPitch(t *testing.T) {
	out, err := executeCommand(t, "", "pitch", "1.25", "M8")
	require.NoError(t, err)
	assert.Contains(t, out, "measured against M8")

	out, err = executeCommand(t, "", "pitch", "18", "5/16")
	require.NoError(t, err)
	assert.Contains(t, out, "5/16 (18 TPI)")

	_, err = executeCommand(t, "", "pitch", "1.25", "M99")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrNotFound)
	assert.Contains(t, cliError(err), "unknown thread designation")
}

func TestLength(t *testing.T) {
	out, err := executeCommand(t, "", "length", "24.6", "--designation", "M8")
	require.NoError(t, err)
	assert.Contains(t, out, "rounds to")
	assert.Contains(t, out, "M8:")

	_, err = executeCommand(t, "", "length", "0")
	assert.ErrorIs(t, err, common.ErrInvalidMeasurement)
}

func TestWashersAndTables(t *testing.T) {
	out, err := executeCommand(t, "", "washers", "8", "--system", "metric")
	require.NoError(t, err)
	assert.Contains(t, out, "M8")

	out, err = executeCommand(t, "", "tables", "--system", "whitworth")
	require.NoError(t, err)
	assert.Contains(t, out, "Whitworth threads")
	assert.NotContains(t, out, "Metric threads")
}

func TestWizard_Plain(t *testing.T) {
	out, err := executeCommand(t, "7.95\nmetric\n1.25\n\n", "wizard", "--plain")
	require.NoError(t, err)
	assert.Contains(t, out, "Best match")
	assert.Contains(t, out, "M8 x 1.25")

	out, err = executeCommand(t, "q\n", "wizard", "--plain")
	require.NoError(t, err)
	assert.NotContains(t, out, "Best match")
}

func TestBatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bolts.csv")
	require.NoError(t, os.WriteFile(path, []byte("diameter,pitch,length,system\n7.95,1.25,25,metric\n7.94,1.411,,whitworth\n"), 0o600))

	out, err := executeCommand(t, "", "batch", path)
	require.NoError(t, err)
	assert.Contains(t, out, "M8 x 1.25 x 25mm")
	assert.Contains(t, out, "2 rows, 2 identified, 0 invalid")

	out, err = executeCommand(t, "10,1.5\n", "batch", "-", "--no-progress")
	require.NoError(t, err)
	assert.Contains(t, out, "M10")

	_, err = executeCommand(t, "", "batch", filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
	assert.Contains(t, cliError(err), "cannot open")
}

func TestHistory(t *testing.T) {
	out, err := executeCommand(t, "", "history")
	require.NoError(t, err)
	assert.Contains(t, out, "kept in memory")

	t.Setenv("BOLT_HISTORY_PATH", filepath.Join(t.TempDir(), "history.db"))

	_, err = executeCommand(t, "", "identify", "--diameter", "7.95", "--pitch", "1.25")
	require.NoError(t, err)

	out, err = executeCommand(t, "", "history")
	require.NoError(t, err)
	assert.Contains(t, out, "M8 x 1.25")

	out, err = executeCommand(t, "", "history", "--clear")
	require.NoError(t, err)
	assert.Contains(t, out, "History cleared")

	out, err = executeCommand(t, "", "history")
	require.NoError(t, err)
	assert.Contains(t, out, "No identifications saved yet.")
}

func TestInvalidConfig(t *testing.T) {
	t.Setenv("BOLT_MATCHING_PITCH_TOLERANCE", "-1")

	_, err := executeCommand(t, "", "version")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrInvalidConfig)
}

func TestSystemsFor(t *testing.T) {
	assert.Equal(t, []model.System{model.SystemMetric, model.SystemWhitworth}, systemsFor(model.PreferBoth))
	assert.Equal(t, []model.System{model.SystemWhitworth}, systemsFor(model.PreferWhitworth))
}

func TestCliError(t *testing.T) {
	assert.Equal(t, "Error: boom", cliError(errors.New("boom")))
	assert.Equal(t, "Error: friendly", cliError(common.NewUserError("friendly", errors.New("boom"))))
}

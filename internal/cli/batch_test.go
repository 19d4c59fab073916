package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/Veraticus/the-thread-must-fit/internal/common"
	"github.com/Veraticus/the-thread-must-fit/internal/matching"
	"github.com/Veraticus/the-thread-must-fit/internal/model"
	"github.com/Veraticus/the-thread-must-fit/internal/reference"
	"github.com/Veraticus/the-thread-must-fit/internal/units"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T) *matching.Engine {
	t.Helper()
	table, err := reference.Default()
	require.NoError(t, err)
	engine, err := matching.NewEngine(table, matching.DefaultTolerances())
	require.NoError(t, err)
	return engine
}

func TestReadBatch(t *testing.T) {
	input := strings.Join([]string{
		"7.95,1.25,25,metric,hex",
		"7.94, 1.411, , whitworth",
		"80,1.25",
		",1.25",
		"10,1.5,,martian",
	}, "\n")

	rows, err := ReadBatch(strings.NewReader(input), units.Millimetre)
	require.NoError(t, err)
	require.Len(t, rows, 5)

	first := rows[0]
	require.NoError(t, first.Err)
	assert.Equal(t, 1, first.Line)
	assert.InDelta(t, 7.95, first.Query.DiameterMm, 1e-9)
	assert.InDelta(t, 1.25, first.Query.PitchMm, 1e-9)
	assert.InDelta(t, 25, first.Query.LengthMm, 1e-9)
	assert.Equal(t, model.PreferMetric, first.Query.Preference)
	assert.Equal(t, model.HeadHex, first.Query.HeadType)

	second := rows[1]
	require.NoError(t, second.Err)
	assert.Equal(t, model.PreferWhitworth, second.Query.Preference)
	assert.Zero(t, second.Query.LengthMm)
	assert.Empty(t, second.Query.HeadType)

	for _, row := range rows[2:] {
		assert.ErrorIs(t, row.Err, common.ErrInvalidMeasurement, "line %d", row.Line)
	}
	assert.Contains(t, rows[3].Err.Error(), "diameter is required")
}

func TestReadBatch_Header(t *testing.T) {
	input := "Head,Diameter,Pitch\ncarriage,8,1.25\n"

	rows, err := ReadBatch(strings.NewReader(input), units.Millimetre)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	row := rows[0]
	require.NoError(t, row.Err)
	assert.Equal(t, 2, row.Line)
	assert.Equal(t, model.HeadCarriage, row.Query.HeadType)
	assert.InDelta(t, 8.0, row.Query.DiameterMm, 1e-9)
	assert.Equal(t, model.PreferBoth, row.Query.Preference)
}

func TestReadBatch_Inches(t *testing.T) {
	rows, err := ReadBatch(strings.NewReader("5/16,,1-1/2\n"), units.Inch)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.NoError(t, rows[0].Err)
	assert.InDelta(t, 7.9375, rows[0].Query.DiameterMm, 1e-9)
	assert.InDelta(t, 38.1, rows[0].Query.LengthMm, 1e-9)
}

func TestReadBatch_Empty(t *testing.T) {
	rows, err := ReadBatch(strings.NewReader(""), units.Millimetre)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestBatchRunner_Run(t *testing.T) {
	rows, err := ReadBatch(strings.NewReader("7.95,1.25,25,metric,hex\n7.94,1.411,,whitworth\n80\n"), units.Millimetre)
	require.NoError(t, err)

	var progress bytes.Buffer
	runner := NewBatchRunner(newTestEngine(t), &progress)

	results, err := runner.Run(context.Background(), rows)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, "M8 x 1.25 x 25mm", results[0].Specification)
	assert.Contains(t, results[1].Specification, "5/16 BSW 18 TPI")
	assert.Empty(t, results[2].Specification)
	assert.Nil(t, results[2].Result.Best())
	assert.Contains(t, progress.String(), "Identifying bolts")

	out := RenderBatch(results)
	assert.Contains(t, out, "M8 x 1.25 x 25mm")
	assert.Contains(t, out, "diameter must be between 1 and 50 mm")
	assert.Contains(t, out, "3 rows, 2 identified, 1 invalid")
}

func TestBatchRunner_Cancelled(t *testing.T) {
	rows, err := ReadBatch(strings.NewReader("7.95,1.25\n10,1.5\n"), units.Millimetre)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := NewBatchRunner(newTestEngine(t), nil).Run(ctx, rows)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, results)
}

func TestRenderBatch_NoMatch(t *testing.T) {
	results := []BatchResult{{Row: BatchRow{Line: 4}}}

	out := RenderBatch(results)
	assert.Contains(t, out, "no match")
	assert.Contains(t, out, "1 rows, 0 identified, 0 invalid")
}

package reference

import (
	"testing"

	"github.com/Veraticus/the-thread-must-fit/internal/common"
	"github.com/Veraticus/the-thread-must-fit/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testHeads = `
head_types:
  hex:
    name: Hexagonal
    tool: Spanner
`

const testWhitworth = `
whitworth_threads:
  "1/4":
    diameter_inch: 0.25
    threads_per_inch: 20
  "1/4-BSF":
    diameter_inch: 0.25
    diameter_mm: 6.35
    threads_per_inch: 26
`

func TestLoad_EmbeddedTables(t *testing.T) {
	table, err := Default()
	require.NoError(t, err)

	again, err := Default()
	require.NoError(t, err)
	assert.Same(t, table, again)

	metric := table.Standards(model.SystemMetric)
	require.NotEmpty(t, metric)
	for i := 1; i < len(metric); i++ {
		assert.LessOrEqual(t, metric[i-1].NominalDiameterMm, metric[i].NominalDiameterMm)
	}
	for _, std := range append(metric, table.Standards(model.SystemWhitworth)...) {
		assert.NoError(t, std.Validate(), std.Designation)
	}

	assert.Equal(t, "M2", table.Designations(model.SystemMetric)[0])
	assert.Len(t, table.HeadTypes(), 7)
}

func TestTable_Lookup(t *testing.T) {
	table, err := Default()
	require.NoError(t, err)

	m8, err := table.Lookup(model.SystemMetric, "M8")
	require.NoError(t, err)
	assert.Equal(t, 8.0, m8.NominalDiameterMm)
	assert.Equal(t, 1.25, m8.Metric.CoarsePitchMm)
	assert.Equal(t, []float64{1.0, 0.75}, m8.Metric.FinePitchesMm)
	assert.Nil(t, m8.Whitworth)

	quarter, err := table.Lookup(model.SystemWhitworth, "1/4")
	require.NoError(t, err)
	assert.Equal(t, 6.35, quarter.NominalDiameterMm)
	assert.Equal(t, 20, quarter.Whitworth.ThreadsPerInch)
	assert.Equal(t, model.SubtypeBSW, quarter.Whitworth.Subtype)

	fine, err := table.Find("1/4-BSF")
	require.NoError(t, err)
	assert.Equal(t, model.SubtypeBSF, fine.Whitworth.Subtype)
	assert.Equal(t, 26, fine.Whitworth.ThreadsPerInch)

	_, err = table.Lookup(model.SystemWhitworth, "M8")
	assert.ErrorIs(t, err, common.ErrNotFound)

	_, err = table.Find("M9")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestTable_FinePitchShapes(t *testing.T) {
	table, err := Default()
	require.NoError(t, err)

	tests := []struct {
		designation string
		want        []float64
	}{
		{designation: "M2", want: []float64{}},
		{designation: "M2.5", want: []float64{}},
		{designation: "M6", want: []float64{0.75}},
		{designation: "M10", want: []float64{1.25, 1.0}},
	}

	for _, tt := range tests {
		t.Run(tt.designation, func(t *testing.T) {
			std, err := table.Lookup(model.SystemMetric, tt.designation)
			require.NoError(t, err)
			assert.Equal(t, tt.want, std.Metric.FinePitchesMm)
		})
	}
}

func TestTable_StandardsIsACopy(t *testing.T) {
	table, err := Default()
	require.NoError(t, err)

	rows := table.Standards(model.SystemMetric)
	rows[0].Designation = "changed"

	assert.Equal(t, "M2", table.Standards(model.SystemMetric)[0].Designation)
}

func TestTable_Washers(t *testing.T) {
	table, err := Default()
	require.NoError(t, err)

	for _, system := range []model.System{model.SystemMetric, model.SystemWhitworth} {
		washers := table.Washers(system)
		require.NotEmpty(t, washers)
		for i, w := range washers {
			assert.Equal(t, system, w.System)
			assert.Greater(t, w.OuterDiameterMm, w.InnerDiameterMm)
			if i > 0 {
				assert.LessOrEqual(t, washers[i-1].InnerDiameterMm, w.InnerDiameterMm)
			}
		}
	}
}

func TestTable_HeadType(t *testing.T) {
	table, err := Default()
	require.NoError(t, err)

	info, ok := table.HeadType(model.HeadAllen)
	require.True(t, ok)
	assert.Equal(t, "Allen key", info.Tool)

	_, ok = table.HeadType("torx")
	assert.False(t, ok)
}

func TestParse(t *testing.T) {
	tests := []struct {
		name      string
		metric    string
		whitworth string
		heads     string
		errMsg    string
		wantErr   bool
	}{
		{
			name: "scalar and null fine pitches",
			metric: `
metric_threads:
  M6:
    diameter: 6
    coarse_pitch: 1.0
    fine_pitch: 0.75
  M3:
    diameter: 3
    coarse_pitch: 0.5
    fine_pitch:
`,
			whitworth: testWhitworth,
			heads:     testHeads,
		},
		{
			name: "negative coarse pitch",
			metric: `
metric_threads:
  M6:
    diameter: 6
    coarse_pitch: -1
`,
			whitworth: testWhitworth,
			heads:     testHeads,
			wantErr:   true,
			errMsg:    "coarse pitch must be positive",
		},
		{
			name: "fine pitch map",
			metric: `
metric_threads:
  M6:
    diameter: 6
    coarse_pitch: 1
    fine_pitch: {a: 1}
`,
			whitworth: testWhitworth,
			heads:     testHeads,
			wantErr:   true,
			errMsg:    "fine pitch must be a number or a list",
		},
		{
			name:      "empty metric table",
			metric:    `metric_threads: {}`,
			whitworth: testWhitworth,
			heads:     testHeads,
			wantErr:   true,
			errMsg:    "no threads",
		},
		{
			name: "unknown whitworth subtype",
			metric: `
metric_threads:
  M6: {diameter: 6, coarse_pitch: 1}
`,
			whitworth: `
whitworth_threads:
  "1/4": {diameter_inch: 0.25, threads_per_inch: 20, subtype: BSX}
`,
			heads:   testHeads,
			wantErr: true,
			errMsg:  "unknown subtype",
		},
		{
			name: "unsorted lengths",
			metric: `
metric_threads:
  M6: {diameter: 6, coarse_pitch: 1, standard_lengths: [20, 10]}
`,
			whitworth: testWhitworth,
			heads:     testHeads,
			wantErr:   true,
			errMsg:    "sorted ascending",
		},
		{
			name: "inverted washer",
			metric: `
metric_threads:
  M6: {diameter: 6, coarse_pitch: 1}
washers:
  M6: {inner_diameter: 12, outer_diameter: 6.4, thickness: 1.6}
`,
			whitworth: testWhitworth,
			heads:     testHeads,
			wantErr:   true,
			errMsg:    "inconsistent diameters",
		},
		{
			name: "head type without name",
			metric: `
metric_threads:
  M6: {diameter: 6, coarse_pitch: 1}
`,
			whitworth: testWhitworth,
			heads:     "head_types:\n  hex: {tool: Spanner}\n",
			wantErr:   true,
			errMsg:    "has no name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := Parse([]byte(tt.metric), []byte(tt.whitworth), []byte(tt.heads))
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, common.ErrInvalidReference)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			require.NoError(t, err)

			m6, err := table.Lookup(model.SystemMetric, "M6")
			require.NoError(t, err)
			assert.Equal(t, []float64{0.75}, m6.Metric.FinePitchesMm)

			m3, err := table.Lookup(model.SystemMetric, "M3")
			require.NoError(t, err)
			assert.Empty(t, m3.Metric.FinePitchesMm)

			quarter, err := table.Lookup(model.SystemWhitworth, "1/4")
			require.NoError(t, err)
			assert.InDelta(t, 6.35, quarter.NominalDiameterMm, 1e-9)
		})
	}
}

func TestNew_RejectsDuplicates(t *testing.T) {
	std := model.ThreadStandard{
		Designation:       "M6",
		System:            model.SystemMetric,
		NominalDiameterMm: 6,
		Metric:            &model.MetricPitch{CoarsePitchMm: 1},
	}

	_, err := New([]model.ThreadStandard{std, std}, nil, nil)

	assert.ErrorIs(t, err, common.ErrInvalidReference)
	assert.Contains(t, err.Error(), "duplicate designation")
}

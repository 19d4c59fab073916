package matching

import (
	"testing"

	"github.com/Veraticus/the-thread-must-fit/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePitch_Metric(t *testing.T) {
	engine := newTestEngine(t)
	m8, err := engine.Table().Lookup(model.SystemMetric, "M8")
	require.NoError(t, err)

	tests := []struct {
		name            string
		wantType        model.PitchType
		wantDesignation string
		measured        float64
		wantPitch       float64
		wantConfidence  float64
		wantMatch       bool
		wantExact       bool
	}{
		{
			name:            "coarse exact",
			measured:        1.25,
			wantMatch:       true,
			wantType:        model.PitchCoarse,
			wantPitch:       1.25,
			wantConfidence:  1,
			wantExact:       true,
			wantDesignation: "M8 x 1.25",
		},
		{
			name:            "coarse within tolerance",
			measured:        1.21,
			wantMatch:       true,
			wantType:        model.PitchCoarse,
			wantPitch:       1.25,
			wantConfidence:  0.5,
			wantDesignation: "M8 x 1.25",
		},
		{
			name:            "first fine pitch",
			measured:        1.0,
			wantMatch:       true,
			wantType:        model.PitchFine,
			wantPitch:       1.0,
			wantConfidence:  1,
			wantExact:       true,
			wantDesignation: "M8 x 1",
		},
		{
			name:            "second fine pitch",
			measured:        0.76,
			wantMatch:       true,
			wantType:        model.PitchFine,
			wantPitch:       0.75,
			wantConfidence:  0.875,
			wantExact:       true,
			wantDesignation: "M8 x 0.75",
		},
		{
			name:      "between pitches",
			measured:  1.12,
			wantMatch: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := engine.ValidatePitch(tt.measured, m8, 0)
			assert.Equal(t, tt.wantMatch, got.Matches)
			if !tt.wantMatch {
				assert.Zero(t, got.Confidence)
				assert.NotEmpty(t, got.Note)
				return
			}
			assert.Equal(t, tt.wantType, got.Type)
			assert.Equal(t, tt.wantPitch, got.PitchMm)
			assert.InDelta(t, tt.wantConfidence, got.Confidence, 1e-9)
			assert.Equal(t, tt.wantExact, got.IsExactMatch)
			assert.Equal(t, tt.wantDesignation, got.Designation)
		})
	}
}

func TestValidatePitch_CoarseCheckedFirst(t *testing.T) {
	std := model.ThreadStandard{
		Designation:       "M9",
		System:            model.SystemMetric,
		NominalDiameterMm: 9,
		Metric: &model.MetricPitch{
			CoarsePitchMm: 1.0,
			FinePitchesMm: []float64{0.95},
		},
	}

	got := ValidatePitch(0.96, std, 0.08)

	require.True(t, got.Matches)
	assert.Equal(t, model.PitchCoarse, got.Type)
	assert.Equal(t, 1.0, got.PitchMm)
}

func TestValidatePitch_Whitworth(t *testing.T) {
	engine := newTestEngine(t)
	bsw, err := engine.Table().Lookup(model.SystemWhitworth, "1/4")
	require.NoError(t, err)
	bsf, err := engine.Table().Lookup(model.SystemWhitworth, "1/4-BSF")
	require.NoError(t, err)

	t.Run("20 TPI accepts readings within tolerance of 1.27", func(t *testing.T) {
		for _, measured := range []float64{1.20, 1.24, 1.27, 1.30, 1.34} {
			got := ValidatePitch(measured, bsw, 0.08)
			assert.True(t, got.Matches, "measured %.2f", measured)
			assert.Equal(t, model.PitchBSW, got.Type)
			assert.Equal(t, "1/4 (20 TPI)", got.Designation)
		}
	})

	t.Run("20 TPI rejects readings outside tolerance", func(t *testing.T) {
		for _, measured := range []float64{1.1, 1.4} {
			assert.False(t, ValidatePitch(measured, bsw, 0.08).Matches, "measured %.2f", measured)
		}
	})

	t.Run("BSF reports its subtype", func(t *testing.T) {
		got := ValidatePitch(25.4/26, bsf, 0.08)
		require.True(t, got.Matches)
		assert.Equal(t, model.PitchBSF, got.Type)
		assert.InDelta(t, 1.0, got.Confidence, 1e-9)
		assert.True(t, got.IsExactMatch)
		assert.Equal(t, "26 TPI match", got.Note)
	})
}

func TestEngine_ValidatePitch_ExplicitTolerance(t *testing.T) {
	engine := newTestEngine(t)
	m8, err := engine.Table().Lookup(model.SystemMetric, "M8")
	require.NoError(t, err)

	assert.False(t, engine.ValidatePitch(1.4, m8, 0).Matches)
	assert.True(t, engine.ValidatePitch(1.4, m8, 0.2).Matches)
}

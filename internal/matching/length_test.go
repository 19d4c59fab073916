package matching

import (
	"testing"

	"github.com/Veraticus/the-thread-must-fit/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeLength(t *testing.T) {
	tests := []struct {
		name           string
		measured       float64
		wantNormalized float64
		wantDifference float64
	}{
		{name: "rounds up to five", measured: 23, wantNormalized: 25, wantDifference: 2},
		{name: "rounds down to five", measured: 22, wantNormalized: 20, wantDifference: 2},
		{name: "half rounds up", measured: 22.5, wantNormalized: 25, wantDifference: 2.5},
		{name: "already stocked", measured: 50, wantNormalized: 50, wantDifference: 0},
		{name: "above fifty uses tens", measured: 83, wantNormalized: 80, wantDifference: 3},
		{name: "above fifty half rounds up", measured: 55, wantNormalized: 60, wantDifference: 5},
		{name: "just above fifty", measured: 50.5, wantNormalized: 50, wantDifference: 0.5},
		{name: "minimum stocked length", measured: 2, wantNormalized: 5, wantDifference: 3},
		{name: "zero", measured: 0, wantNormalized: 5, wantDifference: 5},
		{name: "decimal reading", measured: 24.6, wantNormalized: 25, wantDifference: 0.4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeLength(tt.measured)
			assert.Equal(t, tt.measured, got.OriginalMm)
			assert.Equal(t, tt.wantNormalized, got.NormalizedMm)
			assert.InDelta(t, tt.wantDifference, got.DifferenceMm, 1e-9)
		})
	}
}

func TestValidateLengthAgainstStandards(t *testing.T) {
	m8Lengths := []float64{10, 12, 16, 20, 25, 30, 35, 40, 45, 50, 60, 70, 80, 90, 100, 120}

	tests := []struct {
		name           string
		standards      []float64
		measured       float64
		wantClosest    float64
		wantConfidence float64
		wantStandard   bool
		wantSuggestion bool
	}{
		{
			name:           "normalized length stocked",
			measured:       23,
			standards:      m8Lengths,
			wantClosest:    25,
			wantConfidence: 1,
			wantStandard:   true,
			wantSuggestion: true,
		},
		{
			name:           "normalized too far from reading",
			measured:       57,
			standards:      m8Lengths,
			wantClosest:    60,
			wantConfidence: 0.7,
			wantStandard:   false,
			wantSuggestion: true,
		},
		{
			name:           "normalized not stocked",
			measured:       13,
			standards:      m8Lengths,
			wantClosest:    12,
			wantConfidence: 0.9,
			wantStandard:   true,
			wantSuggestion: true,
		},
		{
			name:           "far beyond the list",
			measured:       200,
			standards:      m8Lengths,
			wantClosest:    120,
			wantConfidence: 0,
			wantStandard:   false,
			wantSuggestion: true,
		},
		{
			name:      "no stocked lengths",
			measured:  25,
			standards: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidateLengthAgainstStandards(tt.measured, tt.standards)
			assert.Equal(t, tt.wantClosest, got.ClosestStandardMm)
			assert.InDelta(t, tt.wantConfidence, got.Confidence, 1e-9)
			assert.Equal(t, tt.wantStandard, got.IsStandard)
			assert.Equal(t, tt.wantSuggestion, got.HasSuggestion)
		})
	}
}

func TestStandardLengthsForDiameter(t *testing.T) {
	assert.Nil(t, StandardLengthsForDiameter(0))
	assert.Equal(t, 5.0, StandardLengthsForDiameter(3)[0])
	assert.Equal(t, 6.0, StandardLengthsForDiameter(6)[0])
	assert.Equal(t, 120.0, StandardLengthsForDiameter(10)[len(StandardLengthsForDiameter(10))-1])
	assert.Equal(t, 16.0, StandardLengthsForDiameter(16)[0])
	assert.Equal(t, 300.0, StandardLengthsForDiameter(24)[len(StandardLengthsForDiameter(24))-1])

	for _, d := range []float64{2, 5, 8, 14, 30} {
		lengths := StandardLengthsForDiameter(d)
		assert.IsIncreasing(t, lengths, "diameter %.0f", d)
	}
}

func TestStockedLengths(t *testing.T) {
	own := model.ThreadStandard{NominalDiameterMm: 8, StandardLengthsMm: []float64{20, 30}}
	assert.Equal(t, []float64{20, 30}, StockedLengths(own))

	generic := model.ThreadStandard{NominalDiameterMm: 8}
	assert.Equal(t, StandardLengthsForDiameter(8), StockedLengths(generic))
}

func TestFormatSpecification(t *testing.T) {
	engine := newTestEngine(t)

	coarse := engine.IdentifyByDiameterAndPitch(8.0, 1.25, model.PreferMetric).BestMatch
	require.NotNil(t, coarse)
	fine := engine.IdentifyByDiameterAndPitch(8.0, 1.0, model.PreferMetric).BestMatch
	require.NotNil(t, fine)
	bsf := engine.IdentifyByDiameterAndPitch(6.35, 25.4/26, model.PreferWhitworth).BestMatch
	require.NotNil(t, bsf)
	diameterOnly := engine.Identify(model.Measurements{DiameterMm: 8.0, Preference: model.PreferMetric}).BestMatch
	require.NotNil(t, diameterOnly)

	tests := []struct {
		candidate *model.MatchCandidate
		name      string
		want      string
		length    float64
	}{
		{name: "metric coarse with length", candidate: coarse, length: 25, want: "M8 x 1.25 x 25mm"},
		{name: "metric coarse with rounded length", candidate: coarse, length: 23, want: "M8 x 1.25 x 25mm (~23mm measured)"},
		{name: "metric coarse close length", candidate: coarse, length: 24.6, want: "M8 x 1.25 x 25mm"},
		{name: "metric fine", candidate: fine, length: 0, want: "M8 x 1 (fine)"},
		{name: "whitworth fine", candidate: bsf, length: 40, want: "1/4 BSF 26 TPI x 40mm"},
		{name: "diameter only", candidate: diameterOnly, length: 0, want: "M8 x 1.25"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatSpecification(*tt.candidate, tt.length))
		})
	}
}

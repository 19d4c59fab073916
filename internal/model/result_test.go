package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentificationResult_Ranked(t *testing.T) {
	assert.Empty(t, IdentificationResult{}.Ranked())

	best := MatchCandidate{Standard: ThreadStandard{Designation: "M8"}}
	alt := MatchCandidate{Standard: ThreadStandard{Designation: "5/16"}}
	r := IdentificationResult{BestMatch: &best, Alternatives: []MatchCandidate{alt}}

	ranked := r.Ranked()
	require.Len(t, ranked, 2)
	assert.Equal(t, "M8", ranked[0].Standard.Designation)
	assert.Equal(t, "5/16", ranked[1].Standard.Designation)
}

func TestIdentificationResult_HistoryEntry(t *testing.T) {
	m := Measurements{DiameterMm: 7.95, PitchMm: 1.25}

	_, ok := IdentificationResult{}.HistoryEntry(m, "")
	assert.False(t, ok)

	best := MatchCandidate{
		Standard:           ThreadStandard{Designation: "M8", System: SystemMetric},
		CombinedConfidence: 0.92,
	}
	entry, ok := IdentificationResult{BestMatch: &best}.HistoryEntry(m, "M8 x 1.25")
	require.True(t, ok)
	assert.Equal(t, "M8", entry.Designation)
	assert.Equal(t, SystemMetric, entry.System)
	assert.Equal(t, "M8 x 1.25", entry.Specification)
	assert.InDelta(t, 0.92, entry.Confidence, 1e-9)
	assert.Equal(t, m, entry.Measurements)
	assert.Empty(t, entry.ID)
}

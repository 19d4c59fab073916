package matching

import (
	"fmt"
	"math"

	"github.com/Veraticus/the-thread-must-fit/internal/common"
	"github.com/Veraticus/the-thread-must-fit/internal/model"
)

// Diameter confidence bands in mm. diff = nominal - measured, so positive
// values mean the bolt reads under nominal (crest wear).
const (
	nearExactBandMm = 0.05
	wearBandMm      = 0.2
	overBandMm      = 0.1
	farBandMm       = 0.5
)

// Candidate annotation thresholds.
const (
	likelyMatchConfidence = 0.85
	threadCheckUnderMm    = 0.15
	exactPitchMm          = 0.02
)

// Confidence weights for combining diameter and pitch.
const (
	diameterWeight = 0.6
	pitchWeight    = 0.4
)

// Tolerances are the tunable windows used by the engine.
type Tolerances struct {
	// DiameterMm is how far above nominal a measurement may read.
	DiameterMm float64
	// UnderMm is how far below nominal a worn bolt may read.
	UnderMm float64
	// PitchMm is the thread gauge tolerance.
	PitchMm float64
	// TieBreakEpsilon is the confidence gap treated as a tie when ranking.
	TieBreakEpsilon float64
	// MaxAlternatives bounds the alternatives listed after the best match.
	MaxAlternatives int
}

// DefaultTolerances returns the tolerances tuned for calipers and thread gauges.
func DefaultTolerances() Tolerances {
	return Tolerances{
		DiameterMm:      0.3,
		UnderMm:         0.25,
		PitchMm:         0.08,
		TieBreakEpsilon: model.DefaultTieBreakEpsilon,
		MaxAlternatives: 3,
	}
}

// Validate checks that every window is usable.
func (t Tolerances) Validate() error {
	switch {
	case t.DiameterMm <= 0:
		return fmt.Errorf("%w: diameter tolerance must be positive, got %.3f", common.ErrInvalidConfig, t.DiameterMm)
	case t.UnderMm <= 0:
		return fmt.Errorf("%w: under tolerance must be positive, got %.3f", common.ErrInvalidConfig, t.UnderMm)
	case t.PitchMm <= 0:
		return fmt.Errorf("%w: pitch tolerance must be positive, got %.3f", common.ErrInvalidConfig, t.PitchMm)
	case t.TieBreakEpsilon < 0:
		return fmt.Errorf("%w: tie-break epsilon must not be negative, got %.3f", common.ErrInvalidConfig, t.TieBreakEpsilon)
	case t.MaxAlternatives < 0:
		return fmt.Errorf("%w: max alternatives must not be negative, got %d", common.ErrInvalidConfig, t.MaxAlternatives)
	}
	return nil
}

// DiameterConfidence scores a caliper reading against a nominal diameter.
// Reading under nominal is expected wear and scores higher than reading over
// nominal by the same amount. The score never drops below 0.1.
func DiameterConfidence(measuredMm, nominalMm float64) float64 {
	diff := nominalMm - measuredMm

	if math.Abs(diff) < nearExactBandMm {
		return 1.0
	}

	// Worn: 0.9 down to 0.7 across the wear band.
	if diff >= 0 && diff <= wearBandMm {
		return 0.9 - (diff/wearBandMm)*0.2
	}

	// Slightly oversize: 0.6 down to 0.5.
	if diff < 0 && diff >= -overBandMm {
		return 0.6 - (math.Abs(diff)/overBandMm)*0.1
	}

	total := math.Abs(diff)
	if total <= farBandMm {
		return math.Max(0.2, 0.5-(total/farBandMm)*0.3)
	}

	return 0.1
}

// LinearConfidence scores a measurement symmetrically: 1 on the standard,
// falling linearly to 0 at the tolerance edge and staying 0 beyond it.
func LinearConfidence(measured, standard, tolerance float64) float64 {
	difference := math.Abs(measured - standard)
	if tolerance <= 0 {
		if difference == 0 {
			return 1
		}
		return 0
	}
	if difference > tolerance {
		return 0
	}
	return math.Max(0, 1-difference/tolerance)
}

func withinTolerance(value, target, tolerance float64) bool {
	return math.Abs(value-target) <= tolerance
}

package matching

import (
	"fmt"
	"math"
	"strconv"

	"github.com/Veraticus/the-thread-must-fit/internal/model"
)

const confidentPitch = 0.9

// ValidatePitch checks a thread gauge reading against a standard. Metric
// standards test the coarse pitch before any fine pitch, so a reading close
// to both resolves to coarse. Whitworth standards compare against 25.4/TPI.
// A non-positive tolerance uses the engine's pitch tolerance.
func (e *Engine) ValidatePitch(measuredPitchMm float64, std model.ThreadStandard, toleranceMm float64) model.PitchValidation {
	if toleranceMm <= 0 {
		toleranceMm = e.tolerances.PitchMm
	}
	return ValidatePitch(measuredPitchMm, std, toleranceMm)
}

// ValidatePitch is the engine-independent form of Engine.ValidatePitch.
func ValidatePitch(measuredPitchMm float64, std model.ThreadStandard, toleranceMm float64) model.PitchValidation {
	switch {
	case std.Metric != nil:
		if withinTolerance(measuredPitchMm, std.Metric.CoarsePitchMm, toleranceMm) {
			return pitchMatch(measuredPitchMm, std.Metric.CoarsePitchMm, toleranceMm, model.PitchCoarse,
				fmt.Sprintf("%s x %s", std.Designation, formatMm(std.Metric.CoarsePitchMm)),
				"Exact match", "Check again with the thread gauge")
		}

		for _, fine := range std.Metric.FinePitchesMm {
			if withinTolerance(measuredPitchMm, fine, toleranceMm) {
				return pitchMatch(measuredPitchMm, fine, toleranceMm, model.PitchFine,
					fmt.Sprintf("%s x %s", std.Designation, formatMm(fine)),
					"Exact match, fine thread", "Check with a precision thread gauge")
			}
		}

	case std.Whitworth != nil:
		pitchFromTPI := std.Whitworth.PitchMm()
		if withinTolerance(measuredPitchMm, pitchFromTPI, toleranceMm) {
			pitchType := model.PitchBSW
			if std.Whitworth.Subtype == model.SubtypeBSF {
				pitchType = model.PitchBSF
			}
			tpi := std.Whitworth.ThreadsPerInch
			return pitchMatch(measuredPitchMm, pitchFromTPI, toleranceMm, pitchType,
				fmt.Sprintf("%s (%d TPI)", std.Designation, tpi),
				fmt.Sprintf("%d TPI match", tpi), "Check TPI with an imperial thread gauge")
		}
	}

	return model.PitchValidation{
		Matches:    false,
		Confidence: 0,
		Note:       "No match, check the measurement or the thread system",
	}
}

func pitchMatch(measured, pitch, tolerance float64, pitchType model.PitchType, designation, confidentNote, unsureNote string) model.PitchValidation {
	confidence := LinearConfidence(measured, pitch, tolerance)
	note := unsureNote
	if confidence > confidentPitch {
		note = confidentNote
	}
	return model.PitchValidation{
		Matches:      true,
		Type:         pitchType,
		PitchMm:      pitch,
		Confidence:   confidence,
		IsExactMatch: math.Abs(measured-pitch) < exactPitchMm,
		Designation:  designation,
		Note:         note,
	}
}

func formatMm(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

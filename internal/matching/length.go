package matching

import (
	"fmt"
	"math"
	"strings"

	"github.com/Veraticus/the-thread-must-fit/internal/model"
	"github.com/shopspring/decimal"
)

const (
	minimumStockedLengthMm = 5
	fineStepLimitMm        = 50
	standardLengthSlackMm  = 2
	lengthConfidenceSpanMm = 10
	fullLengthNoteMm       = 1
)

// NormalizeLength rounds a measured length to the nearest stocked length:
// multiples of 5mm up to 50mm, multiples of 10mm above. Halves round up and
// the result is never below 5mm.
func NormalizeLength(measuredMm float64) model.NormalizedLength {
	measured := decimal.NewFromFloat(measuredMm)

	step := decimal.NewFromInt(5)
	if measuredMm > fineStepLimitMm {
		step = decimal.NewFromInt(10)
	}

	normalized := measured.Div(step).Round(0).Mul(step)
	if normalized.LessThan(decimal.NewFromInt(minimumStockedLengthMm)) {
		normalized = decimal.NewFromInt(minimumStockedLengthMm)
	}

	return model.NormalizedLength{
		OriginalMm:   measuredMm,
		NormalizedMm: normalized.InexactFloat64(),
		DifferenceMm: normalized.Sub(measured).Abs().InexactFloat64(),
	}
}

// ValidateLengthAgainstStandards checks a measured length against a
// standard's stocked lengths. When the normalized length is stocked and at
// most 2mm away it is standard; otherwise the closest stocked length is
// suggested with a confidence that decays 0.1 per mm.
func ValidateLengthAgainstStandards(measuredMm float64, standardsMm []float64) model.LengthValidation {
	norm := NormalizeLength(measuredMm)

	if len(standardsMm) == 0 {
		return model.LengthValidation{NormalizedMm: norm.NormalizedMm}
	}

	for _, s := range standardsMm {
		if s == norm.NormalizedMm && norm.DifferenceMm <= standardLengthSlackMm {
			return model.LengthValidation{
				NormalizedMm:      norm.NormalizedMm,
				ClosestStandardMm: s,
				Confidence:        1.0,
				IsStandard:        true,
				HasSuggestion:     true,
			}
		}
	}

	closest := standardsMm[0]
	for _, s := range standardsMm[1:] {
		if math.Abs(s-measuredMm) < math.Abs(closest-measuredMm) {
			closest = s
		}
	}
	difference := math.Abs(closest - measuredMm)

	return model.LengthValidation{
		NormalizedMm:      norm.NormalizedMm,
		ClosestStandardMm: closest,
		Confidence:        math.Max(0, 1-difference/lengthConfidenceSpanMm),
		IsStandard:        difference <= standardLengthSlackMm,
		HasSuggestion:     true,
	}
}

// StandardLengthsForDiameter returns the lengths usually stocked for a
// nominal diameter when a standard does not list its own.
func StandardLengthsForDiameter(nominalMm float64) []float64 {
	switch {
	case nominalMm <= 0:
		return nil
	case nominalMm <= 4:
		return []float64{5, 6, 8, 10, 12, 16, 20, 25, 30}
	case nominalMm <= 6:
		return []float64{6, 8, 10, 12, 16, 20, 25, 30, 35, 40, 45, 50}
	case nominalMm <= 12:
		return []float64{10, 12, 16, 20, 25, 30, 35, 40, 45, 50, 60, 70, 80, 90, 100, 120}
	case nominalMm <= 20:
		return []float64{16, 20, 25, 30, 35, 40, 45, 50, 60, 70, 80, 90, 100, 120, 140, 160, 180, 200}
	default:
		return []float64{20, 25, 30, 40, 50, 60, 70, 80, 90, 100, 120, 140, 160, 180, 200, 220, 240, 260, 280, 300}
	}
}

// StockedLengths returns the standard's own lengths, or the generic list for
// its diameter.
func StockedLengths(std model.ThreadStandard) []float64 {
	if len(std.StandardLengthsMm) > 0 {
		return std.StandardLengthsMm
	}
	return StandardLengthsForDiameter(std.NominalDiameterMm)
}

// FormatSpecification renders a candidate as the label written on the
// order slip, e.g. "M8 x 1.25 x 25mm" or "1/4 BSW 20 TPI x 40mm".
// A zero length omits the length part.
func FormatSpecification(c model.MatchCandidate, lengthMm float64) string {
	var b strings.Builder
	std := c.Standard

	switch {
	case std.Whitworth != nil:
		b.WriteString(strings.TrimSuffix(std.Designation, "-BSF"))
		fmt.Fprintf(&b, " %s %d TPI", std.Whitworth.Subtype, std.Whitworth.ThreadsPerInch)
	case c.PitchType() != "":
		b.WriteString(std.Designation)
		fmt.Fprintf(&b, " x %s", formatMm(c.PitchValidation.PitchMm))
		if c.PitchType() == model.PitchFine {
			b.WriteString(" (fine)")
		}
	default:
		b.WriteString(std.Designation)
		fmt.Fprintf(&b, " x %s", formatMm(std.CoarsePitchMm()))
	}

	if lengthMm > 0 {
		norm := NormalizeLength(lengthMm)
		fmt.Fprintf(&b, " x %smm", formatMm(norm.NormalizedMm))
		if norm.DifferenceMm > fullLengthNoteMm {
			fmt.Fprintf(&b, " (~%smm measured)", formatMm(norm.OriginalMm))
		}
	}

	return b.String()
}

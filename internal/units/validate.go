package units

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Veraticus/the-thread-must-fit/internal/common"
	"github.com/Veraticus/the-thread-must-fit/internal/model"
)

// Accepted reading ranges.
const (
	minDiameterMm   = 1.0
	maxDiameterMm   = 50.0
	minDiameterInch = 0.05
	maxDiameterInch = 2.0
	minLengthMm     = 3.0
	maxLengthMm     = 500.0
	minLengthInch   = 0.125
	maxLengthInch   = 20.0
	minTPI          = 5.0
	maxTPI          = 50.0

	metricPitchTolerance = 0.05
)

// CommonMetricPitches lists the pitches found on metric thread gauges.
var CommonMetricPitches = []float64{0.35, 0.4, 0.45, 0.5, 0.7, 0.75, 0.8, 1.0, 1.25, 1.5, 1.75, 2.0, 2.5, 3.0, 3.5}

// ParseReading turns typed input into a number. It accepts decimal commas,
// unit suffixes and inch fractions such as "5/16" or "1-1/4".
func ParseReading(input string) (float64, error) {
	s := strings.ToLower(strings.TrimSpace(input))
	s = strings.TrimRight(s, "mintch\" ")
	s = strings.ReplaceAll(s, ",", ".")
	if s == "" {
		return 0, fmt.Errorf("%w: empty value", common.ErrInvalidMeasurement)
	}

	if strings.Contains(s, "/") {
		return parseFraction(s)
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %q is not a number", common.ErrInvalidMeasurement, input)
	}
	return v, nil
}

func parseFraction(s string) (float64, error) {
	whole := 0.0
	frac := s
	if i := strings.IndexAny(s, "- "); i > 0 {
		w, err := strconv.ParseFloat(strings.TrimSpace(s[:i]), 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q is not a fraction", common.ErrInvalidMeasurement, s)
		}
		whole = w
		frac = strings.TrimSpace(s[i+1:])
	}

	parts := strings.Split(frac, "/")
	if len(parts) != 2 {
		return 0, fmt.Errorf("%w: %q is not a fraction", common.ErrInvalidMeasurement, s)
	}
	num, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a fraction", common.ErrInvalidMeasurement, s)
	}
	den, err := strconv.ParseFloat(parts[1], 64)
	if err != nil || den == 0 {
		return 0, fmt.Errorf("%w: %q is not a fraction", common.ErrInvalidMeasurement, s)
	}
	return whole + num/den, nil
}

// ValidateDiameter checks a diameter reading and returns it in millimetres.
func ValidateDiameter(value float64, unit Unit) (float64, error) {
	if value <= 0 {
		return 0, fmt.Errorf("%w: diameter must be a positive number", common.ErrInvalidMeasurement)
	}
	if unit == Inch {
		if value < minDiameterInch || value > maxDiameterInch {
			return 0, fmt.Errorf("%w: diameter must be between 0.05\" and 2\"", common.ErrInvalidMeasurement)
		}
		return InchToMm(value), nil
	}
	if value < minDiameterMm || value > maxDiameterMm {
		return 0, fmt.Errorf("%w: diameter must be between 1 and 50 mm", common.ErrInvalidMeasurement)
	}
	return value, nil
}

// ValidatePitch checks a thread gauge reading and returns the pitch in
// millimetres. Metric readings are millimetres and must be near a gauge
// pitch. Whitworth readings are threads per inch.
func ValidatePitch(value float64, system model.System) (float64, error) {
	if value <= 0 {
		return 0, fmt.Errorf("%w: pitch must be a positive number", common.ErrInvalidMeasurement)
	}

	if system == model.SystemWhitworth {
		if value < minTPI || value > maxTPI {
			return 0, fmt.Errorf("%w: threads per inch must be between 5 and 50", common.ErrInvalidMeasurement)
		}
		return TPIToPitchMm(value), nil
	}

	for _, p := range CommonMetricPitches {
		if math.Abs(value-p) <= metricPitchTolerance {
			return value, nil
		}
	}
	return 0, fmt.Errorf("%w: %s mm is not a standard metric pitch", common.ErrInvalidMeasurement,
		strconv.FormatFloat(value, 'f', -1, 64))
}

// ParsePitch turns a typed gauge reading into a pitch in millimetres.
// With no system chosen, a reading of 5 or more is taken as threads per
// inch, since no metric pitch is that coarse.
func ParsePitch(input string, system model.System) (float64, error) {
	reading, err := ParseReading(input)
	if err != nil {
		return 0, err
	}
	if system == "" {
		if reading >= minTPI {
			return ValidatePitch(reading, model.SystemWhitworth)
		}
		if reading <= 0 {
			return 0, fmt.Errorf("%w: pitch must be a positive number", common.ErrInvalidMeasurement)
		}
		return reading, nil
	}
	return ValidatePitch(reading, system)
}

// TPIToPitchMm converts threads per inch into an axial pitch.
func TPIToPitchMm(tpi float64) float64 {
	if tpi <= 0 {
		return 0
	}
	return model.MmPerInch / tpi
}

// ValidateLength checks a length reading and returns it in millimetres.
func ValidateLength(value float64, unit Unit) (float64, error) {
	if value <= 0 {
		return 0, fmt.Errorf("%w: length must be a positive number", common.ErrInvalidMeasurement)
	}
	if unit == Inch {
		if value < minLengthInch || value > maxLengthInch {
			return 0, fmt.Errorf("%w: length must be between 1/8\" and 20\"", common.ErrInvalidMeasurement)
		}
		return InchToMm(value), nil
	}
	if value < minLengthMm || value > maxLengthMm {
		return 0, fmt.Errorf("%w: length must be between 3 and 500 mm", common.ErrInvalidMeasurement)
	}
	return value, nil
}

// Package units converts and validates caliper and thread gauge readings.
package units

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Unit is the unit a reading was taken in.
type Unit string

// Supported units.
const (
	Millimetre Unit = "mm"
	Inch       Unit = "inch"
)

var mmPerInch = decimal.RequireFromString("25.4")

// ParseUnit converts user input into a Unit. An empty string means mm.
func ParseUnit(s string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "mm", "millimetre", "millimeter", "metric":
		return Millimetre, nil
	case "in", "inch", "inches", "\"", "imperial":
		return Inch, nil
	default:
		return "", fmt.Errorf("unknown unit %q", s)
	}
}

// Symbol returns the short suffix used when printing a value.
func (u Unit) Symbol() string {
	if u == Inch {
		return "\""
	}
	return "mm"
}

// MmToInch converts millimetres to inches.
func MmToInch(mm float64) float64 {
	return decimal.NewFromFloat(mm).Div(mmPerInch).InexactFloat64()
}

// InchToMm converts inches to millimetres.
func InchToMm(inch float64) float64 {
	return decimal.NewFromFloat(inch).Mul(mmPerInch).InexactFloat64()
}

// Convert converts a value between units.
func Convert(value float64, from, to Unit) float64 {
	switch {
	case from == to:
		return value
	case from == Millimetre && to == Inch:
		return MmToInch(value)
	case from == Inch && to == Millimetre:
		return InchToMm(value)
	default:
		return value
	}
}

// ToMm converts a reading in the given unit to millimetres.
func ToMm(value float64, unit Unit) float64 {
	return Convert(value, unit, Millimetre)
}

// RoundToPrecision rounds to what the instruments can read: 0.1mm for
// millimetres and 0.001" for inches.
func RoundToPrecision(value float64, unit Unit) float64 {
	places := int32(1)
	if unit == Inch {
		places = 3
	}
	return decimal.NewFromFloat(value).Round(places).InexactFloat64()
}

// FormatMm renders a millimetre value with two decimals.
func FormatMm(mm float64) string {
	return decimal.NewFromFloat(mm).StringFixed(2) + " mm"
}

// FormatInch renders an inch value, as a common fraction when asFraction
// is set.
func FormatInch(inch float64, asFraction bool) string {
	if !asFraction {
		return decimal.NewFromFloat(inch).StringFixed(4) + "\""
	}
	return DecimalToFraction(inch) + "\""
}

// Format renders a millimetre value in the requested unit.
func Format(mm float64, unit Unit) string {
	if unit == Inch {
		return FormatInch(MmToInch(mm), true)
	}
	return FormatMm(mm)
}

type commonFraction struct {
	label string
	value float64
}

// Fractions found on fastener gauges.
var commonFractions = []commonFraction{
	{"1/8", 0.125},
	{"5/32", 0.15625},
	{"3/16", 0.1875},
	{"1/4", 0.25},
	{"5/16", 0.3125},
	{"3/8", 0.375},
	{"7/16", 0.4375},
	{"1/2", 0.5},
	{"9/16", 0.5625},
	{"5/8", 0.625},
	{"3/4", 0.75},
	{"7/8", 0.875},
	{"1", 1.0},
	{"1-1/8", 1.125},
	{"1-1/4", 1.25},
}

const (
	fractionSnap      = 0.01
	fractionPrecision = 1e-6
	maxFractionTerms  = 20
)

// DecimalToFraction renders an inch value as the nearest gauge fraction when
// one is within 0.01", otherwise as an exact fraction like "1-3/10".
func DecimalToFraction(inch float64) string {
	closest := commonFractions[0]
	for _, f := range commonFractions[1:] {
		if math.Abs(f.value-inch) < math.Abs(closest.value-inch) {
			closest = f
		}
	}
	if math.Abs(closest.value-inch) < fractionSnap {
		return closest.label
	}

	num, den := approximate(inch)
	switch {
	case den == 1:
		return fmt.Sprintf("%d", num)
	case num >= den:
		return fmt.Sprintf("%d-%d/%d", num/den, num%den, den)
	default:
		return fmt.Sprintf("%d/%d", num, den)
	}
}

// approximate finds a fraction for x by continued fraction expansion.
func approximate(x float64) (int64, int64) {
	if x <= 0 {
		return 0, 1
	}

	h1, h2 := int64(1), int64(0)
	k1, k2 := int64(0), int64(1)
	b := x
	for i := 0; i < maxFractionTerms; i++ {
		a := int64(math.Floor(b))
		h1, h2 = a*h1+h2, h1
		k1, k2 = a*k1+k2, k1
		if math.Abs(x-float64(h1)/float64(k1)) <= x*fractionPrecision {
			break
		}
		frac := b - float64(a)
		if frac == 0 {
			break
		}
		b = 1 / frac
	}
	return h1, k1
}

// Nominal sizes used to guess the unit of a bare number.
var (
	commonMetricMm = []float64{3, 4, 5, 6, 8, 10, 12, 14, 16, 18, 20, 22, 24, 27, 30}
	commonInch     = []float64{0.125, 0.15625, 0.1875, 0.25, 0.3125, 0.375, 0.4375, 0.5, 0.5625, 0.625, 0.75, 0.875, 1.0, 1.125, 1.25}
)

// DetectUnit guesses whether a bare diameter reading is in millimetres or
// inches. Readings between 1 and 50 are taken as millimetres, smaller ones
// as inches; anything else goes to whichever family of nominal sizes it is
// close to.
func DetectUnit(value float64) Unit {
	if value >= 1 && value <= 50 {
		return Millimetre
	}
	if value > 0 && value < 1 {
		return Inch
	}

	closeToMetric := nearAny(value, commonMetricMm, 0.5)
	closeToInch := nearAny(value, commonInch, 0.02)
	switch {
	case closeToMetric && !closeToInch:
		return Millimetre
	case closeToInch && !closeToMetric:
		return Inch
	case value > 2:
		return Millimetre
	default:
		return Inch
	}
}

func nearAny(value float64, targets []float64, within float64) bool {
	for _, t := range targets {
		if math.Abs(value-t) < within {
			return true
		}
	}
	return false
}

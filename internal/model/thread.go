// Package model defines the core domain models used throughout the application.
package model

import (
	"fmt"
	"strings"
)

// System identifies a thread standard family.
type System string

// Thread system constants.
const (
	SystemMetric    System = "metric"
	SystemWhitworth System = "whitworth"
)

// ParseSystem converts user input into a System.
func ParseSystem(s string) (System, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "metric", "iso", "m":
		return SystemMetric, nil
	case "whitworth", "bsw", "bsf", "w":
		return SystemWhitworth, nil
	default:
		return "", fmt.Errorf("unknown thread system %q", s)
	}
}

// DisplayName returns the name shown to store employees.
func (s System) DisplayName() string {
	switch s {
	case SystemMetric:
		return "Metric ISO"
	case SystemWhitworth:
		return "Whitworth"
	default:
		return string(s)
	}
}

// SystemPreference limits an identification to one or both systems.
type SystemPreference string

// System preference constants.
const (
	PreferMetric    SystemPreference = "metric"
	PreferWhitworth SystemPreference = "whitworth"
	PreferBoth      SystemPreference = "both"
)

// ParseSystemPreference converts user input into a SystemPreference.
// An empty string means both systems.
func ParseSystemPreference(s string) (SystemPreference, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "both", "any", "all":
		return PreferBoth, nil
	case "metric", "iso", "m":
		return PreferMetric, nil
	case "whitworth", "bsw", "bsf", "w":
		return PreferWhitworth, nil
	default:
		return "", fmt.Errorf("unknown system preference %q", s)
	}
}

// Includes reports whether the preference covers the given system.
func (p SystemPreference) Includes(s System) bool {
	switch p {
	case PreferMetric:
		return s == SystemMetric
	case PreferWhitworth:
		return s == SystemWhitworth
	default:
		return true
	}
}

// System returns the single system the preference selects, or an empty
// System for both.
func (p SystemPreference) System() System {
	switch p {
	case PreferMetric:
		return SystemMetric
	case PreferWhitworth:
		return SystemWhitworth
	default:
		return ""
	}
}

// WhitworthSubtype distinguishes standard (BSW) from fine (BSF) Whitworth threads.
type WhitworthSubtype string

// Whitworth subtype constants.
const (
	SubtypeBSW WhitworthSubtype = "BSW"
	SubtypeBSF WhitworthSubtype = "BSF"
)

// SubtypeFromDesignation derives the subtype from a designation like "1/4-BSF".
func SubtypeFromDesignation(designation string) WhitworthSubtype {
	if strings.Contains(strings.ToUpper(designation), "BSF") {
		return SubtypeBSF
	}
	return SubtypeBSW
}

// MetricPitch holds the pitch data of a metric ISO thread.
type MetricPitch struct {
	FinePitchesMm []float64
	CoarsePitchMm float64
}

// WhitworthPitch holds the pitch data of a Whitworth thread.
type WhitworthPitch struct {
	Subtype        WhitworthSubtype
	DiameterInch   float64
	ThreadsPerInch int
}

// PitchMm returns the axial pitch derived from threads per inch.
func (w WhitworthPitch) PitchMm() float64 {
	return MmPerInch / float64(w.ThreadsPerInch)
}

// MmPerInch is the exact inch to millimetre factor.
const MmPerInch = 25.4

// ThreadStandard is one immutable row of the reference tables.
// Exactly one of Metric or Whitworth is set, matching System.
type ThreadStandard struct {
	Metric            *MetricPitch
	Whitworth         *WhitworthPitch
	Designation       string
	System            System
	StandardLengthsMm []float64
	HeadTypes         []HeadType
	NominalDiameterMm float64
}

// IsFine reports whether the standard is the less common fine variant.
// Metric designations carry both pitches, so only BSF rows are fine.
func (t ThreadStandard) IsFine() bool {
	return t.Whitworth != nil && t.Whitworth.Subtype == SubtypeBSF
}

// CoarsePitchMm returns the default pitch of the standard: the metric coarse
// pitch or the TPI-derived Whitworth pitch.
func (t ThreadStandard) CoarsePitchMm() float64 {
	switch {
	case t.Metric != nil:
		return t.Metric.CoarsePitchMm
	case t.Whitworth != nil:
		return t.Whitworth.PitchMm()
	default:
		return 0
	}
}

// HasFinePitch reports whether a metric standard lists any fine pitch.
func (t ThreadStandard) HasFinePitch() bool {
	return t.Metric != nil && len(t.Metric.FinePitchesMm) > 0
}

// SupportsHeadType reports whether the head type is stocked for this standard.
func (t ThreadStandard) SupportsHeadType(head HeadType) bool {
	for _, h := range t.HeadTypes {
		if h == head {
			return true
		}
	}
	return false
}

// DisplayName renders the designation the way the counter staff read it.
func (t ThreadStandard) DisplayName() string {
	if t.Whitworth != nil {
		return fmt.Sprintf("%s (%d TPI)", t.Designation, t.Whitworth.ThreadsPerInch)
	}
	return t.Designation
}

// Validate checks the invariants of a reference row.
func (t ThreadStandard) Validate() error {
	if t.Designation == "" {
		return fmt.Errorf("designation is required")
	}
	if t.NominalDiameterMm <= 0 {
		return fmt.Errorf("%s: nominal diameter must be positive, got %.3f", t.Designation, t.NominalDiameterMm)
	}

	switch t.System {
	case SystemMetric:
		if t.Metric == nil || t.Whitworth != nil {
			return fmt.Errorf("%s: metric standard must carry metric pitch data only", t.Designation)
		}
		if t.Metric.CoarsePitchMm <= 0 {
			return fmt.Errorf("%s: coarse pitch must be positive, got %.3f", t.Designation, t.Metric.CoarsePitchMm)
		}
		for _, p := range t.Metric.FinePitchesMm {
			if p <= 0 {
				return fmt.Errorf("%s: fine pitch must be positive, got %.3f", t.Designation, p)
			}
		}
	case SystemWhitworth:
		if t.Whitworth == nil || t.Metric != nil {
			return fmt.Errorf("%s: whitworth standard must carry whitworth pitch data only", t.Designation)
		}
		if t.Whitworth.ThreadsPerInch <= 0 {
			return fmt.Errorf("%s: threads per inch must be positive, got %d", t.Designation, t.Whitworth.ThreadsPerInch)
		}
	default:
		return fmt.Errorf("%s: unknown system %q", t.Designation, t.System)
	}

	for i := 1; i < len(t.StandardLengthsMm); i++ {
		if t.StandardLengthsMm[i] <= t.StandardLengthsMm[i-1] {
			return fmt.Errorf("%s: standard lengths must be sorted ascending", t.Designation)
		}
	}
	if len(t.StandardLengthsMm) > 0 && t.StandardLengthsMm[0] <= 0 {
		return fmt.Errorf("%s: standard lengths must be positive", t.Designation)
	}

	return nil
}

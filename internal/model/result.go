package model

import "time"

// RecommendationType classifies advisory messages.
type RecommendationType string

// Recommendation type constants.
const (
	RecommendationError   RecommendationType = "error"
	RecommendationWarning RecommendationType = "warning"
	RecommendationInfo    RecommendationType = "info"
	RecommendationTip     RecommendationType = "tip"
	RecommendationSuccess RecommendationType = "success"
)

// Recommendation is a next-step hint for the person at the counter.
type Recommendation struct {
	Type    RecommendationType
	Message string
	Action  string
	Details string
}

// Measurements are the raw values read with calipers and thread gauges.
// A zero PitchMm or LengthMm means the value was not measured.
type Measurements struct {
	Preference SystemPreference
	HeadType   HeadType
	DiameterMm float64
	PitchMm    float64
	LengthMm   float64
}

// HasPitch reports whether a pitch measurement was supplied.
func (m Measurements) HasPitch() bool {
	return m.PitchMm > 0
}

// HasLength reports whether a length measurement was supplied.
func (m Measurements) HasLength() bool {
	return m.LengthMm > 0
}

// IdentificationResult is the ranked outcome of one identification run.
type IdentificationResult struct {
	BestMatch       *MatchCandidate
	Alternatives    []MatchCandidate
	Recommendations []Recommendation
	Confidence      float64
	TotalCandidates int
	ValidMatches    int
	PitchMeasured   bool
}

// Identified reports whether a best match was found.
func (r IdentificationResult) Identified() bool {
	return r.BestMatch != nil
}

// Ranked returns the best match followed by the alternatives.
func (r IdentificationResult) Ranked() Candidates {
	if r.BestMatch == nil {
		return Candidates{}
	}
	out := make(Candidates, 0, 1+len(r.Alternatives))
	out = append(out, *r.BestMatch)
	return append(out, r.Alternatives...)
}

// AllMatches groups diameter-only candidates by system.
type AllMatches struct {
	Metric    Candidates
	Whitworth Candidates
	All       Candidates
}

// NormalizedLength is a measured length rounded to a stocked length.
type NormalizedLength struct {
	OriginalMm   float64
	NormalizedMm float64
	DifferenceMm float64
}

// LengthValidation compares a measured length with a standard's stocked lengths.
type LengthValidation struct {
	NormalizedMm      float64
	ClosestStandardMm float64
	Confidence        float64
	IsStandard        bool
	HasSuggestion     bool
}

// HistoryEntry is one completed identification kept for the current session.
type HistoryEntry struct {
	CreatedAt     time.Time
	ID            string
	Designation   string
	System        System
	Specification string
	Measurements  Measurements
	Confidence    float64
}

// HistoryEntry builds the entry recorded for an identified bolt. It reports
// false when nothing was identified.
func (r IdentificationResult) HistoryEntry(m Measurements, specification string) (HistoryEntry, bool) {
	if r.BestMatch == nil {
		return HistoryEntry{}, false
	}
	best := r.BestMatch
	return HistoryEntry{
		Designation:   best.Standard.Designation,
		System:        best.Standard.System,
		Specification: specification,
		Confidence:    best.CombinedConfidence,
		Measurements:  m,
	}, true
}

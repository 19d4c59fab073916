package model

import (
	"math"
	"sort"
)

// DefaultTieBreakEpsilon is the confidence gap under which two candidates are
// considered tied and the coarse (BSW) variant is ranked first. It is a tuning
// constant, configurable through matching.tie_break_epsilon.
const DefaultTieBreakEpsilon = 0.01

// PitchType identifies which pitch of a standard a measurement matched.
type PitchType string

// Pitch type constants.
const (
	PitchCoarse PitchType = "coarse"
	PitchFine   PitchType = "fine"
	PitchBSW    PitchType = "BSW"
	PitchBSF    PitchType = "BSF"
)

// IsFine reports whether the pitch is a fine variant in either system.
func (p PitchType) IsFine() bool {
	return p == PitchFine || p == PitchBSF
}

// DisplayName returns the label shown next to a validated pitch.
func (p PitchType) DisplayName() string {
	switch p {
	case PitchCoarse:
		return "Coarse pitch"
	case PitchFine:
		return "Fine pitch"
	case PitchBSW:
		return "BSW (standard)"
	case PitchBSF:
		return "BSF (fine)"
	default:
		return "Unknown"
	}
}

// PitchValidation is the outcome of checking a measured pitch against a standard.
type PitchValidation struct {
	Type         PitchType
	Designation  string
	Note         string
	PitchMm      float64
	Confidence   float64
	Matches      bool
	IsExactMatch bool
}

// MatchCandidate is a reference standard annotated with how well a
// measurement matched it. Candidates are created per request and never shared.
type MatchCandidate struct {
	PitchValidation      *PitchValidation
	LengthValidation     *LengthValidation
	Standard             ThreadStandard
	MeasuredDiameterMm   float64
	DiameterDifferenceMm float64
	DiameterConfidence   float64
	CombinedConfidence   float64
	IsLikelyMatch        bool
	NeedsThreadCheck     bool
}

// IsFineVariant reports whether the candidate is the fine variant of its
// size: a BSF standard or a metric candidate matched on a fine pitch.
func (c MatchCandidate) IsFineVariant() bool {
	if c.Standard.IsFine() {
		return true
	}
	return c.PitchValidation != nil && c.PitchValidation.Matches && c.PitchValidation.Type.IsFine()
}

// PitchType returns the matched pitch type, or an empty type when the pitch
// was not validated.
func (c MatchCandidate) PitchType() PitchType {
	if c.PitchValidation == nil || !c.PitchValidation.Matches {
		return ""
	}
	return c.PitchValidation.Type
}

// Candidates is a slice of MatchCandidate with the one ranking rule every
// candidate-producing function uses.
type Candidates []MatchCandidate

// Rank sorts candidates by combined confidence, descending. Candidates whose
// confidences differ by less than epsilon put the coarse/BSW variant first;
// remaining ties fall back to designation so the order is deterministic.
func (c Candidates) Rank(epsilon float64) {
	sort.Stable(candidateRanking{candidates: c, epsilon: epsilon})
}

// Top returns the best candidate, or nil if empty. Rank must be called first.
func (c Candidates) Top() *MatchCandidate {
	if len(c) == 0 {
		return nil
	}
	best := c[0]
	return &best
}

// Next returns up to n candidates that follow the best one.
func (c Candidates) Next(n int) []MatchCandidate {
	if len(c) <= 1 || n <= 0 {
		return []MatchCandidate{}
	}
	end := 1 + n
	if end > len(c) {
		end = len(c)
	}
	out := make([]MatchCandidate, end-1)
	copy(out, c[1:end])
	return out
}

// Systems returns the distinct systems present, in first-seen order.
func (c Candidates) Systems() []System {
	var systems []System
	seen := make(map[System]bool)
	for _, cand := range c {
		if !seen[cand.Standard.System] {
			seen[cand.Standard.System] = true
			systems = append(systems, cand.Standard.System)
		}
	}
	return systems
}

type candidateRanking struct {
	candidates Candidates
	epsilon    float64
}

func (r candidateRanking) Len() int { return len(r.candidates) }

func (r candidateRanking) Swap(i, j int) {
	r.candidates[i], r.candidates[j] = r.candidates[j], r.candidates[i]
}

func (r candidateRanking) Less(i, j int) bool {
	return RankBefore(r.candidates[i], r.candidates[j], r.epsilon)
}

// RankBefore reports whether a ranks ahead of b.
func RankBefore(a, b MatchCandidate, epsilon float64) bool {
	if math.Abs(a.CombinedConfidence-b.CombinedConfidence) < epsilon {
		aFine, bFine := a.IsFineVariant(), b.IsFineVariant()
		if aFine != bFine {
			return !aFine
		}
	}
	if a.CombinedConfidence != b.CombinedConfidence {
		return a.CombinedConfidence > b.CombinedConfidence
	}
	return a.Standard.Designation < b.Standard.Designation
}

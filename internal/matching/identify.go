package matching

import (
	"github.com/Veraticus/the-thread-must-fit/internal/model"
)

// Identify ranks the standards matching a set of measurements.
//
// With a measured pitch, candidates whose pitch does not match are dropped
// and the rest score 60% diameter, 40% pitch. Without one, candidates are
// ranked on diameter alone and the recommendations flag the weaker result.
// Finding nothing is a normal outcome, not an error.
func (e *Engine) Identify(m model.Measurements) model.IdentificationResult {
	pref := m.Preference
	if pref == "" {
		pref = model.PreferBoth
	}

	candidates := e.findByPreference(pref, m.DiameterMm, e.tolerances.DiameterMm)

	valid := make(model.Candidates, 0, len(candidates))
	for _, c := range candidates {
		if m.HasPitch() {
			validation := ValidatePitch(m.PitchMm, c.Standard, e.tolerances.PitchMm)
			if !validation.Matches {
				continue
			}
			c.PitchValidation = &validation
			c.CombinedConfidence = c.DiameterConfidence*diameterWeight + validation.Confidence*pitchWeight
		} else {
			c.CombinedConfidence = c.DiameterConfidence
		}
		valid = append(valid, c)
	}

	valid.Rank(e.tolerances.TieBreakEpsilon)

	result := model.IdentificationResult{
		BestMatch:       valid.Top(),
		Alternatives:    valid.Next(e.tolerances.MaxAlternatives),
		TotalCandidates: len(candidates),
		ValidMatches:    len(valid),
		PitchMeasured:   m.HasPitch(),
	}
	if result.BestMatch != nil {
		result.Confidence = result.BestMatch.CombinedConfidence
	}

	result.Recommendations = Recommend(result.BestMatch, result.Alternatives, RecommendationContext{
		PitchMeasured: result.PitchMeasured,
	})

	return result
}

// IdentifyByDiameterAndPitch identifies a bolt from a diameter and pitch.
// A zero pitch means the pitch was not measured.
func (e *Engine) IdentifyByDiameterAndPitch(diameterMm, pitchMm float64, pref model.SystemPreference) model.IdentificationResult {
	return e.Identify(model.Measurements{
		DiameterMm: diameterMm,
		PitchMm:    pitchMm,
		Preference: pref,
	})
}

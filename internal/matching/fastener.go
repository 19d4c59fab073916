package matching

import (
	"fmt"
	"math"

	"github.com/Veraticus/the-thread-must-fit/internal/model"
)

const (
	lengthWeight         = 0.3
	manyMatches          = 3
	similarDiameterGapMm = 1.0
)

// FastenerQuery describes a complete bolt: diameter plus whatever else was
// measured. Zero values mean not measured; an empty head type skips the
// head filter.
type FastenerQuery struct {
	Preference model.SystemPreference
	HeadType   model.HeadType
	DiameterMm float64
	PitchMm    float64
	LengthMm   float64
}

// FastenerResult is the ranked outcome of IdentifyFastener.
type FastenerResult struct {
	Matches         model.Candidates
	Recommendations []model.Recommendation
}

// Best returns the top ranked match, or nil.
func (r FastenerResult) Best() *model.MatchCandidate {
	return r.Matches.Top()
}

// IdentifyFastener narrows diameter candidates using every measurement that
// was supplied. The pitch only filters: mismatches are dropped and the pitch
// validation is recorded, but the score stays the diameter confidence. A
// measured length contributes 30% of the score, and a head type keeps only
// standards made with that head.
func (e *Engine) IdentifyFastener(q FastenerQuery) FastenerResult {
	pref := q.Preference
	if pref == "" {
		pref = model.PreferBoth
	}

	candidates := e.findByPreference(pref, q.DiameterMm, e.tolerances.DiameterMm)

	matches := make(model.Candidates, 0, len(candidates))
	for _, c := range candidates {
		c.CombinedConfidence = c.DiameterConfidence

		if q.PitchMm > 0 {
			validation := ValidatePitch(q.PitchMm, c.Standard, e.tolerances.PitchMm)
			if !validation.Matches {
				continue
			}
			c.PitchValidation = &validation
		}

		if q.LengthMm > 0 {
			validation := ValidateLengthAgainstStandards(q.LengthMm, StockedLengths(c.Standard))
			c.LengthValidation = &validation
			c.CombinedConfidence = c.CombinedConfidence*(1-lengthWeight) + validation.Confidence*lengthWeight
		}

		if q.HeadType != "" && !c.Standard.SupportsHeadType(q.HeadType) {
			continue
		}

		matches = append(matches, c)
	}

	matches.Rank(e.tolerances.TieBreakEpsilon)

	return FastenerResult{
		Matches:         matches,
		Recommendations: fastenerRecommendations(matches),
	}
}

func fastenerRecommendations(matches model.Candidates) []model.Recommendation {
	var recs []model.Recommendation

	if len(matches) == 0 {
		return append(recs, model.Recommendation{
			Type:    model.RecommendationWarning,
			Message: "No match found, verify measurements.",
			Action:  "Re-measure with calipers and thread gauge",
			Details: "A worn bolt can read up to 0.2mm under nominal; check that the caliper reads zero when closed.",
		})
	}

	if len(matches) > manyMatches {
		recs = append(recs, model.Recommendation{
			Type:    model.RecommendationInfo,
			Message: "Several standards fit these measurements.",
			Action:  "Measure the thread pitch",
			Details: fmt.Sprintf("%d standards match; the pitch usually separates them.", len(matches)),
		})
	}

	for _, c := range matches {
		if c.NeedsThreadCheck {
			recs = append(recs, model.Recommendation{
				Type:    model.RecommendationInfo,
				Message: "Thread wear detected.",
				Action:  "Normal thread wear",
				Details: "Outer diameter commonly reads up to 0.2mm under nominal on used bolts.",
			})
			break
		}
	}

	for _, c := range matches {
		if c.CombinedConfidence < lowConfidence {
			recs = append(recs, model.Recommendation{
				Type:    model.RecommendationWarning,
				Message: "Some matches have low confidence.",
				Action:  "Re-measure diameter and pitch",
				Details: "Use a digital caliper for the best precision.",
			})
			break
		}
	}

	if len(matches) >= 2 {
		first := matches[0].Standard.NominalDiameterMm
		second := matches[1].Standard.NominalDiameterMm
		if gap := math.Abs(first - second); gap <= similarDiameterGapMm {
			recs = append(recs, model.Recommendation{
				Type:    model.RecommendationTip,
				Message: "Top matches have very similar diameters.",
				Action:  "Measure the thread pitch",
				Details: fmt.Sprintf("%s and %s differ by %smm in diameter; the pitch tells them apart.",
					matches[0].Standard.Designation, matches[1].Standard.Designation, formatMm(math.Round(gap*100)/100)),
			})
		}
	}

	return recs
}

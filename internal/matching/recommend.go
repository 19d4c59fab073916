package matching

import (
	"fmt"

	"github.com/Veraticus/the-thread-must-fit/internal/model"
)

const (
	lowConfidence         = 0.7
	mixedSystemMinimumAlt = 3
)

// RecommendationContext carries what the rules need beyond the candidates.
type RecommendationContext struct {
	PitchMeasured bool
}

// Recommend turns an identification outcome into counter-staff guidance.
// Rules are evaluated in a fixed order and every applicable rule fires.
func Recommend(best *model.MatchCandidate, alternatives []model.MatchCandidate, ctx RecommendationContext) []model.Recommendation {
	var recs []model.Recommendation

	if best == nil {
		recs = append(recs, model.Recommendation{
			Type:    model.RecommendationError,
			Message: "No match found, verify measurements.",
			Action:  "Re-measure with calipers and thread gauge",
			Details: "The measurements do not match any metric or Whitworth standard.",
		})
	}

	if best != nil && best.CombinedConfidence < lowConfidence {
		rec := model.Recommendation{
			Type:    model.RecommendationWarning,
			Message: "Low confidence identification.",
		}
		if ctx.PitchMeasured {
			rec.Action = "Re-measure diameter and pitch"
			rec.Details = "Use a digital caliper and a good thread gauge, measuring on undamaged threads."
		} else {
			rec.Action = "Measure the thread pitch"
			rec.Details = "The pitch separates sizes that share a diameter; use the thread gauge."
		}
		recs = append(recs, rec)
	}

	if !ctx.PitchMeasured {
		recs = append(recs, model.Recommendation{
			Type:    model.RecommendationInfo,
			Message: "Diameter-only identification, limited precision.",
			Action:  "Measure the pitch with a thread gauge",
			Details: fmt.Sprintf("%d alternative(s) also fit this diameter.", len(alternatives)),
		})
	}

	if best != nil && len(alternatives) >= mixedSystemMinimumAlt && spansSystems(best, alternatives) {
		recs = append(recs, model.Recommendation{
			Type:    model.RecommendationTip,
			Message: "Candidates include both metric and Whitworth threads.",
			Action:  "Verify the likely origin of the bolt",
			Details: "Older British machinery and vehicles usually use Whitworth; most modern hardware is metric.",
		})
	}

	if best != nil && best.NeedsThreadCheck {
		recs = append(recs, model.Recommendation{
			Type:    model.RecommendationInfo,
			Message: "Measured diameter is noticeably below nominal.",
			Action:  "Normal thread wear",
			Details: "Outer diameter commonly reads up to 0.2mm under nominal because the thread crests wear with use.",
		})
	}

	if best != nil && best.PitchType() == model.PitchFine {
		recs = append(recs, model.Recommendation{
			Type:    model.RecommendationSuccess,
			Message: fmt.Sprintf("Fine thread identified: %s.", best.PitchValidation.Designation),
			Action:  "Verify availability",
			Details: "Fine pitch threads are less common than coarse; check stock before promising a replacement.",
		})
	}

	return recs
}

func spansSystems(best *model.MatchCandidate, alternatives []model.MatchCandidate) bool {
	ranked := make(model.Candidates, 0, len(alternatives)+1)
	ranked = append(ranked, *best)
	ranked = append(ranked, alternatives...)
	return len(ranked.Systems()) > 1
}

package matching

import (
	"math"

	"github.com/Veraticus/the-thread-must-fit/internal/model"
)

// FindCandidates returns every standard of one system that the measured
// diameter could belong to: at most UnderMm below nominal (wear) or
// toleranceMm above it. Results are ranked by diameter confidence.
func (e *Engine) FindCandidates(system model.System, diameterMm, toleranceMm float64) model.Candidates {
	var candidates model.Candidates

	for _, std := range e.table.Standards(system) {
		minExpected := std.NominalDiameterMm - e.tolerances.UnderMm
		maxExpected := std.NominalDiameterMm + toleranceMm
		if diameterMm < minExpected || diameterMm > maxExpected {
			continue
		}
		candidates = append(candidates, newCandidate(std, diameterMm))
	}

	candidates.Rank(e.tolerances.TieBreakEpsilon)
	return candidates
}

// FindMetricMatches returns metric candidates for a measured diameter.
func (e *Engine) FindMetricMatches(diameterMm, toleranceMm float64) model.Candidates {
	return e.FindCandidates(model.SystemMetric, diameterMm, toleranceMm)
}

// FindWhitworthMatches returns Whitworth candidates for a measured diameter.
func (e *Engine) FindWhitworthMatches(diameterMm, toleranceMm float64) model.Candidates {
	return e.FindCandidates(model.SystemWhitworth, diameterMm, toleranceMm)
}

// FindAllMatches returns candidates from both systems, separately and merged.
func (e *Engine) FindAllMatches(diameterMm, toleranceMm float64) model.AllMatches {
	metric := e.FindMetricMatches(diameterMm, toleranceMm)
	whitworth := e.FindWhitworthMatches(diameterMm, toleranceMm)

	all := make(model.Candidates, 0, len(metric)+len(whitworth))
	all = append(all, metric...)
	all = append(all, whitworth...)
	all.Rank(e.tolerances.TieBreakEpsilon)

	return model.AllMatches{
		Metric:    metric,
		Whitworth: whitworth,
		All:       all,
	}
}

// findByPreference gathers diameter candidates for the preferred systems.
func (e *Engine) findByPreference(pref model.SystemPreference, diameterMm, toleranceMm float64) model.Candidates {
	var candidates model.Candidates
	if pref.Includes(model.SystemMetric) {
		candidates = append(candidates, e.FindMetricMatches(diameterMm, toleranceMm)...)
	}
	if pref.Includes(model.SystemWhitworth) {
		candidates = append(candidates, e.FindWhitworthMatches(diameterMm, toleranceMm)...)
	}
	return candidates
}

func newCandidate(std model.ThreadStandard, diameterMm float64) model.MatchCandidate {
	confidence := DiameterConfidence(diameterMm, std.NominalDiameterMm)
	under := std.NominalDiameterMm - diameterMm

	return model.MatchCandidate{
		Standard:             std,
		MeasuredDiameterMm:   diameterMm,
		DiameterDifferenceMm: math.Abs(under),
		DiameterConfidence:   confidence,
		CombinedConfidence:   confidence,
		IsLikelyMatch:        confidence > likelyMatchConfidence,
		NeedsThreadCheck:     under > threadCheckUnderMm,
	}
}

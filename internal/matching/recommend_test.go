package matching

import (
	"testing"

	"github.com/Veraticus/the-thread-must-fit/internal/model"
	"github.com/stretchr/testify/assert"
)

func candidate(designation string, system model.System, confidence float64) model.MatchCandidate {
	return model.MatchCandidate{
		Standard: model.ThreadStandard{
			Designation: designation,
			System:      system,
		},
		CombinedConfidence: confidence,
	}
}

func TestRecommend(t *testing.T) {
	fine := candidate("M8", model.SystemMetric, 0.95)
	fine.PitchValidation = &model.PitchValidation{Matches: true, Type: model.PitchFine, Designation: "M8 x 1"}

	bsf := candidate("1/4-BSF", model.SystemWhitworth, 0.95)
	bsf.PitchValidation = &model.PitchValidation{Matches: true, Type: model.PitchBSF}

	worn := candidate("M8", model.SystemMetric, 0.8)
	worn.NeedsThreadCheck = true

	strong := candidate("M8", model.SystemMetric, 0.9)
	weak := candidate("M8", model.SystemMetric, 0.5)

	mixed := []model.MatchCandidate{
		candidate("M10", model.SystemMetric, 0.3),
		candidate("3/8", model.SystemWhitworth, 0.3),
		candidate("3/8-BSF", model.SystemWhitworth, 0.3),
	}
	metricOnly := []model.MatchCandidate{
		candidate("M10", model.SystemMetric, 0.3),
		candidate("M6", model.SystemMetric, 0.3),
		candidate("M5", model.SystemMetric, 0.3),
	}

	tests := []struct {
		best         *model.MatchCandidate
		name         string
		wantAction   string
		alternatives []model.MatchCandidate
		want         []model.RecommendationType
		ctx          RecommendationContext
	}{
		{
			name:       "no match",
			ctx:        RecommendationContext{PitchMeasured: true},
			want:       []model.RecommendationType{model.RecommendationError},
			wantAction: "Re-measure with calipers and thread gauge",
		},
		{
			name: "no match without pitch also explains diameter-only",
			want: []model.RecommendationType{model.RecommendationError, model.RecommendationInfo},
		},
		{
			name:       "low confidence with pitch",
			best:       &weak,
			ctx:        RecommendationContext{PitchMeasured: true},
			want:       []model.RecommendationType{model.RecommendationWarning},
			wantAction: "Re-measure diameter and pitch",
		},
		{
			name:       "low confidence without pitch",
			best:       &weak,
			want:       []model.RecommendationType{model.RecommendationWarning, model.RecommendationInfo},
			wantAction: "Measure the thread pitch",
		},
		{
			name: "confident match",
			best: &strong,
			ctx:  RecommendationContext{PitchMeasured: true},
			want: []model.RecommendationType{},
		},
		{
			name:         "mixed systems",
			best:         &strong,
			alternatives: mixed,
			ctx:          RecommendationContext{PitchMeasured: true},
			want:         []model.RecommendationType{model.RecommendationTip},
			wantAction:   "Verify the likely origin of the bolt",
		},
		{
			name:         "single system alternatives",
			best:         &strong,
			alternatives: metricOnly,
			ctx:          RecommendationContext{PitchMeasured: true},
			want:         []model.RecommendationType{},
		},
		{
			name:         "two alternatives are not enough for the origin tip",
			best:         &strong,
			alternatives: mixed[:2],
			ctx:          RecommendationContext{PitchMeasured: true},
			want:         []model.RecommendationType{},
		},
		{
			name:       "wear",
			best:       &worn,
			ctx:        RecommendationContext{PitchMeasured: true},
			want:       []model.RecommendationType{model.RecommendationInfo},
			wantAction: "Normal thread wear",
		},
		{
			name:       "metric fine",
			best:       &fine,
			ctx:        RecommendationContext{PitchMeasured: true},
			want:       []model.RecommendationType{model.RecommendationSuccess},
			wantAction: "Verify availability",
		},
		{
			name: "BSF",
			best: &bsf,
			ctx:  RecommendationContext{PitchMeasured: true},
			want: []model.RecommendationType{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recs := Recommend(tt.best, tt.alternatives, tt.ctx)
			assert.Equal(t, tt.want, recommendationTypes(recs))
			if tt.wantAction != "" {
				assert.Equal(t, tt.wantAction, recs[0].Action)
			}
		})
	}
}

func TestRecommend_FineMessageNamesThread(t *testing.T) {
	fine := candidate("M8", model.SystemMetric, 0.95)
	fine.PitchValidation = &model.PitchValidation{Matches: true, Type: model.PitchFine, Designation: "M8 x 1"}

	recs := Recommend(&fine, nil, RecommendationContext{PitchMeasured: true})

	assert.Len(t, recs, 1)
	assert.Equal(t, "Fine thread identified: M8 x 1.", recs[0].Message)
}

package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/Veraticus/the-thread-must-fit/internal/model"
)

// identifyOutput is the --json form of an identification.
type identifyOutput struct {
	Best            *candidateOutput       `json:"best_match"`
	LengthCheck     *lengthOutput          `json:"length_check,omitempty"`
	Specification   string                 `json:"specification,omitempty"`
	Alternatives    []candidateOutput      `json:"alternatives"`
	Recommendations []recommendationOutput `json:"recommendations"`
	Measurements    measurementsOutput     `json:"measurements"`
	Confidence      float64                `json:"confidence"`
	Identified      bool                   `json:"identified"`
}

type measurementsOutput struct {
	System     string  `json:"system"`
	HeadType   string  `json:"head_type,omitempty"`
	DiameterMm float64 `json:"diameter_mm"`
	PitchMm    float64 `json:"pitch_mm,omitempty"`
	LengthMm   float64 `json:"length_mm,omitempty"`
}

type candidateOutput struct {
	Designation          string  `json:"designation"`
	System               string  `json:"system"`
	PitchType            string  `json:"pitch_type,omitempty"`
	PitchNote            string  `json:"pitch_note,omitempty"`
	NominalDiameterMm    float64 `json:"nominal_diameter_mm"`
	DiameterDifferenceMm float64 `json:"diameter_difference_mm"`
	PitchMm              float64 `json:"pitch_mm,omitempty"`
	Confidence           float64 `json:"confidence"`
	NeedsThreadCheck     bool    `json:"needs_thread_check"`
}

type recommendationOutput struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
	Details string `json:"details,omitempty"`
}

type lengthOutput struct {
	NormalizedMm      float64 `json:"normalized_mm"`
	ClosestStandardMm float64 `json:"closest_standard_mm"`
	Confidence        float64 `json:"confidence"`
	IsStandard        bool    `json:"is_standard"`
}

func newIdentifyOutput(result model.IdentificationResult, m model.Measurements, specification string, check *model.LengthValidation) identifyOutput {
	out := identifyOutput{
		Identified:    result.Identified(),
		Specification: specification,
		Confidence:    result.Confidence,
		Measurements: measurementsOutput{
			System:     string(m.Preference),
			HeadType:   string(m.HeadType),
			DiameterMm: m.DiameterMm,
			PitchMm:    m.PitchMm,
			LengthMm:   m.LengthMm,
		},
		Alternatives:    make([]candidateOutput, 0, len(result.Alternatives)),
		Recommendations: make([]recommendationOutput, 0, len(result.Recommendations)),
	}

	if result.BestMatch != nil {
		best := newCandidateOutput(*result.BestMatch)
		out.Best = &best
	}
	for _, alt := range result.Alternatives {
		out.Alternatives = append(out.Alternatives, newCandidateOutput(alt))
	}
	for _, rec := range result.Recommendations {
		out.Recommendations = append(out.Recommendations, recommendationOutput{
			Type:    string(rec.Type),
			Message: rec.Message,
			Action:  rec.Action,
			Details: rec.Details,
		})
	}
	if check != nil {
		out.LengthCheck = &lengthOutput{
			NormalizedMm:      check.NormalizedMm,
			ClosestStandardMm: check.ClosestStandardMm,
			Confidence:        check.Confidence,
			IsStandard:        check.IsStandard,
		}
	}
	return out
}

func newCandidateOutput(c model.MatchCandidate) candidateOutput {
	out := candidateOutput{
		Designation:          c.Standard.Designation,
		System:               string(c.Standard.System),
		NominalDiameterMm:    c.Standard.NominalDiameterMm,
		DiameterDifferenceMm: c.DiameterDifferenceMm,
		Confidence:           c.CombinedConfidence,
		NeedsThreadCheck:     c.NeedsThreadCheck,
	}
	if v := c.PitchValidation; v != nil && v.Matches {
		out.PitchType = string(v.Type)
		out.PitchMm = v.PitchMm
		out.PitchNote = v.Note
	}
	return out
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// Package wizard holds the step-by-step identification flow as an immutable
// state value and a reducer over typed actions.
package wizard

import (
	"math"

	"github.com/Veraticus/the-thread-must-fit/internal/model"
	"github.com/Veraticus/the-thread-must-fit/internal/units"
)

// Step is a position in the wizard, starting at 1.
type Step int

// Wizard steps in order.
const (
	StepDiameter Step = iota + 1
	StepThread
	StepLength
	StepHead
	StepResult
)

// TotalSteps is the number of steps in the bolt flow.
const TotalSteps = int(StepResult)

// Title returns the heading shown for a step.
func (s Step) Title() string {
	switch s {
	case StepDiameter:
		return "Diameter"
	case StepThread:
		return "Thread"
	case StepLength:
		return "Length"
	case StepHead:
		return "Head type"
	case StepResult:
		return "Result"
	default:
		return "Unknown"
	}
}

// Field names an input that can carry a validation error.
type Field string

// Input fields.
const (
	FieldDiameter Field = "diameter"
	FieldSystem   Field = "system"
	FieldPitch    Field = "pitch"
	FieldLength   Field = "length"
	FieldHeadType Field = "head_type"
	FieldStep     Field = "step"
)

// State is one snapshot of the wizard. It is never modified in place; the
// reducer returns a new value for every action.
type State struct {
	errors        map[Field]string
	Result        *model.IdentificationResult
	LengthCheck   *model.LengthValidation
	System        model.System
	HeadType      model.HeadType
	Unit          units.Unit
	Specification string
	Step          Step
	DiameterMm    float64
	PitchMm       float64
	LengthMm      float64
}

// NewState returns the state at the start of an identification.
func NewState(unit units.Unit) State {
	if unit == "" {
		unit = units.Millimetre
	}
	return State{
		Step: StepDiameter,
		Unit: unit,
	}
}

// HasDiameter reports whether a diameter has been entered.
func (s State) HasDiameter() bool { return s.DiameterMm > 0 }

// HasPitch reports whether a pitch has been entered.
func (s State) HasPitch() bool { return s.PitchMm > 0 }

// HasLength reports whether a length has been entered.
func (s State) HasLength() bool { return s.LengthMm > 0 }

// Measurements returns the readings in the form the engine takes.
func (s State) Measurements() model.Measurements {
	pref := model.PreferBoth
	switch s.System {
	case model.SystemMetric:
		pref = model.PreferMetric
	case model.SystemWhitworth:
		pref = model.PreferWhitworth
	}
	return model.Measurements{
		Preference: pref,
		HeadType:   s.HeadType,
		DiameterMm: s.DiameterMm,
		PitchMm:    s.PitchMm,
		LengthMm:   s.LengthMm,
	}
}

// Error returns the validation message for a field, if any.
func (s State) Error(f Field) string {
	return s.errors[f]
}

// HasErrors reports whether any field carries an error.
func (s State) HasErrors() bool {
	return len(s.errors) > 0
}

// Errors returns a copy of the field errors.
func (s State) Errors() map[Field]string {
	out := make(map[Field]string, len(s.errors))
	for k, v := range s.errors {
		out[k] = v
	}
	return out
}

// CanProceed reports whether the collected data allows entering a step.
func (s State) CanProceed(to Step) bool {
	switch to {
	case StepThread:
		return s.HasDiameter()
	case StepLength:
		return s.HasDiameter() && s.HasPitch()
	case StepHead:
		return s.HasDiameter() && s.HasPitch() && s.HasLength()
	case StepResult:
		return s.HasDiameter() && s.HasPitch()
	default:
		return to >= StepDiameter && int(to) <= TotalSteps
	}
}

// Progress returns how far through the flow the wizard is, in percent.
func (s State) Progress() int {
	return int(math.Round(float64(s.Step) / float64(TotalSteps) * 100))
}

// IsComplete reports whether the wizard reached the result step.
func (s State) IsComplete() bool {
	return s.Step == StepResult
}

func (s State) withError(f Field, msg string) State {
	errs := s.Errors()
	errs[f] = msg
	s.errors = errs
	return s
}

func (s State) withoutError(f Field) State {
	if _, ok := s.errors[f]; !ok {
		return s
	}
	errs := s.Errors()
	delete(errs, f)
	s.errors = errs
	return s
}

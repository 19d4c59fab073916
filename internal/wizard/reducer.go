package wizard

import (
	"fmt"

	"github.com/Veraticus/the-thread-must-fit/internal/matching"
	"github.com/Veraticus/the-thread-must-fit/internal/model"
)

// Action is a change requested by the UI.
type Action interface {
	action()
}

// SetDiameter records a diameter reading in millimetres.
type SetDiameter struct{ Mm float64 }

// SetSystem selects the thread system and clears the pitch.
type SetSystem struct{ System model.System }

// SetPitch records a pitch reading in millimetres.
type SetPitch struct{ Mm float64 }

// SetLength records a length reading in millimetres.
type SetLength struct{ Mm float64 }

// SetHeadType records the head style. An empty type clears it.
type SetHeadType struct{ HeadType model.HeadType }

// NextStep advances one step when the data allows it.
type NextStep struct{}

// PreviousStep goes back one step, stopping at the first.
type PreviousStep struct{}

// GoToStep jumps to a step. Going back is always allowed; going forward
// requires the data for the target step.
type GoToStep struct{ Step Step }

// SetError attaches a validation message to a field.
type SetError struct {
	Field   Field
	Message string
}

// ClearError removes the message from a field.
type ClearError struct{ Field Field }

// Reset starts a new identification, keeping the unit preference.
type Reset struct{}

func (SetDiameter) action()  {}
func (SetSystem) action()    {}
func (SetPitch) action()     {}
func (SetLength) action()    {}
func (SetHeadType) action()  {}
func (NextStep) action()     {}
func (PreviousStep) action() {}
func (GoToStep) action()     {}
func (SetError) action()     {}
func (ClearError) action()   {}
func (Reset) action()        {}

// Reducer applies actions to wizard states. Measurement changes re-run the
// identification so the result always reflects the current readings.
type Reducer struct {
	identifier matching.Identifier
}

// NewReducer creates a reducer backed by an identifier.
func NewReducer(identifier matching.Identifier) *Reducer {
	return &Reducer{identifier: identifier}
}

// Reduce returns the state that follows s after a. The input state is left
// untouched.
func (r *Reducer) Reduce(s State, a Action) State {
	switch a := a.(type) {
	case SetDiameter:
		s.DiameterMm = a.Mm
		s = s.withoutError(FieldDiameter)
		return r.identify(s.clearResult())

	case SetSystem:
		s.System = a.System
		s.PitchMm = 0
		s = s.withoutError(FieldSystem).withoutError(FieldPitch)
		return r.identify(s.clearResult())

	case SetPitch:
		s.PitchMm = a.Mm
		s = s.withoutError(FieldPitch)
		return r.identify(s)

	case SetLength:
		s.LengthMm = a.Mm
		s = s.withoutError(FieldLength)
		return r.identify(s)

	case SetHeadType:
		s.HeadType = a.HeadType
		return s.withoutError(FieldHeadType)

	case NextStep:
		next := s.Step + 1
		if int(next) > TotalSteps {
			return s
		}
		if !s.CanProceed(next) {
			return s.withError(FieldStep, missingDataMessage(next))
		}
		s.Step = next
		return s.withoutError(FieldStep)

	case PreviousStep:
		if s.Step > StepDiameter {
			s.Step--
		}
		return s.withoutError(FieldStep)

	case GoToStep:
		if a.Step < StepDiameter || int(a.Step) > TotalSteps {
			return s
		}
		if a.Step > s.Step && !s.CanProceed(a.Step) {
			return s.withError(FieldStep, missingDataMessage(a.Step))
		}
		s.Step = a.Step
		return s.withoutError(FieldStep)

	case SetError:
		return s.withError(a.Field, a.Message)

	case ClearError:
		return s.withoutError(a.Field)

	case Reset:
		return NewState(s.Unit)

	default:
		return s
	}
}

func (s State) clearResult() State {
	s.Result = nil
	s.LengthCheck = nil
	s.Specification = ""
	return s
}

// identify recomputes the result from the current readings.
func (r *Reducer) identify(s State) State {
	if !s.HasDiameter() || r.identifier == nil {
		return s.clearResult()
	}

	result := r.identifier.Identify(s.Measurements())
	s.Result = &result
	s.LengthCheck = nil
	s.Specification = ""

	if result.BestMatch == nil {
		return s
	}

	s.Specification = matching.FormatSpecification(*result.BestMatch, s.LengthMm)
	if s.HasLength() {
		check := matching.ValidateLengthAgainstStandards(s.LengthMm, matching.StockedLengths(result.BestMatch.Standard))
		s.LengthCheck = &check
	}
	return s
}

func missingDataMessage(to Step) string {
	switch to {
	case StepThread:
		return "Enter the diameter first."
	case StepLength, StepResult:
		return "Enter the diameter and the thread pitch first."
	case StepHead:
		return "Enter the length first."
	default:
		return fmt.Sprintf("Cannot go to step %d yet.", to)
	}
}

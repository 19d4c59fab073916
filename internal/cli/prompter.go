package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/Veraticus/the-thread-must-fit/internal/common"
	"github.com/Veraticus/the-thread-must-fit/internal/matching"
	"github.com/Veraticus/the-thread-must-fit/internal/model"
	"github.com/Veraticus/the-thread-must-fit/internal/units"
	"github.com/Veraticus/the-thread-must-fit/internal/wizard"
)

// ErrQuit is returned when the user leaves the wizard before the result.
var ErrQuit = errors.New("wizard quit")

// Prompter walks through the identification steps on a plain terminal, one
// question per line. It drives the same reducer as the full screen wizard.
type Prompter struct {
	writer    io.Writer
	reader    *NonBlockingReader
	reducer   *wizard.Reducer
	unit      units.Unit
	headTypes []model.HeadTypeInfo
}

// NewPrompter creates a prompter. Nil reader and writer default to the
// process's stdin and stdout.
func NewPrompter(identifier matching.Identifier, headTypes []model.HeadTypeInfo, unit units.Unit, reader io.Reader, writer io.Writer) *Prompter {
	if reader == nil {
		reader = os.Stdin
	}
	if writer == nil {
		writer = os.Stdout
	}
	return &Prompter{
		writer:    writer,
		reader:    NewNonBlockingReader(reader),
		reducer:   wizard.NewReducer(identifier),
		unit:      unit,
		headTypes: headTypes,
	}
}

// Run asks for each measurement in turn and returns the state at the result
// step. Typing q at any prompt returns ErrQuit.
func (p *Prompter) Run(ctx context.Context) (wizard.State, error) {
	state := wizard.NewState(p.unit)

	if err := p.println(FormatTitle("The Thread Must Fit")); err != nil {
		return state, err
	}

	steps := []func(context.Context, wizard.State) (wizard.State, error){
		p.askDiameter,
		p.askThread,
		p.askLength,
		p.askHead,
	}
	for !state.IsComplete() {
		idx := int(state.Step) - 1
		if idx >= len(steps) {
			break
		}
		next, err := steps[idx](ctx, state)
		if err != nil {
			return next, err
		}
		state = next
	}

	common.LogDebug("Plain wizard finished", common.Fields{
		"specification": state.Specification,
		"diameter_mm":   state.DiameterMm,
		"pitch_mm":      state.PitchMm,
	})
	return state, nil
}

func (p *Prompter) askDiameter(ctx context.Context, state wizard.State) (wizard.State, error) {
	prompt := fmt.Sprintf("Outside diameter (%s)", p.unit.Symbol())
	for {
		input, err := p.ask(ctx, prompt)
		if err != nil {
			return state, err
		}
		reading, err := units.ParseReading(input)
		if err == nil {
			reading, err = units.ValidateDiameter(reading, p.unit)
		}
		if err != nil {
			if err := p.println(FormatError(measurementText(err))); err != nil {
				return state, err
			}
			continue
		}

		state = p.reducer.Reduce(state, wizard.SetDiameter{Mm: reading})
		if state.Result != nil {
			if err := p.println(RenderCandidates(state.Result.Ranked(), p.unit)); err != nil {
				return state, err
			}
		}
		return p.reducer.Reduce(state, wizard.NextStep{}), nil
	}
}

func (p *Prompter) askThread(ctx context.Context, state wizard.State) (wizard.State, error) {
	for {
		input, err := p.ask(ctx, "Thread system [both/metric/whitworth]")
		if err != nil {
			return state, err
		}
		pref, err := model.ParseSystemPreference(input)
		if err != nil {
			if err := p.println(FormatError(err.Error())); err != nil {
				return state, err
			}
			continue
		}
		state = p.reducer.Reduce(state, wizard.SetSystem{System: pref.System()})
		break
	}

	prompt := "Thread pitch (mm, or TPI)"
	switch state.System {
	case model.SystemMetric:
		prompt = "Thread pitch (mm)"
	case model.SystemWhitworth:
		prompt = "Threads per inch"
	}

	for {
		input, err := p.ask(ctx, prompt)
		if err != nil {
			return state, err
		}
		pitch, err := units.ParsePitch(input, state.System)
		if err != nil {
			if err := p.println(FormatError(measurementText(err))); err != nil {
				return state, err
			}
			continue
		}
		state = p.reducer.Reduce(state, wizard.SetPitch{Mm: pitch})
		return p.reducer.Reduce(state, wizard.NextStep{}), nil
	}
}

func (p *Prompter) askLength(ctx context.Context, state wizard.State) (wizard.State, error) {
	prompt := fmt.Sprintf("Length under the head (%s, Enter to skip)", p.unit.Symbol())
	for {
		input, err := p.ask(ctx, prompt)
		if err != nil {
			return state, err
		}
		if input == "" {
			return p.reducer.Reduce(state, wizard.GoToStep{Step: wizard.StepResult}), nil
		}

		reading, err := units.ParseReading(input)
		if err == nil {
			reading, err = units.ValidateLength(reading, p.unit)
		}
		if err != nil {
			if err := p.println(FormatError(measurementText(err))); err != nil {
				return state, err
			}
			continue
		}
		state = p.reducer.Reduce(state, wizard.SetLength{Mm: reading})
		return p.reducer.Reduce(state, wizard.NextStep{}), nil
	}
}

func (p *Prompter) askHead(ctx context.Context, state wizard.State) (wizard.State, error) {
	lines := make([]string, 0, len(p.headTypes)+1)
	lines = append(lines, FormatPrompt("Head types:"))
	for i, info := range p.headTypes {
		lines = append(lines, fmt.Sprintf("  [%d] %s %s", i+1, info.Name, SubtleStyle.Render("("+info.Tool+")")))
	}
	if err := p.println(strings.Join(lines, "\n")); err != nil {
		return state, err
	}

	for {
		input, err := p.ask(ctx, "Head type (number or name, Enter to skip)")
		if err != nil {
			return state, err
		}
		if input == "" {
			return p.reducer.Reduce(state, wizard.NextStep{}), nil
		}

		head, ok := p.lookupHead(input)
		if !ok {
			if err := p.println(FormatError(fmt.Sprintf("unknown head type %q", input))); err != nil {
				return state, err
			}
			continue
		}
		state = p.reducer.Reduce(state, wizard.SetHeadType{HeadType: head})
		return p.reducer.Reduce(state, wizard.NextStep{}), nil
	}
}

func (p *Prompter) lookupHead(input string) (model.HeadType, bool) {
	if n, err := strconv.Atoi(input); err == nil {
		if n >= 1 && n <= len(p.headTypes) {
			return p.headTypes[n-1].Type, true
		}
		return "", false
	}
	for _, info := range p.headTypes {
		if strings.EqualFold(input, string(info.Type)) || strings.EqualFold(input, info.Name) {
			return info.Type, true
		}
	}
	return "", false
}

// ask shows a prompt and reads the answer. A lone q quits.
func (p *Prompter) ask(ctx context.Context, prompt string) (string, error) {
	if _, err := fmt.Fprintf(p.writer, "%s ", FormatPrompt(prompt+":")); err != nil {
		return "", fmt.Errorf("failed to write prompt: %w", err)
	}
	input, err := p.reader.ReadLine(ctx)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return "", ErrQuit
		}
		return "", err
	}
	if strings.EqualFold(input, "q") {
		return "", ErrQuit
	}
	return input, nil
}

func (p *Prompter) println(s string) error {
	if _, err := fmt.Fprintln(p.writer, s); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

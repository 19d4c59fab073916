package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/Veraticus/the-thread-must-fit/internal/model"
	"github.com/Veraticus/the-thread-must-fit/internal/units"
	"github.com/Veraticus/the-thread-must-fit/internal/wizard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPrompter(t *testing.T, input string, unit units.Unit) (*Prompter, *bytes.Buffer) {
	t.Helper()
	engine := newTestEngine(t)
	var out bytes.Buffer
	p := NewPrompter(engine, engine.Table().HeadTypes(), unit, strings.NewReader(input), &out)
	return p, &out
}

func TestPrompter_MetricBolt(t *testing.T) {
	p, out := newTestPrompter(t, "7.95\nmetric\n1.25\n25\nhex\n", units.Millimetre)

	state, err := p.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, wizard.StepResult, state.Step)
	assert.Equal(t, "M8 x 1.25 x 25mm", state.Specification)
	assert.Equal(t, model.HeadHex, state.HeadType)
	require.NotNil(t, state.LengthCheck)
	assert.True(t, state.LengthCheck.IsStandard)
	assert.Contains(t, out.String(), "Outside diameter (mm)")
	assert.Contains(t, out.String(), "Head types:")
}

func TestPrompter_WhitworthSkipsLength(t *testing.T) {
	p, out := newTestPrompter(t, "80\n7.94\nwhitworth\n18\n\n", units.Millimetre)

	state, err := p.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, wizard.StepResult, state.Step)
	assert.Contains(t, state.Specification, "5/16 BSW 18 TPI")
	assert.Empty(t, state.HeadType)
	assert.Contains(t, out.String(), "diameter must be between 1 and 50 mm")
	assert.Contains(t, out.String(), "Threads per inch")
	assert.NotContains(t, out.String(), "Head types:")
}

func TestPrompter_Retries(t *testing.T) {
	input := strings.Join([]string{
		"7.95",
		"martian",
		"metric",
		"1.1",
		"1.25",
		"9999",
		"25",
		"wing",
		"2",
	}, "\n") + "\n"
	p, out := newTestPrompter(t, input, units.Millimetre)

	state, err := p.Run(context.Background())
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, `unknown system preference "martian"`)
	assert.Contains(t, text, "not a standard metric pitch")
	assert.Contains(t, text, `unknown head type "wing"`)
	assert.Equal(t, wizard.StepResult, state.Step)
	assert.Equal(t, model.HeadCarriage, state.HeadType)
}

func TestPrompter_Quit(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "q at diameter", input: "q\n"},
		{name: "q at pitch", input: "8\nmetric\nQ\n"},
		{name: "end of input", input: "8\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, _ := newTestPrompter(t, tt.input, units.Millimetre)
			_, err := p.Run(context.Background())
			assert.ErrorIs(t, err, ErrQuit)
		})
	}
}

func TestPrompter_Cancelled(t *testing.T) {
	p, _ := newTestPrompter(t, "8\n", units.Millimetre)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Run(ctx)
	assert.ErrorIs(t, err, ErrInputCancelled)
}

func TestPrompter_LookupHead(t *testing.T) {
	p, _ := newTestPrompter(t, "", units.Millimetre)

	tests := []struct {
		input string
		want  model.HeadType
		ok    bool
	}{
		{input: "1", want: model.HeadAllen, ok: true},
		{input: "HEX", want: model.HeadHex, ok: true},
		{input: "Carriage Bolt", ok: false},
		{input: "0", ok: false},
		{input: "99", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := p.lookupHead(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

// Package tui is the interactive bolt identification wizard.
package tui

import (
	"errors"
	"strings"

	"github.com/Veraticus/the-thread-must-fit/internal/common"
	"github.com/Veraticus/the-thread-must-fit/internal/model"
	"github.com/Veraticus/the-thread-must-fit/internal/storage"
	"github.com/Veraticus/the-thread-must-fit/internal/tui/themes"
	"github.com/Veraticus/the-thread-must-fit/internal/units"
	"github.com/Veraticus/the-thread-must-fit/internal/wizard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// ErrNoEngine is returned when the wizard is built without an engine.
var ErrNoEngine = errors.New("identification engine is required")

// Model holds the main TUI state.
type Model struct {
	theme         themes.Theme
	lastError     error
	history       storage.HistoryStore
	reducer       *wizard.Reducer
	state         wizard.State
	config        Config
	keymap        KeyMap
	status        string
	headTypes     []model.HeadTypeInfo
	entries       []model.HistoryEntry
	help          help.Model
	diameterInput textinput.Model
	pitchInput    textinput.Model
	lengthInput   textinput.Model
	systemIndex   int
	headIndex     int
	width         int
	height        int
	showHistory   bool
	quitting      bool
}

// New creates the wizard model.
func New(opts ...Option) (Model, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Engine == nil {
		return Model{}, ErrNoEngine
	}
	return newModel(cfg), nil
}

// newModel creates a new model with the given configuration.
func newModel(cfg Config) Model {
	m := Model{
		state:         wizard.NewState(cfg.Unit),
		reducer:       wizard.NewReducer(cfg.Engine),
		config:        cfg,
		keymap:        DefaultKeyMap(),
		help:          help.New(),
		theme:         cfg.Theme,
		history:       cfg.History,
		headTypes:     cfg.Engine.Table().HeadTypes(),
		diameterInput: newInput(diameterPlaceholder(cfg.Unit)),
		pitchInput:    newInput(pitchPlaceholder("")),
		lengthInput:   newInput(lengthPlaceholder(cfg.Unit)),
		width:         cfg.Width,
		height:        cfg.Height,
	}
	m.headIndex = m.indexOfHead(model.HeadHex)
	m.help.Width = cfg.Width
	m.diameterInput.Focus()
	return m
}

func newInput(placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 12
	ti.Width = 16
	ti.Prompt = "› "
	return ti
}

// State returns the current wizard state.
func (m Model) State() wizard.State {
	return m.state
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if m.history != nil {
		cmds = append(cmds, m.loadHistory())
	}
	return tea.Batch(cmds...)
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case historySavedMsg:
		if msg.err != nil {
			m.lastError = msg.err
			return m, nil
		}
		m.entries = prependEntry(m.entries, msg.entry, m.config.HistoryLimit)
		m.status = "Saved " + msg.entry.Designation + " to history"
		return m, nil

	case historyLoadedMsg:
		if msg.err != nil {
			m.lastError = msg.err
			return m, nil
		}
		m.entries = msg.entries
		return m, nil

	case historyClearedMsg:
		if msg.err != nil {
			m.lastError = msg.err
			return m, nil
		}
		m.entries = nil
		m.status = "History cleared"
		return m, nil
	}

	return m.updateFocusedInput(msg)
}

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width < 100 || !m.showHistory {
		return m.renderCompactView()
	}
	return m.renderFullView()
}

// handleKey routes a key press to the global bindings or the current step.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.ForceQuit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keymap.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keymap.Back):
		if m.state.Step == wizard.StepDiameter {
			m.quitting = true
			return m, tea.Quit
		}
		m.dispatch(wizard.PreviousStep{})
		cmd := m.focusStep()
		return m, cmd
	}

	m.status = ""
	m.lastError = nil
	before := m.state.Step

	var cmd tea.Cmd
	switch m.state.Step {
	case wizard.StepDiameter:
		m, cmd = m.handleDiameterKey(msg)
	case wizard.StepThread:
		m, cmd = m.handleThreadKey(msg)
	case wizard.StepLength:
		m, cmd = m.handleLengthKey(msg)
	case wizard.StepHead:
		m, cmd = m.handleHeadKey(msg)
	case wizard.StepResult:
		m, cmd = m.handleResultKey(msg)
	}

	if before != wizard.StepResult && m.state.Step == wizard.StepResult {
		return m, tea.Batch(cmd, m.saveResult())
	}
	return m, cmd
}

func (m Model) handleDiameterKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if !key.Matches(msg, m.keymap.Next) {
		cmd := m.updateInput(&m.diameterInput, msg)
		return m, cmd
	}

	reading, err := units.ParseReading(m.diameterInput.Value())
	if err == nil {
		reading, err = units.ValidateDiameter(reading, m.state.Unit)
	}
	if err != nil {
		m.dispatch(wizard.SetError{Field: wizard.FieldDiameter, Message: measurementMessage(err)})
		return m, nil
	}

	m.dispatch(wizard.SetDiameter{Mm: reading})
	m.dispatch(wizard.NextStep{})
	cmd := m.focusStep()
	return m, cmd
}

func (m Model) handleThreadKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.ToggleSystem):
		m.systemIndex = (m.systemIndex + 1) % len(systemOptions)
		system := systemOptions[m.systemIndex].system
		m.dispatch(wizard.SetSystem{System: system})
		m.pitchInput.Reset()
		m.pitchInput.Placeholder = pitchPlaceholder(system)
		return m, nil

	case key.Matches(msg, m.keymap.Next):
		pitch, err := units.ParsePitch(m.pitchInput.Value(), m.state.System)
		if err != nil {
			m.dispatch(wizard.SetError{Field: wizard.FieldPitch, Message: measurementMessage(err)})
			return m, nil
		}
		m.dispatch(wizard.SetPitch{Mm: pitch})
		m.dispatch(wizard.NextStep{})
		cmd := m.focusStep()
		return m, cmd

	case key.Matches(msg, m.keymap.Skip):
		m.dispatch(wizard.GoToStep{Step: wizard.StepResult})
		cmd := m.focusStep()
		return m, cmd
	}
	cmd := m.updateInput(&m.pitchInput, msg)
	return m, cmd
}

func (m Model) handleLengthKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if key.Matches(msg, m.keymap.Skip) {
		m.dispatch(wizard.GoToStep{Step: wizard.StepResult})
		cmd := m.focusStep()
		return m, cmd
	}
	if !key.Matches(msg, m.keymap.Next) {
		cmd := m.updateInput(&m.lengthInput, msg)
		return m, cmd
	}

	// An empty length skips straight to the result.
	if strings.TrimSpace(m.lengthInput.Value()) == "" {
		m.dispatch(wizard.GoToStep{Step: wizard.StepResult})
		cmd := m.focusStep()
		return m, cmd
	}

	reading, err := units.ParseReading(m.lengthInput.Value())
	if err == nil {
		reading, err = units.ValidateLength(reading, m.state.Unit)
	}
	if err != nil {
		m.dispatch(wizard.SetError{Field: wizard.FieldLength, Message: measurementMessage(err)})
		return m, nil
	}

	m.dispatch(wizard.SetLength{Mm: reading})
	m.dispatch(wizard.NextStep{})
	cmd := m.focusStep()
	return m, cmd
}

func (m Model) handleHeadKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Up):
		if m.headIndex > 0 {
			m.headIndex--
		}
	case key.Matches(msg, m.keymap.Down):
		if m.headIndex < len(m.headTypes)-1 {
			m.headIndex++
		}
	case key.Matches(msg, m.keymap.Next):
		if len(m.headTypes) > 0 {
			m.dispatch(wizard.SetHeadType{HeadType: m.headTypes[m.headIndex].Type})
		}
		m.dispatch(wizard.NextStep{})
	case key.Matches(msg, m.keymap.Skip):
		m.dispatch(wizard.NextStep{})
	}
	return m, nil
}

func (m Model) handleResultKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keymap.NewBolt):
		m.dispatch(wizard.Reset{})
		m.resetInputs()
		cmd := m.focusStep()
		return m, cmd

	case key.Matches(msg, m.keymap.History):
		m.showHistory = !m.showHistory
		if m.showHistory && m.history != nil {
			return m, m.loadHistory()
		}

	case key.Matches(msg, m.keymap.ClearHistory):
		if m.history != nil {
			return m, m.clearHistory()
		}
	}
	return m, nil
}

// dispatch applies an action to the wizard state.
func (m *Model) dispatch(action wizard.Action) {
	m.state = m.reducer.Reduce(m.state, action)
}

func (m *Model) updateInput(input *textinput.Model, msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	*input, cmd = input.Update(msg)
	return cmd
}

func (m Model) updateFocusedInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.state.Step {
	case wizard.StepDiameter:
		cmd = m.updateInput(&m.diameterInput, msg)
	case wizard.StepThread:
		cmd = m.updateInput(&m.pitchInput, msg)
	case wizard.StepLength:
		cmd = m.updateInput(&m.lengthInput, msg)
	}
	return m, cmd
}

// focusStep moves the cursor to the input of the current step.
func (m *Model) focusStep() tea.Cmd {
	m.diameterInput.Blur()
	m.pitchInput.Blur()
	m.lengthInput.Blur()

	switch m.state.Step {
	case wizard.StepDiameter:
		return m.diameterInput.Focus()
	case wizard.StepThread:
		return m.pitchInput.Focus()
	case wizard.StepLength:
		return m.lengthInput.Focus()
	default:
		return nil
	}
}

func (m *Model) resetInputs() {
	m.diameterInput.Reset()
	m.pitchInput.Reset()
	m.lengthInput.Reset()
	m.systemIndex = 0
	m.pitchInput.Placeholder = pitchPlaceholder("")
	m.headIndex = m.indexOfHead(model.HeadHex)
	m.showHistory = false
}

func (m Model) indexOfHead(head model.HeadType) int {
	for i, info := range m.headTypes {
		if info.Type == head {
			return i
		}
	}
	return 0
}

// measurementMessage strips the sentinel prefix for display.
func measurementMessage(err error) string {
	return strings.TrimPrefix(err.Error(), common.ErrInvalidMeasurement.Error()+": ")
}

func prependEntry(entries []model.HistoryEntry, entry model.HistoryEntry, limit int) []model.HistoryEntry {
	out := make([]model.HistoryEntry, 0, len(entries)+1)
	out = append(out, entry)
	out = append(out, entries...)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func diameterPlaceholder(unit units.Unit) string {
	if unit == units.Inch {
		return "e.g. 5/16"
	}
	return "e.g. 7.95"
}

func pitchPlaceholder(system model.System) string {
	switch system {
	case model.SystemWhitworth:
		return "TPI, e.g. 18"
	case model.SystemMetric:
		return "mm, e.g. 1.25"
	default:
		return "mm or TPI"
	}
}

func lengthPlaceholder(unit units.Unit) string {
	if unit == units.Inch {
		return "e.g. 1 1/4 (optional)"
	}
	return "e.g. 25 (optional)"
}

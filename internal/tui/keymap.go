package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keyboard shortcuts.
type KeyMap struct {
	// Navigation
	Up   key.Binding
	Down key.Binding
	Next key.Binding
	Back key.Binding
	Skip key.Binding

	// Thread step
	ToggleSystem key.Binding

	// Result step
	NewBolt      key.Binding
	History      key.Binding
	ClearHistory key.Binding

	// Application
	Help      key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		// Navigation
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("↓/j", "down"),
		),
		Next: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "confirm"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "shift+tab"),
			key.WithHelp("Esc", "back"),
		),
		Skip: key.NewBinding(
			key.WithKeys("ctrl+n"),
			key.WithHelp("Ctrl+N", "skip to result"),
		),

		ToggleSystem: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("Tab", "switch system"),
		),

		NewBolt: key.NewBinding(
			key.WithKeys("n", "r"),
			key.WithHelp("n", "new bolt"),
		),
		History: key.NewBinding(
			key.WithKeys("h"),
			key.WithHelp("h", "toggle history"),
		),
		ClearHistory: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "clear history"),
		),

		// Application
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("Ctrl+C", "force quit"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Back, k.Help, k.ForceQuit}
}

// FullHelp returns all key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Back, k.Skip},
		{k.Up, k.Down, k.ToggleSystem},
		{k.NewBolt, k.History, k.ClearHistory},
		{k.Help, k.Quit, k.ForceQuit},
	}
}

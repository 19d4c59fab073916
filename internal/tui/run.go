package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the wizard and blocks until the user quits or ctx is cancelled.
func Run(ctx context.Context, opts ...Option) error {
	m, err := New(opts...)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	program := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	if _, err := program.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

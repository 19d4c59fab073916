package tui

import (
	"context"
	"errors"
	"time"

	"github.com/Veraticus/the-thread-must-fit/internal/common"
	tea "github.com/charmbracelet/bubbletea"
)

const historyTimeout = 5 * time.Second

var errNoHistory = errors.New("history is not configured")

// saveResult stores the current best match in the session history. It does
// nothing when nothing was identified.
func (m Model) saveResult() tea.Cmd {
	if m.state.Result == nil || m.history == nil {
		return nil
	}
	entry, ok := m.state.Result.HistoryEntry(m.state.Measurements(), m.state.Specification)
	if !ok {
		return nil
	}
	history := m.history

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), historyTimeout)
		defer cancel()

		saved, err := history.AddHistory(ctx, entry)
		if err != nil {
			common.LogError(err, "Failed to save identification", common.Fields{
				"designation": entry.Designation,
			})
			return historySavedMsg{err: err}
		}
		return historySavedMsg{entry: saved}
	}
}

// loadHistory loads recent identifications from storage.
func (m Model) loadHistory() tea.Cmd {
	history := m.history
	limit := m.config.HistoryLimit

	return func() tea.Msg {
		if history == nil {
			return historyLoadedMsg{err: errNoHistory}
		}

		ctx, cancel := context.WithTimeout(context.Background(), historyTimeout)
		defer cancel()

		entries, err := history.ListHistory(ctx, limit)
		if err != nil {
			common.LogError(err, "Failed to load history", nil)
			return historyLoadedMsg{err: err}
		}
		return historyLoadedMsg{entries: entries}
	}
}

// clearHistory removes every stored identification.
func (m Model) clearHistory() tea.Cmd {
	history := m.history

	return func() tea.Msg {
		if history == nil {
			return historyClearedMsg{err: errNoHistory}
		}

		ctx, cancel := context.WithTimeout(context.Background(), historyTimeout)
		defer cancel()

		if err := history.ClearHistory(ctx); err != nil {
			common.LogError(err, "Failed to clear history", nil)
			return historyClearedMsg{err: err}
		}
		return historyClearedMsg{}
	}
}

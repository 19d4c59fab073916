package tui

import "github.com/Veraticus/the-thread-must-fit/internal/model"

// History messages.
type historySavedMsg struct {
	err   error
	entry model.HistoryEntry
}

type historyLoadedMsg struct {
	err     error
	entries []model.HistoryEntry
}

type historyClearedMsg struct {
	err error
}

// systemOption is one choice on the thread step. An empty system searches
// both standards.
type systemOption struct {
	label  string
	system model.System
}

var systemOptions = []systemOption{
	{label: "Both", system: ""},
	{label: "Metric ISO", system: model.SystemMetric},
	{label: "Whitworth", system: model.SystemWhitworth},
}

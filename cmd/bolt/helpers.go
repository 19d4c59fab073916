package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Veraticus/the-thread-must-fit/internal/common"
	"github.com/Veraticus/the-thread-must-fit/internal/config"
	"github.com/Veraticus/the-thread-must-fit/internal/matching"
	"github.com/Veraticus/the-thread-must-fit/internal/model"
	"github.com/Veraticus/the-thread-must-fit/internal/reference"
	"github.com/Veraticus/the-thread-must-fit/internal/storage"
	"github.com/Veraticus/the-thread-must-fit/internal/units"
)

// initEngine loads the reference tables and builds the matching engine with
// the configured tolerances.
func initEngine(cfg config.Config) (*matching.Engine, error) {
	table, err := reference.Default()
	if err != nil {
		return nil, fmt.Errorf("failed to load reference tables: %w", err)
	}
	return matching.NewEngine(table, cfg.Matching)
}

// initHistory opens the history store and runs its migrations.
func initHistory(ctx context.Context, cfg config.Config) (*storage.SQLiteStorage, error) {
	store, err := storage.NewSQLiteStorage(cfg.History.Path, storage.WithHistoryLimit(cfg.History.Limit))
	if err != nil {
		return nil, fmt.Errorf("failed to open history: %w", err)
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// historyRetry covers another bolt process holding the history file lock.
var historyRetry = common.RetryOptions{
	MaxAttempts:  3,
	InitialDelay: 50 * time.Millisecond,
	MaxDelay:     500 * time.Millisecond,
}

// recordHistory saves an identification when history is kept on disk. An
// in-memory store would be gone when the command exits, so it is skipped.
// Failures are logged, never returned.
func recordHistory(ctx context.Context, cfg config.Config, result model.IdentificationResult, m model.Measurements, specification string) {
	if cfg.History.Path == storage.MemoryPath {
		return
	}
	entry, ok := result.HistoryEntry(m, specification)
	if !ok {
		return
	}

	store, err := initHistory(ctx, cfg)
	if err != nil {
		common.LogError(err, "Failed to open history", common.Fields{"path": cfg.History.Path})
		return
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			common.LogError(closeErr, "Failed to close history", nil)
		}
	}()

	err = common.WithRetry(ctx, func() error {
		if _, addErr := store.AddHistory(ctx, entry); addErr != nil {
			return &common.RetryableError{Err: addErr, Retryable: storage.IsBusy(addErr)}
		}
		return nil
	}, historyRetry)
	if err != nil {
		common.LogError(err, "Failed to save identification", common.Fields{"designation": entry.Designation})
	}
}

// parseDiameter reads a diameter argument in the configured unit.
func parseDiameter(input string, unit units.Unit) (float64, error) {
	reading, err := units.ParseReading(input)
	if err != nil {
		return 0, err
	}
	return units.ValidateDiameter(reading, unit)
}

// parseLength reads a length argument in the configured unit.
func parseLength(input string, unit units.Unit) (float64, error) {
	reading, err := units.ParseReading(input)
	if err != nil {
		return 0, err
	}
	return units.ValidateLength(reading, unit)
}

// lookupStandard finds a standard by designation in either system.
func lookupStandard(engine *matching.Engine, designation string) (model.ThreadStandard, error) {
	std, err := engine.Table().Find(strings.TrimSpace(designation))
	if err != nil {
		return model.ThreadStandard{}, common.NewUserError(
			fmt.Sprintf("unknown thread designation %q, see 'bolt tables'", designation), err)
	}
	return std, nil
}

// lookupHead resolves a head type tag.
func lookupHead(engine *matching.Engine, head string) (model.HeadTypeInfo, error) {
	info, ok := engine.Table().HeadType(model.HeadType(strings.ToLower(strings.TrimSpace(head))))
	if !ok {
		return model.HeadTypeInfo{}, common.NewUserError(
			fmt.Sprintf("unknown head type %q", head), common.ErrNotFound)
	}
	return info, nil
}

// systemsFor lists the systems a preference covers, metric first.
func systemsFor(pref model.SystemPreference) []model.System {
	var systems []model.System
	for _, s := range []model.System{model.SystemMetric, model.SystemWhitworth} {
		if pref.Includes(s) {
			systems = append(systems, s)
		}
	}
	return systems
}

func printLine(w io.Writer, s string) error {
	if _, err := fmt.Fprintln(w, s); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

package storage

import (
	"context"
	"fmt"

	"github.com/Veraticus/the-thread-must-fit/internal/common"
	"github.com/Veraticus/the-thread-must-fit/internal/model"
)

// Ensure SQLiteStorage implements HistoryStore.
var _ HistoryStore = (*SQLiteStorage)(nil)

// HistoryStore keeps completed identifications, newest first.
type HistoryStore interface {
	AddHistory(ctx context.Context, entry model.HistoryEntry) (model.HistoryEntry, error)
	ListHistory(ctx context.Context, limit int) ([]model.HistoryEntry, error)
	CountHistory(ctx context.Context) (int, error)
	ClearHistory(ctx context.Context) error
}

// AddHistory stores an entry, assigning its ID and timestamp, and drops the
// oldest entries beyond the history limit.
func (s *SQLiteStorage) AddHistory(ctx context.Context, entry model.HistoryEntry) (model.HistoryEntry, error) {
	if err := validateContext(ctx); err != nil {
		return model.HistoryEntry{}, err
	}
	if err := validateHistoryEntry(entry); err != nil {
		return model.HistoryEntry{}, err
	}

	entry.ID = s.newID()
	entry.CreatedAt = s.now().UTC()
	preference := entry.Measurements.Preference
	if preference == "" {
		preference = model.PreferBoth
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return model.HistoryEntry{}, fmt.Errorf("%w: failed to begin transaction: %w", common.ErrHistoryUnavailable, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO history (
			id, created_at, designation, system, specification,
			diameter_mm, pitch_mm, length_mm, confidence, head_type, preference
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		entry.ID,
		entry.CreatedAt,
		entry.Designation,
		string(entry.System),
		entry.Specification,
		entry.Measurements.DiameterMm,
		entry.Measurements.PitchMm,
		entry.Measurements.LengthMm,
		entry.Confidence,
		string(entry.Measurements.HeadType),
		string(preference),
	)
	if err != nil {
		return model.HistoryEntry{}, fmt.Errorf("%w: failed to save history entry: %w", common.ErrHistoryUnavailable, err)
	}

	_, err = tx.ExecContext(ctx, `
		DELETE FROM history
		WHERE seq NOT IN (
			SELECT seq FROM history ORDER BY seq DESC LIMIT ?
		)
	`, s.historyLimit)
	if err != nil {
		return model.HistoryEntry{}, fmt.Errorf("%w: failed to trim history: %w", common.ErrHistoryUnavailable, err)
	}

	if err := tx.Commit(); err != nil {
		return model.HistoryEntry{}, fmt.Errorf("%w: failed to commit history entry: %w", common.ErrHistoryUnavailable, err)
	}

	entry.Measurements.Preference = preference
	return entry, nil
}

// ListHistory returns up to limit entries, newest first. A non-positive
// limit returns every stored entry.
func (s *SQLiteStorage) ListHistory(ctx context.Context, limit int) ([]model.HistoryEntry, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = s.historyLimit
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_at, designation, system, specification,
		       diameter_mm, pitch_mm, length_mm, confidence, head_type, preference
		FROM history
		ORDER BY seq DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query history: %w", common.ErrHistoryUnavailable, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var entries []model.HistoryEntry
	for rows.Next() {
		var (
			entry              model.HistoryEntry
			system, head, pref string
		)
		if err := rows.Scan(
			&entry.ID,
			&entry.CreatedAt,
			&entry.Designation,
			&system,
			&entry.Specification,
			&entry.Measurements.DiameterMm,
			&entry.Measurements.PitchMm,
			&entry.Measurements.LengthMm,
			&entry.Confidence,
			&head,
			&pref,
		); err != nil {
			return nil, fmt.Errorf("failed to scan history entry: %w", err)
		}
		entry.System = model.System(system)
		entry.Measurements.HeadType = model.HeadType(head)
		entry.Measurements.Preference = model.SystemPreference(pref)
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate history: %w", err)
	}

	return entries, nil
}

// CountHistory returns the number of stored entries.
func (s *SQLiteStorage) CountHistory(ctx context.Context) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM history`).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: failed to count history: %w", common.ErrHistoryUnavailable, err)
	}
	return count, nil
}

// ClearHistory removes every entry.
func (s *SQLiteStorage) ClearHistory(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM history`); err != nil {
		return fmt.Errorf("%w: failed to clear history: %w", common.ErrHistoryUnavailable, err)
	}
	return nil
}

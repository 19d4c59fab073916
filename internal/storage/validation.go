// Package storage keeps the session history of identifications.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/the-thread-must-fit/internal/model"
)

// Validation errors.
var (
	ErrNilContext          = errors.New("context cannot be nil")
	ErrEmptyString         = errors.New("string parameter cannot be empty")
	ErrInvalidHistoryEntry = errors.New("invalid history entry")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateHistoryEntry checks an entry before it is stored.
func validateHistoryEntry(entry model.HistoryEntry) error {
	if strings.TrimSpace(entry.Designation) == "" {
		return fmt.Errorf("%w: designation is required", ErrInvalidHistoryEntry)
	}
	if entry.System != model.SystemMetric && entry.System != model.SystemWhitworth {
		return fmt.Errorf("%w: unknown system %q", ErrInvalidHistoryEntry, entry.System)
	}
	if entry.Measurements.DiameterMm <= 0 {
		return fmt.Errorf("%w: diameter must be positive", ErrInvalidHistoryEntry)
	}
	if entry.Confidence < 0 || entry.Confidence > 1 {
		return fmt.Errorf("%w: confidence must be between 0.0 and 1.0, got %.2f", ErrInvalidHistoryEntry, entry.Confidence)
	}
	return nil
}

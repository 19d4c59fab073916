// Package matching identifies thread standards from caliper and thread gauge
// measurements.
//
// Every function here is pure: the reference table is read-only and each call
// returns freshly allocated candidates and results. An Engine may be shared
// freely.
package matching

import (
	"fmt"

	"github.com/Veraticus/the-thread-must-fit/internal/model"
	"github.com/Veraticus/the-thread-must-fit/internal/reference"
)

// Ensure Engine implements Identifier interface.
var _ Identifier = (*Engine)(nil)

// Identifier is what the wizard and the commands need from the engine.
type Identifier interface {
	// Identify ranks candidates for a set of measurements.
	Identify(m model.Measurements) model.IdentificationResult
	// FindAllMatches returns diameter-only candidates for both systems.
	FindAllMatches(diameterMm, toleranceMm float64) model.AllMatches
	// Tolerances returns the windows the engine was built with.
	Tolerances() Tolerances
}

// Engine runs identifications against a reference table.
type Engine struct {
	table      *reference.Table
	tolerances Tolerances
}

// NewEngine creates an engine over the given table.
func NewEngine(table *reference.Table, tolerances Tolerances) (*Engine, error) {
	if table == nil {
		return nil, fmt.Errorf("reference table is required")
	}
	if err := tolerances.Validate(); err != nil {
		return nil, err
	}
	return &Engine{
		table:      table,
		tolerances: tolerances,
	}, nil
}

// Tolerances returns the windows the engine was built with.
func (e *Engine) Tolerances() Tolerances {
	return e.tolerances
}

// Table returns the reference table behind the engine.
func (e *Engine) Table() *reference.Table {
	return e.table
}

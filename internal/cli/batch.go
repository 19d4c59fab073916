package cli

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/Veraticus/the-thread-must-fit/internal/common"
	"github.com/Veraticus/the-thread-must-fit/internal/matching"
	"github.com/Veraticus/the-thread-must-fit/internal/model"
	"github.com/Veraticus/the-thread-must-fit/internal/units"
	"github.com/schollz/progressbar/v3"
)

// FastenerIdentifier identifies complete bolts.
type FastenerIdentifier interface {
	IdentifyFastener(q matching.FastenerQuery) matching.FastenerResult
}

// Ensure the engine can drive batches.
var _ FastenerIdentifier = (*matching.Engine)(nil)

// BatchRow is one line of a batch file. Err is set when the line could not
// be parsed; such rows are reported but not identified.
type BatchRow struct {
	Err   error
	Query matching.FastenerQuery
	Line  int
}

// BatchResult pairs a row with its outcome.
type BatchResult struct {
	Result        matching.FastenerResult
	Specification string
	Row           BatchRow
}

var defaultColumns = []string{"diameter", "pitch", "length", "system", "head"}

// ReadBatch parses a CSV of measurements. Columns are diameter, pitch,
// length, system and head, in that order unless the first line is a header
// naming them. Pitch is always in millimetres; diameter and length are in
// unit. Empty cells mean not measured.
func ReadBatch(r io.Reader, unit units.Unit) ([]BatchRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.Comment = '#'

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	columns := defaultColumns
	start := 0
	if isHeader(records[0]) {
		columns = make([]string, len(records[0]))
		for i, name := range records[0] {
			columns[i] = strings.ToLower(strings.TrimSpace(name))
		}
		start = 1
	}

	rows := make([]BatchRow, 0, len(records)-start)
	for i, record := range records[start:] {
		line := start + i + 1
		query, err := parseBatchRecord(record, columns, unit)
		rows = append(rows, BatchRow{Line: line, Query: query, Err: err})
	}
	return rows, nil
}

func isHeader(record []string) bool {
	if len(record) == 0 || strings.TrimSpace(record[0]) == "" {
		return false
	}
	_, err := units.ParseReading(record[0])
	return err != nil
}

func parseBatchRecord(record, columns []string, unit units.Unit) (matching.FastenerQuery, error) {
	query := matching.FastenerQuery{Preference: model.PreferBoth}

	for i, raw := range record {
		if i >= len(columns) {
			break
		}
		value := strings.TrimSpace(raw)
		if value == "" {
			continue
		}

		switch columns[i] {
		case "diameter", "diameter_mm":
			reading, err := units.ParseReading(value)
			if err == nil {
				reading, err = units.ValidateDiameter(reading, unit)
			}
			if err != nil {
				return query, err
			}
			query.DiameterMm = reading

		case "pitch", "pitch_mm":
			reading, err := units.ParseReading(value)
			if err != nil {
				return query, err
			}
			if reading <= 0 {
				return query, fmt.Errorf("%w: pitch must be a positive number", common.ErrInvalidMeasurement)
			}
			query.PitchMm = reading

		case "length", "length_mm":
			reading, err := units.ParseReading(value)
			if err == nil {
				reading, err = units.ValidateLength(reading, unit)
			}
			if err != nil {
				return query, err
			}
			query.LengthMm = reading

		case "system", "preference":
			pref, err := model.ParseSystemPreference(value)
			if err != nil {
				return query, fmt.Errorf("%w: %w", common.ErrInvalidMeasurement, err)
			}
			query.Preference = pref

		case "head", "head_type":
			query.HeadType = model.HeadType(strings.ToLower(value))
		}
	}

	if query.DiameterMm <= 0 {
		return query, fmt.Errorf("%w: diameter is required", common.ErrInvalidMeasurement)
	}
	return query, nil
}

// BatchRunner identifies every row of a batch, reporting progress.
type BatchRunner struct {
	identifier FastenerIdentifier
	progress   io.Writer
}

// NewBatchRunner creates a runner. A nil progress writer disables the bar.
func NewBatchRunner(identifier FastenerIdentifier, progress io.Writer) *BatchRunner {
	return &BatchRunner{identifier: identifier, progress: progress}
}

// Run identifies rows in order. When ctx is cancelled it stops and returns
// the results gathered so far together with the context error.
func (b *BatchRunner) Run(ctx context.Context, rows []BatchRow) ([]BatchResult, error) {
	bar := b.newProgressBar(len(rows))
	results := make([]BatchResult, 0, len(rows))

	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		result := BatchResult{Row: row}
		if row.Err == nil {
			result.Result = b.identifier.IdentifyFastener(row.Query)
			if best := result.Result.Best(); best != nil {
				result.Specification = matching.FormatSpecification(*best, row.Query.LengthMm)
			}
		}
		results = append(results, result)

		if bar != nil {
			if err := bar.Add(1); err != nil {
				slog.Warn("Failed to update progress bar", "error", err)
			}
		}
	}

	common.LogDebug("Batch identified", common.Fields{
		"rows":       len(rows),
		"identified": countIdentified(results),
	})
	return results, nil
}

func (b *BatchRunner) newProgressBar(total int) *progressbar.ProgressBar {
	if b.progress == nil || total == 0 {
		return nil
	}
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(b.progress),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[cyan][bold]Identifying bolts...[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			if _, err := fmt.Fprintln(b.progress); err != nil {
				slog.Warn("Failed to write newline after progress bar", "error", err)
			}
		}),
	)
}

func countIdentified(results []BatchResult) int {
	n := 0
	for _, r := range results {
		if r.Result.Best() != nil {
			n++
		}
	}
	return n
}

// RenderBatch renders batch results as a table followed by a summary line.
func RenderBatch(results []BatchResult) string {
	rows := make([][]string, 0, len(results))
	failed := 0
	for _, r := range results {
		line := fmt.Sprintf("%d", r.Row.Line)
		switch best := r.Result.Best(); {
		case r.Row.Err != nil:
			failed++
			rows = append(rows, []string{line, ErrorStyle.Render(measurementText(r.Row.Err)), "-", "-"})
		case best == nil:
			rows = append(rows, []string{line, WarningStyle.Render("no match"), "-", fmt.Sprintf("%d", len(r.Result.Matches))})
		default:
			rows = append(rows, []string{
				line,
				r.Specification,
				FormatConfidence(best.CombinedConfidence),
				fmt.Sprintf("%d", len(r.Result.Matches)),
			})
		}
	}

	table := renderTable([]string{"Line", "Identification", "Confidence", "Matches"}, rows)
	summary := fmt.Sprintf("%d rows, %d identified, %d invalid", len(results), countIdentified(results), failed)
	return table + "\n\n" + SubtleStyle.Render(summary)
}

// measurementText strips the sentinel prefix from measurement errors.
func measurementText(err error) string {
	if errors.Is(err, common.ErrInvalidMeasurement) {
		return strings.TrimPrefix(err.Error(), common.ErrInvalidMeasurement.Error()+": ")
	}
	return err.Error()
}

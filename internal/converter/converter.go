// =============================================================================
// HTML Table to CSV Converter - Individual Converter Module
// =============================================================================
//
// This module contains the single-file conversion pipeline: one input file
// in, one CSV next to it out.
//
// CONVERSION PIPELINE:
//   1. Load the first table of the input file
//   2. Detect the date column (first header containing "date")
//   3. Normalize and stable-sort by date, missing dates last
//   4. Strip the synthetic source tag
//   5. Write <input base>.csv
//
// A file with no date column is still converted; its rows keep their source
// order. A file with no table is reported as skipped, not failed, so batch
// runs continue past it.
//
// =============================================================================

// Package converter converts one input file to its sibling CSV.
package converter

import (
	"time"

	"github.com/khopkins218/html-table-csv/internal/config"
	"github.com/khopkins218/html-table-csv/internal/csvwriter"
	"github.com/khopkins218/html-table-csv/internal/loader"
	"github.com/khopkins218/html-table-csv/internal/table"
	"github.com/khopkins218/html-table-csv/pkg/errors"
	"github.com/khopkins218/html-table-csv/pkg/fileutil"
	"github.com/khopkins218/html-table-csv/pkg/logging"
)

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result represents the outcome of converting a single file.
type Result struct {
	// InputFile is the path to the input file that was processed.
	InputFile string

	// OutputFile is the path to the generated CSV file.
	// This is empty if processing failed or was skipped.
	OutputFile string

	// Success indicates whether the conversion completed.
	Success bool

	// Skipped indicates the file held nothing tabular and was passed over.
	// Skipped results are not failures.
	Skipped bool

	// Error contains the error if processing failed or was skipped.
	Error error

	// Stats contains processing statistics.
	Stats Stats
}

// Stats contains statistics about one conversion.
type Stats struct {
	// Rows is the number of data rows written.
	Rows int

	// Columns is the number of columns written.
	Columns int

	// DateColumn is the detected date column, or "" when none exists.
	DateColumn string

	// UnparseableDates counts date values no layout accepted.
	UnparseableDates int

	// Duration is the time taken to process the file.
	Duration time.Duration
}

// =============================================================================
// CONVERTER STRUCTURE
// =============================================================================

// Converter converts input files one at a time.
type Converter struct {
	cfg    *config.Config
	loader *loader.Loader
	dryRun bool
}

// New creates a new Converter instance.
//
// PARAMETERS:
//   - cfg: the application configuration.
//   - dryRun: when true, everything runs except the final write.
//
// RETURNS:
//   - A new Converter instance.
func New(cfg *config.Config, dryRun bool) *Converter {
	return &Converter{
		cfg:    cfg,
		loader: loader.New(cfg),
		dryRun: dryRun,
	}
}

// =============================================================================
// CONVERSION PIPELINE
// =============================================================================

// Convert runs the conversion pipeline for the file at path.
func (c *Converter) Convert(path string) Result {
	startTime := time.Now()
	result := Result{
		InputFile: path,
	}

	// =========================================================================
	// STEP 1: LOAD THE TABLE
	// =========================================================================
	// Parse the first table of the file into a Record Table with the
	// header normalized and every row tagged with its source file.

	logging.Info().Str("file", path).Msg("converting file")

	t, err := c.loader.Load(path)
	if err != nil {
		result.Error = err
		result.Skipped = errors.Is(err, errors.ErrNoTable)
		result.Stats.Duration = time.Since(startTime)
		return result
	}

	// =========================================================================
	// STEP 2: DETECT AND NORMALIZE THE DATE COLUMN
	// =========================================================================
	// The first column whose name contains "date" drives the sort order.
	// Files without one are written in source order.

	dateColumn, hasDate := table.DetectDateColumn(t.Columns, c.cfg.SourceColumn)
	if hasDate {
		result.Stats.DateColumn = dateColumn
		result.Stats.UnparseableDates = table.NormalizeDates(t, dateColumn, c.cfg.DateLayouts)
		if result.Stats.UnparseableDates > 0 {
			logging.Warn().
				Str("file", t.Source).
				Str("column", dateColumn).
				Int("values", result.Stats.UnparseableDates).
				Msg("date values failed to parse and were treated as missing")
		}
		table.SortByDate(t, dateColumn)
	} else {
		logging.Debug().Str("file", t.Source).Msg("no date column detected")
	}

	// =========================================================================
	// STEP 3: STRIP THE SOURCE TAG
	// =========================================================================
	// The provenance column is working state, never output.

	t.DropColumn(c.cfg.SourceColumn)

	// =========================================================================
	// STEP 4: WRITE THE CSV
	// =========================================================================
	// The output lands next to the input with the extension replaced.

	outputFile := fileutil.ReplaceExt(path, ".csv")
	if !c.dryRun {
		if err := csvwriter.WriteFile(outputFile, t, csvwriter.DefaultOptions()); err != nil {
			result.Error = err
			result.Stats.Duration = time.Since(startTime)
			return result
		}
	}

	result.OutputFile = outputFile
	result.Success = true
	result.Stats.Rows = t.RowCount()
	result.Stats.Columns = t.ColumnCount()
	result.Stats.Duration = time.Since(startTime)

	logging.Debug().
		Str("file", t.Source).
		Str("output", outputFile).
		Int("rows", result.Stats.Rows).
		Dur("took", result.Stats.Duration).
		Msg("conversion finished")
	return result
}

// =============================================================================
// HTML Table to CSV Converter - Merge & Reconcile Engine
// =============================================================================
//
// This module merges the tables of every input file into one deduplicated,
// date-sorted table and detects cross-file discrepancies along the way.
//
// MERGE PIPELINE:
//   1. Restrict to the columns common to every file (first-seen order)
//   2. Concatenate all rows in file order
//   3. Validate the key columns and find the date column (both fatal
//      when absent)
//   4. Normalize the date column day-first
//   5. Detect cross-file discrepancies (before dedup, so conflicting
//      duplicates are reported, not collapsed)
//   6. Deduplicate by composite key, keeping the first occurrence
//   7. Stable-sort by date, missing dates last
//   8. Strip the synthetic source tag
//
// The composite key is (date, reference, type). Missing key parts
// participate in identity: two rows missing the same part still collide.
//
// =============================================================================

// Package reconcile merges Record Tables and reconciles them across files.
package reconcile

import (
	"strings"
	"time"

	"github.com/khopkins218/html-table-csv/internal/config"
	"github.com/khopkins218/html-table-csv/internal/table"
	"github.com/khopkins218/html-table-csv/pkg/errors"
	"github.com/khopkins218/html-table-csv/pkg/logging"
)

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// MergeResult is the outcome of merging a set of tables.
type MergeResult struct {
	// Table is the merged, deduplicated, date-sorted table with the
	// source tag already stripped.
	Table *table.Table

	// DateColumn is the detected date column.
	DateColumn string

	// Report holds the cross-file discrepancies.
	Report *Report

	// Stats contains merge statistics.
	Stats MergeStats
}

// MergeStats contains statistics about one merge.
type MergeStats struct {
	// InputTables is the number of tables merged.
	InputTables int

	// TotalRows is the row count before deduplication.
	TotalRows int

	// UniqueRows is the row count after deduplication.
	UniqueRows int

	// DuplicatesRemoved is TotalRows - UniqueRows.
	DuplicatesRemoved int

	// UnparseableDates counts date values no layout accepted.
	UnparseableDates int

	// Duration is the time taken to merge.
	Duration time.Duration
}

// =============================================================================
// ENGINE STRUCTURE
// =============================================================================

// Engine merges tables using the configured key columns.
type Engine struct {
	cfg *config.Config
}

// New creates a new merge Engine.
func New(cfg *config.Config) *Engine {
	return &Engine{cfg: cfg}
}

// =============================================================================
// MERGE PIPELINE
// =============================================================================

// Merge combines the given tables.
//
// PARAMETERS:
//   - tables: the loaded input tables, in input-file order.
//
// RETURNS:
//   - *MergeResult: the merged table, discrepancy report, and stats.
//   - error: errors.ErrNoTables when tables is empty, a
//     MissingColumnError when a key column is absent after intersection,
//     or errors.ErrNoDateColumn when no header contains "date".
func (e *Engine) Merge(tables []*table.Table) (*MergeResult, error) {
	startTime := time.Now()

	if len(tables) == 0 {
		return nil, errors.ErrNoTables
	}

	// =========================================================================
	// STEP 1: INTERSECT COLUMNS
	// =========================================================================
	// Only columns present in every file survive the merge. Order follows
	// the first table so repeated runs produce identical output.

	columns := commonColumns(tables)
	logging.Debug().
		Int("tables", len(tables)).
		Strs("columns", columns).
		Msg("intersected columns")

	// =========================================================================
	// STEP 2: CONCATENATE ROWS
	// =========================================================================
	// File order, then source row order. The source tag travels with each
	// row, so provenance survives the merge.

	merged := &table.Table{Columns: columns}
	for _, t := range tables {
		projected := t.Project(columns)
		merged.Rows = append(merged.Rows, projected.Rows...)
	}
	totalRows := merged.RowCount()

	// =========================================================================
	// STEP 3: VALIDATE KEY AND DATE COLUMNS
	// =========================================================================
	// Both key columns and a date column are mandatory in merge mode. No
	// output has been written yet, so a failure here leaves no partial file.

	for _, col := range e.cfg.KeyColumns() {
		if !merged.HasColumn(col) {
			return nil, errors.NewMissingColumnError(col)
		}
	}

	dateColumn, hasDate := table.DetectDateColumn(merged.Columns, e.cfg.SourceColumn)
	if !hasDate {
		return nil, errors.ErrNoDateColumn
	}

	// =========================================================================
	// STEP 4: NORMALIZE DATES
	// =========================================================================
	// Day-first parsing; unparseable values become missing and sort last.

	unparseable := table.NormalizeDates(merged, dateColumn, e.cfg.DateLayouts)
	if unparseable > 0 {
		logging.Warn().
			Str("column", dateColumn).
			Int("values", unparseable).
			Msg("date values failed to parse and were treated as missing")
	}

	// =========================================================================
	// STEP 5: DETECT DISCREPANCIES
	// =========================================================================
	// Runs on the full concatenation, before deduplication.

	discrepancies := e.detectDiscrepancies(merged, dateColumn)

	// =========================================================================
	// STEP 6: DEDUPLICATE
	// =========================================================================
	// First occurrence of each composite key wins.

	seen := make(map[string]bool, len(merged.Rows))
	unique := merged.Rows[:0]
	for _, row := range merged.Rows {
		k := e.rowKey(row, dateColumn)
		if seen[k] {
			continue
		}
		seen[k] = true
		unique = append(unique, row)
	}
	merged.Rows = unique

	// =========================================================================
	// STEP 7: SORT AND STRIP
	// =========================================================================

	table.SortByDate(merged, dateColumn)
	merged.DropColumn(e.cfg.SourceColumn)

	result := &MergeResult{
		Table:      merged,
		DateColumn: dateColumn,
		Report:     &Report{Discrepancies: discrepancies},
		Stats: MergeStats{
			InputTables:       len(tables),
			TotalRows:         totalRows,
			UniqueRows:        merged.RowCount(),
			DuplicatesRemoved: totalRows - merged.RowCount(),
			UnparseableDates:  unparseable,
			Duration:          time.Since(startTime),
		},
	}

	logging.Debug().
		Int("total_rows", result.Stats.TotalRows).
		Int("unique_rows", result.Stats.UniqueRows).
		Int("discrepancies", len(discrepancies)).
		Dur("took", result.Stats.Duration).
		Msg("merge finished")
	return result, nil
}

// =============================================================================
// HELPERS
// =============================================================================

// rowKey encodes the composite key of a row. The unit separator keeps the
// joined cell keys unambiguous.
func (e *Engine) rowKey(row table.Row, dateColumn string) string {
	parts := []string{
		row.Get(dateColumn).Key(),
		row.Get(e.cfg.ReferenceColumn).Key(),
		row.Get(e.cfg.TypeColumn).Key(),
	}
	return strings.Join(parts, "\x1f")
}

// commonColumns returns the columns present in every table, in the first
// table's order.
func commonColumns(tables []*table.Table) []string {
	var common []string
	for _, col := range tables[0].Columns {
		inAll := true
		for _, t := range tables[1:] {
			if !t.HasColumn(col) {
				inAll = false
				break
			}
		}
		if inAll {
			common = append(common, col)
		}
	}
	return common
}

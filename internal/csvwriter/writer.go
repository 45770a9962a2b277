// =============================================================================
// HTML Table to CSV Converter - CSV Writer Module
// =============================================================================
//
// This module serializes a Record Table to CSV. Rendering rules:
//
//   - The header row is always written, in table column order.
//   - Missing cells render as empty fields.
//   - Numbers keep their parsed scale (100.00 stays 100.00).
//   - Dates render ISO (2006-01-02), with a time-of-day suffix only when
//     one is present.
//   - Columns listed in Options.DropColumns (the synthetic source tag) are
//     left out entirely.
//
// Quoting and escaping follow encoding/csv; fields containing the
// delimiter, quotes, or newlines are quoted automatically.
//
// =============================================================================

// Package csvwriter serializes Record Tables to CSV files.
package csvwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/khopkins218/html-table-csv/internal/table"
)

// =============================================================================
// WRITER OPTIONS
// =============================================================================

// Options contains options for CSV generation.
type Options struct {
	// Delimiter is the field separator.
	// Default: ','
	Delimiter rune

	// DropColumns are columns omitted from the output.
	// Default: none
	DropColumns []string
}

// DefaultOptions returns the default writer options.
func DefaultOptions() Options {
	return Options{
		Delimiter: ',',
	}
}

// =============================================================================
// WRITING FUNCTIONS
// =============================================================================

// Write serializes the table to w.
//
// PARAMETERS:
//   - w: the destination stream.
//   - t: the table to serialize.
//   - opts: rendering options.
//
// RETURNS:
//   - An error if any row fails to write.
func Write(w io.Writer, t *table.Table, opts Options) error {
	if opts.Delimiter == 0 {
		opts.Delimiter = ','
	}
	drop := make(map[string]bool, len(opts.DropColumns))
	for _, c := range opts.DropColumns {
		drop[c] = true
	}

	columns := make([]string, 0, len(t.Columns))
	for _, c := range t.Columns {
		if !drop[c] {
			columns = append(columns, c)
		}
	}

	cw := csv.NewWriter(w)
	cw.Comma = opts.Delimiter

	// Header row first.
	if err := cw.Write(columns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	record := make([]string, len(columns))
	for _, row := range t.Rows {
		for i, col := range columns {
			record[i] = row.Get(col).String()
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteFile serializes the table to the file at path, replacing any
// existing file.
func WriteFile(path string, t *table.Table, opts Options) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	if err := Write(f, t, opts); err != nil {
		return err
	}
	return f.Close()
}

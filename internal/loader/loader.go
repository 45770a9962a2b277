// =============================================================================
// HTML Table to CSV Converter - Table Loader Module
// =============================================================================
//
// This module turns one input file into a Record Table ready for converting
// or merging. It is the only place that knows about the different input
// formats; everything downstream works on table.Table.
//
// PIPELINE:
//   1. Extract the raw grid (.xlsx via the XLSX parser, everything else via
//      the HTML parser).
//   2. Normalize the header: trim names, and when the expected key columns
//      are missing from the header but present in the first data row,
//      promote that row to be the header. Exports saved through some
//      browsers demote the real header this way.
//   3. Disambiguate duplicate column names (.1, .2, ...).
//   4. Infer typed cells; pad short rows, drop cells beyond the header.
//   5. Tag every row with the source file's base name.
//
// =============================================================================

// Package loader reads input files into Record Tables.
package loader

import (
	"path/filepath"
	"strings"

	"github.com/khopkins218/html-table-csv/internal/config"
	"github.com/khopkins218/html-table-csv/internal/htmlparser"
	"github.com/khopkins218/html-table-csv/internal/table"
	"github.com/khopkins218/html-table-csv/internal/xlsxparser"
	"github.com/khopkins218/html-table-csv/pkg/errors"
	"github.com/khopkins218/html-table-csv/pkg/logging"
)

// Loader reads input files into Record Tables using the configured column
// names and missing-value tokens.
type Loader struct {
	cfg     *config.Config
	missing map[string]struct{}
}

// New creates a Loader for the given configuration.
func New(cfg *config.Config) *Loader {
	return &Loader{
		cfg:     cfg,
		missing: cfg.MissingTokenSet(),
	}
}

// Load reads the first table of the file at path.
//
// PARAMETERS:
//   - path: the input file. ".xlsx" reads the first worksheet; any other
//     extension is parsed as HTML.
//
// RETURNS:
//   - *table.Table: the normalized, source-tagged table.
//   - error: a LoadError wrapping errors.ErrNoTable when the file holds
//     nothing tabular, or the underlying read/parse failure.
func (l *Loader) Load(path string) (*table.Table, error) {
	var headers []string
	var rows [][]string

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		doc, err := xlsxparser.ParseFile(path)
		if err != nil {
			return nil, errors.WrapLoad(path, err)
		}
		headers, rows = doc.Headers, doc.Rows
	default:
		doc, err := htmlparser.ParseFile(path)
		if err != nil {
			return nil, errors.WrapLoad(path, err)
		}
		headers, rows = doc.Headers, doc.Rows
	}

	headers, rows = l.normalizeHeader(headers, rows)

	t := l.buildTable(headers, rows)
	t.Source = filepath.Base(path)
	t.AppendColumn(l.cfg.SourceColumn, table.String(t.Source))

	logging.Debug().
		Str("file", t.Source).
		Int("rows", t.RowCount()).
		Int("columns", t.ColumnCount()).
		Msg("loaded table")
	return t, nil
}

// normalizeHeader trims the header names and promotes the first data row to
// be the header when the expected key columns live there instead.
func (l *Loader) normalizeHeader(headers []string, rows [][]string) ([]string, [][]string) {
	trimmed := trimAll(headers)
	if containsBoth(trimmed, l.cfg.ReferenceColumn, l.cfg.TypeColumn) {
		return trimmed, rows
	}
	if len(rows) > 0 {
		first := trimAll(rows[0])
		if containsBoth(first, l.cfg.ReferenceColumn, l.cfg.TypeColumn) {
			return first, rows[1:]
		}
	}
	return trimmed, rows
}

// buildTable infers typed cells for every data row. Short rows are padded
// with missing cells; cells beyond the header width are dropped.
func (l *Loader) buildTable(headers []string, rows [][]string) *table.Table {
	columns := table.UniqueColumns(headers)
	t := &table.Table{
		Columns: columns,
		Rows:    make([]table.Row, 0, len(rows)),
	}
	for _, raw := range rows {
		row := make(table.Row, len(columns))
		for i, col := range columns {
			if i < len(raw) {
				row[col] = table.Infer(raw[i], l.missing)
			} else {
				row[col] = table.Missing()
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// trimAll returns a copy of values with surrounding whitespace removed.
func trimAll(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strings.TrimSpace(v)
	}
	return out
}

// containsBoth reports whether values contains both names exactly.
func containsBoth(values []string, a, b string) bool {
	foundA, foundB := false, false
	for _, v := range values {
		if v == a {
			foundA = true
		}
		if v == b {
			foundB = true
		}
	}
	return foundA && foundB
}

// =============================================================================
// HTML Table to CSV Converter - Record Table Model
// =============================================================================
//
// This module defines the in-memory table shared by the loader, the
// individual converter, and the merge engine: an ordered column list plus
// rows of tagged cells. Rows are keyed by column name so that merging
// across files with different column orders stays straightforward.
//
// =============================================================================

package table

import "fmt"

// Row is a single record, keyed by column name.
type Row map[string]Cell

// Get returns the cell for the column, or a missing cell when the row has
// no entry for it.
func (r Row) Get(column string) Cell {
	if c, ok := r[column]; ok {
		return c
	}
	return Missing()
}

// Table is an ordered set of columns plus the rows holding their values.
// Source records the base name of the file the table came from.
type Table struct {
	Columns []string
	Rows    []Row
	Source  string
}

// HasColumn reports whether the table contains the named column.
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// RowCount returns the number of data rows.
func (t *Table) RowCount() int {
	return len(t.Rows)
}

// ColumnCount returns the number of columns.
func (t *Table) ColumnCount() int {
	return len(t.Columns)
}

// AppendColumn adds a column holding the same cell in every row. Appending
// an existing column name overwrites its values.
func (t *Table) AppendColumn(name string, value Cell) {
	if !t.HasColumn(name) {
		t.Columns = append(t.Columns, name)
	}
	for _, row := range t.Rows {
		row[name] = value
	}
}

// DropColumn removes a column and its values. Unknown names are a no-op.
func (t *Table) DropColumn(name string) {
	kept := t.Columns[:0]
	for _, c := range t.Columns {
		if c != name {
			kept = append(kept, c)
		}
	}
	t.Columns = kept
	for _, row := range t.Rows {
		delete(row, name)
	}
}

// Project returns a new table restricted to the given columns, in the
// given order. Rows share cell values with the original but are fresh maps.
func (t *Table) Project(columns []string) *Table {
	projected := &Table{
		Columns: append([]string(nil), columns...),
		Rows:    make([]Row, 0, len(t.Rows)),
		Source:  t.Source,
	}
	for _, row := range t.Rows {
		newRow := make(Row, len(columns))
		for _, c := range columns {
			newRow[c] = row.Get(c)
		}
		projected.Rows = append(projected.Rows, newRow)
	}
	return projected
}

// UniqueColumns disambiguates duplicate header names with .1, .2, ...
// suffixes in encounter order, leaving the first occurrence untouched.
func UniqueColumns(names []string) []string {
	taken := make(map[string]bool, len(names))
	counts := make(map[string]int, len(names))
	unique := make([]string, 0, len(names))
	for _, name := range names {
		candidate := name
		for taken[candidate] {
			counts[name]++
			candidate = fmt.Sprintf("%s.%d", name, counts[name])
		}
		taken[candidate] = true
		unique = append(unique, candidate)
	}
	return unique
}

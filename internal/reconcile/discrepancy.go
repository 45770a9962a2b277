// =============================================================================
// HTML Table to CSV Converter - Discrepancy Detection
// =============================================================================
//
// Cross-file discrepancy detection runs on the merged rows BEFORE
// deduplication, so conflicting duplicates are reported rather than
// silently collapsed.
//
// RULES:
//   - Rows group by composite key (date, reference, type); missing key
//     parts group together.
//   - Groups confined to a single file are ignored. Re-exports of the same
//     file legitimately repeat rows; only cross-file conflicts matter.
//   - The reference row is the first row of the group's first-seen file.
//     Every row from every OTHER file is compared to it individually, one
//     report per differing pair. Extra rows from the reference file itself
//     are not compared.
//   - Compared columns are the non-key, non-provenance columns in table
//     order. Cell comparison is type-aware: missing equals missing, and a
//     number never equals an equal-looking string.
//
// =============================================================================

package reconcile

import (
	"fmt"

	"github.com/khopkins218/html-table-csv/internal/table"
)

// Key is the composite identity of a transaction row.
type Key struct {
	Date      table.Cell
	Reference table.Cell
	Type      table.Cell
}

// String renders the key the way the report prints it.
func (k Key) String() string {
	return fmt.Sprintf("(%s, %s, %s)", k.Date, k.Reference, k.Type)
}

// FieldDiff is one column where a compared row disagrees with the
// reference row.
type FieldDiff struct {
	Column string
	A      table.Cell
	B      table.Cell
}

// Discrepancy reports one compared row that disagrees with its group's
// reference row in at least one column. FileA is the reference row's file.
type Discrepancy struct {
	Key   Key
	FileA string
	FileB string
	Diffs []FieldDiff
}

// detectDiscrepancies compares rows sharing a composite key across files.
// Rows must already have normalized dates. Group order, row order, and
// column order are all deterministic, so repeated runs print identical
// reports.
func (e *Engine) detectDiscrepancies(t *table.Table, dateColumn string) []Discrepancy {
	// Group row indices by composite key, remembering first-encounter order.
	groups := make(map[string][]int)
	var keyOrder []string
	for i, row := range t.Rows {
		k := e.rowKey(row, dateColumn)
		if _, seen := groups[k]; !seen {
			keyOrder = append(keyOrder, k)
		}
		groups[k] = append(groups[k], i)
	}

	compareColumns := e.compareColumns(t.Columns, dateColumn)

	var discrepancies []Discrepancy
	for _, k := range keyOrder {
		indexes := groups[k]
		if len(indexes) < 2 {
			continue
		}

		// The group spans multiple files only if some row's source differs
		// from the first row's.
		reference := t.Rows[indexes[0]]
		referenceFile := reference.Get(e.cfg.SourceColumn).Str
		crossFile := false
		for _, i := range indexes[1:] {
			if t.Rows[i].Get(e.cfg.SourceColumn).Str != referenceFile {
				crossFile = true
				break
			}
		}
		if !crossFile {
			continue
		}

		key := Key{
			Date:      reference.Get(dateColumn),
			Reference: reference.Get(e.cfg.ReferenceColumn),
			Type:      reference.Get(e.cfg.TypeColumn),
		}

		// Compare every row from every other file against the reference.
		for _, i := range indexes[1:] {
			row := t.Rows[i]
			rowFile := row.Get(e.cfg.SourceColumn).Str
			if rowFile == referenceFile {
				continue
			}

			var diffs []FieldDiff
			for _, col := range compareColumns {
				a := reference.Get(col)
				b := row.Get(col)
				if !a.Equal(b) {
					diffs = append(diffs, FieldDiff{Column: col, A: a, B: b})
				}
			}
			if len(diffs) > 0 {
				discrepancies = append(discrepancies, Discrepancy{
					Key:   key,
					FileA: referenceFile,
					FileB: rowFile,
					Diffs: diffs,
				})
			}
		}
	}
	return discrepancies
}

// compareColumns returns the columns checked for differences: everything
// except the key columns and the provenance tag, in table order.
func (e *Engine) compareColumns(columns []string, dateColumn string) []string {
	skip := map[string]bool{
		dateColumn:            true,
		e.cfg.ReferenceColumn: true,
		e.cfg.TypeColumn:      true,
		e.cfg.SourceColumn:    true,
	}
	var out []string
	for _, col := range columns {
		if !skip[col] {
			out = append(out, col)
		}
	}
	return out
}

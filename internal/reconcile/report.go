// =============================================================================
// HTML Table to CSV Converter - Discrepancy Report
// =============================================================================
//
// Console rendering of the cross-file discrepancy list. Two formats:
//
//   text (default):
//     ⚠️  DISCREPANCIES FOUND (cross-file only)
//
//     Key: (2024-01-05, APP1, DEBIT)
//       File A: january.html
//       File B: feb_extract.html
//         amount: '100' ≠ '150'
//
//     Total discrepancies: 1
//
//   table: the same pairs as a bordered console table, one line per
//   differing column.
//
// An empty report prints "No discrepancies detected ✔" in both formats.
//
// =============================================================================

package reconcile

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
)

// Report holds the discrepancies found by one merge.
type Report struct {
	Discrepancies []Discrepancy
}

// Count returns the number of discrepancy pairs.
func (r *Report) Count() int {
	return len(r.Discrepancies)
}

// Empty reports whether no discrepancies were found.
func (r *Report) Empty() bool {
	return len(r.Discrepancies) == 0
}

// Print renders the report to w in the given format ("text" or "table").
func (r *Report) Print(w io.Writer, format string) error {
	if r.Empty() {
		fmt.Fprintln(w, "No discrepancies detected ✔")
		return nil
	}
	if format == "table" {
		return r.printTable(w)
	}
	r.printText(w)
	return nil
}

// printText renders the block format.
func (r *Report) printText(w io.Writer) {
	fmt.Fprintln(w, "\n⚠️  DISCREPANCIES FOUND (cross-file only)")
	for _, d := range r.Discrepancies {
		fmt.Fprintf(w, "\nKey: %s\n", d.Key)
		fmt.Fprintf(w, "  File A: %s\n", d.FileA)
		fmt.Fprintf(w, "  File B: %s\n", d.FileB)
		for _, diff := range d.Diffs {
			fmt.Fprintf(w, "    %s: '%s' ≠ '%s'\n", diff.Column, diff.A, diff.B)
		}
	}
	fmt.Fprintf(w, "\nTotal discrepancies: %d\n", r.Count())
}

// printTable renders one table line per differing column.
func (r *Report) printTable(w io.Writer) error {
	fmt.Fprintln(w, "\n⚠️  DISCREPANCIES FOUND (cross-file only)")
	fmt.Fprintln(w)

	tbl := tablewriter.NewTable(w)
	tbl.Header("Key", "File A", "File B", "Column", "A", "B")
	for _, d := range r.Discrepancies {
		for _, diff := range d.Diffs {
			if err := tbl.Append(d.Key.String(), d.FileA, d.FileB, diff.Column, diff.A.String(), diff.B.String()); err != nil {
				return err
			}
		}
	}
	if err := tbl.Render(); err != nil {
		return err
	}

	fmt.Fprintf(w, "\nTotal discrepancies: %d\n", r.Count())
	return nil
}

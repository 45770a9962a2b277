// =============================================================================
// HTML Table to CSV Converter - Date Detection & Normalization
// =============================================================================
//
// Date handling has three parts:
//
//   1. DETECTION: the date column is the first column (in table order)
//      whose name contains the substring "date", case-insensitively.
//      13/02/2024 is the 13th of February, never the 2nd of month 13.
//   2. PARSING: day-first. Layouts are tried in order; the first match
//      wins. A value no layout accepts is treated as missing.
//   3. NORMALIZATION: rewrites every cell of the detected column to a date
//      cell (or missing), so sorting and key grouping compare instants
//      instead of text.
//
// =============================================================================

package table

import (
	"sort"
	"strings"
	"time"
)

// DetectDateColumn returns the first column whose name contains "date",
// case-insensitively, skipping any excluded names. The second return is
// false when no column qualifies.
func DetectDateColumn(columns []string, exclude ...string) (string, bool) {
	skip := make(map[string]bool, len(exclude))
	for _, e := range exclude {
		skip[e] = true
	}
	for _, col := range columns {
		if skip[col] {
			continue
		}
		if strings.Contains(strings.ToLower(col), "date") {
			return col, true
		}
	}
	return "", false
}

// ParseDate parses s against the layouts in order. The boolean reports
// whether any layout matched.
func ParseDate(s string, layouts []string) (time.Time, bool) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return time.Time{}, false
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// SortByDate stable-sorts rows ascending by the named date column. Rows
// without a date sort after every dated row; ties keep their relative
// pre-sort order.
func SortByDate(t *Table, column string) {
	sort.SliceStable(t.Rows, func(i, j int) bool {
		a := t.Rows[i].Get(column)
		b := t.Rows[j].Get(column)
		if a.Kind != KindDate {
			return false
		}
		if b.Kind != KindDate {
			return true
		}
		return a.Date.Before(b.Date)
	})
}

// NormalizeDates converts every cell of the named column to a date cell.
// Cells that are already dates are kept, missing stays missing, and values
// no layout parses become missing. It returns the number of values that
// failed to parse.
func NormalizeDates(t *Table, column string, layouts []string) int {
	unparseable := 0
	for _, row := range t.Rows {
		cell := row.Get(column)
		switch cell.Kind {
		case KindDate, KindMissing:
			continue
		default:
			if parsed, ok := ParseDate(cell.String(), layouts); ok {
				row[column] = Date(parsed)
			} else {
				row[column] = Missing()
				unparseable++
			}
		}
	}
	return unparseable
}

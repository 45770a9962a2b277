// =============================================================================
// HTML Table to CSV Converter - Cell Values
// =============================================================================
//
// This module defines the tagged cell value used throughout the converter.
// Every cell is exactly one of four kinds:
//
//   - missing: empty source text or a recognized NA token
//   - number:  arbitrary-precision decimal (thousands separators removed)
//   - date:    produced only by explicit date-column normalization
//   - string:  everything else, trimmed
//
// EQUALITY RULES:
//   Two cells are equal only when they have the same kind and equal values.
//   Numbers compare numerically (100 == 100.00), dates by instant, and
//   missing equals missing. A number never equals a string, even when both
//   render as the same text.
//
// KEY ENCODING:
//   Key() returns a canonical string form (kind prefix + normalized value)
//   so composite row keys can serve as map keys. Numeric keys trim trailing
//   zeros, so 100 and 100.00 collide as intended.
//
// =============================================================================

package table

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// CELL KINDS
// =============================================================================

// Kind identifies which variant a Cell holds.
type Kind int

const (
	// KindMissing is an absent value. The zero Cell is missing.
	KindMissing Kind = iota

	// KindString is trimmed source text.
	KindString

	// KindNumber is a decimal value.
	KindNumber

	// KindDate is a normalized date value.
	KindDate
)

// String returns the kind name for diagnostics.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindDate:
		return "date"
	default:
		return "missing"
	}
}

// =============================================================================
// CELL
// =============================================================================

// Cell is a tagged table value. Exactly one of the value fields is
// meaningful, selected by Kind.
type Cell struct {
	Kind Kind
	Str  string
	Num  decimal.Decimal
	Date time.Time
}

// Missing returns a missing cell.
func Missing() Cell {
	return Cell{Kind: KindMissing}
}

// String returns a string cell.
func String(s string) Cell {
	return Cell{Kind: KindString, Str: s}
}

// Number returns a number cell.
func Number(d decimal.Decimal) Cell {
	return Cell{Kind: KindNumber, Num: d}
}

// Date returns a date cell.
func Date(t time.Time) Cell {
	return Cell{Kind: KindDate, Date: t}
}

// IsMissing reports whether the cell holds no value.
func (c Cell) IsMissing() bool {
	return c.Kind == KindMissing
}

// numberPattern matches plain or comma-grouped decimal text, with an
// optional sign and exponent. Matching text still has to survive decimal
// parsing after the commas are removed.
var numberPattern = regexp.MustCompile(`^[+-]?(\d{1,3}(,\d{3})+|\d+)(\.\d+)?([eE][+-]?\d+)?$|^[+-]?\.\d+([eE][+-]?\d+)?$`)

// Infer converts raw source text into a Cell.
//
// PARAMETERS:
//   - raw: the cell text as extracted from the input.
//   - missingTokens: lowercased token set treated as missing (in addition
//     to empty text). May be nil.
//
// Dates are never inferred here; date cells only come from normalizing a
// detected date column.
func Infer(raw string, missingTokens map[string]struct{}) Cell {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Missing()
	}
	if missingTokens != nil {
		if _, ok := missingTokens[strings.ToLower(trimmed)]; ok {
			return Missing()
		}
	}
	if numberPattern.MatchString(trimmed) {
		// Thousands separators are presentation, not value.
		plain := strings.ReplaceAll(trimmed, ",", "")
		if d, err := decimal.NewFromString(plain); err == nil {
			return Number(d)
		}
	}
	return String(trimmed)
}

// Equal reports type-aware equality between two cells.
func (c Cell) Equal(other Cell) bool {
	if c.Kind != other.Kind {
		return false
	}
	switch c.Kind {
	case KindMissing:
		return true
	case KindString:
		return c.Str == other.Str
	case KindNumber:
		return c.Num.Equal(other.Num)
	case KindDate:
		return c.Date.Equal(other.Date)
	default:
		return false
	}
}

// String renders the cell for output and reports. Missing renders empty,
// numbers keep their parsed scale, dates render ISO with the time-of-day
// suffix only when one is present.
func (c Cell) String() string {
	switch c.Kind {
	case KindString:
		return c.Str
	case KindNumber:
		// decimal.String trims trailing zeros; re-apply the parsed scale
		// so 100.00 stays 100.00.
		if exp := c.Num.Exponent(); exp < 0 {
			return c.Num.StringFixed(-exp)
		}
		return c.Num.String()
	case KindDate:
		return formatDate(c.Date)
	default:
		return ""
	}
}

// Key returns the canonical map-key encoding of the cell. decimal.String
// trims trailing zeros, so 100 and 100.00 produce the same key.
func (c Cell) Key() string {
	switch c.Kind {
	case KindString:
		return "s:" + c.Str
	case KindNumber:
		return "n:" + c.Num.String()
	case KindDate:
		return "d:" + c.Date.Format(time.RFC3339)
	default:
		return "m:"
	}
}

// formatDate renders a date cell.
func formatDate(t time.Time) string {
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
		return t.Format("2006-01-02")
	}
	return t.Format("2006-01-02 15:04:05")
}

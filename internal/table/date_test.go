package table

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLayouts = []string{
	"2/1/2006",
	"2-1-2006",
	"2.1.2006",
	"2/1/06",
	"2006-01-02",
	"2/1/2006 15:04",
	"2/1/2006 15:04:05",
	"2006-01-02 15:04:05",
}

func TestDetectDateColumn(t *testing.T) {
	col, ok := DetectDateColumn([]string{"Application Reference", "Transaction Date", "Amount"})
	require.True(t, ok)
	assert.Equal(t, "Transaction Date", col)

	col, ok = DetectDateColumn([]string{"Amount", "VALUE DATES"})
	require.True(t, ok, "matching is case-insensitive")
	assert.Equal(t, "VALUE DATES", col)

	// First match wins.
	col, _ = DetectDateColumn([]string{"Posting Date", "Value Date"})
	assert.Equal(t, "Posting Date", col)

	_, ok = DetectDateColumn([]string{"Amount", "Description"})
	assert.False(t, ok)
}

func TestDetectDateColumnExcludes(t *testing.T) {
	col, ok := DetectDateColumn([]string{"Update Date", "Value Date"}, "Update Date")
	require.True(t, ok)
	assert.Equal(t, "Value Date", col)

	_, ok = DetectDateColumn([]string{"Update Date"}, "Update Date")
	assert.False(t, ok)
}

func TestParseDateDayFirst(t *testing.T) {
	tests := []struct {
		raw  string
		want time.Time
	}{
		{"13/02/2024", time.Date(2024, 2, 13, 0, 0, 0, 0, time.UTC)},
		{"05/01/2024", time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)},
		{"5/1/2024", time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)},
		{"31-12-2023", time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)},
		{"1.2.2024", time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)},
		{"31/12/23", time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)},
		{"2024-01-05", time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)},
		{"5/1/2024 14:30", time.Date(2024, 1, 5, 14, 30, 0, 0, time.UTC)},
		{" 05/01/2024 ", time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		got, ok := ParseDate(tt.raw, testLayouts)
		require.True(t, ok, "%q should parse", tt.raw)
		assert.True(t, tt.want.Equal(got), "%q parsed to %v, want %v", tt.raw, got, tt.want)
	}
}

func TestParseDateRejects(t *testing.T) {
	for _, raw := range []string{"", "  ", "garbage", "02/13/2024", "32/01/2024", "2024/01/05"} {
		_, ok := ParseDate(raw, testLayouts)
		assert.False(t, ok, "%q should not parse", raw)
	}
}

func TestNormalizeDates(t *testing.T) {
	tbl := &Table{
		Columns: []string{"Transaction Date", "Amount"},
		Rows: []Row{
			{"Transaction Date": String("05/01/2024"), "Amount": Infer("100", nil)},
			{"Transaction Date": String("not a date"), "Amount": Infer("200", nil)},
			{"Transaction Date": Missing(), "Amount": Infer("300", nil)},
			{"Transaction Date": Date(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)), "Amount": Infer("400", nil)},
		},
	}

	failed := NormalizeDates(tbl, "Transaction Date", testLayouts)

	assert.Equal(t, 1, failed)
	assert.Equal(t, KindDate, tbl.Rows[0].Get("Transaction Date").Kind)
	assert.True(t, tbl.Rows[1].Get("Transaction Date").IsMissing(), "unparseable becomes missing")
	assert.True(t, tbl.Rows[2].Get("Transaction Date").IsMissing(), "missing stays missing")
	assert.Equal(t, KindDate, tbl.Rows[3].Get("Transaction Date").Kind, "existing dates kept")
}

func TestSortByDateMissingLast(t *testing.T) {
	jan1 := Date(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	jan2 := Date(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC))
	tbl := &Table{
		Columns: []string{"Date", "Ref"},
		Rows: []Row{
			{"Date": jan2, "Ref": String("later")},
			{"Date": Missing(), "Ref": String("undated")},
			{"Date": jan1, "Ref": String("earlier")},
		},
	}

	SortByDate(tbl, "Date")

	refs := make([]string, 0, len(tbl.Rows))
	for _, row := range tbl.Rows {
		refs = append(refs, row.Get("Ref").Str)
	}
	assert.Equal(t, []string{"earlier", "later", "undated"}, refs)
}

func TestSortByDateIsStable(t *testing.T) {
	day := Date(time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC))
	tbl := &Table{
		Columns: []string{"Date", "Ref"},
		Rows: []Row{
			{"Date": day, "Ref": String("first")},
			{"Date": day, "Ref": String("second")},
			{"Date": Missing(), "Ref": String("undated-first")},
			{"Date": day, "Ref": String("third")},
			{"Date": Missing(), "Ref": String("undated-second")},
		},
	}

	SortByDate(tbl, "Date")

	refs := make([]string, 0, len(tbl.Rows))
	for _, row := range tbl.Rows {
		refs = append(refs, row.Get("Ref").Str)
	}
	assert.Equal(t,
		[]string{"first", "second", "third", "undated-first", "undated-second"},
		refs, "equal keys and undated rows keep their original relative order")
}

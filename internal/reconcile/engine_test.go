package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khopkins218/html-table-csv/internal/config"
	"github.com/khopkins218/html-table-csv/internal/table"
	"github.com/khopkins218/html-table-csv/pkg/errors"
)

var testColumns = []string{"Transaction Date", "Application Reference", "Transaction Type", "Amount"}

// buildTable constructs a source-tagged table from raw cell text, the way
// the loader would deliver it.
func buildTable(source string, columns []string, rows ...[]string) *table.Table {
	cfg := config.Default()
	missing := cfg.MissingTokenSet()
	tbl := &table.Table{
		Columns: append([]string(nil), columns...),
		Source:  source,
	}
	for _, raw := range rows {
		row := make(table.Row, len(columns))
		for i, col := range columns {
			if i < len(raw) {
				row[col] = table.Infer(raw[i], missing)
			} else {
				row[col] = table.Missing()
			}
		}
		tbl.Rows = append(tbl.Rows, row)
	}
	tbl.AppendColumn(cfg.SourceColumn, table.String(source))
	return tbl
}

func merge(t *testing.T, tables ...*table.Table) *MergeResult {
	t.Helper()
	result, err := New(config.Default()).Merge(tables)
	require.NoError(t, err)
	return result
}

func TestMergeNoTables(t *testing.T) {
	_, err := New(config.Default()).Merge(nil)
	assert.ErrorIs(t, err, errors.ErrNoTables)
}

func TestMergeMissingKeyColumn(t *testing.T) {
	noType := buildTable("jan.html",
		[]string{"Transaction Date", "Application Reference", "Amount"},
		[]string{"05/01/2024", "APP1", "100"},
	)

	_, err := New(config.Default()).Merge([]*table.Table{noType})

	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrMissingColumn))
	assert.Equal(t, "'Transaction Type' column not found", err.Error())

	var mce *errors.MissingColumnError
	require.ErrorAs(t, err, &mce)
	assert.Equal(t, "Transaction Type", mce.Column)
}

func TestMergeKeyColumnLostToIntersection(t *testing.T) {
	// Each file alone has the key columns, but one lacks the reference
	// column, so the intersection loses it.
	withRef := buildTable("jan.html", testColumns, []string{"05/01/2024", "APP1", "DEBIT", "100"})
	withoutRef := buildTable("feb.html",
		[]string{"Transaction Date", "Transaction Type", "Amount"},
		[]string{"06/01/2024", "CREDIT", "200"},
	)

	_, err := New(config.Default()).Merge([]*table.Table{withRef, withoutRef})

	require.Error(t, err)
	assert.Equal(t, "'Application Reference' column not found", err.Error())
}

func TestMergeNoDateColumn(t *testing.T) {
	undated := buildTable("jan.html",
		[]string{"Application Reference", "Transaction Type", "Amount"},
		[]string{"APP1", "DEBIT", "100"},
	)

	_, err := New(config.Default()).Merge([]*table.Table{undated})
	assert.ErrorIs(t, err, errors.ErrNoDateColumn)
}

func TestMergeColumnIntersection(t *testing.T) {
	// Notes only exists in the first file; column order follows the first
	// file, not the second.
	first := buildTable("jan.html",
		[]string{"Transaction Date", "Application Reference", "Transaction Type", "Amount", "Notes"},
		[]string{"05/01/2024", "APP1", "DEBIT", "100", "ok"},
	)
	second := buildTable("feb.html",
		[]string{"Transaction Type", "Transaction Date", "Application Reference", "Amount"},
		[]string{"CREDIT", "06/01/2024", "APP2", "200"},
	)

	result := merge(t, first, second)

	assert.Equal(t, testColumns, result.Table.Columns,
		"intersection in first-file order, source tag stripped")
	assert.Equal(t, 2, result.Table.RowCount())
}

func TestMergeDetectsAmountDiscrepancy(t *testing.T) {
	// The same transaction appears in both files with different amounts and
	// differently written dates. One discrepancy; the first file's amount
	// survives deduplication.
	fileA := buildTable("january.html", testColumns,
		[]string{"2024-01-05", "APP1", "DEBIT", "100"},
	)
	fileB := buildTable("feb_extract.html", testColumns,
		[]string{"05/01/2024", "APP1", "DEBIT", "150"},
	)

	result := merge(t, fileA, fileB)

	require.Equal(t, 1, result.Report.Count())
	d := result.Report.Discrepancies[0]
	assert.Equal(t, "(2024-01-05, APP1, DEBIT)", d.Key.String())
	assert.Equal(t, "january.html", d.FileA)
	assert.Equal(t, "feb_extract.html", d.FileB)
	require.Len(t, d.Diffs, 1)
	assert.Equal(t, "Amount", d.Diffs[0].Column)
	assert.Equal(t, "100", d.Diffs[0].A.String())
	assert.Equal(t, "150", d.Diffs[0].B.String())

	assert.Equal(t, 2, result.Stats.TotalRows)
	assert.Equal(t, 1, result.Stats.UniqueRows)
	assert.Equal(t, 1, result.Stats.DuplicatesRemoved)
	require.Equal(t, 1, result.Table.RowCount())
	assert.Equal(t, "100", result.Table.Rows[0].Get("Amount").String(),
		"first occurrence wins")
}

func TestMergeIdenticalRowsAcrossFiles(t *testing.T) {
	fileA := buildTable("jan.html", testColumns, []string{"05/01/2024", "APP1", "DEBIT", "100"})
	fileB := buildTable("feb.html", testColumns, []string{"05/01/2024", "APP1", "DEBIT", "100"})

	result := merge(t, fileA, fileB)

	assert.True(t, result.Report.Empty(), "identical duplicates are not discrepancies")
	assert.Equal(t, 1, result.Table.RowCount())
}

func TestMergeSingleFileDuplicatesIgnored(t *testing.T) {
	// Conflicting duplicates inside one file never reach the report.
	fileA := buildTable("jan.html", testColumns,
		[]string{"05/01/2024", "APP1", "DEBIT", "100"},
		[]string{"05/01/2024", "APP1", "DEBIT", "999"},
	)

	result := merge(t, fileA)

	assert.True(t, result.Report.Empty())
	require.Equal(t, 1, result.Table.RowCount())
	assert.Equal(t, "100", result.Table.Rows[0].Get("Amount").String())
}

func TestMergeReferenceRowIsFirstOfFirstFile(t *testing.T) {
	// Extra rows from the reference file are not compared: file B matches
	// file A's first row, so A's own conflicting duplicate stays silent.
	fileA := buildTable("jan.html", testColumns,
		[]string{"05/01/2024", "APP1", "DEBIT", "100"},
		[]string{"05/01/2024", "APP1", "DEBIT", "999"},
	)
	fileB := buildTable("feb.html", testColumns,
		[]string{"05/01/2024", "APP1", "DEBIT", "100"},
	)

	result := merge(t, fileA, fileB)

	assert.True(t, result.Report.Empty())
	require.Equal(t, 1, result.Table.RowCount())
	assert.Equal(t, "100", result.Table.Rows[0].Get("Amount").String())
}

func TestMergeComparesEveryOtherFileRow(t *testing.T) {
	// File B carries the same key twice; each B row is compared to the
	// reference individually and only the differing one is reported.
	fileA := buildTable("jan.html", testColumns,
		[]string{"05/01/2024", "APP1", "DEBIT", "100"},
	)
	fileB := buildTable("feb.html", testColumns,
		[]string{"05/01/2024", "APP1", "DEBIT", "150"},
		[]string{"05/01/2024", "APP1", "DEBIT", "100"},
	)

	result := merge(t, fileA, fileB)

	require.Equal(t, 1, result.Report.Count())
	assert.Equal(t, "150", result.Report.Discrepancies[0].Diffs[0].B.String())
}

func TestMergeGroupOrderIsFirstEncounter(t *testing.T) {
	fileA := buildTable("jan.html", testColumns,
		[]string{"06/01/2024", "APP2", "DEBIT", "10"},
		[]string{"05/01/2024", "APP1", "DEBIT", "20"},
	)
	fileB := buildTable("feb.html", testColumns,
		[]string{"05/01/2024", "APP1", "DEBIT", "25"},
		[]string{"06/01/2024", "APP2", "DEBIT", "15"},
	)

	result := merge(t, fileA, fileB)

	require.Equal(t, 2, result.Report.Count())
	assert.Equal(t, "APP2", result.Report.Discrepancies[0].Key.Reference.Str,
		"report follows first-encounter order, not file B's order")
	assert.Equal(t, "APP1", result.Report.Discrepancies[1].Key.Reference.Str)
}

func TestMergeTypeMismatchIsDiscrepancy(t *testing.T) {
	// Same rendering, different types: the text "100" and the number 100
	// disagree even though the report prints them identically.
	fileA := buildTable("jan.html", testColumns, []string{"05/01/2024", "APP1", "DEBIT", "100"})
	fileA.Rows[0]["Amount"] = table.String("100")
	fileB := buildTable("feb.html", testColumns, []string{"05/01/2024", "APP1", "DEBIT", "100"})

	result := merge(t, fileA, fileB)

	require.Equal(t, 1, result.Report.Count())
	diff := result.Report.Discrepancies[0].Diffs[0]
	assert.Equal(t, "Amount", diff.Column)
	assert.Equal(t, diff.A.String(), diff.B.String(), "the forms are indistinguishable in print")
}

func TestMergeMissingEqualsMissing(t *testing.T) {
	columns := append(append([]string(nil), testColumns...), "Notes")
	fileA := buildTable("jan.html", columns, []string{"05/01/2024", "APP1", "DEBIT", "100", "N/A"})
	fileB := buildTable("feb.html", columns, []string{"05/01/2024", "APP1", "DEBIT", "100", ""})

	result := merge(t, fileA, fileB)

	assert.True(t, result.Report.Empty(), "two missing values never differ")
}

func TestMergeSortsByDateAcrossFiles(t *testing.T) {
	fileA := buildTable("jan.html", testColumns,
		[]string{"01/03/2024", "APP1", "DEBIT", "10"},
		[]string{"05/01/2024", "APP2", "DEBIT", "20"},
	)
	fileB := buildTable("feb.html", testColumns,
		[]string{"13/02/2024", "APP3", "DEBIT", "30"},
		[]string{"", "APP4", "DEBIT", "40"},
	)

	result := merge(t, fileA, fileB)

	refs := make([]string, 0, result.Table.RowCount())
	for _, row := range result.Table.Rows {
		refs = append(refs, row.Get("Application Reference").Str)
	}
	assert.Equal(t, []string{"APP2", "APP3", "APP1", "APP4"}, refs,
		"ascending by date, missing dates last")
}

func TestMergeUnparseableDates(t *testing.T) {
	fileA := buildTable("jan.html", testColumns,
		[]string{"05/01/2024", "APP1", "DEBIT", "100"},
		[]string{"02/13/2024", "APP2", "DEBIT", "200"},
	)

	result := merge(t, fileA)

	assert.Equal(t, "Transaction Date", result.DateColumn)
	assert.Equal(t, 1, result.Stats.UnparseableDates, "month 13 cannot be day-first")
	require.Equal(t, 2, result.Table.RowCount())
	assert.Equal(t, "APP2", result.Table.Rows[1].Get("Application Reference").Str,
		"the unparseable date sorts last as missing")
	assert.True(t, result.Table.Rows[1].Get("Transaction Date").IsMissing())
}

func TestMergeStats(t *testing.T) {
	fileA := buildTable("jan.html", testColumns,
		[]string{"05/01/2024", "APP1", "DEBIT", "100"},
		[]string{"06/01/2024", "APP2", "CREDIT", "200"},
	)
	fileB := buildTable("feb.html", testColumns,
		[]string{"05/01/2024", "APP1", "DEBIT", "100"},
	)

	result := merge(t, fileA, fileB)

	assert.Equal(t, 2, result.Stats.InputTables)
	assert.Equal(t, 3, result.Stats.TotalRows)
	assert.Equal(t, 2, result.Stats.UniqueRows)
	assert.Equal(t, 1, result.Stats.DuplicatesRemoved)
	assert.Equal(t, 0, result.Stats.UnparseableDates)
}

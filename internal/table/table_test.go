package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTable() *Table {
	return &Table{
		Columns: []string{"Application Reference", "Amount"},
		Rows: []Row{
			{"Application Reference": String("APP1"), "Amount": Infer("100", nil)},
			{"Application Reference": String("APP2"), "Amount": Infer("250.50", nil)},
		},
		Source: "jan.html",
	}
}

func TestRowGetFallsBackToMissing(t *testing.T) {
	row := Row{"Amount": Infer("100", nil)}
	assert.Equal(t, KindNumber, row.Get("Amount").Kind)
	assert.True(t, row.Get("Notes").IsMissing())
}

func TestHasColumn(t *testing.T) {
	tbl := sampleTable()
	assert.True(t, tbl.HasColumn("Amount"))
	assert.False(t, tbl.HasColumn("amount"), "column lookup is case sensitive")
	assert.False(t, tbl.HasColumn("Notes"))
}

func TestAppendColumn(t *testing.T) {
	tbl := sampleTable()
	tbl.AppendColumn("_source_file", String("jan.html"))

	require.Equal(t, []string{"Application Reference", "Amount", "_source_file"}, tbl.Columns)
	for _, row := range tbl.Rows {
		assert.Equal(t, "jan.html", row.Get("_source_file").Str)
	}

	// Appending again overwrites values without duplicating the column.
	tbl.AppendColumn("_source_file", String("feb.html"))
	require.Equal(t, 3, tbl.ColumnCount())
	assert.Equal(t, "feb.html", tbl.Rows[0].Get("_source_file").Str)
}

func TestDropColumn(t *testing.T) {
	tbl := sampleTable()
	tbl.AppendColumn("_source_file", String("jan.html"))
	tbl.DropColumn("_source_file")

	assert.Equal(t, []string{"Application Reference", "Amount"}, tbl.Columns)
	for _, row := range tbl.Rows {
		_, ok := row["_source_file"]
		assert.False(t, ok, "dropped column removed from row maps")
	}

	// Dropping a column that does not exist is a no-op.
	tbl.DropColumn("Notes")
	assert.Equal(t, 2, tbl.ColumnCount())
}

func TestProject(t *testing.T) {
	tbl := sampleTable()
	proj := tbl.Project([]string{"Amount", "Notes"})

	require.Equal(t, []string{"Amount", "Notes"}, proj.Columns)
	require.Equal(t, 2, proj.RowCount())
	assert.Equal(t, "100", proj.Rows[0].Get("Amount").String())
	assert.True(t, proj.Rows[0].Get("Notes").IsMissing(), "absent columns project as missing")
	assert.Equal(t, "jan.html", proj.Source)

	// Projection copies rows; mutating the projection leaves the original intact.
	proj.Rows[0]["Amount"] = String("tampered")
	assert.Equal(t, "100", tbl.Rows[0].Get("Amount").String())
}

func TestUniqueColumns(t *testing.T) {
	assert.Equal(t,
		[]string{"Amount", "Date", "Amount.1", "Amount.2"},
		UniqueColumns([]string{"Amount", "Date", "Amount", "Amount"}))

	assert.Equal(t,
		[]string{"A", "B", "C"},
		UniqueColumns([]string{"A", "B", "C"}), "unique names pass through unchanged")
}

func TestUniqueColumnsAvoidsExistingSuffix(t *testing.T) {
	// A literal "Amount.1" header must not collide with a generated suffix.
	got := UniqueColumns([]string{"Amount", "Amount.1", "Amount"})
	assert.Len(t, got, 3)
	seen := map[string]bool{}
	for _, name := range got {
		assert.False(t, seen[name], "duplicate name %q in %v", name, got)
		seen[name] = true
	}
}

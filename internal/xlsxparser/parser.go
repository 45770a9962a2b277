// =============================================================================
// HTML Table to CSV Converter - XLSX Parser Module
// =============================================================================
//
// This module reads the first worksheet of an XLSX workbook as a raw text
// grid, for exports that arrive as spreadsheets instead of HTML pages. The
// first non-empty row is the header and everything below it is data, which
// matches how the HTML parser treats a table without <th> cells.
//
// Note that excelize omits trailing empty cells from a row; the loader pads
// short rows back out to the header width.
//
// =============================================================================

// Package xlsxparser reads the first worksheet of an XLSX workbook.
package xlsxparser

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/khopkins218/html-table-csv/pkg/errors"
)

// Document is the raw grid extracted from one workbook.
type Document struct {
	// Headers are the cell texts of the header row.
	Headers []string

	// Rows are the cell texts of the data rows, in sheet order.
	Rows [][]string

	// SourceFile is the path the workbook was read from.
	SourceFile string
}

// ParseFile reads the first worksheet of the XLSX file at path.
//
// PARAMETERS:
//   - path: the workbook to read.
//
// RETURNS:
//   - *Document: the extracted grid.
//   - error: wraps errors.ErrNoTable when the workbook has no sheet or no
//     non-empty rows.
func ParseFile(path string) (*Document, error) {
	// Open the XLSX file.
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	// Get the first sheet name.
	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, errors.ErrNoTable
	}

	// Get all rows from the sheet.
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	// Drop rows with no content at all.
	var grid [][]string
	for _, row := range rows {
		if isRowEmpty(row) {
			continue
		}
		grid = append(grid, row)
	}
	if len(grid) == 0 {
		return nil, errors.ErrNoTable
	}

	return &Document{
		Headers:    grid[0],
		Rows:       grid[1:],
		SourceFile: path,
	}, nil
}

// isRowEmpty reports whether every cell in the row is empty.
func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if cell != "" {
			return false
		}
	}
	return true
}

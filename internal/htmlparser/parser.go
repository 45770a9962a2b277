// =============================================================================
// HTML Table to CSV Converter - HTML Parser Module
// =============================================================================
//
// This module extracts the first <table> element from an HTML document as a
// raw text grid. Only the first table is read; bank export pages put the
// transaction listing first and any later tables are navigation or footer
// furniture.
//
// HEADER SELECTION:
//   - If the table has a row made entirely of <th> cells, the first such
//     row is the header and every other row is data.
//   - Otherwise the first row is the header.
//
// Whitespace around cell text is trimmed here; all further interpretation
// (type inference, header promotion, source tagging) happens in the loader.
//
// =============================================================================

// Package htmlparser reads the first HTML table of a document.
package htmlparser

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/khopkins218/html-table-csv/pkg/errors"
)

// Document is the raw grid extracted from one HTML file.
type Document struct {
	// Headers are the trimmed cell texts of the header row.
	Headers []string

	// Rows are the trimmed cell texts of the data rows, in document order.
	Rows [][]string

	// SourceFile is the path the document was read from, when known.
	SourceFile string
}

// ParseFile reads and parses the first table of the HTML file at path.
//
// PARAMETERS:
//   - path: the HTML file to read.
//
// RETURNS:
//   - *Document: the extracted grid.
//   - error: wraps errors.ErrNoTable when the document has no <table>.
func ParseFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open HTML file: %w", err)
	}
	defer f.Close()

	doc, err := ParseReader(f)
	if err != nil {
		return nil, err
	}
	doc.SourceFile = path
	return doc, nil
}

// ParseReader parses the first table from the HTML read off r.
func ParseReader(r io.Reader) (*Document, error) {
	page, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	tbl := page.Find("table").First()
	if tbl.Length() == 0 {
		return nil, errors.ErrNoTable
	}

	// Collect every row of the first table in document order, remembering
	// which rows are all-<th>.
	var grid [][]string
	var headerRows []bool
	tbl.Find("tr").Each(func(_ int, row *goquery.Selection) {
		var cells []string
		thCount := 0
		row.Find("th, td").Each(func(_ int, cell *goquery.Selection) {
			cells = append(cells, strings.TrimSpace(cell.Text()))
			if goquery.NodeName(cell) == "th" {
				thCount++
			}
		})
		if len(cells) == 0 {
			return
		}
		grid = append(grid, cells)
		headerRows = append(headerRows, thCount == len(cells))
	})

	if len(grid) == 0 {
		return nil, errors.ErrNoTable
	}

	headerIdx := 0
	for i, isHeader := range headerRows {
		if isHeader {
			headerIdx = i
			break
		}
	}

	doc := &Document{Headers: grid[headerIdx]}
	for i, row := range grid {
		if i == headerIdx {
			continue
		}
		doc.Rows = append(doc.Rows, row)
	}
	return doc, nil
}

// Package checking reads and cleans the checking-account spreadsheet export.
package checking

import (
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"
)

// DefaultHeaderRow is the 0-based row holding the column names; the export
// starts with two preamble rows.
const DefaultHeaderRow = 2

// Cell is a spreadsheet cell as displayed (Text) and as stored (Raw).
// Numeric is set for cells holding a number, including dates.
type Cell struct {
	Text    string
	Raw     string
	Numeric bool
}

// Empty reports whether the cell holds nothing.
func (c Cell) Empty() bool {
	return c.Text == "" && c.Raw == ""
}

// Sheet is the first worksheet of a workbook: the header names and every row
// below the header, each padded to len(Columns).
type Sheet struct {
	Columns []string
	Rows    [][]Cell
}

// Read loads the first worksheet of an xlsx workbook, taking the column names
// from headerRow.
func Read(r io.Reader, headerRow int) (*Sheet, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets found in workbook")
	}
	name := sheets[0]

	text, err := f.GetRows(name)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", name, err)
	}
	raw, err := f.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", name, err)
	}

	if len(text) <= headerRow {
		return nil, fmt.Errorf("sheet %q has %d rows, expected header at row %d", name, len(text), headerRow+1)
	}

	header := text[headerRow]
	width := len(header)
	for _, row := range text[headerRow+1:] {
		width = max(width, len(row))
	}

	columns := make([]string, width)
	for i := range columns {
		if v := at(header, i); v != "" {
			columns[i] = v
			continue
		}
		columns[i] = fmt.Sprintf("Unnamed: %d", i)
	}

	var rows [][]Cell
	for i := headerRow + 1; i < len(text); i++ {
		var rawRow []string
		if i < len(raw) {
			rawRow = raw[i]
		}

		cells := make([]Cell, width)
		for j := range cells {
			c := Cell{Text: at(text[i], j), Raw: at(rawRow, j)}
			if c.Raw != "" {
				c.Numeric, err = numericCell(f, name, j, i, c.Raw)
				if err != nil {
					return nil, err
				}
			}
			cells[j] = c
		}
		rows = append(rows, cells)
	}

	return &Sheet{Columns: columns, Rows: rows}, nil
}

// numericCell reports whether the cell at 0-based (col, row) stores a number
// rather than text that happens to look like one.
func numericCell(f *excelize.File, sheet string, col, row int, raw string) (bool, error) {
	if _, err := strconv.ParseFloat(raw, 64); err != nil {
		return false, nil
	}

	ref, err := excelize.CoordinatesToCellName(col+1, row+1)
	if err != nil {
		return false, fmt.Errorf("cell reference: %w", err)
	}
	typ, err := f.GetCellType(sheet, ref)
	if err != nil {
		return false, fmt.Errorf("cell type of %s: %w", ref, err)
	}

	switch typ {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString, excelize.CellTypeFormula:
		return false, nil
	default:
		return true, nil
	}
}

func at(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

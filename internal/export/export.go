// Package export writes converted statements as xlsx workbooks.
package export

import (
	"fmt"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"github.com/extrato-dev/extrato/internal/checking"
	"github.com/extrato-dev/extrato/internal/ledger"
)

// InvestmentHeader is the column row of every fund sheet.
var InvestmentHeader = []string{
	"Fundo",
	"CNPJ",
	"Data",
	"Histórico",
	"Valor",
	"Quantidade Cotas",
	"Valor Cota",
	"Saldo Cotas",
}

// EmptySheet names the only sheet of an investment workbook without movements.
const EmptySheet = "Extrato"

const (
	defaultSheet = "Sheet1"
	minColWidth  = 12.0
	maxColWidth  = 60.0
)

// WriteInvestments writes one sheet per fund group to path. With no groups the
// workbook gets a single sheet holding only the header.
func WriteInvestments(path string, groups []ledger.FundGroup) error {
	f := excelize.NewFile()
	defer f.Close()

	if len(groups) == 0 {
		if err := f.SetSheetName(defaultSheet, EmptySheet); err != nil {
			return fmt.Errorf("naming sheet: %w", err)
		}
		if err := writeSheet(f, EmptySheet, InvestmentHeader, nil); err != nil {
			return err
		}
		return save(f, path)
	}

	for i, g := range groups {
		if i == 0 {
			if err := f.SetSheetName(defaultSheet, g.Sheet); err != nil {
				return fmt.Errorf("naming sheet %q: %w", g.Sheet, err)
			}
		} else if _, err := f.NewSheet(g.Sheet); err != nil {
			return fmt.Errorf("creating sheet %q: %w", g.Sheet, err)
		}

		rows := make([][]any, len(g.Records))
		for j, rec := range g.Records {
			rows[j] = toAny(rec.Row())
		}
		if err := writeSheet(f, g.Sheet, InvestmentHeader, rows); err != nil {
			return err
		}
	}
	f.SetActiveSheet(0)

	return save(f, path)
}

// WriteChecking writes the cleaned checking-account statement to path as a
// single sheet.
func WriteChecking(path string, st *checking.Statement) error {
	f := excelize.NewFile()
	defer f.Close()

	rows := make([][]any, len(st.Rows))
	for i, r := range st.Rows {
		rows[i] = r.Values
	}
	if err := writeSheet(f, defaultSheet, st.Columns, rows); err != nil {
		return err
	}

	// Dates keep a day-first display in the sheet.
	if len(st.Rows) > 0 {
		for i, col := range st.Columns {
			if col != checking.ColDate {
				continue
			}
			if err := setDateStyle(f, defaultSheet, i+1, len(st.Rows)+1); err != nil {
				return err
			}
		}
	}

	return save(f, path)
}

// writeSheet writes a bold header row followed by rows, then sizes the columns
// to their content.
func writeSheet(f *excelize.File, sheet string, header []string, rows [][]any) error {
	headerRow := toAny(header)
	if err := f.SetSheetRow(sheet, "A1", &headerRow); err != nil {
		return fmt.Errorf("writing header of %q: %w", sheet, err)
	}

	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}
	last, err := excelize.CoordinatesToCellName(max(len(header), 1), 1)
	if err != nil {
		return fmt.Errorf("header range: %w", err)
	}
	if err := f.SetCellStyle(sheet, "A1", last, style); err != nil {
		return fmt.Errorf("styling header of %q: %w", sheet, err)
	}

	widths := make([]float64, len(header))
	for i, h := range header {
		widths[i] = float64(utf8.RuneCountInString(h) + 4)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("row %d: %w", i+2, err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("writing row %d of %q: %w", i+2, sheet, err)
		}
		for j, v := range row {
			if s, ok := v.(string); ok && j < len(widths) {
				widths[j] = max(widths[j], float64(utf8.RuneCountInString(s)+2))
			}
		}
	}

	for i, w := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return fmt.Errorf("column %d: %w", i+1, err)
		}
		if err := f.SetColWidth(sheet, col, col, min(max(w, minColWidth), maxColWidth)); err != nil {
			return fmt.Errorf("sizing column %s of %q: %w", col, sheet, err)
		}
	}
	return nil
}

func setDateStyle(f *excelize.File, sheet string, col, lastRow int) error {
	format := "dd/mm/yyyy"
	style, err := f.NewStyle(&excelize.Style{CustomNumFmt: &format})
	if err != nil {
		return fmt.Errorf("creating date style: %w", err)
	}
	top, err := excelize.CoordinatesToCellName(col, 2)
	if err != nil {
		return fmt.Errorf("date range: %w", err)
	}
	bottom, err := excelize.CoordinatesToCellName(col, lastRow)
	if err != nil {
		return fmt.Errorf("date range: %w", err)
	}
	if err := f.SetCellStyle(sheet, top, bottom, style); err != nil {
		return fmt.Errorf("styling dates of %q: %w", sheet, err)
	}
	return nil
}

func save(f *excelize.File, path string) error {
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook %s: %w", path, err)
	}
	return nil
}

func toAny(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

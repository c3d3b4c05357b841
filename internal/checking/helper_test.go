package checking

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// buildWorkbook writes rows to the first sheet of a new workbook. A nil row is
// left blank.
func buildWorkbook(t *testing.T, rows [][]any) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for i, row := range rows {
		if row == nil {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return &buf
}

// exportRows returns a checking export with the two preamble rows.
func exportRows(header []any, data ...[]any) [][]any {
	rows := [][]any{
		{"Extrato conta corrente"},
		{"Agência 1234-5 Conta 67890-1"},
		header,
	}
	return append(rows, data...)
}

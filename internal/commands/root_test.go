package commands_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/extrato-dev/extrato/internal/commands"
	"github.com/extrato-dev/extrato/internal/config"
)

func runExtrato(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := commands.NewRootCommand()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func copyLedger(t *testing.T, dir, name string) string {
	t.Helper()
	data, err := os.ReadFile("../../testdata/extrato_investimentos.txt")
	require.NoError(t, err)
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

// writeCheckingExport saves a checking export with two preamble rows to path.
func writeCheckingExport(t *testing.T, path string) {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	rows := [][]any{
		{"Extrato conta corrente"},
		{"Agência 1234-5"},
		{"Data balancete", "Historico", "Valor R$ ", "Cod. Historico"},
		{"15/01/2024", "PIX RECEBIDO", "1.234,56", "123"},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	require.NoError(t, f.SaveAs(path))
}

func TestInvestimentos(t *testing.T) {
	dir := t.TempDir()
	input := copyLedger(t, dir, "extrato.txt")

	out, _, err := runExtrato(t, "investimentos", input)
	require.NoError(t, err)

	expected := filepath.Join(dir, "extrato_tratado", "extrato_investimentos_tratado.xlsx")
	assert.Equal(t, "Processamento concluído! Arquivo salvo em: "+expected+"\n", out)
	assert.FileExists(t, expected)
}

func TestInvestimentos_MissingFile(t *testing.T) {
	_, _, err := runExtrato(t, "investimentos", filepath.Join(t.TempDir(), "nope.txt"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestInvestimentos_RequiresArg(t *testing.T) {
	_, _, err := runExtrato(t, "investimentos")
	assert.Error(t, err)
}

func TestContaCorrente_BadWorkbook(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "conta.xlsx")
	require.NoError(t, os.WriteFile(input, []byte("not a workbook"), 0o644))

	_, _, err := runExtrato(t, "conta-corrente", input)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "converting")
}

func TestConfigFlag(t *testing.T) {
	dir := t.TempDir()
	input := copyLedger(t, dir, "extrato.txt")

	cfg := config.Default()
	cfg.Output.Folder = "saida"
	cfg.Investments.File = "fundos.xlsx"
	cfgPath := filepath.Join(dir, "extrato.yaml")
	require.NoError(t, config.Save(cfgPath, cfg))

	out, _, err := runExtrato(t, "--config", cfgPath, "investimentos", input)
	require.NoError(t, err)
	assert.Contains(t, out, filepath.Join(dir, "saida", "fundos.xlsx"))
	assert.FileExists(t, filepath.Join(dir, "saida", "fundos.xlsx"))
}

func TestConfigFlag_Missing(t *testing.T) {
	_, _, err := runExtrato(t, "--config", filepath.Join(t.TempDir(), "none.yaml"), "batch", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config")
}

func TestVerboseLogsToStderr(t *testing.T) {
	dir := t.TempDir()
	input := copyLedger(t, dir, "extrato.txt")

	_, stderr, err := runExtrato(t, "--verbose", "investimentos", input)
	require.NoError(t, err)
	assert.Contains(t, stderr, "ledger parsed")
	assert.Contains(t, stderr, "ledger converted")
}

func TestBatch(t *testing.T) {
	dir := t.TempDir()
	copyLedger(t, dir, "extrato.txt")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "readme.md"), []byte("x"), 0o644))

	out, _, err := runExtrato(t, "batch", dir)
	require.NoError(t, err)
	assert.Contains(t, out, filepath.Join(dir, "extrato_tratado", "extrato_extrato_investimentos_tratado.xlsx"))
}

func TestBatch_KeepsEachOutput(t *testing.T) {
	dir := t.TempDir()
	copyLedger(t, dir, "extrato.txt")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "leiame.txt"), []byte("notas\n"), 0o644))

	out, _, err := runExtrato(t, "batch", dir)
	require.NoError(t, err)

	ledgerOut := filepath.Join(dir, "extrato_tratado", "extrato_extrato_investimentos_tratado.xlsx")
	notesOut := filepath.Join(dir, "extrato_tratado", "leiame_extrato_investimentos_tratado.xlsx")
	assert.Contains(t, out, ledgerOut)
	assert.Contains(t, out, notesOut)

	f, err := excelize.OpenFile(ledgerOut)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{"BB RF CP ABSOLUTO", "BB RF REF DI TP FI", "BB RF SOLIDEZ ABSOL"}, f.GetSheetList())

	notes, err := excelize.OpenFile(notesOut)
	require.NoError(t, err)
	defer notes.Close()
	assert.Equal(t, []string{"Extrato"}, notes.GetSheetList())
}

func TestBatch_RefusesSharedOutput(t *testing.T) {
	dir := t.TempDir()
	copyLedger(t, dir, "extrato.txt")
	writeCheckingExport(t, filepath.Join(dir, "extrato.xlsx"))

	cfg := config.Default()
	cfg.Investments.File = "saida.xlsx"
	cfg.Checking.File = "saida.xlsx"
	cfgPath := filepath.Join(t.TempDir(), "extrato.yaml")
	require.NoError(t, config.Save(cfgPath, cfg))

	out, stderr, err := runExtrato(t, "--config", cfgPath, "batch", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 files failed")
	assert.Contains(t, stderr, "already written for extrato.txt")

	f, err := excelize.OpenFile(filepath.Join(dir, "extrato_tratado", "extrato_saida.xlsx"))
	require.NoError(t, err)
	defer f.Close()
	assert.Len(t, f.GetSheetList(), 3, "ledger output not overwritten")
	assert.Equal(t, 1, strings.Count(out, "Processamento concluído"))
}

func TestBatch_Empty(t *testing.T) {
	dir := t.TempDir()
	out, _, err := runExtrato(t, "batch", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "No statement files found")
}

func TestBatch_ReportsFailures(t *testing.T) {
	dir := t.TempDir()
	copyLedger(t, dir, "extrato.txt")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "conta.xlsx"), []byte("broken"), 0o644))

	out, stderr, err := runExtrato(t, "batch", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 files failed")
	assert.Contains(t, stderr, "conta.xlsx")
	assert.Contains(t, out, "extrato_extrato_investimentos_tratado.xlsx")
}

func TestVersion(t *testing.T) {
	out, _, err := runExtrato(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "dev (commit: none")
}

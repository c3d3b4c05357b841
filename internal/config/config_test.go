package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Output.Folder = "saida"
	cfg.Checking.HeaderRow = 4

	path := filepath.Join(t.TempDir(), "extrato.yaml")
	err := Save(path, cfg)
	require.NoError(t, err)

	got, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, cfg, got)
}

func TestDefaults(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "extrato_tratado", cfg.Output.Folder)
	assert.Equal(t, "conversoes.csv", cfg.Output.Log)
	assert.Equal(t, "extrato_investimentos_tratado.xlsx", cfg.Investments.File)
	assert.Equal(t, 31, cfg.Investments.SheetNameLimit)
	assert.Equal(t, "extrato_conta_corrente_tratado.xlsx", cfg.Checking.File)
	assert.Equal(t, 2, cfg.Checking.HeaderRow)
	assert.NoError(t, cfg.Validate())
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "extrato.yaml")
	require.NoError(t, os.WriteFile(path, []byte("checking:\n  header_row: 0\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.Checking.HeaderRow)
	assert.Equal(t, "extrato_conta_corrente_tratado.xlsx", cfg.Checking.File)
	assert.Equal(t, "extrato_tratado", cfg.Output.Folder)
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		yaml string
		want string
	}{
		{"output:\n  folder: \"\"\n", "output.folder"},
		{"investments:\n  sheet_name_limit: 40\n", "sheet_name_limit"},
		{"checking:\n  header_row: -1\n", "header_row"},
		{"checking: [", "parsing config"},
	}
	for _, tt := range tests {
		path := filepath.Join(t.TempDir(), "extrato.yaml")
		require.NoError(t, os.WriteFile(path, []byte(tt.yaml), 0o644))

		_, err := Load(path)
		require.Error(t, err, tt.yaml)
		assert.Contains(t, err.Error(), tt.want)
	}
}

func TestYAMLFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "extrato.yaml")
	require.NoError(t, Save(path, Default()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	contents := string(data)

	assert.Contains(t, contents, "folder: extrato_tratado")
	assert.Contains(t, contents, "sheet_name_limit: 31")
	assert.Contains(t, contents, "header_row: 2")
}

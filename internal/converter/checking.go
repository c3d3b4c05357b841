package converter

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/extrato-dev/extrato/internal/checking"
	"github.com/extrato-dev/extrato/internal/config"
	"github.com/extrato-dev/extrato/internal/export"
)

// CheckingConverter cleans the checking-account spreadsheet export.
type CheckingConverter struct {
	cfg    *config.Config
	logger *log.Logger
}

// NewCheckingConverter creates a CheckingConverter.
func NewCheckingConverter(cfg *config.Config, logger *log.Logger) *CheckingConverter {
	return &CheckingConverter{cfg: cfg, logger: logger}
}

// Format returns the converter name.
func (c *CheckingConverter) Format() string { return "conta-corrente" }

// Extensions returns the file extensions this converter handles.
func (c *CheckingConverter) Extensions() []string { return []string{".xlsx"} }

// DefaultOutput returns the configured workbook name.
func (c *CheckingConverter) DefaultOutput() string { return c.cfg.Checking.File }

// Convert reads the workbook at inputPath and writes the cleaned statement.
func (c *CheckingConverter) Convert(inputPath, outputFile string) (*Result, error) {
	outDir, err := OutputDir(inputPath, c.cfg.Output.Folder)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(inputPath)
	if err != nil {
		return nil, fmt.Errorf("opening checking export: %w", err)
	}
	defer f.Close()

	sheet, err := checking.Read(f, c.cfg.Checking.HeaderRow)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", inputPath, err)
	}
	st, err := checking.Normalize(sheet)
	if err != nil {
		return nil, fmt.Errorf("normalizing %s: %w", inputPath, err)
	}
	c.logger.Debug("checking export normalized", "rows", len(sheet.Rows), "kept", len(st.Rows), "skipped", st.Skipped)

	out := filepath.Join(outDir, outputFileOr(outputFile, c.DefaultOutput()))
	if err := export.WriteChecking(out, st); err != nil {
		return nil, err
	}

	res := &Result{
		Format:  c.Format(),
		Input:   inputPath,
		Output:  out,
		Records: len(st.Rows),
		Skipped: st.Skipped,
	}
	c.logger.Info("checking export converted", "input", inputPath, "output", out, "records", res.Records, "skipped", res.Skipped)
	recordRun(c.cfg, c.logger, outDir, res)
	return res, nil
}

package converter

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/extrato-dev/extrato/internal/config"
	"github.com/extrato-dev/extrato/internal/export"
	"github.com/extrato-dev/extrato/internal/ledger"
)

// InvestmentsConverter converts the investment ledger text export into a
// workbook with one sheet per fund.
type InvestmentsConverter struct {
	cfg    *config.Config
	logger *log.Logger
}

// NewInvestmentsConverter creates an InvestmentsConverter.
func NewInvestmentsConverter(cfg *config.Config, logger *log.Logger) *InvestmentsConverter {
	return &InvestmentsConverter{cfg: cfg, logger: logger}
}

// Format returns the converter name.
func (c *InvestmentsConverter) Format() string { return "investimentos" }

// Extensions returns the file extensions this converter handles.
func (c *InvestmentsConverter) Extensions() []string { return []string{".txt"} }

// DefaultOutput returns the configured workbook name.
func (c *InvestmentsConverter) DefaultOutput() string { return c.cfg.Investments.File }

// Convert reads the ledger at inputPath and writes the fund workbook.
func (c *InvestmentsConverter) Convert(inputPath, outputFile string) (*Result, error) {
	outDir, err := OutputDir(inputPath, c.cfg.Output.Folder)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(inputPath)
	if err != nil {
		return nil, fmt.Errorf("opening ledger: %w", err)
	}
	defer f.Close()

	lines, err := ledger.ReadLines(f)
	if err != nil {
		return nil, err
	}

	records := ledger.Parse(lines)
	groups := ledger.Group(records, c.cfg.Investments.SheetNameLimit)
	c.logger.Debug("ledger parsed", "lines", len(lines), "records", len(records), "funds", len(groups))
	for _, g := range groups {
		c.logger.Debug("fund", "name", g.Fund, "sheet", g.Sheet, "records", len(g.Records))
	}

	out := filepath.Join(outDir, outputFileOr(outputFile, c.DefaultOutput()))
	if err := export.WriteInvestments(out, groups); err != nil {
		return nil, err
	}

	res := &Result{
		Format:  c.Format(),
		Input:   inputPath,
		Output:  out,
		Records: len(records),
	}
	c.logger.Info("ledger converted", "input", inputPath, "output", out, "records", res.Records, "funds", len(groups))
	recordRun(c.cfg, c.logger, outDir, res)
	return res, nil
}

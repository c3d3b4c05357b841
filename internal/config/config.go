package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the optional extrato.yaml configuration. Every field has a
// default, so a missing file behaves like Default().
type Config struct {
	Output      OutputConfig      `yaml:"output"`
	Investments InvestmentsConfig `yaml:"investments"`
	Checking    CheckingConfig    `yaml:"checking"`
}

// OutputConfig names the folder created next to each input file.
type OutputConfig struct {
	Folder string `yaml:"folder"`
	Log    string `yaml:"log"` // conversion log file inside Folder
}

// InvestmentsConfig controls the investment ledger conversion.
type InvestmentsConfig struct {
	File           string `yaml:"file"`
	SheetNameLimit int    `yaml:"sheet_name_limit"`
}

// CheckingConfig controls the checking-account conversion.
type CheckingConfig struct {
	File      string `yaml:"file"`
	HeaderRow int    `yaml:"header_row"` // 0-based
}

// Load reads a config file from disk. Fields absent from the file keep their
// defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns the configuration matching the bank's export layout.
func Default() *Config {
	return &Config{
		Output: OutputConfig{
			Folder: "extrato_tratado",
			Log:    "conversoes.csv",
		},
		Investments: InvestmentsConfig{
			File:           "extrato_investimentos_tratado.xlsx",
			SheetNameLimit: 31,
		},
		Checking: CheckingConfig{
			File:      "extrato_conta_corrente_tratado.xlsx",
			HeaderRow: 2,
		},
	}
}

// Validate rejects values no conversion can work with.
func (c *Config) Validate() error {
	switch {
	case c.Output.Folder == "":
		return fmt.Errorf("invalid config: output.folder is empty")
	case c.Investments.File == "":
		return fmt.Errorf("invalid config: investments.file is empty")
	case c.Checking.File == "":
		return fmt.Errorf("invalid config: checking.file is empty")
	case c.Investments.SheetNameLimit < 1 || c.Investments.SheetNameLimit > 31:
		return fmt.Errorf("invalid config: investments.sheet_name_limit %d not in 1..31", c.Investments.SheetNameLimit)
	case c.Checking.HeaderRow < 0:
		return fmt.Errorf("invalid config: checking.header_row %d is negative", c.Checking.HeaderRow)
	}
	return nil
}

package commands

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/extrato-dev/extrato/internal/buildinfo"
	"github.com/extrato-dev/extrato/internal/config"
	"github.com/extrato-dev/extrato/internal/converter"
)

const successMessage = "Processamento concluído! Arquivo salvo em: %s\n"

type globalOptions struct {
	configPath string
	verbose    bool
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:     "extrato",
		Short:   "Convert bank statement exports into cleaned spreadsheets",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to an extrato.yaml config file")
	rootCmd.PersistentFlags().BoolVar(&opts.verbose, "verbose", false, "enable debug logging")

	rootCmd.AddCommand(newConvertCommand(opts, "investimentos", "Convert an investment ledger text file"))
	rootCmd.AddCommand(newConvertCommand(opts, "conta-corrente", "Convert a checking-account xlsx export"))
	rootCmd.AddCommand(newBatchCommand(opts))

	return rootCmd
}

// registry loads the configuration and builds the converters for a command run.
func (o *globalOptions) registry(cmd *cobra.Command) (*converter.Registry, error) {
	cfg := config.Default()
	if o.configPath != "" {
		loaded, err := config.Load(o.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	logger := log.NewWithOptions(cmd.ErrOrStderr(), log.Options{Prefix: "extrato"})
	if o.verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return converter.DefaultRegistry(cfg, logger), nil
}

func newConvertCommand(opts *globalOptions, format, short string) *cobra.Command {
	return &cobra.Command{
		Use:   format + " <file>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := opts.registry(cmd)
			if err != nil {
				return err
			}
			c := reg.Get(format)
			if c == nil {
				return fmt.Errorf("no converter for %s", format)
			}

			res, err := c.Convert(args[0], "")
			if err != nil {
				return fmt.Errorf("converting %s: %w", args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), successMessage, res.Output)
			return nil
		},
	}
}

package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/extrato-dev/extrato/internal/converter"
)

func newBatchCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "batch [directory]",
		Short: "Convert every .txt and .xlsx statement in a directory",
		Long: "Convert every .txt and .xlsx statement in a directory. Each output is\n" +
			"named after its input, e.g. extrato.txt -> extrato_extrato_investimentos_tratado.xlsx.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			reg, err := opts.registry(cmd)
			if err != nil {
				return err
			}
			files, err := reg.Scan(dir)
			if err != nil {
				return err
			}
			if len(files) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No statement files found in %s\n", dir)
				return nil
			}

			var errs []error
			claimed := make(map[string]string)
			for _, fi := range files {
				c := reg.Get(fi.Format)
				name := converter.BatchOutputName(fi.Path, c.DefaultOutput())

				// Compared case-insensitively.
				key := strings.ToLower(name)
				if prev, ok := claimed[key]; ok {
					err := fmt.Errorf("%s: output %s already written for %s", fi.Name, name, prev)
					fmt.Fprintln(cmd.ErrOrStderr(), err)
					errs = append(errs, err)
					continue
				}
				claimed[key] = fi.Name

				res, err := c.Convert(fi.Path, name)
				if err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", fi.Name, err)
					errs = append(errs, fmt.Errorf("%s: %w", fi.Name, err))
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), successMessage, res.Output)
			}
			if len(errs) > 0 {
				return fmt.Errorf("%d of %d files failed: %w", len(errs), len(files), errors.Join(errs...))
			}
			return nil
		},
	}
}

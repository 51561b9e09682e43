// Package cmd - constants table commands
package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"quote-pricing/adapters/constants"
	"quote-pricing/core/pricing"
)

var showFormat string

var constantsCmd = &cobra.Command{
	Use:   "constants",
	Short: "Inspect and validate constants tables",
}

var constantsValidateCmd = &cobra.Command{
	Use:   "validate <file>...",
	Short: "Validate constants table files",
	Long: `Decode and validate each constants table file, reporting every problem found.

Examples:
  quote constants validate configs/pricing.hcl configs/pricing.yaml`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return validateFiles(cmd.OutOrStdout(), args)
	},
}

var constantsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective constants table",
	Long: `Print the constants table selected by --constants (or configuration) as YAML or JSON.

Examples:
  quote constants show
  quote constants show --constants configs/pricing.hcl --format json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		table, err := loadTable()
		if err != nil {
			return err
		}
		return showTable(cmd.OutOrStdout(), table, constants.Format(showFormat))
	},
}

func init() {
	constantsShowCmd.Flags().StringVarP(&showFormat, "format", "f", "yaml", "output format (yaml, json)")

	constantsCmd.AddCommand(constantsValidateCmd)
	constantsCmd.AddCommand(constantsShowCmd)
}

func validateFiles(w io.Writer, paths []string) error {
	failed := 0
	for _, path := range paths {
		table, err := constants.Load(path)
		if err != nil {
			failed++
			fmt.Fprintf(w, "✗ %s\n  %v\n", path, err)
			continue
		}
		fmt.Fprintf(w, "✓ %s (version %s, hash %s)\n", path, table.Version, table.Hash().Hex()[:12])
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d constants files invalid", failed, len(paths))
	}
	return nil
}

func showTable(w io.Writer, table *pricing.Table, format constants.Format) error {
	data, err := constants.Encode(format, table.Document())
	if err != nil {
		return err
	}
	if format == constants.FormatYAML {
		fmt.Fprintf(w, "# version %s, hash %s\n", table.Version, table.Hash().Hex())
	}
	_, err = w.Write(data)
	return err
}

// Package cmd - commission command
package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"quote-pricing/core/engine"
	"quote-pricing/core/pricing"
	"quote-pricing/core/types"
)

var (
	commissionMonthly int64
	commissionSetup   int64
)

// commissionCmd represents the commission command
var commissionCmd = &cobra.Command{
	Use:   "commission",
	Short: "Project commission for combined quote fees",
	Long: `Project the advisory commission for a quote's combined monthly and setup fees.

Examples:
  quote commission --monthly 625 --setup 825`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		table, err := loadTable()
		if err != nil {
			return err
		}
		return printCommission(cmd.OutOrStdout(), table, types.Totals{MonthlyFee: commissionMonthly, SetupFee: commissionSetup})
	},
}

func init() {
	commissionCmd.Flags().Int64Var(&commissionMonthly, "monthly", 0, "combined monthly fee")
	commissionCmd.Flags().Int64Var(&commissionSetup, "setup", 0, "combined setup fee")
}

func printCommission(w io.Writer, table *pricing.Table, totals types.Totals) error {
	if totals.MonthlyFee < 0 || totals.SetupFee < 0 {
		return fmt.Errorf("fees must not be negative")
	}

	c := engine.ProjectCommission(totals, table.Commission)
	rows := []struct {
		label string
		value string
	}{
		{"Setup commission", c.SetupCommission.StringFixed(2)},
		{"First month commission", c.FirstMonthCommission.StringFixed(2)},
		{"Monthly recurring commission", c.MonthlyRecurringCommission.StringFixed(2)},
		{"First month total", c.FirstMonthTotal.StringFixed(2)},
		{fmt.Sprintf("Twelve month total (%d recurring months)", table.Commission.RecurringMonths), c.TwelveMonthTotal.StringFixed(2)},
	}
	for _, row := range rows {
		if _, err := fmt.Fprintf(w, "%-42s $%12s\n", row.label, row.value); err != nil {
			return err
		}
	}
	return nil
}

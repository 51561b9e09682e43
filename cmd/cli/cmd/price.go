// Package cmd - price command
package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"quote-pricing/core/determinism"
	"quote-pricing/core/engine"
	"quote-pricing/core/output"
	"quote-pricing/core/pricing"
	"quote-pricing/core/types"
	"quote-pricing/internal/logging"
)

var (
	outputFormat   string
	showDetails    bool
	calendarMonth  int
	withCommission bool
)

// priceCmd represents the price command
var priceCmd = &cobra.Command{
	Use:   "price [input-file]",
	Short: "Price a quote",
	Long: `Price a quote described by a JSON input file.

Reads standard input when the file is "-" or omitted. The calendar month
defaults to the current month and only affects the bookkeeping setup fee.

Examples:
  quote price input.json
  quote price --month 1 --details=false input.json
  quote price --format json --commission - < input.json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPrice,
}

func init() {
	priceCmd.Flags().StringVarP(&outputFormat, "format", "f", "cli", "output format (cli, json)")
	priceCmd.Flags().BoolVarP(&showDetails, "details", "d", true, "show discount and surcharge breakdown")
	priceCmd.Flags().IntVarP(&calendarMonth, "month", "m", 0, "calendar month 1-12 for the setup fee (default current month)")
	priceCmd.Flags().BoolVar(&withCommission, "commission", false, "include the commission projection")
}

// priceOptions carries everything one price run needs
type priceOptions struct {
	Table      *pricing.Table
	Format     output.Format
	Details    bool
	Calendar   types.CalendarContext
	Commission bool
	Now        time.Time
}

func runPrice(cmd *cobra.Command, args []string) error {
	path := "-"
	if len(args) > 0 {
		path = args[0]
	}

	var src io.Reader = cmd.InOrStdin()
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("open input: %w", err)
		}
		defer f.Close()
		src = f
	}

	table, err := loadTable()
	if err != nil {
		return err
	}

	now := time.Now()
	cal := types.CalendarFromTime(now)
	if cmd.Flags().Changed("month") {
		cal = types.CalendarContext{Month: calendarMonth}
	}

	return price(cmd.OutOrStdout(), src, priceOptions{
		Table:      table,
		Format:     output.Format(outputFormat),
		Details:    showDetails,
		Calendar:   cal,
		Commission: withCommission,
		Now:        now,
	})
}

// price decodes one quote input, prices it and renders the report
func price(w io.Writer, src io.Reader, opts priceOptions) error {
	start := time.Now()

	in, err := decodeInput(src)
	if err != nil {
		return err
	}

	formatters := output.NewRegistry()
	formatter, ok := formatters.Get(opts.Format)
	if !ok {
		return fmt.Errorf("unknown output format %q (want one of %v)", opts.Format, formatters.Formats())
	}
	if cli, ok := formatter.(*output.CLIFormatter); ok {
		cli.ShowDetails = opts.Details
	}

	logging.Debug("pricing quote",
		zap.String("table_version", opts.Table.Version),
		zap.Int("month", opts.Calendar.Month),
	)

	result, err := engine.CalculateQuotePricing(in, opts.Table, opts.Calendar)
	if err != nil {
		return err
	}

	var commission *types.CommissionProjection
	if opts.Commission {
		c := engine.ProjectCommission(result.Combined, opts.Table.Commission)
		commission = &c
	}

	inputHash, _ := determinism.InputHash(in, opts.Table.Hash(), opts.Calendar.Month)
	report := output.NewReport(result, commission, output.Metadata{
		Timestamp:    opts.Now.UTC().Format(time.RFC3339),
		Duration:     time.Since(start).String(),
		InputHash:    inputHash,
		TableVersion: opts.Table.Version,
		TableHash:    opts.Table.Hash().Hex(),
		Version:      Version,
	})
	return formatter.Render(w, report)
}

func decodeInput(src io.Reader) (types.QuoteInput, error) {
	var in types.QuoteInput
	data, err := io.ReadAll(src)
	if err != nil {
		return in, fmt.Errorf("read input: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&in); err != nil {
		return in, fmt.Errorf("decode input: %w", err)
	}
	return in, nil
}

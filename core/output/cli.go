package output

import (
	"fmt"
	"io"
	"strings"

	"quote-pricing/core/types"
)

const (
	boxTop    = "┌─────────────────────────────────────────────────────────────────────────┐"
	boxRule   = "├─────────────────────────────────────────────────────────────────────────┤"
	boxBottom = "└─────────────────────────────────────────────────────────────────────────┘"
)

var serviceLabels = map[types.Service]string{
	types.ServiceBookkeeping:        "Monthly bookkeeping",
	types.ServiceTaas:               "Tax as a service",
	types.ServicePayroll:            "Payroll",
	types.ServiceAP:                 "Accounts payable",
	types.ServiceAR:                 "Accounts receivable",
	types.ServiceCleanup:            "Cleanup project",
	types.ServicePriorYearFilings:   "Prior-year filings",
	types.ServiceCFOAdvisory:        "CFO advisory",
	types.ServiceAgentOfService:     "Agent of service",
	types.ServiceEntityOptimization: "Entity optimization",
}

// CLIFormatter renders a boxed summary table
type CLIFormatter struct {
	ShowDetails bool
}

// Format implements Formatter
func (f *CLIFormatter) Format() Format { return FormatCLI }

// Render implements Formatter
func (f *CLIFormatter) Render(w io.Writer, report *Report) error {
	p := &printer{w: w}
	r := report.Result

	p.line(boxTop)
	p.line("│                             QUOTE SUMMARY                               │")
	p.line(boxRule)

	for _, fee := range r.Services {
		if !fee.Selected {
			continue
		}
		p.row(serviceLabels[fee.Service], feeText(fee.MonthlyFee, fee.SetupFee))
		if f.ShowDetails && fee.Discounted() {
			p.detail(fmt.Sprintf("before discount (%s)", fee.Breakdown.DiscountRule), money(fee.Breakdown.MonthlyFeeBeforeDiscount)+"/mo")
		}
		if f.ShowDetails && len(fee.Breakdown.Surcharges) > 0 {
			for _, c := range fee.Breakdown.Surcharges {
				if c.Amount.IsZero() {
					continue
				}
				p.detail(c.Name, "+"+c.Amount.String())
			}
		}
	}
	for _, item := range r.LineItems {
		p.row(item.Description, feeText(item.MonthlyFee, item.SetupFee))
	}

	p.line(boxRule)
	if d := report.Display.PackageDiscountMonthly; d > 0 {
		p.row("PACKAGE DISCOUNT", "-"+money(d)+"/mo")
	}
	p.row("TOTAL MONTHLY FEE", money(r.Combined.MonthlyFee))
	p.row("TOTAL SETUP FEE", money(r.Combined.SetupFee))

	if c := report.Commission; c != nil {
		p.line(boxRule)
		p.row("Setup commission", "$"+c.SetupCommission.StringFixed(2))
		p.row("First month commission", "$"+c.FirstMonthCommission.StringFixed(2))
		p.row("Monthly recurring commission", "$"+c.MonthlyRecurringCommission.StringFixed(2))
		p.row("First month total", "$"+c.FirstMonthTotal.StringFixed(2))
		p.row("Twelve month total", "$"+c.TwelveMonthTotal.StringFixed(2))
	}
	p.line(boxBottom)

	if report.Metadata.TableVersion != "" {
		p.printf("\nConstants table %s (%s)\n", report.Metadata.TableVersion, shortHash(report.Metadata.TableHash))
	}
	if report.Metadata.Duration != "" {
		p.printf("Quote computed in %s\n", report.Metadata.Duration)
	}
	return p.err
}

// printer remembers the first write error so rendering code stays linear
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *printer) line(s string) {
	p.printf("%s\n", s)
}

func (p *printer) row(label, value string) {
	p.printf("│ %-50s %20s │\n", truncate(label, 50), value)
}

func (p *printer) detail(label, value string) {
	p.printf("│   └─ %-46s %20s │\n", truncate(label, 46), value)
}

func feeText(monthly, setup int64) string {
	switch {
	case monthly != 0 && setup != 0:
		return money(monthly) + "/mo + " + money(setup)
	case setup != 0:
		return money(setup) + " once"
	default:
		return money(monthly) + "/mo"
	}
}

func money(n int64) string {
	return fmt.Sprintf("$%d", n)
}

func shortHash(h string) string {
	if len(h) > 12 {
		return h[:12]
	}
	return h
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return strings.TrimSpace(s[:maxLen-3]) + "..."
}

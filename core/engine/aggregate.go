package engine

import (
	"github.com/shopspring/decimal"

	"quote-pricing/core/pricing"
	"quote-pricing/core/types"
)

// Aggregate sums every component's whole-unit fees. No rounding happens here:
// components are already rounded and the sum is exact.
func Aggregate(fees []types.ServiceFee, items []types.LineItem) types.Totals {
	var totals types.Totals
	for _, fee := range fees {
		totals.MonthlyFee += fee.MonthlyFee
		totals.SetupFee += fee.SetupFee
	}
	for _, item := range items {
		totals.MonthlyFee += item.MonthlyFee
		totals.SetupFee += item.SetupFee
	}
	return totals
}

// ProjectCommission derives the advisory commission projection from combined fees.
// Values are exact; rounding belongs to display.
func ProjectCommission(combined types.Totals, rates pricing.CommissionRates) types.CommissionProjection {
	monthly := decimal.NewFromInt(combined.MonthlyFee)
	setup := decimal.NewFromInt(combined.SetupFee)

	setupCommission := setup.Mul(rates.SetupRate)
	firstMonth := monthly.Mul(rates.FirstMonthRate)
	recurring := monthly.Mul(rates.RecurringRate)
	firstMonthTotal := setupCommission.Add(firstMonth)

	return types.CommissionProjection{
		SetupCommission:            setupCommission,
		FirstMonthCommission:       firstMonth,
		MonthlyRecurringCommission: recurring,
		FirstMonthTotal:            firstMonthTotal,
		TwelveMonthTotal:           firstMonthTotal.Add(recurring.Mul(decimal.NewFromInt(int64(rates.RecurringMonths)))),
	}
}

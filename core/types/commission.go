package types

import "github.com/shopspring/decimal"

// CommissionProjection is an advisory estimate derived from combined fees.
// Values are unrounded; display formatting is the consumer's concern.
type CommissionProjection struct {
	SetupCommission            decimal.Decimal `json:"setupCommission"`
	FirstMonthCommission       decimal.Decimal `json:"firstMonthCommission"`
	MonthlyRecurringCommission decimal.Decimal `json:"monthlyRecurringCommission"`
	FirstMonthTotal            decimal.Decimal `json:"firstMonthTotal"`
	TwelveMonthTotal           decimal.Decimal `json:"twelveMonthTotal"`
}

package types

import "github.com/shopspring/decimal"

// Component is one named contribution to a fee before multipliers
type Component struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

// FeeBreakdown retains the pre-rounding intermediates behind a fee
type FeeBreakdown struct {
	BaseFee              decimal.Decimal `json:"baseFee"`
	Surcharges           []Component     `json:"surcharges,omitempty"`
	RawBeforeMultipliers decimal.Decimal `json:"rawBeforeMultipliers"`
	RevenueMultiplier    decimal.Decimal `json:"revenueMultiplier"`
	IndustryMultiplier   decimal.Decimal `json:"industryMultiplier"`

	// Scaled is the monthly fee before any rounding or discount
	Scaled   decimal.Decimal `json:"scaled"`
	Rounding string          `json:"rounding,omitempty"`

	MonthlyFeeBeforeDiscount int64 `json:"monthlyFeeBeforeDiscount"`
	MonthlyFeeAfterDiscount  int64 `json:"monthlyFeeAfterDiscount"`

	// Set only when a discount rule rewrote the monthly fee
	DiscountRule     string          `json:"discountRule,omitempty"`
	DiscountRate     decimal.Decimal `json:"discountRate"`
	DiscountedScaled decimal.Decimal `json:"discountedScaled"`
	DiscountRounding string          `json:"discountRounding,omitempty"`

	SetupMonth          int             `json:"setupMonth,omitempty"`
	SetupFactor         decimal.Decimal `json:"setupFactor"`
	SetupBeforeRounding decimal.Decimal `json:"setupBeforeRounding"`
}

// ServiceFee is the result of one per-service calculator
type ServiceFee struct {
	Service    Service      `json:"service"`
	Selected   bool         `json:"selected"`
	MonthlyFee int64        `json:"monthlyFee"`
	SetupFee   int64        `json:"setupFee"`
	Breakdown  FeeBreakdown `json:"breakdown"`
}

// Discounted reports whether a discount rule changed the monthly fee
func (f ServiceFee) Discounted() bool {
	return f.Breakdown.DiscountRule != ""
}

// LineItem is a flat charge that bundle rules never touch
type LineItem struct {
	Item        Service `json:"item"`
	Description string  `json:"description"`
	MonthlyFee  int64   `json:"monthlyFee"`
	SetupFee    int64   `json:"setupFee"`
}

// AppliedDiscount records one discount rule that fired
type AppliedDiscount struct {
	Rule     string          `json:"rule"`
	Target   Service         `json:"target"`
	Rate     decimal.Decimal `json:"rate"`
	Before   int64           `json:"monthlyBefore"`
	After    int64           `json:"monthlyAfter"`
	Rounding string          `json:"rounding"`
}

// Amount is the monthly reduction the discount produced
func (d AppliedDiscount) Amount() int64 {
	return d.Before - d.After
}

// Totals holds combined whole-unit fees
type Totals struct {
	MonthlyFee int64 `json:"monthlyFee"`
	SetupFee   int64 `json:"setupFee"`
}

// QuoteResult is the combined pricing result for one quote.
// It is built fresh on every calculation and never mutated afterwards.
type QuoteResult struct {
	Services      []ServiceFee      `json:"services"`
	LineItems     []LineItem        `json:"lineItems"`
	Discounts     []AppliedDiscount `json:"discounts"`
	Combined      Totals            `json:"combined"`
	CalendarMonth int               `json:"calendarMonth,omitempty"`
	TableVersion  string            `json:"tableVersion"`
}

// Service returns the fee for a service family
func (r QuoteResult) Service(s Service) (ServiceFee, bool) {
	for _, fee := range r.Services {
		if fee.Service == s {
			return fee, true
		}
	}
	return ServiceFee{Service: s}, false
}

// LineItem returns a flat line item
func (r QuoteResult) LineItem(item Service) (LineItem, bool) {
	for _, li := range r.LineItems {
		if li.Item == item {
			return li, true
		}
	}
	return LineItem{Item: item}, false
}

// DiscountTotal sums the monthly reduction of every applied discount
func (r QuoteResult) DiscountTotal() int64 {
	var total int64
	for _, d := range r.Discounts {
		total += d.Amount()
	}
	return total
}

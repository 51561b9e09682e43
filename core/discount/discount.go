// Package discount applies bundle discounts to per-service results.
// Discounts act on the pre-rounding monthly value and round afterwards.
package discount

import (
	"github.com/shopspring/decimal"

	"quote-pricing/core/pricing"
	"quote-pricing/core/pricing/primitives"
	"quote-pricing/core/types"
	"quote-pricing/internal/errors"
)

// Rule is a discount rule over per-service results
type Rule interface {
	// Name identifies the rule in applied-discount records
	Name() string

	// Target is the only service the rule may change
	Target() types.Service

	// Applies reports whether the rule fires for these results
	Applies(fees []types.ServiceFee) bool

	// Discount rewrites the target fee
	Discount(fee types.ServiceFee) (types.ServiceFee, error)
}

// BundleRule discounts one service's monthly fee when every required service is selected
type BundleRule struct {
	RuleName string
	Requires []types.Service
	Service  types.Service
	Rate     decimal.Decimal // fraction taken off, 0.5 = 50%
	Rounding primitives.Rounding
}

// Name implements Rule
func (r BundleRule) Name() string { return r.RuleName }

// Target implements Rule
func (r BundleRule) Target() types.Service { return r.Service }

// Applies implements Rule
func (r BundleRule) Applies(fees []types.ServiceFee) bool {
	for _, s := range r.Requires {
		if !selected(fees, s) {
			return false
		}
	}
	return true
}

// Discount implements Rule. The monthly fee is recomputed from the unrounded
// scaled value, then rounded with the rule's own strategy.
func (r BundleRule) Discount(fee types.ServiceFee) (types.ServiceFee, error) {
	if !r.Rounding.Defined() {
		return fee, errors.Misconfigured("bundles", "bundle %q has no rounding", r.RuleName)
	}

	discounted := fee.Breakdown.Scaled.Mul(decimal.NewFromInt(1).Sub(r.Rate))
	after := r.Rounding.RoundToInt(discounted)

	fee.MonthlyFee = after
	fee.Breakdown.MonthlyFeeAfterDiscount = after
	fee.Breakdown.DiscountRule = r.RuleName
	fee.Breakdown.DiscountRate = r.Rate
	fee.Breakdown.DiscountedScaled = discounted
	fee.Breakdown.DiscountRounding = r.Rounding.String()
	return fee, nil
}

// FromTable returns the bundle rules a constants table declares, in table order
func FromTable(table *pricing.Table) []Rule {
	rules := make([]Rule, 0, len(table.Bundles))
	for _, b := range table.Bundles {
		rules = append(rules, BundleRule{
			RuleName: b.Name,
			Requires: b.Requires,
			Service:  b.Target,
			Rate:     b.Rate,
			Rounding: b.Rounding,
		})
	}
	return rules
}

// Apply runs rules in order over a copy of fees. A service receives at most
// one discount; the first rule that fires for it wins. Setup fees and line
// items are never touched.
func Apply(fees []types.ServiceFee, rules []Rule) ([]types.ServiceFee, []types.AppliedDiscount, error) {
	out := make([]types.ServiceFee, len(fees))
	copy(out, fees)

	var applied []types.AppliedDiscount
	for _, rule := range rules {
		if !rule.Applies(out) {
			continue
		}
		i := indexOf(out, rule.Target())
		if i < 0 || out[i].Discounted() {
			continue
		}

		before := out[i].MonthlyFee
		discounted, err := rule.Discount(out[i])
		if err != nil {
			return nil, nil, err
		}
		out[i] = discounted

		applied = append(applied, types.AppliedDiscount{
			Rule:     rule.Name(),
			Target:   rule.Target(),
			Rate:     discounted.Breakdown.DiscountRate,
			Before:   before,
			After:    discounted.MonthlyFee,
			Rounding: discounted.Breakdown.DiscountRounding,
		})
	}
	return out, applied, nil
}

func selected(fees []types.ServiceFee, s types.Service) bool {
	i := indexOf(fees, s)
	return i >= 0 && fees[i].Selected
}

func indexOf(fees []types.ServiceFee, s types.Service) int {
	for i, fee := range fees {
		if fee.Service == s {
			return i
		}
	}
	return -1
}

// Package calculator implements one fee calculator per billable service family.
// Calculators are pure: they read the input and the constants table and nothing else.
package calculator

import (
	"github.com/shopspring/decimal"

	"quote-pricing/core/pricing"
	"quote-pricing/core/pricing/primitives"
	"quote-pricing/core/types"
	"quote-pricing/internal/errors"
)

// Calculator computes the fee of one service family
type Calculator interface {
	// Service returns the family this calculator prices
	Service() types.Service

	// Selected reports whether the input selects the service
	Selected(in types.QuoteInput) bool

	// Validate checks the parameters the service needs while selected
	Validate(in types.QuoteInput, cal types.CalendarContext) error

	// Calculate returns an all-zero fee when the service is not selected
	Calculate(in types.QuoteInput, table *pricing.Table, cal types.CalendarContext) (types.ServiceFee, error)
}

// Set is an ordered list of calculators
type Set []Calculator

// Standard returns the calculators for every service family in result order.
// Rounding strategies are chosen here so each one is visible at construction.
func Standard(table *pricing.Table) Set {
	return Set{
		NewBookkeeping(primitives.NearestUnit, primitives.NearestUnit),
		NewTaas(table.Taas.Rounding),
		NewPayroll(primitives.NearestUnit),
		NewAP(),
		NewAR(),
		NewCleanup(primitives.NearestUnit),
		NewPriorYearFilings(),
		NewCFOAdvisory(primitives.NearestUnit),
		NewAgentOfService(),
		NewEntityOptimization(),
	}
}

// Validate runs every selected calculator's parameter checks
func (s Set) Validate(in types.QuoteInput, cal types.CalendarContext) error {
	for _, c := range s {
		if !c.Selected(in) {
			continue
		}
		if err := c.Validate(in, cal); err != nil {
			return err
		}
	}
	return nil
}

// CalculateAll runs every calculator and returns one fee per service, selected or not
func (s Set) CalculateAll(in types.QuoteInput, table *pricing.Table, cal types.CalendarContext) ([]types.ServiceFee, error) {
	fees := make([]types.ServiceFee, 0, len(s))
	for _, c := range s {
		fee, err := c.Calculate(in, table, cal)
		if err != nil {
			return nil, errors.Wrapf(errors.TypeOf(err), err, "calculate %s", c.Service())
		}
		fees = append(fees, fee)
	}
	return fees, nil
}

// Disabled is the fee of a service that is not selected
func Disabled(s types.Service) types.ServiceFee {
	return types.ServiceFee{Service: s}
}

// scaling holds the multipliers shared by bookkeeping and tax-as-a-service
type scaling struct {
	revenue  decimal.Decimal
	industry decimal.Decimal
}

func resolveScaling(in types.QuoteInput, table *pricing.Table) (scaling, error) {
	revenue, err := table.RevenueMultipliers.Resolve(in.RevenueRange)
	if err != nil {
		return scaling{}, err
	}
	industry, err := table.Industries.Resolve(in.Industry)
	if err != nil {
		return scaling{}, err
	}
	return scaling{revenue: revenue, industry: industry.Monthly}, nil
}

func (s scaling) apply(raw decimal.Decimal) decimal.Decimal {
	return raw.Mul(s.revenue).Mul(s.industry)
}

func sumComponents(base decimal.Decimal, components []types.Component) decimal.Decimal {
	total := base
	for _, c := range components {
		total = total.Add(c.Amount)
	}
	return total
}

func count(n int) decimal.Decimal {
	return decimal.NewFromInt(int64(n))
}

func requireValue(field string, ok bool) error {
	if !ok {
		return errors.InvalidInput(field, "is required when the service is selected")
	}
	return nil
}

func requireAtLeastOne(field string, n int) error {
	if n < 1 {
		return errors.InvalidInput(field, "must be at least 1 when the service is selected, got %d", n)
	}
	return nil
}

// firstError returns the first non-nil error
func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

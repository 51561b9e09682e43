package calculator

import (
	"github.com/shopspring/decimal"

	"quote-pricing/core/pricing"
	"quote-pricing/core/pricing/primitives"
	"quote-pricing/core/types"
	"quote-pricing/internal/errors"
)

// Bookkeeping prices recurring bookkeeping:
// (base + transaction surcharge) * revenue multiplier * industry monthly multiplier.
// Its setup fee scales with the calendar month the engagement starts in.
type Bookkeeping struct {
	monthly primitives.Rounding
	setup   primitives.Rounding
}

// NewBookkeeping creates the bookkeeping calculator
func NewBookkeeping(monthly, setup primitives.Rounding) *Bookkeeping {
	return &Bookkeeping{monthly: monthly, setup: setup}
}

// Service implements Calculator
func (c *Bookkeeping) Service() types.Service { return types.ServiceBookkeeping }

// Selected implements Calculator
func (c *Bookkeeping) Selected(in types.QuoteInput) bool { return in.ServiceMonthlyBookkeeping }

// Validate implements Calculator
func (c *Bookkeeping) Validate(in types.QuoteInput, cal types.CalendarContext) error {
	if cal.Month < 1 || cal.Month > 12 {
		return errors.InvalidInput("calendarMonth", "must be between 1 and 12 when bookkeeping is selected, got %d", cal.Month)
	}
	return firstError(
		requireValue("monthlyRevenueRange", in.RevenueRange != ""),
		requireValue("monthlyTransactions", in.TransactionBand != ""),
		requireValue("industry", in.Industry != ""),
	)
}

// Calculate implements Calculator
func (c *Bookkeeping) Calculate(in types.QuoteInput, table *pricing.Table, cal types.CalendarContext) (types.ServiceFee, error) {
	if !c.Selected(in) {
		return Disabled(c.Service()), nil
	}
	if err := c.Validate(in, cal); err != nil {
		return types.ServiceFee{}, err
	}

	surcharge, err := table.TransactionSurcharges.Resolve(in.TransactionBand)
	if err != nil {
		return types.ServiceFee{}, err
	}
	scale, err := resolveScaling(in, table)
	if err != nil {
		return types.ServiceFee{}, err
	}

	base := table.Bookkeeping.BaseMonthlyFee
	components := []types.Component{{Name: "transaction_surcharge", Amount: surcharge}}
	raw := sumComponents(base, components)
	scaled := scale.apply(raw)
	monthly := c.monthly.RoundToInt(scaled)

	factor := table.Bookkeeping.SetupMonthFactor
	setupRaw := decimal.NewFromInt(monthly).Mul(count(cal.Month)).Mul(factor)
	setup := c.setup.RoundToInt(setupRaw)

	return types.ServiceFee{
		Service:    c.Service(),
		Selected:   true,
		MonthlyFee: monthly,
		SetupFee:   setup,
		Breakdown: types.FeeBreakdown{
			BaseFee:                  base,
			Surcharges:               components,
			RawBeforeMultipliers:     raw,
			RevenueMultiplier:        scale.revenue,
			IndustryMultiplier:       scale.industry,
			Scaled:                   scaled,
			Rounding:                 c.monthly.String(),
			MonthlyFeeBeforeDiscount: monthly,
			MonthlyFeeAfterDiscount:  monthly,
			SetupMonth:               cal.Month,
			SetupFactor:              factor,
			SetupBeforeRounding:      setupRaw,
		},
	}, nil
}

// Taas prices tax-as-a-service:
// (base + entity, state, international, owner and 1040 surcharges) * revenue * industry,
// rounded with the coarse strategy it is given.
type Taas struct {
	rounding primitives.Rounding
}

// NewTaas creates the tax-as-a-service calculator
func NewTaas(rounding primitives.Rounding) *Taas {
	return &Taas{rounding: rounding}
}

// Service implements Calculator
func (c *Taas) Service() types.Service { return types.ServiceTaas }

// Selected implements Calculator
func (c *Taas) Selected(in types.QuoteInput) bool { return in.ServiceTaasMonthly }

// Validate implements Calculator
func (c *Taas) Validate(in types.QuoteInput, _ types.CalendarContext) error {
	return firstError(
		requireValue("monthlyRevenueRange", in.RevenueRange != ""),
		requireValue("industry", in.Industry != ""),
	)
}

// Calculate implements Calculator
func (c *Taas) Calculate(in types.QuoteInput, table *pricing.Table, cal types.CalendarContext) (types.ServiceFee, error) {
	if !c.Selected(in) {
		return Disabled(c.Service()), nil
	}
	if err := c.Validate(in, cal); err != nil {
		return types.ServiceFee{}, err
	}
	if !c.rounding.Defined() {
		return types.ServiceFee{}, errors.Misconfigured("taas", "rounding_multiple must be positive")
	}

	rates := table.Taas
	entities, err := rates.EntityBands.Resolve(in.NumEntities)
	if err != nil {
		return types.ServiceFee{}, err
	}
	owners, err := rates.OwnerBands.Resolve(in.NumBusinessOwners)
	if err != nil {
		return types.ServiceFee{}, err
	}
	scale, err := resolveScaling(in, table)
	if err != nil {
		return types.ServiceFee{}, err
	}

	components := []types.Component{
		{Name: "entities", Amount: entities},
		{Name: "states", Amount: rates.States.Apply(in.StatesFiled)},
		{Name: "owners", Amount: owners},
	}
	if in.InternationalFiling {
		components = append(components, types.Component{Name: "international_filing", Amount: rates.InternationalFiling})
	}
	if in.Include1040s {
		filers := max(in.NumBusinessOwners, 1)
		components = append(components, types.Component{
			Name:   "personal_returns",
			Amount: rates.PersonalReturnPerOwner.Mul(count(filers)),
		})
	}

	base := rates.BaseMonthlyFee
	raw := sumComponents(base, components)
	scaled := scale.apply(raw)
	monthly := c.rounding.RoundToInt(scaled)

	return types.ServiceFee{
		Service:    c.Service(),
		Selected:   true,
		MonthlyFee: monthly,
		Breakdown: types.FeeBreakdown{
			BaseFee:                  base,
			Surcharges:               components,
			RawBeforeMultipliers:     raw,
			RevenueMultiplier:        scale.revenue,
			IndustryMultiplier:       scale.industry,
			Scaled:                   scaled,
			Rounding:                 c.rounding.String(),
			MonthlyFeeBeforeDiscount: monthly,
			MonthlyFeeAfterDiscount:  monthly,
		},
	}, nil
}

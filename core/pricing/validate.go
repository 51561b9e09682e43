package pricing

import (
	stderrors "errors"
	"slices"

	"github.com/shopspring/decimal"

	"quote-pricing/core/pricing/primitives"
	"quote-pricing/core/types"
	"quote-pricing/internal/errors"
)

// Validate checks that every code-declared enum value has an entry and that
// every entry is usable. All problems are reported together.
func (t *Table) Validate() error {
	v := &validator{}

	if t.Version == "" {
		v.add(errors.Misconfigured("version", "version is required"))
	}

	v.nonNegative("bookkeeping", "base_monthly_fee", t.Bookkeeping.BaseMonthlyFee)
	v.nonNegative("bookkeeping", "setup_month_factor", t.Bookkeeping.SetupMonthFactor)

	for _, r := range types.RevenueRanges {
		if m, err := t.RevenueMultipliers.Resolve(r); err != nil {
			v.add(err)
		} else {
			v.positive(TableRevenueMultipliers, string(r), m)
		}
	}
	for _, b := range types.TransactionBands {
		if s, err := t.TransactionSurcharges.Resolve(b); err != nil {
			v.add(err)
		} else {
			v.nonNegative(TableTransactionSurcharges, string(b), s)
		}
	}

	if t.Industries.Len() == 0 {
		v.add(errors.Misconfigured(TableIndustries, "at least one industry is required"))
	}
	for _, name := range t.Industries.Keys() {
		ind, _ := t.Industries.Resolve(name)
		v.positive(TableIndustries, name+".monthly", ind.Monthly)
		v.positive(TableIndustries, name+".cleanup", ind.Cleanup)
	}

	v.nonNegative("taas", "base_monthly_fee", t.Taas.BaseMonthlyFee)
	v.bands(t.Taas.EntityBands)
	v.step("taas.states", t.Taas.States)
	v.nonNegative("taas", "international_filing", t.Taas.InternationalFiling)
	v.bands(t.Taas.OwnerBands)
	v.nonNegative("taas", "personal_return_per_owner", t.Taas.PersonalReturnPerOwner)
	if !t.Taas.Rounding.Defined() {
		v.add(errors.Misconfigured("taas", "rounding_multiple must be positive"))
	}

	for _, tier := range types.ServiceTiers {
		if fee, err := t.ServiceTiers.Resolve(tier); err != nil {
			v.add(err)
		} else {
			v.nonNegative(TableServiceTiers, string(tier), fee)
		}
	}
	v.nonNegative("qbo", "monthly_fee", t.QBOMonthlyFee)

	v.step("payroll.employees", t.Payroll.Employees)
	v.step("payroll.states", t.Payroll.States)

	for _, tier := range types.ProcessingTiers {
		for _, band := range types.VolumeBands {
			if fee, err := t.ProcessingFee(tier, band); err != nil {
				v.add(err)
			} else {
				v.nonNegative(TableAPAR+"."+string(tier), string(band), fee)
			}
		}
	}

	v.nonNegative("cleanup", "per_month", t.Cleanup.PerMonth)
	v.nonNegative("cleanup", "minimum_fee", t.Cleanup.MinimumFee)
	v.nonNegative("prior_year_filings", "per_filing", t.PriorYearFilingFee)
	v.nonNegative("cfo_advisory", "pay_as_you_go_fee", t.CFOAdvisory.PayAsYouGoFee)
	v.nonNegative("cfo_advisory", "retainer_hourly_rate", t.CFOAdvisory.RetainerHourlyRate)
	v.step("agent_of_service", t.AgentOfService)
	v.nonNegative("entity_optimization", "fee", t.EntityOptimizationFee)

	v.nonNegative("commission", "setup_rate", t.Commission.SetupRate)
	v.nonNegative("commission", "first_month_rate", t.Commission.FirstMonthRate)
	v.nonNegative("commission", "recurring_rate", t.Commission.RecurringRate)
	if t.Commission.RecurringMonths < 0 {
		v.add(errors.Misconfigured("commission", "recurring_months must not be negative"))
	}

	seen := make(map[string]bool, len(t.Bundles))
	for _, b := range t.Bundles {
		v.bundle(b, seen)
	}

	return v.err()
}

type validator struct {
	errs []error
}

func (v *validator) add(err error) {
	v.errs = append(v.errs, err)
}

func (v *validator) err() error {
	return stderrors.Join(v.errs...)
}

func (v *validator) nonNegative(table, key string, d decimal.Decimal) {
	if d.IsNegative() {
		v.add(errors.Misconfigured(table, "%s must not be negative, got %s", key, d))
	}
}

func (v *validator) positive(table, key string, d decimal.Decimal) {
	if !d.IsPositive() {
		v.add(errors.Misconfigured(table, "%s must be positive, got %s", key, d))
	}
}

func (v *validator) step(table string, s primitives.Step) {
	v.nonNegative(table, "base", s.Base)
	v.nonNegative(table, "per_unit", s.PerUnit)
	if s.Included < 0 || s.UnitSize < 0 {
		v.add(errors.Misconfigured(table, "included and unit_size must not be negative"))
	}
}

func (v *validator) bands(b Bands) {
	list := b.List()
	if len(list) == 0 {
		v.add(errors.Misconfigured(b.Name(), "at least one band is required"))
		return
	}
	prev := 0
	for i, band := range list {
		v.nonNegative(b.Name(), "amount", band.Amount)
		last := i == len(list)-1
		if band.UpTo == 0 && !last {
			v.add(errors.Misconfigured(b.Name(), "only the last band may be unbounded"))
		}
		if band.UpTo != 0 && last {
			v.add(errors.Misconfigured(b.Name(), "last band must be unbounded (up_to = 0)"))
		}
		if band.UpTo < 0 || (band.UpTo != 0 && i > 0 && band.UpTo <= prev) {
			v.add(errors.Misconfigured(b.Name(), "bands must be strictly ascending, got %d after %d", band.UpTo, prev))
		}
		prev = band.UpTo
	}
}

func (v *validator) bundle(b Bundle, seen map[string]bool) {
	table := "bundles"
	if b.Name == "" {
		v.add(errors.Misconfigured(table, "bundle name is required"))
	} else if seen[b.Name] {
		v.add(errors.Misconfigured(table, "duplicate bundle %q", b.Name))
	}
	seen[b.Name] = true

	if len(b.Requires) == 0 {
		v.add(errors.Misconfigured(table, "bundle %q requires no services", b.Name))
	}
	for _, s := range b.Requires {
		if !slices.Contains(types.Services, s) {
			v.add(errors.Misconfigured(table, "bundle %q requires unknown service %q", b.Name, s))
		}
	}
	if !slices.Contains(b.Requires, b.Target) {
		v.add(errors.Misconfigured(table, "bundle %q target %q must be one of its required services", b.Name, b.Target))
	}
	if !b.Rate.IsPositive() || b.Rate.GreaterThan(decimal.NewFromInt(1)) {
		v.add(errors.Misconfigured(table, "bundle %q rate must be in (0, 1], got %s", b.Name, b.Rate))
	}
	if !b.Rounding.Defined() {
		v.add(errors.Misconfigured(table, "bundle %q rounding_multiple must be positive", b.Name))
	}
}

package calculator

import (
	"github.com/shopspring/decimal"

	"quote-pricing/core/pricing"
	"quote-pricing/core/pricing/primitives"
	"quote-pricing/core/types"
)

// Payroll prices payroll as two step functions: employees and states
type Payroll struct {
	rounding primitives.Rounding
}

// NewPayroll creates the payroll calculator
func NewPayroll(rounding primitives.Rounding) *Payroll {
	return &Payroll{rounding: rounding}
}

func (c *Payroll) Service() types.Service                                 { return types.ServicePayroll }
func (c *Payroll) Selected(in types.QuoteInput) bool                      { return in.ServicePayrollService }
func (c *Payroll) Validate(types.QuoteInput, types.CalendarContext) error { return nil }

func (c *Payroll) Calculate(in types.QuoteInput, table *pricing.Table, _ types.CalendarContext) (types.ServiceFee, error) {
	if !c.Selected(in) {
		return Disabled(c.Service()), nil
	}

	rates := table.Payroll
	base := rates.Employees.Base.Add(rates.States.Base)
	components := []types.Component{
		{Name: "extra_employees", Amount: rates.Employees.PerUnit.Mul(count(rates.Employees.Extra(in.PayrollEmployeeCount)))},
		{Name: "extra_states", Amount: rates.States.PerUnit.Mul(count(rates.States.Extra(in.PayrollStateCount)))},
	}
	raw := sumComponents(base, components)
	return monthlyFee(c.Service(), base, components, raw, c.rounding), nil
}

// processing prices AP or AR from the tier x volume band table
type processing struct {
	service  types.Service
	selected func(types.QuoteInput) bool
	params   func(types.QuoteInput) (types.ProcessingTier, types.VolumeBand)
	fields   [2]string
}

// NewAP creates the accounts payable calculator
func NewAP() Calculator {
	return &processing{
		service:  types.ServiceAP,
		selected: func(in types.QuoteInput) bool { return in.ServiceAPService },
		params: func(in types.QuoteInput) (types.ProcessingTier, types.VolumeBand) {
			return in.APServiceTier, in.APVendorBillsBand
		},
		fields: [2]string{"apServiceTier", "apVendorBillsBand"},
	}
}

// NewAR creates the accounts receivable calculator
func NewAR() Calculator {
	return &processing{
		service:  types.ServiceAR,
		selected: func(in types.QuoteInput) bool { return in.ServiceARService },
		params: func(in types.QuoteInput) (types.ProcessingTier, types.VolumeBand) {
			return in.ARServiceTier, in.ARCustomerInvoicesBand
		},
		fields: [2]string{"arServiceTier", "arCustomerInvoicesBand"},
	}
}

func (c *processing) Service() types.Service            { return c.service }
func (c *processing) Selected(in types.QuoteInput) bool { return c.selected(in) }

func (c *processing) Validate(in types.QuoteInput, _ types.CalendarContext) error {
	tier, band := c.params(in)
	return firstError(
		requireValue(c.fields[0], tier != ""),
		requireValue(c.fields[1], band != ""),
	)
}

func (c *processing) Calculate(in types.QuoteInput, table *pricing.Table, cal types.CalendarContext) (types.ServiceFee, error) {
	if !c.Selected(in) {
		return Disabled(c.Service()), nil
	}
	if err := c.Validate(in, cal); err != nil {
		return types.ServiceFee{}, err
	}

	tier, band := c.params(in)
	fee, err := table.ProcessingFee(tier, band)
	if err != nil {
		return types.ServiceFee{}, err
	}
	return monthlyFee(c.service, fee, nil, fee, primitives.NearestUnit), nil
}

// Cleanup prices a one-time catch-up project by months behind and industry
type Cleanup struct {
	rounding primitives.Rounding
}

// NewCleanup creates the cleanup project calculator
func NewCleanup(rounding primitives.Rounding) *Cleanup {
	return &Cleanup{rounding: rounding}
}

func (c *Cleanup) Service() types.Service            { return types.ServiceCleanup }
func (c *Cleanup) Selected(in types.QuoteInput) bool { return in.ServiceCleanupProjects }

func (c *Cleanup) Validate(in types.QuoteInput, _ types.CalendarContext) error {
	return firstError(
		requireAtLeastOne("cleanupMonths", in.CleanupMonths),
		requireValue("industry", in.Industry != ""),
	)
}

func (c *Cleanup) Calculate(in types.QuoteInput, table *pricing.Table, cal types.CalendarContext) (types.ServiceFee, error) {
	if !c.Selected(in) {
		return Disabled(c.Service()), nil
	}
	if err := c.Validate(in, cal); err != nil {
		return types.ServiceFee{}, err
	}

	industry, err := table.Industries.Resolve(in.Industry)
	if err != nil {
		return types.ServiceFee{}, err
	}

	raw := table.Cleanup.PerMonth.Mul(count(in.CleanupMonths))
	scaled := raw.Mul(industry.Cleanup)
	setup := c.rounding.RoundToInt(scaled)
	if minimum := table.Cleanup.MinimumFee.IntPart(); setup < minimum {
		setup = minimum
	}

	return types.ServiceFee{
		Service:  c.Service(),
		Selected: true,
		SetupFee: setup,
		Breakdown: types.FeeBreakdown{
			BaseFee:              table.Cleanup.PerMonth,
			RawBeforeMultipliers: raw,
			IndustryMultiplier:   industry.Cleanup,
			SetupBeforeRounding:  scaled,
			Rounding:             c.rounding.String(),
		},
	}, nil
}

// PriorYearFilings prices a flat one-time charge per catch-up filing year
type PriorYearFilings struct{}

// NewPriorYearFilings creates the prior-year filings calculator
func NewPriorYearFilings() *PriorYearFilings { return &PriorYearFilings{} }

func (c *PriorYearFilings) Service() types.Service            { return types.ServicePriorYearFilings }
func (c *PriorYearFilings) Selected(in types.QuoteInput) bool { return in.ServicePriorYearFilings }

func (c *PriorYearFilings) Validate(in types.QuoteInput, _ types.CalendarContext) error {
	return requireAtLeastOne("priorYearFilings", in.PriorYearFilings)
}

func (c *PriorYearFilings) Calculate(in types.QuoteInput, table *pricing.Table, cal types.CalendarContext) (types.ServiceFee, error) {
	if !c.Selected(in) {
		return Disabled(c.Service()), nil
	}
	if err := c.Validate(in, cal); err != nil {
		return types.ServiceFee{}, err
	}
	raw := table.PriorYearFilingFee.Mul(count(in.PriorYearFilings))
	return oneTimeFee(c.Service(), table.PriorYearFilingFee, raw), nil
}

// CFOAdvisory prices advisory either as a one-time hour bundle or a monthly retainer
type CFOAdvisory struct {
	rounding primitives.Rounding
}

// NewCFOAdvisory creates the CFO advisory calculator
func NewCFOAdvisory(rounding primitives.Rounding) *CFOAdvisory {
	return &CFOAdvisory{rounding: rounding}
}

func (c *CFOAdvisory) Service() types.Service            { return types.ServiceCFOAdvisory }
func (c *CFOAdvisory) Selected(in types.QuoteInput) bool { return in.ServiceCFOAdvisory }

func (c *CFOAdvisory) Validate(in types.QuoteInput, _ types.CalendarContext) error {
	if err := requireValue("cfoAdvisoryType", in.CFOAdvisoryType != ""); err != nil {
		return err
	}
	if in.CFOAdvisoryType == types.CFOMonthlyRetainer {
		return requireAtLeastOne("cfoAdvisoryHours", in.CFOAdvisoryHours)
	}
	return nil
}

func (c *CFOAdvisory) Calculate(in types.QuoteInput, table *pricing.Table, cal types.CalendarContext) (types.ServiceFee, error) {
	if !c.Selected(in) {
		return Disabled(c.Service()), nil
	}
	if err := c.Validate(in, cal); err != nil {
		return types.ServiceFee{}, err
	}

	rates := table.CFOAdvisory
	if in.CFOAdvisoryType == types.CFOMonthlyRetainer {
		raw := rates.RetainerHourlyRate.Mul(count(in.CFOAdvisoryHours))
		return monthlyFee(c.Service(), rates.RetainerHourlyRate, nil, raw, c.rounding), nil
	}
	return oneTimeFee(c.Service(), rates.PayAsYouGoFee, rates.PayAsYouGoFee), nil
}

// AgentOfService prices registered-agent coverage per state as a one-time charge
type AgentOfService struct{}

// NewAgentOfService creates the agent-of-service calculator
func NewAgentOfService() *AgentOfService { return &AgentOfService{} }

func (c *AgentOfService) Service() types.Service            { return types.ServiceAgentOfService }
func (c *AgentOfService) Selected(in types.QuoteInput) bool { return in.ServiceAgentOfService }

func (c *AgentOfService) Validate(in types.QuoteInput, _ types.CalendarContext) error {
	return requireAtLeastOne("agentOfServiceStates", in.AgentOfServiceStates)
}

func (c *AgentOfService) Calculate(in types.QuoteInput, table *pricing.Table, cal types.CalendarContext) (types.ServiceFee, error) {
	if !c.Selected(in) {
		return Disabled(c.Service()), nil
	}
	if err := c.Validate(in, cal); err != nil {
		return types.ServiceFee{}, err
	}
	raw := table.AgentOfService.Apply(in.AgentOfServiceStates)
	return oneTimeFee(c.Service(), table.AgentOfService.Base, raw), nil
}

// EntityOptimization prices a flat one-time entity structure review
type EntityOptimization struct{}

// NewEntityOptimization creates the entity optimization calculator
func NewEntityOptimization() *EntityOptimization { return &EntityOptimization{} }

func (c *EntityOptimization) Service() types.Service                                 { return types.ServiceEntityOptimization }
func (c *EntityOptimization) Selected(in types.QuoteInput) bool                      { return in.ServiceEntityOptimization }
func (c *EntityOptimization) Validate(types.QuoteInput, types.CalendarContext) error { return nil }

func (c *EntityOptimization) Calculate(in types.QuoteInput, table *pricing.Table, _ types.CalendarContext) (types.ServiceFee, error) {
	if !c.Selected(in) {
		return Disabled(c.Service()), nil
	}
	return oneTimeFee(c.Service(), table.EntityOptimizationFee, table.EntityOptimizationFee), nil
}

func monthlyFee(s types.Service, base decimal.Decimal, components []types.Component, raw decimal.Decimal, r primitives.Rounding) types.ServiceFee {
	monthly := r.RoundToInt(raw)
	return types.ServiceFee{
		Service:    s,
		Selected:   true,
		MonthlyFee: monthly,
		Breakdown: types.FeeBreakdown{
			BaseFee:                  base,
			Surcharges:               components,
			RawBeforeMultipliers:     raw,
			Scaled:                   raw,
			Rounding:                 r.String(),
			MonthlyFeeBeforeDiscount: monthly,
			MonthlyFeeAfterDiscount:  monthly,
		},
	}
}

// oneTimeFee is for flat charges that are whole units by construction
func oneTimeFee(s types.Service, base, raw decimal.Decimal) types.ServiceFee {
	return types.ServiceFee{
		Service:  s,
		Selected: true,
		SetupFee: primitives.NearestUnit.RoundToInt(raw),
		Breakdown: types.FeeBreakdown{
			BaseFee:              base,
			RawBeforeMultipliers: raw,
			SetupBeforeRounding:  raw,
			Rounding:             primitives.NearestUnit.String(),
		},
	}
}

package types

import "time"

// QuoteInput is one quote draft. Every service is an independent toggle;
// a service's parameters only take effect, and are only validated, while its flag is set.
type QuoteInput struct {
	// Volume
	RevenueRange    RevenueRange    `json:"monthlyRevenueRange,omitempty" validate:"omitempty,enum"`
	TransactionBand TransactionBand `json:"monthlyTransactions,omitempty" validate:"omitempty,enum"`
	Industry        string          `json:"industry,omitempty"`

	// Recurring bookkeeping
	ServiceMonthlyBookkeeping bool `json:"serviceMonthlyBookkeeping"`

	// Tax as a service
	ServiceTaasMonthly  bool `json:"serviceTaasMonthly"`
	NumEntities         int  `json:"numEntities" validate:"min=0"`
	StatesFiled         int  `json:"statesFiled" validate:"min=0"`
	InternationalFiling bool `json:"internationalFiling"`
	NumBusinessOwners   int  `json:"numBusinessOwners" validate:"min=0"`
	Include1040s        bool `json:"include1040s"`

	// Flat line items
	ServiceTier     ServiceTier `json:"serviceTier,omitempty" validate:"omitempty,enum"`
	QBOSubscription bool        `json:"qboSubscription"`

	// Payroll
	ServicePayrollService bool `json:"servicePayrollService"`
	PayrollEmployeeCount  int  `json:"payrollEmployeeCount" validate:"min=0"`
	PayrollStateCount     int  `json:"payrollStateCount" validate:"min=0"`

	// Accounts payable
	ServiceAPService  bool           `json:"serviceApService"`
	APServiceTier     ProcessingTier `json:"apServiceTier,omitempty" validate:"omitempty,enum"`
	APVendorBillsBand VolumeBand     `json:"apVendorBillsBand,omitempty" validate:"omitempty,enum"`

	// Accounts receivable
	ServiceARService       bool           `json:"serviceArService"`
	ARServiceTier          ProcessingTier `json:"arServiceTier,omitempty" validate:"omitempty,enum"`
	ARCustomerInvoicesBand VolumeBand     `json:"arCustomerInvoicesBand,omitempty" validate:"omitempty,enum"`

	// One-time projects
	ServiceCleanupProjects    bool `json:"serviceCleanupProjects"`
	CleanupMonths             int  `json:"cleanupMonths" validate:"min=0"`
	ServicePriorYearFilings   bool `json:"servicePriorYearFilings"`
	PriorYearFilings          int  `json:"priorYearFilings" validate:"min=0"`
	ServiceAgentOfService     bool `json:"serviceAgentOfService"`
	AgentOfServiceStates      int  `json:"agentOfServiceStates" validate:"min=0"`
	ServiceEntityOptimization bool `json:"serviceEntityOptimization"`

	// CFO advisory
	ServiceCFOAdvisory bool            `json:"serviceCfoAdvisory"`
	CFOAdvisoryType    CFOAdvisoryType `json:"cfoAdvisoryType,omitempty" validate:"omitempty,enum"`
	CFOAdvisoryHours   int             `json:"cfoAdvisoryHours" validate:"min=0"`
}

// CalendarContext carries the point in time a quote is priced for.
// Month is 1..12; zero means the caller supplied no calendar.
type CalendarContext struct {
	Month int `json:"month"`
}

// CalendarFromTime builds a calendar context from a wall-clock time
func CalendarFromTime(t time.Time) CalendarContext {
	return CalendarContext{Month: int(t.Month())}
}

// IsSet reports whether a month was supplied
func (c CalendarContext) IsSet() bool {
	return c.Month != 0
}

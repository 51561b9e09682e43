package pricing

// Document is the serialized form of a constants table.
// Loaders decode HCL, YAML or JSON into it; Build turns it into a Table.
type Document struct {
	Version       string `json:"version" yaml:"version"`
	EffectiveDate string `json:"effective_date,omitempty" yaml:"effective_date,omitempty"`
	Currency      string `json:"currency,omitempty" yaml:"currency,omitempty"`

	Bookkeeping           BookkeepingDoc         `json:"bookkeeping" yaml:"bookkeeping"`
	RevenueMultipliers    map[string]float64     `json:"revenue_multipliers" yaml:"revenue_multipliers"`
	TransactionSurcharges map[string]float64     `json:"transaction_surcharges" yaml:"transaction_surcharges"`
	Industries            map[string]IndustryDoc `json:"industries" yaml:"industries"`

	Taas         TaasDoc            `json:"taas" yaml:"taas"`
	ServiceTiers map[string]float64 `json:"service_tiers" yaml:"service_tiers"`
	QBO          QBODoc             `json:"qbo" yaml:"qbo"`
	Payroll      PayrollDoc         `json:"payroll" yaml:"payroll"`

	// Tier -> volume band -> monthly fee, shared by AP and AR
	APAR map[string]map[string]float64 `json:"ap_ar" yaml:"ap_ar"`

	Cleanup            CleanupDoc            `json:"cleanup" yaml:"cleanup"`
	PriorYearFilings   PriorYearFilingsDoc   `json:"prior_year_filings" yaml:"prior_year_filings"`
	CFOAdvisory        CFOAdvisoryDoc        `json:"cfo_advisory" yaml:"cfo_advisory"`
	AgentOfService     StepDoc               `json:"agent_of_service" yaml:"agent_of_service"`
	EntityOptimization EntityOptimizationDoc `json:"entity_optimization" yaml:"entity_optimization"`

	Commission CommissionDoc `json:"commission" yaml:"commission"`
	Bundles    []BundleDoc   `json:"bundles" yaml:"bundles"`
}

// BookkeepingDoc holds recurring bookkeeping constants
type BookkeepingDoc struct {
	BaseMonthlyFee   float64 `json:"base_monthly_fee" yaml:"base_monthly_fee"`
	SetupMonthFactor float64 `json:"setup_month_factor" yaml:"setup_month_factor"`
}

// IndustryDoc holds the multipliers for one industry
type IndustryDoc struct {
	Monthly float64 `json:"monthly" yaml:"monthly"`
	Cleanup float64 `json:"cleanup" yaml:"cleanup"`
}

// BandDoc is one count band; UpTo 0 means unbounded
type BandDoc struct {
	UpTo   int     `json:"up_to" yaml:"up_to"`
	Amount float64 `json:"amount" yaml:"amount"`
}

// StepDoc is a base fee plus a per-block increment beyond an included allowance
type StepDoc struct {
	Base     float64 `json:"base" yaml:"base"`
	Included int     `json:"included" yaml:"included"`
	PerUnit  float64 `json:"per_unit" yaml:"per_unit"`
	UnitSize int     `json:"unit_size,omitempty" yaml:"unit_size,omitempty"`
}

// TaasDoc holds tax-as-a-service constants
type TaasDoc struct {
	BaseMonthlyFee         float64   `json:"base_monthly_fee" yaml:"base_monthly_fee"`
	EntityBands            []BandDoc `json:"entity_bands" yaml:"entity_bands"`
	States                 StepDoc   `json:"states" yaml:"states"`
	InternationalFiling    float64   `json:"international_filing" yaml:"international_filing"`
	OwnerBands             []BandDoc `json:"owner_bands" yaml:"owner_bands"`
	PersonalReturnPerOwner float64   `json:"personal_return_per_owner" yaml:"personal_return_per_owner"`
	RoundingMultiple       int64     `json:"rounding_multiple" yaml:"rounding_multiple"`
}

// QBODoc holds the managed subscription line item
type QBODoc struct {
	MonthlyFee float64 `json:"monthly_fee" yaml:"monthly_fee"`
}

// PayrollDoc holds payroll constants
type PayrollDoc struct {
	Employees StepDoc `json:"employees" yaml:"employees"`
	States    StepDoc `json:"states" yaml:"states"`
}

// CleanupDoc holds cleanup project constants
type CleanupDoc struct {
	PerMonth   float64 `json:"per_month" yaml:"per_month"`
	MinimumFee float64 `json:"minimum_fee" yaml:"minimum_fee"`
}

// PriorYearFilingsDoc holds prior-year filing constants
type PriorYearFilingsDoc struct {
	PerFiling float64 `json:"per_filing" yaml:"per_filing"`
}

// CFOAdvisoryDoc holds CFO advisory constants
type CFOAdvisoryDoc struct {
	PayAsYouGoFee      float64 `json:"pay_as_you_go_fee" yaml:"pay_as_you_go_fee"`
	RetainerHourlyRate float64 `json:"retainer_hourly_rate" yaml:"retainer_hourly_rate"`
}

// EntityOptimizationDoc holds the entity optimization fee
type EntityOptimizationDoc struct {
	Fee float64 `json:"fee" yaml:"fee"`
}

// CommissionDoc holds commission projection rates
type CommissionDoc struct {
	SetupRate       float64 `json:"setup_rate" yaml:"setup_rate"`
	FirstMonthRate  float64 `json:"first_month_rate" yaml:"first_month_rate"`
	RecurringRate   float64 `json:"recurring_rate" yaml:"recurring_rate"`
	RecurringMonths int     `json:"recurring_months" yaml:"recurring_months"`
}

// BundleDoc declares a bundle discount rule
type BundleDoc struct {
	Name             string   `json:"name" yaml:"name"`
	Requires         []string `json:"requires" yaml:"requires"`
	Target           string   `json:"target" yaml:"target"`
	Rate             float64  `json:"rate" yaml:"rate"`
	RoundingMultiple int64    `json:"rounding_multiple" yaml:"rounding_multiple"`
}

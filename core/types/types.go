// Package types defines the data model shared by every quote-pricing stage.
package types

// RevenueRange is the banded monthly revenue of the client
type RevenueRange string

const (
	RevenueUnder10K  RevenueRange = "<10K"
	Revenue10Kto25K  RevenueRange = "10K-25K"
	Revenue25Kto75K  RevenueRange = "25K-75K"
	Revenue75Kto250K RevenueRange = "75K-250K"
	Revenue250Kto1M  RevenueRange = "250K-1M"
	RevenueOver1M    RevenueRange = "1M+"
)

// RevenueRanges lists every accepted revenue range in ordinal order
var RevenueRanges = []RevenueRange{
	RevenueUnder10K, Revenue10Kto25K, Revenue25Kto75K, Revenue75Kto250K, Revenue250Kto1M, RevenueOver1M,
}

// TransactionBand is the banded monthly transaction volume
type TransactionBand string

const (
	TransactionsUnder100   TransactionBand = "<100"
	Transactions100to300   TransactionBand = "100-300"
	Transactions300to600   TransactionBand = "300-600"
	Transactions600to1000  TransactionBand = "600-1000"
	Transactions1000to2000 TransactionBand = "1000-2000"
	TransactionsOver2000   TransactionBand = "2000+"
)

// TransactionBands lists every accepted transaction band in ordinal order
var TransactionBands = []TransactionBand{
	TransactionsUnder100, Transactions100to300, Transactions300to600,
	Transactions600to1000, Transactions1000to2000, TransactionsOver2000,
}

// ServiceTier is the support tier attached to the engagement
type ServiceTier string

const (
	TierAutomated ServiceTier = "Automated"
	TierGuided    ServiceTier = "Guided"
	TierConcierge ServiceTier = "Concierge"
)

// ServiceTiers lists every accepted service tier
var ServiceTiers = []ServiceTier{TierAutomated, TierGuided, TierConcierge}

// ProcessingTier selects the AP/AR service level
type ProcessingTier string

const (
	ProcessingLite     ProcessingTier = "lite"
	ProcessingAdvanced ProcessingTier = "advanced"
)

// ProcessingTiers lists every accepted AP/AR tier
var ProcessingTiers = []ProcessingTier{ProcessingLite, ProcessingAdvanced}

// VolumeBand is the banded count of vendor bills (AP) or customer invoices (AR) per month
type VolumeBand string

const (
	Volume0to25    VolumeBand = "0-25"
	Volume26to100  VolumeBand = "26-100"
	Volume101to250 VolumeBand = "101-250"
	VolumeOver250  VolumeBand = "251+"
)

// VolumeBands lists every accepted AP/AR volume band in ordinal order
var VolumeBands = []VolumeBand{Volume0to25, Volume26to100, Volume101to250, VolumeOver250}

// CFOAdvisoryType selects how CFO advisory is billed
type CFOAdvisoryType string

const (
	CFOPayAsYouGo      CFOAdvisoryType = "pay_as_you_go"
	CFOMonthlyRetainer CFOAdvisoryType = "monthly_retainer"
)

// CFOAdvisoryTypes lists every accepted CFO advisory billing type
var CFOAdvisoryTypes = []CFOAdvisoryType{CFOPayAsYouGo, CFOMonthlyRetainer}

// Service identifies a billable service family or flat line item
type Service string

const (
	ServiceBookkeeping        Service = "bookkeeping"
	ServiceTaas               Service = "taas"
	ServicePayroll            Service = "payroll"
	ServiceAP                 Service = "ap"
	ServiceAR                 Service = "ar"
	ServiceCleanup            Service = "cleanup"
	ServicePriorYearFilings   Service = "prior_year_filings"
	ServiceCFOAdvisory        Service = "cfo_advisory"
	ServiceAgentOfService     Service = "agent_of_service"
	ServiceEntityOptimization Service = "entity_optimization"
	LineItemServiceTier       Service = "service_tier"
	LineItemQBO               Service = "qbo_subscription"
)

func contains[T comparable](set []T, v T) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

// Valid reports whether r is a declared revenue range
func (r RevenueRange) Valid() bool { return contains(RevenueRanges, r) }

// Valid reports whether b is a declared transaction band
func (b TransactionBand) Valid() bool { return contains(TransactionBands, b) }

// Valid reports whether t is a declared service tier
func (t ServiceTier) Valid() bool { return contains(ServiceTiers, t) }

// Valid reports whether t is a declared AP/AR tier
func (t ProcessingTier) Valid() bool { return contains(ProcessingTiers, t) }

// Valid reports whether b is a declared AP/AR volume band
func (b VolumeBand) Valid() bool { return contains(VolumeBands, b) }

// Valid reports whether t is a declared CFO advisory billing type
func (t CFOAdvisoryType) Valid() bool { return contains(CFOAdvisoryTypes, t) }

// Services lists the calculated service families in result order
var Services = []Service{
	ServiceBookkeeping, ServiceTaas, ServicePayroll, ServiceAP, ServiceAR,
	ServiceCleanup, ServicePriorYearFilings, ServiceCFOAdvisory,
	ServiceAgentOfService, ServiceEntityOptimization,
}

package output

import "quote-pricing/core/types"

// DisplayPricing is the flat view of a quote consumed by persistence,
// display and CRM layers. Every value is a whole currency unit.
type DisplayPricing struct {
	BookkeepingMonthlyFee  int64 `json:"bookkeepingMonthlyFee"`
	BookkeepingSetupFee    int64 `json:"bookkeepingSetupFee"`
	TaasMonthlyFee         int64 `json:"taasMonthlyFee"`
	ServiceTierFee         int64 `json:"serviceTierFee"`
	PayrollFee             int64 `json:"payrollFee"`
	APFee                  int64 `json:"apFee"`
	ARFee                  int64 `json:"arFee"`
	QBOFee                 int64 `json:"qboFee"`
	CleanupProjectFee      int64 `json:"cleanupProjectFee"`
	PriorYearFilingsFee    int64 `json:"priorYearFilingsFee"`
	CFOAdvisoryMonthlyFee  int64 `json:"cfoAdvisoryMonthlyFee"`
	CFOAdvisorySetupFee    int64 `json:"cfoAdvisorySetupFee"`
	AgentOfServiceFee      int64 `json:"agentOfServiceFee"`
	EntityOptimizationFee  int64 `json:"entityOptimizationFee"`
	PackageDiscountMonthly int64 `json:"packageDiscountMonthly"`
	TotalMonthlyFee        int64 `json:"totalMonthlyFee"`
	TotalSetupFee          int64 `json:"totalSetupFee"`
}

// ToDisplayPricing flattens a quote result into named fee fields
func ToDisplayPricing(r types.QuoteResult) DisplayPricing {
	monthly := func(s types.Service) int64 {
		fee, _ := r.Service(s)
		return fee.MonthlyFee
	}
	setup := func(s types.Service) int64 {
		fee, _ := r.Service(s)
		return fee.SetupFee
	}
	item := func(s types.Service) int64 {
		li, _ := r.LineItem(s)
		return li.MonthlyFee
	}

	return DisplayPricing{
		BookkeepingMonthlyFee:  monthly(types.ServiceBookkeeping),
		BookkeepingSetupFee:    setup(types.ServiceBookkeeping),
		TaasMonthlyFee:         monthly(types.ServiceTaas),
		ServiceTierFee:         item(types.LineItemServiceTier),
		PayrollFee:             monthly(types.ServicePayroll),
		APFee:                  monthly(types.ServiceAP),
		ARFee:                  monthly(types.ServiceAR),
		QBOFee:                 item(types.LineItemQBO),
		CleanupProjectFee:      setup(types.ServiceCleanup),
		PriorYearFilingsFee:    setup(types.ServicePriorYearFilings),
		CFOAdvisoryMonthlyFee:  monthly(types.ServiceCFOAdvisory),
		CFOAdvisorySetupFee:    setup(types.ServiceCFOAdvisory),
		AgentOfServiceFee:      setup(types.ServiceAgentOfService),
		EntityOptimizationFee:  setup(types.ServiceEntityOptimization),
		PackageDiscountMonthly: r.DiscountTotal(),
		TotalMonthlyFee:        r.Combined.MonthlyFee,
		TotalSetupFee:          r.Combined.SetupFee,
	}
}

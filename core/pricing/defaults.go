package pricing

// DefaultVersion is the version of the built-in constants table
const DefaultVersion = "2025.1"

// DefaultDocument returns the built-in constants table document.
// The shipped configs/pricing.hcl and configs/pricing.yaml carry the same values.
func DefaultDocument() Document {
	return Document{
		Version:       DefaultVersion,
		EffectiveDate: "2025-01-01",
		Currency:      "USD",
		Bookkeeping: BookkeepingDoc{
			BaseMonthlyFee:   150,
			SetupMonthFactor: 0.25,
		},
		RevenueMultipliers: map[string]float64{
			"<10K":     1.0,
			"10K-25K":  1.2,
			"25K-75K":  2.2,
			"75K-250K": 3.5,
			"250K-1M":  5.0,
			"1M+":      7.0,
		},
		TransactionSurcharges: map[string]float64{
			"<100":      0,
			"100-300":   100,
			"300-600":   500,
			"600-1000":  800,
			"1000-2000": 1200,
			"2000+":     1600,
		},
		Industries: map[string]IndustryDoc{
			"Software/SaaS":           {Monthly: 1.0, Cleanup: 1.0},
			"Professional Services":   {Monthly: 1.0, Cleanup: 1.1},
			"Consulting":              {Monthly: 1.0, Cleanup: 1.05},
			"Healthcare/Medical":      {Monthly: 1.4, Cleanup: 1.3},
			"Real Estate":             {Monthly: 1.25, Cleanup: 1.05},
			"Property Management":     {Monthly: 1.3, Cleanup: 1.2},
			"E-commerce/Retail":       {Monthly: 1.35, Cleanup: 1.15},
			"Restaurant/Food Service": {Monthly: 1.6, Cleanup: 1.4},
			"Construction/Trades":     {Monthly: 1.5, Cleanup: 1.08},
			"Manufacturing":           {Monthly: 1.45, Cleanup: 1.25},
			"Nonprofit":               {Monthly: 1.2, Cleanup: 1.15},
			"Law Firm":                {Monthly: 1.3, Cleanup: 1.35},
			"Other":                   {Monthly: 1.2, Cleanup: 1.15},
		},
		Taas: TaasDoc{
			BaseMonthlyFee: 150,
			EntityBands: []BandDoc{
				{UpTo: 1, Amount: 0},
				{UpTo: 2, Amount: 50},
				{UpTo: 5, Amount: 75},
				{UpTo: 0, Amount: 150},
			},
			States:              StepDoc{Base: 0, Included: 1, PerUnit: 50},
			InternationalFiling: 200,
			OwnerBands: []BandDoc{
				{UpTo: 1, Amount: 0},
				{UpTo: 3, Amount: 25},
				{UpTo: 5, Amount: 50},
				{UpTo: 0, Amount: 100},
			},
			PersonalReturnPerOwner: 25,
			RoundingMultiple:       25,
		},
		ServiceTiers: map[string]float64{
			"Automated": 0,
			"Guided":    79,
			"Concierge": 249,
		},
		QBO: QBODoc{MonthlyFee: 60},
		Payroll: PayrollDoc{
			Employees: StepDoc{Base: 100, Included: 3, PerUnit: 12},
			States:    StepDoc{Base: 0, Included: 1, PerUnit: 50},
		},
		APAR: map[string]map[string]float64{
			"lite":     {"0-25": 150, "26-100": 300, "101-250": 600, "251+": 1000},
			"advanced": {"0-25": 375, "26-100": 750, "101-250": 1500, "251+": 2500},
		},
		Cleanup:            CleanupDoc{PerMonth: 100, MinimumFee: 0},
		PriorYearFilings:   PriorYearFilingsDoc{PerFiling: 1500},
		CFOAdvisory:        CFOAdvisoryDoc{PayAsYouGoFee: 1600, RetainerHourlyRate: 300},
		AgentOfService:     StepDoc{Base: 150, Included: 1, PerUnit: 150},
		EntityOptimization: EntityOptimizationDoc{Fee: 2500},
		Commission: CommissionDoc{
			SetupRate:       0.20,
			FirstMonthRate:  0.40,
			RecurringRate:   0.10,
			RecurringMonths: 11,
		},
		Bundles: []BundleDoc{
			{
				Name:             "bookkeeping_taas_bundle",
				Requires:         []string{"bookkeeping", "taas"},
				Target:           "bookkeeping",
				Rate:             0.5,
				RoundingMultiple: 25,
			},
		},
	}
}

// Default returns the built-in constants table
func Default() *Table {
	t, err := FromDocument(DefaultDocument())
	if err != nil {
		panic("built-in constants table is invalid: " + err.Error())
	}
	return t
}

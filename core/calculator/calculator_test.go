package calculator

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quote-pricing/core/pricing"
	"quote-pricing/core/pricing/primitives"
	"quote-pricing/core/types"
	"quote-pricing/internal/errors"
)

var june = types.CalendarContext{Month: 6}

func bookkeepingInput() types.QuoteInput {
	return types.QuoteInput{
		RevenueRange:              types.Revenue25Kto75K,
		TransactionBand:           types.Transactions100to300,
		Industry:                  "Professional Services",
		ServiceMonthlyBookkeeping: true,
	}
}

func TestBookkeeping(t *testing.T) {
	fee, err := NewBookkeeping(primitives.NearestUnit, primitives.NearestUnit).
		Calculate(bookkeepingInput(), pricing.Default(), june)
	require.NoError(t, err)

	assert.True(t, fee.Selected)
	assert.Equal(t, int64(550), fee.MonthlyFee)
	assert.Equal(t, int64(825), fee.SetupFee)
	assert.Equal(t, int64(550), fee.Breakdown.MonthlyFeeBeforeDiscount)
	assert.Equal(t, int64(550), fee.Breakdown.MonthlyFeeAfterDiscount)
	assert.True(t, fee.Breakdown.RawBeforeMultipliers.Equal(decimal.NewFromInt(250)))
	assert.True(t, fee.Breakdown.Scaled.Equal(decimal.NewFromInt(550)))
	assert.Equal(t, "nearest_unit", fee.Breakdown.Rounding)
}

func TestBookkeepingSetupScalesWithMonth(t *testing.T) {
	calc := NewBookkeeping(primitives.NearestUnit, primitives.NearestUnit)
	table := pricing.Default()

	jan, err := calc.Calculate(bookkeepingInput(), table, types.CalendarContext{Month: 1})
	require.NoError(t, err)
	dec, err := calc.Calculate(bookkeepingInput(), table, types.CalendarContext{Month: 12})
	require.NoError(t, err)

	assert.Equal(t, int64(138), jan.SetupFee) // 137.5 rounds half up
	assert.Equal(t, int64(1650), dec.SetupFee)
	assert.Equal(t, jan.MonthlyFee, dec.MonthlyFee)
}

func TestBookkeepingRequiresCalendarMonth(t *testing.T) {
	_, err := NewBookkeeping(primitives.NearestUnit, primitives.NearestUnit).
		Calculate(bookkeepingInput(), pricing.Default(), types.CalendarContext{})
	require.Error(t, err)
	assert.True(t, errors.IsInvalidInput(err))
	assert.Contains(t, err.Error(), "calendarMonth")
}

func TestTaasStandaloneRoundsUpToMultipleOf25(t *testing.T) {
	in := types.QuoteInput{
		RevenueRange:       types.Revenue10Kto25K,
		Industry:           "Software/SaaS",
		ServiceTaasMonthly: true,
	}
	table := pricing.Default()
	fee, err := NewTaas(table.Taas.Rounding).Calculate(in, table, types.CalendarContext{})
	require.NoError(t, err)

	assert.True(t, fee.Breakdown.Scaled.Equal(decimal.NewFromInt(180)))
	assert.Equal(t, int64(200), fee.MonthlyFee)
	assert.Equal(t, int64(0), fee.SetupFee)
	assert.Equal(t, "up_to_multiple_of_25", fee.Breakdown.Rounding)
}

func TestTaasSurcharges(t *testing.T) {
	in := types.QuoteInput{
		RevenueRange:        types.RevenueUnder10K,
		Industry:            "Healthcare/Medical",
		ServiceTaasMonthly:  true,
		NumEntities:         3,
		StatesFiled:         3,
		InternationalFiling: true,
		NumBusinessOwners:   2,
		Include1040s:        true,
	}
	table := pricing.Default()
	fee, err := NewTaas(table.Taas.Rounding).Calculate(in, table, types.CalendarContext{})
	require.NoError(t, err)

	// 150 + 75 entities + 100 states + 25 owners + 200 international + 50 personal returns
	assert.True(t, fee.Breakdown.RawBeforeMultipliers.Equal(decimal.NewFromInt(600)))
	assert.True(t, fee.Breakdown.Scaled.Equal(decimal.NewFromInt(840)))
	assert.Equal(t, int64(850), fee.MonthlyFee)
}

func TestDisabledServicesContributeNothing(t *testing.T) {
	in := types.QuoteInput{
		RevenueRange:           types.Revenue250Kto1M,
		TransactionBand:        types.TransactionsOver2000,
		Industry:               "Law Firm",
		NumEntities:            9,
		StatesFiled:            12,
		InternationalFiling:    true,
		NumBusinessOwners:      7,
		Include1040s:           true,
		PayrollEmployeeCount:   40,
		PayrollStateCount:      5,
		APServiceTier:          types.ProcessingAdvanced,
		APVendorBillsBand:      types.VolumeOver250,
		ARServiceTier:          types.ProcessingLite,
		ARCustomerInvoicesBand: types.Volume26to100,
		CleanupMonths:          12,
		PriorYearFilings:       3,
		AgentOfServiceStates:   4,
		CFOAdvisoryType:        types.CFOMonthlyRetainer,
		CFOAdvisoryHours:       10,
	}
	table := pricing.Default()

	for _, c := range Standard(table) {
		t.Run(string(c.Service()), func(t *testing.T) {
			fee, err := c.Calculate(in, table, types.CalendarContext{})
			require.NoError(t, err)
			assert.False(t, fee.Selected)
			assert.Equal(t, int64(0), fee.MonthlyFee)
			assert.Equal(t, int64(0), fee.SetupFee)
		})
	}
}

func TestAddOns(t *testing.T) {
	table := pricing.Default()
	tests := []struct {
		name        string
		calc        Calculator
		in          types.QuoteInput
		wantMonthly int64
		wantSetup   int64
	}{
		{
			name:        "payroll",
			calc:        NewPayroll(primitives.NearestUnit),
			in:          types.QuoteInput{ServicePayrollService: true, PayrollEmployeeCount: 10, PayrollStateCount: 2},
			wantMonthly: 234,
		},
		{
			name:        "payroll within allowance",
			calc:        NewPayroll(primitives.NearestUnit),
			in:          types.QuoteInput{ServicePayrollService: true, PayrollEmployeeCount: 2, PayrollStateCount: 1},
			wantMonthly: 100,
		},
		{
			name:        "ap advanced",
			calc:        NewAP(),
			in:          types.QuoteInput{ServiceAPService: true, APServiceTier: types.ProcessingAdvanced, APVendorBillsBand: types.Volume26to100},
			wantMonthly: 750,
		},
		{
			name:        "ar lite",
			calc:        NewAR(),
			in:          types.QuoteInput{ServiceARService: true, ARServiceTier: types.ProcessingLite, ARCustomerInvoicesBand: types.Volume0to25},
			wantMonthly: 150,
		},
		{
			name:      "cleanup",
			calc:      NewCleanup(primitives.NearestUnit),
			in:        types.QuoteInput{ServiceCleanupProjects: true, CleanupMonths: 6, Industry: "Restaurant/Food Service"},
			wantSetup: 840,
		},
		{
			name:      "prior year filings",
			calc:      NewPriorYearFilings(),
			in:        types.QuoteInput{ServicePriorYearFilings: true, PriorYearFilings: 2},
			wantSetup: 3000,
		},
		{
			name:      "cfo pay as you go",
			calc:      NewCFOAdvisory(primitives.NearestUnit),
			in:        types.QuoteInput{ServiceCFOAdvisory: true, CFOAdvisoryType: types.CFOPayAsYouGo},
			wantSetup: 1600,
		},
		{
			name:        "cfo retainer",
			calc:        NewCFOAdvisory(primitives.NearestUnit),
			in:          types.QuoteInput{ServiceCFOAdvisory: true, CFOAdvisoryType: types.CFOMonthlyRetainer, CFOAdvisoryHours: 4},
			wantMonthly: 1200,
		},
		{
			name:      "agent of service",
			calc:      NewAgentOfService(),
			in:        types.QuoteInput{ServiceAgentOfService: true, AgentOfServiceStates: 3},
			wantSetup: 450,
		},
		{
			name:      "entity optimization",
			calc:      NewEntityOptimization(),
			in:        types.QuoteInput{ServiceEntityOptimization: true},
			wantSetup: 2500,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fee, err := tt.calc.Calculate(tt.in, table, types.CalendarContext{})
			require.NoError(t, err)
			assert.True(t, fee.Selected)
			assert.Equal(t, tt.wantMonthly, fee.MonthlyFee)
			assert.Equal(t, tt.wantSetup, fee.SetupFee)
		})
	}
}

func TestSelectedServiceMissingParameters(t *testing.T) {
	table := pricing.Default()
	tests := []struct {
		name  string
		calc  Calculator
		in    types.QuoteInput
		field string
	}{
		{"ap tier", NewAP(), types.QuoteInput{ServiceAPService: true, APVendorBillsBand: types.Volume0to25}, "apServiceTier"},
		{"ar band", NewAR(), types.QuoteInput{ServiceARService: true, ARServiceTier: types.ProcessingLite}, "arCustomerInvoicesBand"},
		{"cleanup months", NewCleanup(primitives.NearestUnit), types.QuoteInput{ServiceCleanupProjects: true, Industry: "Other"}, "cleanupMonths"},
		{"cfo type", NewCFOAdvisory(primitives.NearestUnit), types.QuoteInput{ServiceCFOAdvisory: true}, "cfoAdvisoryType"},
		{"cfo hours", NewCFOAdvisory(primitives.NearestUnit), types.QuoteInput{ServiceCFOAdvisory: true, CFOAdvisoryType: types.CFOMonthlyRetainer}, "cfoAdvisoryHours"},
		{"agent states", NewAgentOfService(), types.QuoteInput{ServiceAgentOfService: true}, "agentOfServiceStates"},
		{"taas revenue", NewTaas(table.Taas.Rounding), types.QuoteInput{ServiceTaasMonthly: true, Industry: "Other"}, "monthlyRevenueRange"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.calc.Calculate(tt.in, table, june)
			require.Error(t, err)
			assert.True(t, errors.IsInvalidInput(err))
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestMissingTableEntriesAreConfigurationErrors(t *testing.T) {
	doc := pricing.DefaultDocument()
	delete(doc.TransactionSurcharges, "100-300")
	table := pricing.Build(doc)

	_, err := NewBookkeeping(primitives.NearestUnit, primitives.NearestUnit).Calculate(bookkeepingInput(), table, june)
	require.Error(t, err)
	assert.True(t, errors.IsConfiguration(err))

	in := bookkeepingInput()
	in.TransactionBand = types.TransactionsUnder100
	in.Industry = "Aerospace"
	_, err = NewBookkeeping(primitives.NearestUnit, primitives.NearestUnit).Calculate(in, table, june)
	require.Error(t, err)
	assert.True(t, errors.IsConfiguration(err))
	assert.Contains(t, err.Error(), "Aerospace")
}

func TestTaasWithoutRoundingIsConfigurationError(t *testing.T) {
	in := types.QuoteInput{RevenueRange: types.RevenueUnder10K, Industry: "Other", ServiceTaasMonthly: true}
	_, err := NewTaas(primitives.Rounding{}).Calculate(in, pricing.Default(), june)
	require.Error(t, err)
	assert.True(t, errors.IsConfiguration(err))
}

func TestLineItems(t *testing.T) {
	table := pricing.Default()

	items, err := LineItems(types.QuoteInput{ServiceTier: types.TierGuided, QBOSubscription: true}, table)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, types.LineItemServiceTier, items[0].Item)
	assert.Equal(t, int64(79), items[0].MonthlyFee)
	assert.Equal(t, types.LineItemQBO, items[1].Item)
	assert.Equal(t, int64(60), items[1].MonthlyFee)

	items, err = LineItems(types.QuoteInput{}, table)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestCalculateAllKeepsServiceOrder(t *testing.T) {
	table := pricing.Default()
	fees, err := Standard(table).CalculateAll(bookkeepingInput(), table, june)
	require.NoError(t, err)
	require.Len(t, fees, len(types.Services))
	for i, fee := range fees {
		assert.Equal(t, types.Services[i], fee.Service)
	}
}

func TestCalculateAllKeepsErrorKind(t *testing.T) {
	table := pricing.Default()
	in := bookkeepingInput()
	in.Industry = "Aerospace"

	_, err := Standard(table).CalculateAll(in, table, june)
	require.Error(t, err)
	assert.True(t, errors.IsConfiguration(err))
	assert.Contains(t, err.Error(), "calculate bookkeeping")
}

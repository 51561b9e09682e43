package pricing

import (
	"github.com/shopspring/decimal"

	"quote-pricing/core/determinism"
	"quote-pricing/core/pricing/primitives"
	"quote-pricing/core/types"
)

// Table names used in configuration errors
const (
	TableRevenueMultipliers    = "revenue_multipliers"
	TableTransactionSurcharges = "transaction_surcharges"
	TableIndustries            = "industries"
	TableServiceTiers          = "service_tiers"
	TableAPAR                  = "ap_ar"
	TableTaasEntityBands       = "taas.entity_bands"
	TableTaasOwnerBands        = "taas.owner_bands"
)

// Table is an immutable, versioned constants table.
// Build it with FromDocument (validated) or Build (unvalidated).
type Table struct {
	Version       string
	EffectiveDate string
	Currency      string

	Bookkeeping           BookkeepingRates
	RevenueMultipliers    Lookup[types.RevenueRange, decimal.Decimal]
	TransactionSurcharges Lookup[types.TransactionBand, decimal.Decimal]
	Industries            Lookup[string, IndustryMultiplier]

	Taas          TaasRates
	ServiceTiers  Lookup[types.ServiceTier, decimal.Decimal]
	QBOMonthlyFee decimal.Decimal
	Payroll       PayrollRates
	APAR          Lookup[types.ProcessingTier, Lookup[types.VolumeBand, decimal.Decimal]]

	Cleanup               CleanupRates
	PriorYearFilingFee    decimal.Decimal
	CFOAdvisory           CFOAdvisoryRates
	AgentOfService        primitives.Step
	EntityOptimizationFee decimal.Decimal

	Commission CommissionRates
	Bundles    []Bundle

	doc  Document
	hash determinism.ContentHash
}

// BookkeepingRates holds recurring bookkeeping constants
type BookkeepingRates struct {
	BaseMonthlyFee   decimal.Decimal
	SetupMonthFactor decimal.Decimal
}

// IndustryMultiplier scales fees for an industry
type IndustryMultiplier struct {
	Monthly decimal.Decimal
	Cleanup decimal.Decimal
}

// TaasRates holds tax-as-a-service constants
type TaasRates struct {
	BaseMonthlyFee         decimal.Decimal
	EntityBands            Bands
	States                 primitives.Step
	InternationalFiling    decimal.Decimal
	OwnerBands             Bands
	PersonalReturnPerOwner decimal.Decimal
	Rounding               primitives.Rounding
}

// PayrollRates holds payroll step functions
type PayrollRates struct {
	Employees primitives.Step
	States    primitives.Step
}

// CleanupRates holds cleanup project constants
type CleanupRates struct {
	PerMonth   decimal.Decimal
	MinimumFee decimal.Decimal
}

// CFOAdvisoryRates holds CFO advisory constants
type CFOAdvisoryRates struct {
	PayAsYouGoFee      decimal.Decimal
	RetainerHourlyRate decimal.Decimal
}

// CommissionRates holds commission projection rates
type CommissionRates struct {
	SetupRate       decimal.Decimal
	FirstMonthRate  decimal.Decimal
	RecurringRate   decimal.Decimal
	RecurringMonths int
}

// Bundle is a discount rule declared by the table
type Bundle struct {
	Name     string
	Requires []types.Service
	Target   types.Service
	Rate     decimal.Decimal
	Rounding primitives.Rounding
}

// FromDocument builds and validates a table
func FromDocument(doc Document) (*Table, error) {
	t := Build(doc)
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Build converts a document into a table without validating it.
// Missing entries surface as configuration errors at lookup time.
func Build(doc Document) *Table {
	t := &Table{
		Version:       doc.Version,
		EffectiveDate: doc.EffectiveDate,
		Currency:      doc.Currency,
		Bookkeeping: BookkeepingRates{
			BaseMonthlyFee:   dec(doc.Bookkeeping.BaseMonthlyFee),
			SetupMonthFactor: dec(doc.Bookkeeping.SetupMonthFactor),
		},
		RevenueMultipliers:    NewLookup(TableRevenueMultipliers, decimalMap[types.RevenueRange](doc.RevenueMultipliers)),
		TransactionSurcharges: NewLookup(TableTransactionSurcharges, decimalMap[types.TransactionBand](doc.TransactionSurcharges)),
		Taas: TaasRates{
			BaseMonthlyFee:         dec(doc.Taas.BaseMonthlyFee),
			EntityBands:            NewBands(TableTaasEntityBands, bands(doc.Taas.EntityBands)),
			States:                 step(doc.Taas.States),
			InternationalFiling:    dec(doc.Taas.InternationalFiling),
			OwnerBands:             NewBands(TableTaasOwnerBands, bands(doc.Taas.OwnerBands)),
			PersonalReturnPerOwner: dec(doc.Taas.PersonalReturnPerOwner),
			Rounding:               rounding(doc.Taas.RoundingMultiple),
		},
		ServiceTiers:  NewLookup(TableServiceTiers, decimalMap[types.ServiceTier](doc.ServiceTiers)),
		QBOMonthlyFee: dec(doc.QBO.MonthlyFee),
		Payroll: PayrollRates{
			Employees: step(doc.Payroll.Employees),
			States:    step(doc.Payroll.States),
		},
		Cleanup: CleanupRates{
			PerMonth:   dec(doc.Cleanup.PerMonth),
			MinimumFee: dec(doc.Cleanup.MinimumFee),
		},
		PriorYearFilingFee: dec(doc.PriorYearFilings.PerFiling),
		CFOAdvisory: CFOAdvisoryRates{
			PayAsYouGoFee:      dec(doc.CFOAdvisory.PayAsYouGoFee),
			RetainerHourlyRate: dec(doc.CFOAdvisory.RetainerHourlyRate),
		},
		AgentOfService:        step(doc.AgentOfService),
		EntityOptimizationFee: dec(doc.EntityOptimization.Fee),
		Commission: CommissionRates{
			SetupRate:       dec(doc.Commission.SetupRate),
			FirstMonthRate:  dec(doc.Commission.FirstMonthRate),
			RecurringRate:   dec(doc.Commission.RecurringRate),
			RecurringMonths: doc.Commission.RecurringMonths,
		},
		doc: doc,
	}

	industries := make(map[string]IndustryMultiplier, len(doc.Industries))
	for name, ind := range doc.Industries {
		industries[name] = IndustryMultiplier{Monthly: dec(ind.Monthly), Cleanup: dec(ind.Cleanup)}
	}
	t.Industries = NewLookup(TableIndustries, industries)

	apar := make(map[types.ProcessingTier]Lookup[types.VolumeBand, decimal.Decimal], len(doc.APAR))
	for tier, fees := range doc.APAR {
		apar[types.ProcessingTier(tier)] = NewLookup(TableAPAR+"."+tier, decimalMap[types.VolumeBand](fees))
	}
	t.APAR = NewLookup(TableAPAR, apar)

	for _, b := range doc.Bundles {
		requires := make([]types.Service, len(b.Requires))
		for i, r := range b.Requires {
			requires[i] = types.Service(r)
		}
		t.Bundles = append(t.Bundles, Bundle{
			Name:     b.Name,
			Requires: requires,
			Target:   types.Service(b.Target),
			Rate:     dec(b.Rate),
			Rounding: rounding(b.RoundingMultiple),
		})
	}

	// Hashing a document of plain maps, slices and numbers cannot fail
	t.hash, _ = determinism.HashJSON(doc)
	return t
}

// Hash returns the SHA-256 content hash of the table's document
func (t *Table) Hash() determinism.ContentHash {
	return t.hash
}

// Document returns the document the table was built from.
// The result shares maps with the table and must be treated as read-only.
func (t *Table) Document() Document {
	return t.doc
}

// ProcessingFee resolves the AP/AR fee for a tier and volume band
func (t *Table) ProcessingFee(tier types.ProcessingTier, band types.VolumeBand) (decimal.Decimal, error) {
	fees, err := t.APAR.Resolve(tier)
	if err != nil {
		return decimal.Zero, err
	}
	return fees.Resolve(band)
}

func dec(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f)
}

func decimalMap[K ~string](m map[string]float64) map[K]decimal.Decimal {
	out := make(map[K]decimal.Decimal, len(m))
	for k, v := range m {
		out[K(k)] = dec(v)
	}
	return out
}

func bands(docs []BandDoc) []primitives.Band {
	out := make([]primitives.Band, len(docs))
	for i, b := range docs {
		out[i] = primitives.Band{UpTo: b.UpTo, Amount: dec(b.Amount)}
	}
	return out
}

func step(doc StepDoc) primitives.Step {
	return primitives.Step{
		Base:     dec(doc.Base),
		Included: doc.Included,
		PerUnit:  dec(doc.PerUnit),
		UnitSize: doc.UnitSize,
	}
}

func rounding(multiple int64) primitives.Rounding {
	if multiple <= 0 {
		return primitives.Rounding{}
	}
	return primitives.UpToMultiple(multiple)
}

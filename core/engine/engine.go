// Package engine provides the quote-pricing engine.
// CLI and HTTP are thin wrappers around this engine.
//
// The engine is a pure function of (input, constants table, calendar month):
// it performs no I/O, reads no clock and holds no state between calls.
package engine

import (
	"context"

	validator "github.com/go-playground/validator/v10"

	"quote-pricing/core/calculator"
	"quote-pricing/core/discount"
	"quote-pricing/core/pricing"
	"quote-pricing/core/types"
	"quote-pricing/internal/errors"
)

// Quoter computes quotes. The engine implements it; caching wrappers decorate it.
type Quoter interface {
	Quote(ctx context.Context, in types.QuoteInput, table *pricing.Table, cal types.CalendarContext) (types.QuoteResult, error)
}

// Engine computes quote pricing. The zero value is not usable; use New.
type Engine struct {
	validate    *validator.Validate
	calculators func(*pricing.Table) calculator.Set
	rules       func(*pricing.Table) []discount.Rule
}

// Option configures an Engine
type Option func(*Engine)

// WithCalculators replaces the calculator set built for each table
func WithCalculators(fn func(*pricing.Table) calculator.Set) Option {
	return func(e *Engine) { e.calculators = fn }
}

// WithRules replaces the discount rules built for each table
func WithRules(fn func(*pricing.Table) []discount.Rule) Option {
	return func(e *Engine) { e.rules = fn }
}

// New creates an engine using the standard calculators and the table's bundle rules
func New(opts ...Option) *Engine {
	e := &Engine{
		validate:    newValidator(),
		calculators: calculator.Standard,
		rules:       discount.FromTable,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

var defaultEngine = New()

// CalculateQuotePricing prices one quote with the default engine
func CalculateQuotePricing(in types.QuoteInput, table *pricing.Table, cal types.CalendarContext) (types.QuoteResult, error) {
	return defaultEngine.Calculate(in, table, cal)
}

// Quote implements Quoter. The context is accepted for wrappers; the computation never blocks.
func (e *Engine) Quote(_ context.Context, in types.QuoteInput, table *pricing.Table, cal types.CalendarContext) (types.QuoteResult, error) {
	return e.Calculate(in, table, cal)
}

// Calculate runs the pipeline: validate, per-service fees, line items,
// discounts, aggregation. Results are built fresh on every call.
func (e *Engine) Calculate(in types.QuoteInput, table *pricing.Table, cal types.CalendarContext) (types.QuoteResult, error) {
	if table == nil {
		return types.QuoteResult{}, errors.Misconfigured("table", "no constants table supplied")
	}

	calcs := e.calculators(table)
	if err := e.Validate(in, cal, calcs); err != nil {
		return types.QuoteResult{}, err
	}

	fees, err := calcs.CalculateAll(in, table, cal)
	if err != nil {
		return types.QuoteResult{}, err
	}

	items, err := calculator.LineItems(in, table)
	if err != nil {
		return types.QuoteResult{}, errors.Wrap(errors.TypeOf(err), "calculate line items", err)
	}

	fees, applied, err := discount.Apply(fees, e.rules(table))
	if err != nil {
		return types.QuoteResult{}, errors.Wrap(errors.TypeOf(err), "apply discounts", err)
	}

	if items == nil {
		items = []types.LineItem{}
	}
	if applied == nil {
		applied = []types.AppliedDiscount{}
	}

	return types.QuoteResult{
		Services:      fees,
		LineItems:     items,
		Discounts:     applied,
		Combined:      Aggregate(fees, items),
		CalendarMonth: cal.Month,
		TableVersion:  table.Version,
	}, nil
}

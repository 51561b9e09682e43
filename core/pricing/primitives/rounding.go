// Package primitives - Centralized pricing math
// Calculators declare which rounding they use; the arithmetic lives here.
package primitives

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Rounding is a named strategy for turning a pre-rounding fee into whole currency units.
// Calculators receive it as a parameter so every rounding decision is visible at the call site.
type Rounding struct {
	name string
	fn   func(decimal.Decimal) decimal.Decimal
}

// NearestUnit rounds half away from zero to a whole unit (half-up for fees, which are never negative)
var NearestUnit = Rounding{
	name: "nearest_unit",
	fn: func(d decimal.Decimal) decimal.Decimal {
		return d.Round(0)
	},
}

// UpToMultiple rounds up to the next multiple of step. A value already on a multiple is unchanged.
func UpToMultiple(step int64) Rounding {
	if step <= 0 {
		panic(fmt.Sprintf("rounding step must be positive, got %d", step))
	}
	m := decimal.NewFromInt(step)
	return Rounding{
		name: fmt.Sprintf("up_to_multiple_of_%d", step),
		fn: func(d decimal.Decimal) decimal.Decimal {
			return d.Div(m).Ceil().Mul(m)
		},
	}
}

// Round applies the strategy
func (r Rounding) Round(d decimal.Decimal) decimal.Decimal {
	if r.fn == nil {
		panic("rounding strategy not set")
	}
	return r.fn(d)
}

// RoundToInt applies the strategy and returns whole currency units
func (r Rounding) RoundToInt(d decimal.Decimal) int64 {
	return r.Round(d).IntPart()
}

// Defined reports whether the strategy was constructed
func (r Rounding) Defined() bool {
	return r.fn != nil
}

// String returns the strategy name recorded in fee breakdowns
func (r Rounding) String() string {
	return r.name
}

// Package primitives - Banded and step pricing primitives
package primitives

import (
	"github.com/shopspring/decimal"
)

// Band is one level of a banded surcharge table
type Band struct {
	UpTo   int             // Inclusive upper limit (0 = unlimited)
	Amount decimal.Decimal // Flat amount charged for any count within the band
}

// BandAmount finds the band covering count.
// Bands are expected in ascending UpTo order with the unlimited band last.
func BandAmount(count int, bands []Band) (decimal.Decimal, bool) {
	for _, band := range bands {
		if band.UpTo == 0 || count <= band.UpTo {
			return band.Amount, true
		}
	}
	return decimal.Zero, false
}

// Step is a base fee plus an increment for every block of units beyond an included allowance
type Step struct {
	Base     decimal.Decimal // Charged whenever the step applies
	Included int             // Units covered by Base
	PerUnit  decimal.Decimal // Charged per block beyond Included
	UnitSize int             // Units per block (0 or 1 = per unit)
}

// Extra returns the number of charged blocks for units
func (s Step) Extra(units int) int {
	over := units - s.Included
	if over <= 0 {
		return 0
	}
	size := s.UnitSize
	if size <= 1 {
		return over
	}
	return (over + size - 1) / size
}

// Apply computes Base + Extra(units) * PerUnit
func (s Step) Apply(units int) decimal.Decimal {
	return s.Base.Add(s.PerUnit.Mul(decimal.NewFromInt(int64(s.Extra(units)))))
}

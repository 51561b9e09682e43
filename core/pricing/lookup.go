// Package pricing provides the versioned constants table and its typed lookups.
// A lookup never defaults: a missing key is a configuration error.
package pricing

import (
	"strconv"

	"github.com/shopspring/decimal"

	"quote-pricing/core/determinism"
	"quote-pricing/core/pricing/primitives"
	"quote-pricing/internal/errors"
)

// Lookup is a read-only enum-to-value mapping
type Lookup[K ~string, V any] struct {
	name    string
	entries map[K]V
}

// NewLookup copies entries into a named lookup
func NewLookup[K ~string, V any](name string, entries map[K]V) Lookup[K, V] {
	copied := make(map[K]V, len(entries))
	for k, v := range entries {
		copied[k] = v
	}
	return Lookup[K, V]{name: name, entries: copied}
}

// Resolve returns the value for key or a configuration error naming the table and key
func (l Lookup[K, V]) Resolve(key K) (V, error) {
	v, ok := l.entries[key]
	if !ok {
		var zero V
		return zero, errors.Configuration(l.name, string(key))
	}
	return v, nil
}

// Has reports whether key has an entry
func (l Lookup[K, V]) Has(key K) bool {
	_, ok := l.entries[key]
	return ok
}

// Keys returns every key in sorted order
func (l Lookup[K, V]) Keys() []K {
	return determinism.SortedKeys(l.entries)
}

// Name returns the table name used in errors
func (l Lookup[K, V]) Name() string {
	return l.name
}

// Len returns the number of entries
func (l Lookup[K, V]) Len() int {
	return len(l.entries)
}

// Bands is a named, ascending list of count bands ending with an unbounded band
type Bands struct {
	name  string
	bands []primitives.Band
}

// NewBands copies bands into a named band list
func NewBands(name string, bands []primitives.Band) Bands {
	copied := make([]primitives.Band, len(bands))
	copy(copied, bands)
	return Bands{name: name, bands: copied}
}

// Resolve returns the amount of the band covering count
func (b Bands) Resolve(count int) (decimal.Decimal, error) {
	amount, ok := primitives.BandAmount(count, b.bands)
	if !ok {
		return decimal.Zero, errors.Configuration(b.name, strconv.Itoa(count))
	}
	return amount, nil
}

// List returns a copy of the bands
func (b Bands) List() []primitives.Band {
	out := make([]primitives.Band, len(b.bands))
	copy(out, b.bands)
	return out
}

// Name returns the table name used in errors
func (b Bands) Name() string {
	return b.name
}

package pricing

import (
	"errors"
	"fmt"
	"sync"

	"quote-pricing/core/determinism"
)

// ErrImmutabilityViolation is returned when a registered version would be replaced by different content
var ErrImmutabilityViolation = errors.New("immutability violation: table version cannot be modified")

// ErrVersionNotFound is returned when no table is registered under a version
var ErrVersionNotFound = errors.New("constants table version not found")

// Registry holds validated tables by version. A version is write-once:
// registering it again is allowed only with identical content.
type Registry struct {
	mu     sync.RWMutex
	tables map[string]*Table
	active string
}

// NewRegistry creates a registry whose active table is t
func NewRegistry(t *Table) (*Registry, error) {
	r := &Registry{tables: make(map[string]*Table)}
	if err := r.Register(t); err != nil {
		return nil, err
	}
	r.active = t.Version
	return r, nil
}

// Register adds a table. Re-registering a version with the same hash is a no-op.
func (r *Registry) Register(t *Table) error {
	if err := t.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.tables[t.Version]; ok {
		if existing.Hash() != t.Hash() {
			return fmt.Errorf("%w: %s", ErrImmutabilityViolation, t.Version)
		}
		return nil
	}
	r.tables[t.Version] = t
	return nil
}

// Activate makes a registered version the default for Get("")
func (r *Registry) Activate(version string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tables[version]; !ok {
		return fmt.Errorf("%w: %s", ErrVersionNotFound, version)
	}
	r.active = version
	return nil
}

// Get returns the table for version, or the active table when version is empty
func (r *Registry) Get(version string) (*Table, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if version == "" {
		version = r.active
	}
	t, ok := r.tables[version]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrVersionNotFound, version)
	}
	return t, nil
}

// Active returns the active table
func (r *Registry) Active() *Table {
	t, _ := r.Get("")
	return t
}

// Versions lists registered versions in sorted order
func (r *Registry) Versions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return determinism.SortedKeys(r.tables)
}

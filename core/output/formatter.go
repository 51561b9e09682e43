// Package output provides output formatting for quotes.
// This package produces human and machine-readable outputs.
package output

import (
	"fmt"
	"io"
	"sort"
	"sync"

	"quote-pricing/core/types"
)

// Format represents output format type
type Format string

const (
	// FormatCLI is a human-readable CLI table
	FormatCLI Format = "cli"

	// FormatJSON is machine-readable JSON
	FormatJSON Format = "json"
)

// Formatter produces output in a specific format
type Formatter interface {
	// Format returns the format type
	Format() Format

	// Render produces output for the given report
	Render(w io.Writer, report *Report) error
}

// Report is everything a consumer needs to present one quote
type Report struct {
	// Result is the engine's combined pricing result
	Result types.QuoteResult `json:"result"`

	// Display is the flattened fee view
	Display DisplayPricing `json:"display"`

	// Commission is present when a projection was requested
	Commission *types.CommissionProjection `json:"commission,omitempty"`

	// Metadata contains execution context
	Metadata Metadata `json:"metadata"`
}

// Metadata contains execution context
type Metadata struct {
	// Timestamp is when the quote was computed
	Timestamp string `json:"timestamp"`

	// Duration is how long the quote took
	Duration string `json:"duration"`

	// InputHash is the cache key of the quote
	InputHash string `json:"input_hash,omitempty"`

	// TableVersion and TableHash identify the constants used
	TableVersion string `json:"table_version"`
	TableHash    string `json:"table_hash"`

	// Cached is true when the result came from a cache
	Cached bool `json:"cached"`

	// Version is the tool version
	Version string `json:"version"`
}

// NewReport builds a report with the display view filled in
func NewReport(result types.QuoteResult, commission *types.CommissionProjection, meta Metadata) *Report {
	return &Report{
		Result:     result,
		Display:    ToDisplayPricing(result),
		Commission: commission,
		Metadata:   meta,
	}
}

// Registry holds formatters by format
type Registry struct {
	mu         sync.RWMutex
	formatters map[Format]Formatter
}

// NewRegistry creates a registry with the built-in formatters
func NewRegistry() *Registry {
	r := &Registry{formatters: make(map[Format]Formatter)}
	_ = r.Register(&CLIFormatter{ShowDetails: true})
	_ = r.Register(&JSONFormatter{Indent: true})
	return r
}

// Register adds a formatter; a format may only be registered once
func (r *Registry) Register(f Formatter) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.formatters[f.Format()]; exists {
		return fmt.Errorf("formatter already registered: %s", f.Format())
	}
	r.formatters[f.Format()] = f
	return nil
}

// Get returns the formatter for a format
func (r *Registry) Get(format Format) (Formatter, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, ok := r.formatters[format]
	return f, ok
}

// Formats lists registered formats in sorted order
func (r *Registry) Formats() []Format {
	r.mu.RLock()
	defer r.mu.RUnlock()

	formats := make([]Format, 0, len(r.formatters))
	for f := range r.formatters {
		formats = append(formats, f)
	}
	sort.Slice(formats, func(i, j int) bool { return formats[i] < formats[j] })
	return formats
}

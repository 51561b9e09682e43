package api

import (
	"quote-pricing/core/output"
	"quote-pricing/core/pricing"
	"quote-pricing/core/types"
)

// QuoteRequest is the body of POST /api/v1/quotes
type QuoteRequest struct {
	Input types.QuoteInput `json:"input"`

	// CalendarMonth overrides the server clock's month (1-12)
	CalendarMonth *int `json:"calendar_month,omitempty"`

	// TableVersion selects a registered constants table; empty uses the active one
	TableVersion string `json:"table_version,omitempty"`

	// Commission adds the commission projection to the response
	Commission bool `json:"commission,omitempty"`
}

// QuoteResponse is a priced quote
type QuoteResponse struct {
	RequestID string `json:"request_id"`
	QuoteID   string `json:"quote_id"`
	output.Report
}

// CommissionRequest is the body of POST /api/v1/commission
type CommissionRequest struct {
	MonthlyFee   int64  `json:"monthly_fee" validate:"min=0"`
	SetupFee     int64  `json:"setup_fee" validate:"min=0"`
	TableVersion string `json:"table_version,omitempty"`
}

// CommissionResponse is a commission projection for given totals
type CommissionResponse struct {
	TableVersion string                     `json:"table_version"`
	Totals       types.Totals               `json:"totals"`
	Commission   types.CommissionProjection `json:"commission"`
}

// ConstantsResponse describes one registered constants table
type ConstantsResponse struct {
	Version  string           `json:"version"`
	Hash     string           `json:"hash"`
	Active   bool             `json:"active"`
	Document pricing.Document `json:"document"`
}

// VersionsResponse lists registered constants tables
type VersionsResponse struct {
	Active   string   `json:"active"`
	Versions []string `json:"versions"`
}

// ErrorResponse is the body of every non-2xx response
type ErrorResponse struct {
	Error     ErrorBody `json:"error"`
	RequestID string    `json:"request_id,omitempty"`
}

// ErrorBody carries a stable code and a human message
type ErrorBody struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Context map[string]any `json:"context,omitempty"`
}

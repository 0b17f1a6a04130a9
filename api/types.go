// Package api - API types for the quote service.
// The API is stateless: every request carries the full selection and is
// priced from scratch.
package api

import (
	"studio-quote/core/catalog"
	"studio-quote/core/estimator"
	"studio-quote/core/types"
)

// QuoteRequest is the input to POST /quote
type QuoteRequest struct {
	ServiceType string   `json:"service_type" validate:"required,service_type"`
	ProjectSize string   `json:"project_size,omitempty" validate:"max=32"`
	SongCount   int      `json:"song_count,omitempty"`
	AddOns      []string `json:"add_ons,omitempty" validate:"max=16,dive,max=32"`
}

// QuoteResponse is the output of POST /quote
type QuoteResponse struct {
	RequestID      string           `json:"request_id"`
	Quote          *estimator.Quote `json:"quote"`
	FormattedTotal string           `json:"formatted_total"`
	Summary        string           `json:"summary,omitempty"`

	// Adjustments lists what normalization changed in the request
	Adjustments []string `json:"adjustments,omitempty"`

	Metadata *ResponseMetadata `json:"metadata"`
}

// ResponseMetadata contains response metadata
type ResponseMetadata struct {
	InputHash     string `json:"input_hash"`
	EngineVersion string `json:"engine_version"`
	DurationMs    int64  `json:"duration_ms"`
}

// CatalogResponse is the output of GET /catalog
type CatalogResponse struct {
	RequestID string          `json:"request_id"`
	Currency  types.Currency  `json:"currency"`
	Services  []ServiceRates  `json:"services"`
	AddOns    []catalog.AddOn `json:"add_ons"`
}

// ServiceRates is the rate table of one service
type ServiceRates struct {
	Service     types.ServiceType `json:"service"`
	DisplayName string            `json:"display_name"`
	Rates       []RateEntry       `json:"rates"`
}

// RateEntry is a rate plus the song window it allows
type RateEntry struct {
	catalog.Rate
	Songs catalog.SongRange `json:"songs"`
}

// ErrorResponse is returned for every failed request
type ErrorResponse struct {
	RequestID string      `json:"request_id,omitempty"`
	Error     ErrorDetail `json:"error"`
}

// ErrorDetail describes a failure
type ErrorDetail struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

package tracing

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Attribute keys. HTTP keys follow OpenTelemetry semantic conventions;
// quote keys live under the "shipping.*" namespace.
const (
	// HTTP attributes
	AttrHTTPMethod     = "http.method"
	AttrHTTPRoute      = "http.route"
	AttrHTTPStatusCode = "http.status_code"
	AttrHTTPTarget     = "http.target"
	AttrUserAgent      = "http.user_agent"

	// Request attributes
	AttrRequestID = "shipping.request_id"

	// Quote attributes
	AttrDestination   = "shipping.destination"
	AttrExpress       = "shipping.express"
	AttrOutcome       = "shipping.outcome"
	AttrCalculationID = "shipping.calculation_id"
	AttrTotalPrice    = "shipping.total_price"
	AttrCurrency      = "shipping.currency"
	AttrAlertCount    = "shipping.alerts"

	// Rules attributes
	AttrRulesPath = "shipping.rules.path"

	// Error attributes
	AttrErrorMessage = "error.message"
)

// SetQuoteRequestAttributes records what was asked for and how it ended.
//
// Example:
//
//	SetQuoteRequestAttributes(span, "national", false, "success")
func SetQuoteRequestAttributes(span trace.Span, destination string, express bool, outcome string) {
	span.SetAttributes(
		attribute.String(AttrDestination, destination),
		attribute.Bool(AttrExpress, express),
		attribute.String(AttrOutcome, outcome),
	)
}

// SetQuoteResultAttributes records the result of a successful quote.
//
// Example:
//
//	SetQuoteResultAttributes(span, "calc_1a2b3c4d", 34.0, "EUR", 1)
func SetQuoteResultAttributes(span trace.Span, calculationID string, total float64, currency string, alerts int) {
	span.SetAttributes(
		attribute.String(AttrCalculationID, calculationID),
		attribute.Float64(AttrTotalPrice, total),
		attribute.String(AttrCurrency, currency),
		attribute.Int(AttrAlertCount, alerts),
	)
}

// SetRequestID sets the request ID attribute when one is known.
func SetRequestID(span trace.Span, requestID string) {
	if requestID != "" {
		span.SetAttributes(attribute.String(AttrRequestID, requestID))
	}
}

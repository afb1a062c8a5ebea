package logging

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/trace"
)

// Context keys for common log fields.
type contextKey string

const (
	// RequestIDKey is the context key for request IDs.
	RequestIDKey contextKey = "request_id"

	// CalculationIDKey is the context key for quote calculation IDs.
	CalculationIDKey contextKey = "calculation_id"
)

// WithRequestID adds a request ID to the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}

// GetRequestID retrieves the request ID from the context.
func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(RequestIDKey).(string); ok {
		return requestID
	}
	return ""
}

// WithCalculationID adds a calculation ID to the context.
func WithCalculationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, CalculationIDKey, id)
}

// GetCalculationID retrieves the calculation ID from the context.
func GetCalculationID(ctx context.Context) string {
	if id, ok := ctx.Value(CalculationIDKey).(string); ok {
		return id
	}
	return ""
}

// contextAttrs extracts common fields from context for logging. Trace and
// span IDs come from the span context stored in ctx, if it is valid.
func contextAttrs(ctx context.Context) []slog.Attr {
	var attrs []slog.Attr

	if requestID := GetRequestID(ctx); requestID != "" {
		attrs = append(attrs, slog.String("request_id", requestID))
	}
	if id := GetCalculationID(ctx); id != "" {
		attrs = append(attrs, slog.String("calculation_id", id))
	}
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		attrs = append(attrs,
			slog.String("trace_id", sc.TraceID().String()),
			slog.String("span_id", sc.SpanID().String()),
		)
	}

	return attrs
}

package tracing

import (
	"context"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"mercator-hq/shipquote/pkg/telemetry/logging"
)

// Propagator returns the configured text map propagator: W3C Trace Context
// and W3C Baggage once New has run with tracing enabled.
func Propagator() propagation.TextMapPropagator {
	return otel.GetTextMapPropagator()
}

// Extract extracts trace context from HTTP headers and returns a context
// with the extracted trace context.
//
// If no trace context is found in the headers, the original context is returned.
func Extract(ctx context.Context, headers http.Header) context.Context {
	return Propagator().Extract(ctx, propagation.HeaderCarrier(headers))
}

// Inject injects trace context into HTTP headers as traceparent and tracestate.
func Inject(ctx context.Context, headers http.Header) {
	Propagator().Inject(ctx, propagation.HeaderCarrier(headers))
}

// HTTPMiddleware returns middleware that continues any incoming trace, opens
// a server span per request and exposes its trace ID in the X-Trace-ID
// response header.
//
// route resolves the request to its route pattern (for a ServeMux,
// mux.Handler(r) returns it) and names the span, e.g. "POST /api/calculate".
// A nil route, or an empty result, names the span after the method alone.
//
// Usage:
//
//	handler = tracer.HTTPMiddleware(routeOf)(handler)
func (t *Tracer) HTTPMiddleware(route func(*http.Request) string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := Extract(r.Context(), r.Header)

			name := "HTTP " + r.Method
			attrs := []attribute.KeyValue{
				attribute.String(AttrHTTPMethod, r.Method),
				attribute.String(AttrHTTPTarget, r.URL.Path),
				attribute.String(AttrUserAgent, r.UserAgent()),
			}
			if route != nil {
				if pattern := route(r); pattern != "" {
					name = pattern
					attrs = append(attrs, attribute.String(AttrHTTPRoute, pattern))
				}
			}

			ctx, span := t.tracer.Start(ctx, name,
				trace.WithSpanKind(trace.SpanKindServer),
				trace.WithAttributes(attrs...),
			)
			defer span.End()
			SetRequestID(span, logging.GetRequestID(ctx))

			if sc := span.SpanContext(); sc.IsValid() {
				w.Header().Set("X-Trace-ID", sc.TraceID().String())
			}

			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r.WithContext(ctx))

			span.SetAttributes(attribute.Int(AttrHTTPStatusCode, rec.status))
			if rec.status >= http.StatusInternalServerError {
				span.SetStatus(codes.Error, http.StatusText(rec.status))
			}
		})
	}
}

// statusRecorder captures the status code written by the wrapped handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

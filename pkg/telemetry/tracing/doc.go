// Package tracing provides OpenTelemetry distributed tracing for the quote
// service.
//
// # Overview
//
// Spans are exported over OTLP/gRPC to the collector at
// telemetry.tracing.endpoint. When tracing is disabled, New returns a tracer
// backed by the noop provider, so instrumented code never checks a flag.
//
// # Trace Context Propagation
//
// W3C Trace Context (https://www.w3.org/TR/trace-context/) and W3C Baggage
// propagators are installed globally. HTTPMiddleware continues an incoming
// trace and echoes the trace ID in the X-Trace-ID response header:
//
//	traceparent: 00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01
//
// # Sampling Strategies
//
// Three sampling strategies are supported, each wrapped in ParentBased:
//   - always: Sample all traces (development/debugging)
//   - never: Sample no root traces
//   - ratio: Sample a percentage of traces (production)
//
// # Usage
//
//	tracer, err := tracing.New(&cfg.Telemetry.Tracing, version)
//	if err != nil {
//	    return err
//	}
//	defer tracer.Shutdown(context.Background())
//
//	quoter := shipping.NewQuoter(ruleSet, tracer.Tracer(), collector)
//	handler = tracer.HTTPMiddleware(routeOf)(handler)
//
// # Span Attributes
//
// Quote spans carry shipping.destination, shipping.express, shipping.outcome
// and, on success, shipping.calculation_id, shipping.total_price,
// shipping.currency and shipping.alerts. See attributes.go.
package tracing

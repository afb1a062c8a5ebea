// Package metrics provides Prometheus metrics collection for the quote service.
//
// # Metrics Categories
//
//   - HTTP Metrics: request count, duration and in-flight requests by route
//   - Quote Metrics: calculations by outcome, price distribution, alerts by kind
//   - Rules Metrics: reload attempts, last successful load, loaded sections
//
// # Usage
//
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
//
//	// Quote outcomes (Collector implements shipping.Recorder)
//	quoter := shipping.NewQuoter(ruleSet, tracer, collector)
//
//	// HTTP metrics are recorded by the server's metrics middleware
//	collector.RecordHTTPRequest("POST", "POST /api/calculate", 200, 3*time.Millisecond)
//
// # Prometheus Endpoint
//
// All metrics are exposed in OpenMetrics format on telemetry.metrics.path:
//
//	# HELP shipquote_quotes_total Total number of quote calculations by outcome
//	# TYPE shipquote_quotes_total counter
//	shipquote_quotes_total{destination="national",express="false",outcome="success"} 12
//
// # Cardinality
//
// Destination labels are bounded by the caller. HTTP route labels pass through
// a CardinalityLimiter and collapse into "other" past 100 distinct routes.
// When metrics are disabled every Record method is a no-op.
package metrics

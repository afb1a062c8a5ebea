// Package telemetry groups the observability packages of the shipping quote
// service.
//
// # Components
//
//   - logging: structured slog logging with request and trace correlation
//   - metrics: Prometheus collectors for HTTP traffic, quotes and rule reloads
//   - tracing: OpenTelemetry tracing exported over OTLP/gRPC
//   - health: liveness, readiness and version endpoints
//
// # Usage
//
//	cfg := config.GetConfig()
//
//	logger, _ := logging.New(logging.FromConfig(cfg.Telemetry.Logging))
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
//	tracer, _ := tracing.New(&cfg.Telemetry.Tracing, version)
//
//	quoter := shipping.NewQuoter(ruleSet, tracer.Tracer(), collector)
//
// Each component is usable on its own; disabled metrics and tracing turn
// into no-ops so callers never need to branch on configuration.
package telemetry

// Package server wires the quote API together: routes, handlers, middleware
// and server lifecycle.
//
// # Routes
//
//	GET  /               service description
//	GET  /api/health     health and loaded rule sections
//	POST /api/calculate  shipping quote
//	GET  /health         liveness probe     (telemetry.health.liveness_path)
//	GET  /ready          readiness probe    (telemetry.health.readiness_path)
//	GET  /version        build information  (telemetry.health.version_path)
//	GET  /metrics        Prometheus metrics (telemetry.metrics.path)
//
// GET routes also answer HEAD. Other methods on a known path get 405; under
// /api/ the 405 carries the JSON error envelope and an Allow header.
//
// # Basic Usage
//
//	cfg := config.GetConfig()
//	rs, err := rules.LoadFile(cfg.Rules.Path, cfg.Rules.Strict)
//	if err != nil {
//	    return err
//	}
//
//	srv := server.New(server.Options{
//	    Config:  cfg,
//	    Rules:   rs,
//	    Logger:  logger.Slog(),
//	    Metrics: collector,
//	    Tracer:  tracer,
//	})
//	if err := srv.Start(ctx); err != nil {
//	    return err
//	}
//
// Start blocks until ctx is cancelled and then drains in-flight requests
// for at most server.shutdown_timeout.
//
// # Readiness
//
// New registers one health check per rules section (pricing, alerts,
// delivery_times). A rule set without delivery times still serves quotes it
// can answer, but /ready reports not_ready and /api/health reports
// "degraded".
package server

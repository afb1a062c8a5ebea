// Package health provides health check endpoints for the quote service.
//
// # Endpoints
//
//   - /health: Liveness probe, 200 while the process is serving
//   - /ready: Readiness probe, 503 when any registered check fails
//   - /version: Build information (service, version, commit, build date, Go version)
//
// Paths come from telemetry.health in the service configuration.
//
// # Usage
//
//	checker := health.New(cfg.Telemetry.Health.CheckTimeout)
//
//	sections := ruleSet.Sections()
//	checker.RegisterCheck("pricing", health.SectionCheck("pricing", sections.Pricing))
//	checker.RegisterCheck("alerts", health.SectionCheck("alerts", sections.Alerts))
//	checker.RegisterCheck("delivery_times", health.SectionCheck("delivery_times", sections.DeliveryTimes))
//
//	health.Register(mux, checker, cfg.Telemetry.Health,
//	    health.NewVersionInfo(cfg.Service.Name, version, commit, buildDate))
//
// The same checker backs GET /api/health, which reports the per-section
// results as rules_loaded booleans.
//
// # Check Execution
//
// Readiness runs all checks concurrently. Each check gets its own context
// deadline (telemetry.health.check_timeout); a check that overruns is reported
// as unhealthy with "health check timeout".
package health

package server

import (
	"net/http"

	"mercator-hq/shipquote/pkg/server/handlers"
	"mercator-hq/shipquote/pkg/telemetry/health"
)

// Route patterns of the API.
const (
	RouteIndex     = "GET /{$}"
	RouteHealth    = "GET /api/health"
	RouteCalculate = "POST /api/calculate"

	pathHealth    = "/api/health"
	pathCalculate = "/api/calculate"
)

func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()

	info := handlers.ServiceInfo{
		Name:        s.cfg.Service.Name,
		Version:     s.build.Version,
		Description: s.cfg.Service.Description,
	}

	mux.Handle(RouteIndex, handlers.NewIndexHandler(info, s.endpoints()))
	mux.Handle(RouteHealth, handlers.NewHealthHandler(s.checker, info))
	mux.Handle(RouteCalculate, handlers.NewCalculateHandler(
		s.quoter,
		s.cfg.Server.IsProduction(),
		s.logger,
	))

	// Method-less patterns lose to the ones above, so they only see the
	// methods a path does not serve.
	mux.Handle(pathHealth, handlers.NewMethodNotAllowedHandler(http.MethodGet, http.MethodHead))
	mux.Handle(pathCalculate, handlers.NewMethodNotAllowedHandler(http.MethodPost))

	health.Register(mux, s.checker, s.cfg.Telemetry.Health,
		health.NewVersionInfo(s.cfg.Service.Name, s.build.Version, s.build.Commit, s.build.BuildDate))

	if s.metrics != nil && s.cfg.Telemetry.Metrics.Enabled {
		mux.Handle("GET "+s.cfg.Telemetry.Metrics.Path, s.metrics.Handler())
	}

	return mux
}

// endpoints describes the public routes for GET /.
func (s *Server) endpoints() map[string]string {
	hc := s.cfg.Telemetry.Health
	endpoints := map[string]string{
		"GET /":        "Service information",
		RouteHealth:    "Service health and loaded rule sections",
		RouteCalculate: "Calculate a shipping quote",
	}
	endpoints["GET "+hc.LivenessPath] = "Liveness probe"
	endpoints["GET "+hc.ReadinessPath] = "Readiness probe"
	endpoints["GET "+hc.VersionPath] = "Build information"
	if s.metrics != nil && s.cfg.Telemetry.Metrics.Enabled {
		endpoints["GET "+s.cfg.Telemetry.Metrics.Path] = "Prometheus metrics"
	}
	return endpoints
}

package health

import (
	"encoding/json"
	"net/http"
	"runtime"

	"mercator-hq/shipquote/pkg/config"
)

// VersionInfo contains build and version information.
type VersionInfo struct {
	// Service is the configured service name
	Service string `json:"service"`

	// Version is the semantic version (e.g., "1.0.0")
	Version string `json:"version"`

	// Commit is the git commit hash
	Commit string `json:"commit"`

	// BuildDate is when the binary was built
	BuildDate string `json:"build_date"`

	// GoVersion is the Go version used to build
	GoVersion string `json:"go_version"`
}

// NewVersionInfo fills GoVersion from the running binary.
func NewVersionInfo(service, version, commit, buildDate string) VersionInfo {
	return VersionInfo{
		Service:   service,
		Version:   version,
		Commit:    commit,
		BuildDate: buildDate,
		GoVersion: runtime.Version(),
	}
}

// LivenessHandler returns an HTTP handler for the liveness probe endpoint.
//
// Example response:
//
//	{"status": "ok", "timestamp": "2026-03-14T09:26:53Z"}
func (c *Checker) LivenessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, http.StatusOK, c.CheckLiveness(r.Context()))
	}
}

// ReadinessHandler returns an HTTP handler for the readiness probe endpoint.
//
// Returns:
//   - 200 OK: every check passed
//   - 503 Service Unavailable: at least one check failed
//
// Example response (not ready):
//
//	{
//	    "status": "not_ready",
//	    "checks": {
//	        "pricing": {"status": "ok", "duration_ms": 0.004},
//	        "delivery_times": {"status": "unhealthy", "message": "rules section \"delivery_times\" not loaded", "duration_ms": 0.003}
//	    },
//	    "timestamp": "2026-03-14T09:26:53Z"
//	}
func (c *Checker) ReadinessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := c.CheckReadiness(r.Context())

		code := http.StatusOK
		if status.Status != StatusReady {
			code = http.StatusServiceUnavailable
		}
		writeJSON(w, r, code, status)
	}
}

// VersionHandler returns an HTTP handler for the version information endpoint.
func VersionHandler(info VersionInfo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, http.StatusOK, info)
	}
}

// Register mounts the liveness, readiness and version probes on mux at the
// configured paths. GET patterns also answer HEAD.
//
// Usage:
//
//	checker := health.New(cfg.Telemetry.Health.CheckTimeout)
//	health.Register(mux, checker, cfg.Telemetry.Health, info)
func Register(mux *http.ServeMux, checker *Checker, cfg config.HealthConfig, info VersionInfo) {
	mux.HandleFunc("GET "+cfg.LivenessPath, checker.LivenessHandler())
	mux.HandleFunc("GET "+cfg.ReadinessPath, checker.ReadinessHandler())
	mux.HandleFunc("GET "+cfg.VersionPath, VersionHandler(info))
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if r.Method != http.MethodHead {
		_ = json.NewEncoder(w).Encode(v)
	}
}

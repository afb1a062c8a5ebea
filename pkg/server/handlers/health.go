package handlers

import (
	"net/http"
	"time"

	"mercator-hq/shipquote/pkg/rules"
	"mercator-hq/shipquote/pkg/telemetry/health"
)

// Overall states reported by GET /api/health.
const (
	StatusHealthy  = "healthy"
	StatusDegraded = "degraded"
)

// ServiceInfo identifies the running service.
type ServiceInfo struct {
	Name        string
	Version     string
	Description string
}

// RulesLoaded reports which rule sections are available.
type RulesLoaded struct {
	Pricing       bool `json:"pricing"`
	Alerts        bool `json:"alerts"`
	DeliveryTimes bool `json:"delivery_times"`
}

// HealthResponse is the body of GET /api/health.
type HealthResponse struct {
	Status      string      `json:"status"`
	Service     string      `json:"service"`
	Version     string      `json:"version"`
	Timestamp   string      `json:"timestamp"`
	RulesLoaded RulesLoaded `json:"rules_loaded"`
}

// HealthHandler serves GET /api/health. The rules_loaded flags come from
// the checker's section checks. The endpoint always answers 200; use the
// readiness probe to gate traffic.
type HealthHandler struct {
	checker *health.Checker
	info    ServiceInfo
	now     func() time.Time
}

// NewHealthHandler creates the API health handler.
func NewHealthHandler(checker *health.Checker, info ServiceInfo) *HealthHandler {
	return &HealthHandler{
		checker: checker,
		info:    info,
		now:     time.Now,
	}
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	status := h.checker.CheckReadiness(r.Context())

	passed := func(name string) bool {
		result, ok := status.Checks[name]
		return ok && result.Healthy()
	}
	loaded := RulesLoaded{
		Pricing:       passed(rules.SectionPricing),
		Alerts:        passed(rules.SectionAlerts),
		DeliveryTimes: passed(rules.SectionDeliveryTimes),
	}

	overall := StatusHealthy
	if !loaded.Pricing || !loaded.Alerts || !loaded.DeliveryTimes {
		overall = StatusDegraded
	}

	writeJSON(w, r, http.StatusOK, HealthResponse{
		Status:      overall,
		Service:     h.info.Name,
		Version:     h.info.Version,
		Timestamp:   h.now().UTC().Format(time.RFC3339),
		RulesLoaded: loaded,
	})
}

package metrics

import (
	"time"

	"mercator-hq/shipquote/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// RulesMetrics tracks the lifecycle of the pricing rules document.
//
// Metrics:
//   - shipquote_rules_reloads_total: Reload attempts by result ("success", "error")
//   - shipquote_rules_last_reload_timestamp_seconds: Unix time of the last successful load
//   - shipquote_rules_section_loaded: Whether each rules section is present (1) or not (0)
type RulesMetrics struct {
	reloads       *prometheus.CounterVec
	lastReload    prometheus.Gauge
	sectionLoaded *prometheus.GaugeVec
}

// NewRulesMetrics creates and registers rules metrics with the provided registry.
func NewRulesMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *RulesMetrics {
	rm := &RulesMetrics{
		reloads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: "rules",
				Name:      "reloads_total",
				Help:      "Total number of rules reload attempts by result",
			},
			[]string{"result"},
		),

		lastReload: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: "rules",
				Name:      "last_reload_timestamp_seconds",
				Help:      "Unix timestamp of the last successful rules load",
			},
		),

		sectionLoaded: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: "rules",
				Name:      "section_loaded",
				Help:      "Rules section presence (1=loaded, 0=missing)",
			},
			[]string{"section"},
		),
	}

	registry.MustRegister(rm.reloads, rm.lastReload, rm.sectionLoaded)

	return rm
}

// RecordReload records a reload attempt. at is only used on success.
func (rm *RulesMetrics) RecordReload(success bool, at time.Time) {
	if !success {
		rm.reloads.WithLabelValues("error").Inc()
		return
	}
	rm.reloads.WithLabelValues("success").Inc()
	rm.lastReload.Set(float64(at.Unix()))
}

// SetSection records whether a rules section is loaded.
func (rm *RulesMetrics) SetSection(section string, loaded bool) {
	value := 0.0
	if loaded {
		value = 1.0
	}
	rm.sectionLoaded.WithLabelValues(section).Set(value)
}

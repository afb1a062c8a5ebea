package metrics

import (
	"strconv"
	"sync"
	"time"

	"mercator-hq/shipquote/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Collector is the main orchestrator for all Prometheus metrics in the quote
// service. It manages metric registration and provides a single interface for
// recording HTTP, quote and rules metrics.
//
// Collector satisfies shipping.Recorder, so a Quoter can report outcomes
// directly to it.
type Collector struct {
	config   *config.MetricsConfig
	registry *prometheus.Registry

	// HTTP request metrics
	requestMetrics *RequestMetrics

	// Quote calculation metrics
	quoteMetrics *QuoteMetrics

	// Rules document metrics
	rulesMetrics *RulesMetrics

	// Bounds the route label on HTTP metrics
	cardinalityLimiter *CardinalityLimiter

	now func() time.Time
}

// NewCollector creates a new metrics collector with the specified configuration
// and Prometheus registry. If registry is nil, a fresh registry is created with
// the Go runtime and process collectors already registered.
//
// Example:
//
//	cfg := &config.MetricsConfig{
//		Enabled:   true,
//		Namespace: "shipquote",
//	}
//	collector := metrics.NewCollector(cfg, nil)
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	if cfg.Namespace == "" {
		cfg.Namespace = config.DefaultMetricsNamespace
	}
	if len(cfg.RequestDurationBuckets) == 0 {
		cfg.RequestDurationBuckets = append([]float64(nil), config.DefaultRequestDurationBuckets...)
	}
	if len(cfg.PriceBuckets) == 0 {
		cfg.PriceBuckets = append([]float64(nil), config.DefaultPriceBuckets...)
	}

	c := &Collector{
		config:             cfg,
		registry:           registry,
		cardinalityLimiter: NewCardinalityLimiter(100),
		now:                time.Now,
	}

	c.requestMetrics = NewRequestMetrics(cfg, registry)
	c.quoteMetrics = NewQuoteMetrics(cfg, registry)
	c.rulesMetrics = NewRulesMetrics(cfg, registry)

	return c
}

// RecordHTTPRequest records metrics for a completed HTTP request.
//
// Parameters:
//   - method: HTTP method
//   - route: Matched route pattern (e.g., "POST /api/calculate")
//   - status: Response status code
//   - duration: Time spent serving the request
//
// Routes beyond the cardinality limit are aggregated under "other".
func (c *Collector) RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	if !c.config.Enabled {
		return
	}

	if !c.cardinalityLimiter.Allow(route) {
		route = "other"
	}

	c.requestMetrics.RecordRequest(method, route, strconv.Itoa(status), duration)
}

// RequestStarted increments the in-flight request gauge.
func (c *Collector) RequestStarted() {
	if !c.config.Enabled {
		return
	}
	c.requestMetrics.inFlight.Inc()
}

// RequestFinished decrements the in-flight request gauge.
func (c *Collector) RequestFinished() {
	if !c.config.Enabled {
		return
	}
	c.requestMetrics.inFlight.Dec()
}

// RecordQuote records the outcome of a quote calculation.
//
// Parameters:
//   - destination: "national", "international" or "other"
//   - express: Whether express shipping was requested
//   - outcome: Result label (e.g., "success", "missing_fields", "validation_error")
func (c *Collector) RecordQuote(destination string, express bool, outcome string) {
	if !c.config.Enabled {
		return
	}

	c.quoteMetrics.RecordQuote(destination, express, outcome)
}

// RecordQuotePrice records the total price of a successful quote.
func (c *Collector) RecordQuotePrice(currency string, price float64) {
	if !c.config.Enabled {
		return
	}

	c.quoteMetrics.RecordPrice(currency, price)
}

// RecordAlert records one package alert by kind.
func (c *Collector) RecordAlert(kind string) {
	if !c.config.Enabled {
		return
	}

	c.quoteMetrics.RecordAlert(kind)
}

// RecordRulesReload records a rules load or reload attempt.
func (c *Collector) RecordRulesReload(success bool) {
	if !c.config.Enabled {
		return
	}

	c.rulesMetrics.RecordReload(success, c.now())
}

// UpdateRulesSections records which rules sections are present.
//
// Parameters:
//   - pricing: Whether the pricing section is loaded
//   - alerts: Whether the alerts section is loaded
//   - deliveryTimes: Whether the delivery_times section is loaded
func (c *Collector) UpdateRulesSections(pricing, alerts, deliveryTimes bool) {
	if !c.config.Enabled {
		return
	}

	c.rulesMetrics.SetSection("pricing", pricing)
	c.rulesMetrics.SetSection("alerts", alerts)
	c.rulesMetrics.SetSection("delivery_times", deliveryTimes)
}

// Registry returns the Prometheus registry used by this collector.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// CardinalityLimiter prevents metric cardinality explosion by limiting
// the number of unique label values it admits.
type CardinalityLimiter struct {
	maxCardinality int
	current        map[string]struct{}
	mu             sync.RWMutex
}

// NewCardinalityLimiter creates a new cardinality limiter with the specified
// maximum cardinality.
func NewCardinalityLimiter(maxCardinality int) *CardinalityLimiter {
	return &CardinalityLimiter{
		maxCardinality: maxCardinality,
		current:        make(map[string]struct{}),
	}
}

// Allow checks if a label set is allowed. Returns true if the label set
// already exists or if we haven't reached the cardinality limit yet.
// Returns false if adding this label set would exceed the limit.
func (cl *CardinalityLimiter) Allow(labelSet string) bool {
	cl.mu.RLock()
	if _, exists := cl.current[labelSet]; exists {
		cl.mu.RUnlock()
		return true
	}
	cl.mu.RUnlock()

	cl.mu.Lock()
	defer cl.mu.Unlock()

	// Double-check after acquiring write lock
	if _, exists := cl.current[labelSet]; exists {
		return true
	}

	if len(cl.current) >= cl.maxCardinality {
		return false
	}

	cl.current[labelSet] = struct{}{}
	return true
}

// Count returns the current cardinality.
func (cl *CardinalityLimiter) Count() int {
	cl.mu.RLock()
	defer cl.mu.RUnlock()
	return len(cl.current)
}

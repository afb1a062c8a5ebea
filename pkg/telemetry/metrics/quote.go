package metrics

import (
	"strconv"

	"mercator-hq/shipquote/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// QuoteMetrics tracks quote calculations.
//
// Metrics:
//   - shipquote_quotes_total: Quotes by destination, express flag and outcome
//   - shipquote_quote_price: Distribution of successful quote totals
//   - shipquote_quote_alerts_total: Alerts raised by kind
type QuoteMetrics struct {
	quotesTotal *prometheus.CounterVec
	price       *prometheus.HistogramVec
	alerts      *prometheus.CounterVec
}

// NewQuoteMetrics creates and registers quote metrics with the provided registry.
func NewQuoteMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *QuoteMetrics {
	qm := &QuoteMetrics{
		quotesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "quotes_total",
				Help:      "Total number of quote calculations by outcome",
			},
			[]string{"destination", "express", "outcome"},
		),

		price: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Name:      "quote_price",
				Help:      "Total price of successful quotes",
				Buckets:   cfg.PriceBuckets,
			},
			[]string{"currency"},
		),

		alerts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "quote_alerts_total",
				Help:      "Total number of package alerts raised by kind",
			},
			[]string{"kind"},
		),
	}

	registry.MustRegister(qm.quotesTotal, qm.price, qm.alerts)

	return qm
}

// RecordQuote counts one quote calculation.
func (qm *QuoteMetrics) RecordQuote(destination string, express bool, outcome string) {
	qm.quotesTotal.WithLabelValues(destination, strconv.FormatBool(express), outcome).Inc()
}

// RecordPrice observes a quoted total.
func (qm *QuoteMetrics) RecordPrice(currency string, price float64) {
	qm.price.WithLabelValues(currency).Observe(price)
}

// RecordAlert counts one raised alert.
func (qm *QuoteMetrics) RecordAlert(kind string) {
	qm.alerts.WithLabelValues(kind).Inc()
}

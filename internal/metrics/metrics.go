package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics implements application.Metrics on a private Prometheus registry.
// A nil *Metrics records nothing.
type Metrics struct {
	registry *prometheus.Registry

	quotesIssued     *prometheus.CounterVec
	quotesRejected   *prometheus.CounterVec
	quoteLatency     prometheus.Histogram
	routeValidations *prometheus.CounterVec
	quotesExpired    prometheus.Counter
}

func New() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		quotesIssued: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "pricing_quotes_issued_total",
			Help: "Quotes issued by policy and bookability",
		}, []string{"policy", "bookable"}),
		quotesRejected: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "pricing_quotes_rejected_total",
			Help: "Quote requests rejected before pricing, by error code",
		}, []string{"code"}),
		quoteLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "pricing_quote_duration_seconds",
			Help:    "Time to evaluate and store a quote",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		routeValidations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "pricing_route_validations_total",
			Help: "Cross-border route validations by policy and outcome",
		}, []string{"policy", "valid"}),
		quotesExpired: factory.NewCounter(prometheus.CounterOpts{
			Name: "pricing_quotes_expired_total",
			Help: "Expired quotes removed by the cleanup worker",
		}),
	}
}

func (m *Metrics) ObserveQuote(policy string, bookable bool, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.quotesIssued.WithLabelValues(policy, strconv.FormatBool(bookable)).Inc()
	m.quoteLatency.Observe(elapsed.Seconds())
}

func (m *Metrics) IncQuoteRejected(code string) {
	if m != nil {
		m.quotesRejected.WithLabelValues(code).Inc()
	}
}

func (m *Metrics) ObserveRouteValidation(policy string, valid bool) {
	if m != nil {
		m.routeValidations.WithLabelValues(policy, strconv.FormatBool(valid)).Inc()
	}
}

func (m *Metrics) AddExpiredQuotes(n int) {
	if m != nil && n > 0 {
		m.quotesExpired.Add(float64(n))
	}
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

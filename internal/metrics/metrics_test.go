package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DanielPopoola/rental-pricing-engine/internal/application"
	"github.com/DanielPopoola/rental-pricing-engine/internal/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ application.Metrics = (*metrics.Metrics)(nil)

func TestMetrics_Handler(t *testing.T) {
	m := metrics.New()
	m.ObserveQuote("Standard", true, 3*time.Millisecond)
	m.ObserveQuote("Standard", false, time.Millisecond)
	m.IncQuoteRejected("INVALID_INPUT")
	m.ObserveRouteValidation("Premium", true)
	m.AddExpiredQuotes(4)
	m.AddExpiredQuotes(0)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	out := string(body)

	assert.Contains(t, out, `pricing_quotes_issued_total{bookable="true",policy="Standard"} 1`)
	assert.Contains(t, out, `pricing_quotes_issued_total{bookable="false",policy="Standard"} 1`)
	assert.Contains(t, out, `pricing_quotes_rejected_total{code="INVALID_INPUT"} 1`)
	assert.Contains(t, out, `pricing_route_validations_total{policy="Premium",valid="true"} 1`)
	assert.Contains(t, out, `pricing_quotes_expired_total 4`)
	assert.Contains(t, out, `pricing_quote_duration_seconds_count 2`)
}

func TestMetrics_NilIsSafe(t *testing.T) {
	var m *metrics.Metrics

	assert.NotPanics(t, func() {
		m.ObserveQuote("Standard", true, time.Second)
		m.IncQuoteRejected("INVALID_INPUT")
		m.ObserveRouteValidation("Standard", false)
		m.AddExpiredQuotes(1)
	})
}

func TestMetrics_SeparateRegistries(t *testing.T) {
	a, b := metrics.New(), metrics.New()
	a.AddExpiredQuotes(1)

	families, err := b.Registry().Gather()
	require.NoError(t, err)
	for _, f := range families {
		if f.GetName() == "pricing_quotes_expired_total" {
			assert.Zero(t, f.GetMetric()[0].GetCounter().GetValue())
		}
	}
}

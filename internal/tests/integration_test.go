//go:build integration

package tests

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/DanielPopoola/rental-pricing-engine/internal/api"
	"github.com/DanielPopoola/rental-pricing-engine/internal/application/services"
	"github.com/DanielPopoola/rental-pricing-engine/internal/config"
	"github.com/DanielPopoola/rental-pricing-engine/internal/infrastructure/persistence"
	"github.com/DanielPopoola/rental-pricing-engine/internal/infrastructure/persistence/postgres"
	"github.com/DanielPopoola/rental-pricing-engine/internal/interfaces/rest/handlers"
	"github.com/DanielPopoola/rental-pricing-engine/internal/metrics"
	"github.com/DanielPopoola/rental-pricing-engine/internal/testhelpers"
	"github.com/DanielPopoola/rental-pricing-engine/internal/worker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stack struct {
	server *httptest.Server
	worker *worker.QuoteExpirationWorker
}

func setupIntegration(t *testing.T, validity time.Duration) stack {
	testDB := testhelpers.SetupTestDatabase(t)
	t.Cleanup(func() { testDB.Cleanup(t) })

	logger := testhelpers.DiscardLogger()
	m := metrics.New()
	repo := persistence.NewRetryQuoteRepository(
		postgres.NewQuoteRepository(testDB.DB.Pool),
		config.RetryConfig{MaxRetries: 3, BaseDelay: 10 * time.Millisecond},
		postgres.IsTransient,
	)

	h := handlers.NewHandlers(
		services.NewQuoteService(repo, m, logger, validity),
		services.NewPolicyService(m),
		services.NewCatalogService(),
		services.NewComplianceService(),
		logger,
	)
	router, err := api.NewRouter(h, logger, 5*time.Second)
	require.NoError(t, err)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return stack{
		server: server,
		worker: worker.NewQuoteExpirationWorker(repo, m, time.Minute, 10, logger),
	}
}

func quoteBody(t *testing.T) []byte {
	cmd := testhelpers.DefaultQuoteCommand()
	body, err := json.Marshal(map[string]any{
		"policy":             cmd.PolicyName,
		"category":           cmd.CategoryCode,
		"pickup_at":          cmd.PickupAt.Format(time.RFC3339),
		"return_at":          cmd.ReturnAt.Format(time.RFC3339),
		"destinations":       cmd.Destinations,
		"insurance":          cmd.InsuranceType,
		"kilometer_package":  cmd.KilometerPackage,
		"estimated_km":       cmd.EstimatedKm,
		"payment_terms_days": cmd.PaymentTermsDays,
		"license": map[string]any{
			"number":        cmd.License.Number,
			"issue_country": cmd.License.IssueCountry,
			"issue_date":    cmd.License.IssueDate.Format("2006-01-02"),
			"expiry_date":   cmd.License.ExpiryDate.Format("2006-01-02"),
		},
	})
	require.NoError(t, err)
	return body
}

// postQuote is safe to call from any goroutine.
func postQuote(baseURL string, body []byte) (int, string, error) {
	resp, err := http.Post(baseURL+"/api/v1/quotes", "application/json", bytes.NewReader(body))
	if err != nil {
		return 0, "", err
	}
	defer resp.Body.Close()

	var env struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return resp.StatusCode, "", err
	}
	return resp.StatusCode, env.Data.ID, nil
}

func createQuote(t *testing.T, baseURL string) string {
	status, id, err := postQuote(baseURL, quoteBody(t))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, status)
	return id
}

func getStatus(t *testing.T, baseURL, id string) int {
	resp, err := http.Get(baseURL + "/api/v1/quotes/" + id)
	require.NoError(t, err)
	defer resp.Body.Close()
	return resp.StatusCode
}

func TestIntegration_QuoteLifecycle(t *testing.T) {
	s := setupIntegration(t, 200*time.Millisecond)

	id := createQuote(t, s.server.URL)
	assert.Equal(t, http.StatusOK, getStatus(t, s.server.URL, id))

	removed, err := s.worker.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Zero(t, removed, "quote is still valid")

	time.Sleep(300 * time.Millisecond)

	removed, err = s.worker.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	assert.Equal(t, http.StatusNotFound, getStatus(t, s.server.URL, id))
}

func TestIntegration_ConcurrentQuotes(t *testing.T) {
	s := setupIntegration(t, time.Hour)

	const n = 20
	body := quoteBody(t)
	ids := make(chan string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			status, id, err := postQuote(s.server.URL, body)
			if assert.NoError(t, err) && assert.Equal(t, http.StatusCreated, status) {
				ids <- id
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[string]bool)
	for id := range ids {
		assert.False(t, seen[id], "duplicate quote id %s", id)
		seen[id] = true
		assert.Equal(t, http.StatusOK, getStatus(t, s.server.URL, id))
	}
	assert.Len(t, seen, n)
}

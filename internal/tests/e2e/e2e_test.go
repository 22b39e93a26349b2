package e2e

import (
	"context"
	"errors"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/DanielPopoola/rental-pricing-engine/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type E2ETestSuite struct {
	suite.Suite
	client *TestClient
}

func TestE2ESuite(t *testing.T) {
	if os.Getenv("RUN_E2E_TESTS") != "true" {
		t.Skip("Skipping E2E tests (set RUN_E2E_TESTS=true to run)")
	}

	suite.Run(t, new(E2ETestSuite))
}

func (suite *E2ETestSuite) SetupSuite() {
	baseURL := os.Getenv("PRICING_E2E_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	suite.client = NewTestClient(baseURL)
	suite.waitForEngine()
}

func (suite *E2ETestSuite) waitForEngine() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			suite.T().Fatal("engine not ready after 30s")
		case <-ticker.C:
			if suite.client.Healthy() {
				return
			}
		}
	}
}

func quoteRequest(destinations ...string) map[string]any {
	today := domain.Today()
	pickup := today.AddDate(0, 0, 14).Add(10 * time.Hour)
	return map[string]any{
		"policy":             "Standard",
		"category":           "CDMR",
		"pickup_at":          pickup.Format(time.RFC3339),
		"return_at":          pickup.AddDate(0, 0, 3).Format(time.RFC3339),
		"destinations":       destinations,
		"insurance":          "Vollkasko",
		"kilometer_package":  "Unlimited",
		"estimated_km":       900,
		"payment_terms_days": 30,
		"license": map[string]any{
			"number":        "B072RRE2I55",
			"issue_country": "Germany",
			"issue_date":    today.AddDate(-8, 0, 0).Format(domain.DateLayout),
			"expiry_date":   today.AddDate(4, 0, 0).Format(domain.DateLayout),
		},
	}
}

func (suite *E2ETestSuite) TestQuote_IssueAndFetch() {
	created, err := suite.client.CreateQuote(suite.T(), quoteRequest("AT", "IT"))
	suite.Require().NoError(err)
	suite.True(created.Result.Bookable)
	suite.Equal(3, created.Result.Days)
	suite.Equal("EUR", created.Result.TotalPrice.Currency)

	fetched, err := suite.client.GetQuote(suite.T(), created.ID)
	suite.Require().NoError(err)
	suite.Equal(created.Fingerprint, fetched.Fingerprint)
	suite.Equal(created.Result.TotalPrice, fetched.Result.TotalPrice)
}

func (suite *E2ETestSuite) TestQuote_ProhibitedDestinationIsNotBookable() {
	created, err := suite.client.CreateQuote(suite.T(), quoteRequest("RU"))
	suite.Require().NoError(err)
	suite.False(created.Result.Bookable)
	suite.False(created.Result.CrossBorder.IsValid)
	suite.NotEmpty(created.Result.CrossBorder.Issues)
}

func (suite *E2ETestSuite) TestQuote_UnknownID() {
	_, err := suite.client.GetQuote(suite.T(), uuid.New().String())

	var apiErr *APIError
	suite.Require().True(errors.As(err, &apiErr))
	suite.Equal(http.StatusNotFound, apiErr.Status)
	suite.Equal("NOT_FOUND", apiErr.Detail.Code)
}

func (suite *E2ETestSuite) TestPolicies() {
	policies, err := suite.client.ListPolicies(suite.T())
	suite.Require().NoError(err)
	suite.Len(policies, 2)

	result, err := suite.client.ValidateRoute(suite.T(), "Standard", "DE", "CH")
	suite.Require().NoError(err)
	suite.True(result.IsValid)
}

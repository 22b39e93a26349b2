package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/DanielPopoola/rental-pricing-engine/internal/interfaces/rest"
	"github.com/stretchr/testify/require"
)

// TestClient wraps HTTP calls to a running engine.
type TestClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewTestClient(baseURL string) *TestClient {
	return &TestClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// APIError is returned for 4xx and 5xx responses.
type APIError struct {
	Status int
	Detail rest.ErrorDetail
}

func (e *APIError) Error() string {
	return fmt.Sprintf("status %d: %s: %s", e.Status, e.Detail.Code, e.Detail.Message)
}

func (c *TestClient) do(t *testing.T, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequest(method, c.baseURL+path, reader)
	require.NoError(t, err)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	if resp.StatusCode >= 400 {
		var errResp rest.ErrorResponse
		require.NoError(t, json.Unmarshal(bodyBytes, &errResp))
		return &APIError{Status: resp.StatusCode, Detail: errResp.Error}
	}

	envelope := struct {
		Success bool `json:"success"`
		Data    any  `json:"data"`
	}{Data: out}
	require.NoError(t, json.Unmarshal(bodyBytes, &envelope))
	require.True(t, envelope.Success)
	return nil
}

func (c *TestClient) CreateQuote(t *testing.T, req map[string]any) (*rest.Quote, error) {
	var quote rest.Quote
	if err := c.do(t, http.MethodPost, "/api/v1/quotes", req, &quote); err != nil {
		return nil, err
	}
	return &quote, nil
}

func (c *TestClient) GetQuote(t *testing.T, id string) (*rest.Quote, error) {
	var quote rest.Quote
	if err := c.do(t, http.MethodGet, "/api/v1/quotes/"+id, nil, &quote); err != nil {
		return nil, err
	}
	return &quote, nil
}

func (c *TestClient) ValidateRoute(t *testing.T, policy string, countries ...string) (*rest.CrossBorderValidation, error) {
	var result rest.CrossBorderValidation
	path := fmt.Sprintf("/api/v1/policies/%s/validate", policy)
	if err := c.do(t, http.MethodPost, path, map[string]any{"countries": countries}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *TestClient) ListPolicies(t *testing.T) ([]rest.Policy, error) {
	var policies []rest.Policy
	if err := c.do(t, http.MethodGet, "/api/v1/policies", nil, &policies); err != nil {
		return nil, err
	}
	return policies, nil
}

func (c *TestClient) Healthy() bool {
	resp, err := c.httpClient.Get(c.baseURL + "/healthz")
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

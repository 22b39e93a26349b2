package persistence_test

import (
	"testing"
	"time"

	"github.com/DanielPopoola/rental-pricing-engine/internal/infrastructure/persistence"
	"github.com/DanielPopoola/rental-pricing-engine/internal/testhelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuoteModel_RoundTrip(t *testing.T) {
	createdAt := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	quote := testhelpers.NewQuote("3f1c9a4e-5b7d-4c2a-9e8f-1a2b3c4d5e6f", createdAt, 72*time.Hour)

	model, err := persistence.ToQuoteModel(quote)
	require.NoError(t, err)

	assert.Equal(t, "DE,CH", model.Destinations)
	assert.Equal(t, "Teilkasko", model.InsuranceType)
	assert.Equal(t, "Limited100", model.KilometerPackage)
	assert.True(t, model.TotalNet.Equal(quote.Result.TotalPrice.Net()))
	assert.Equal(t, "EUR", model.Currency)

	restored, err := persistence.ToDomainQuote(*model)
	require.NoError(t, err)

	assert.Equal(t, quote.ID, restored.ID)
	assert.Equal(t, quote.Destinations, restored.Destinations)
	assert.Equal(t, quote.InsuranceType, restored.InsuranceType)
	assert.Equal(t, quote.KilometerPackage, restored.KilometerPackage)
	assert.True(t, quote.Result.TotalPrice.Equal(restored.Result.TotalPrice))
	assert.True(t, quote.Result.CrossBorderSurcharge.Equal(restored.Result.CrossBorderSurcharge))
	assert.Equal(t, quote.Result.CrossBorderValidation, restored.Result.CrossBorderValidation)
	assert.Equal(t, quote.Result.LicenseValidation, restored.Result.LicenseValidation)
	assert.True(t, quote.Result.PaymentDueDate.Equal(restored.Result.PaymentDueDate))
	assert.True(t, quote.ExpiresAt.Equal(restored.ExpiresAt))
}

func TestToDomainQuote_RejectsCorruptResult(t *testing.T) {
	quote := testhelpers.NewQuote("q-1", time.Now(), time.Hour)
	model, err := persistence.ToQuoteModel(quote)
	require.NoError(t, err)

	model.Result = []byte("{not json")
	_, err = persistence.ToDomainQuote(*model)
	assert.Error(t, err)

	model, _ = persistence.ToQuoteModel(quote)
	model.InsuranceType = "Glasbruch"
	_, err = persistence.ToDomainQuote(*model)
	assert.Error(t, err)
}

package services_test

import (
	"context"
	"time"

	"github.com/DanielPopoola/rental-pricing-engine/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockMetrics struct {
	mock.Mock
}

func (m *MockMetrics) ObserveQuote(policy string, bookable bool, elapsed time.Duration) {
	m.Called(policy, bookable, elapsed)
}

func (m *MockMetrics) IncQuoteRejected(code string) {
	m.Called(code)
}

func (m *MockMetrics) ObserveRouteValidation(policy string, valid bool) {
	m.Called(policy, valid)
}

func (m *MockMetrics) AddExpiredQuotes(n int) {
	m.Called(n)
}

type MockQuoteEvents struct {
	mock.Mock
}

func (m *MockQuoteEvents) QuoteIssued(ctx context.Context, quote *domain.Quote) error {
	return m.Called(ctx, quote).Error(0)
}

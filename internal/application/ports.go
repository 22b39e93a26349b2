package application

import (
	"context"
	"errors"
	"time"

	"github.com/DanielPopoola/rental-pricing-engine/internal/domain"
)

// ErrQuoteNotFound is returned by every QuoteRepository for unknown IDs.
var ErrQuoteNotFound = errors.New("quote not found")

// QuoteRepository is the port for persistence.
type QuoteRepository interface {
	Save(ctx context.Context, quote *domain.Quote) error
	FindByID(ctx context.Context, id string) (*domain.Quote, error)
	// FindByFingerprint returns up to limit quotes issued for the same
	// normalized request, newest first.
	FindByFingerprint(ctx context.Context, fingerprint string, limit int) ([]*domain.Quote, error)
	// DeleteExpired removes up to limit quotes that expired before now and
	// reports how many were removed.
	DeleteExpired(ctx context.Context, now time.Time, limit int) (int, error)
}

// QuoteEvents announces issued quotes to downstream consumers.
type QuoteEvents interface {
	QuoteIssued(ctx context.Context, quote *domain.Quote) error
}

// NopQuoteEvents publishes nothing.
type NopQuoteEvents struct{}

func (NopQuoteEvents) QuoteIssued(context.Context, *domain.Quote) error { return nil }

// Metrics records engine outcomes. Implementations must be safe for
// concurrent use.
type Metrics interface {
	ObserveQuote(policy string, bookable bool, elapsed time.Duration)
	IncQuoteRejected(code string)
	ObserveRouteValidation(policy string, valid bool)
	AddExpiredQuotes(n int)
}

// NopMetrics discards everything.
type NopMetrics struct{}

func (NopMetrics) ObserveQuote(string, bool, time.Duration) {}
func (NopMetrics) IncQuoteRejected(string) {}
func (NopMetrics) ObserveRouteValidation(string, bool) {}
func (NopMetrics) AddExpiredQuotes(int) {}

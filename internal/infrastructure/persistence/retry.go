package persistence

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/DanielPopoola/rental-pricing-engine/internal/application"
	"github.com/DanielPopoola/rental-pricing-engine/internal/config"
	"github.com/DanielPopoola/rental-pricing-engine/internal/domain"
)

// RetryQuoteRepository retries store calls that fail with an error the
// classifier reports as transient.
type RetryQuoteRepository struct {
	inner      application.QuoteRepository
	retryable  func(error) bool
	baseDelay  time.Duration
	maxRetries int
}

func NewRetryQuoteRepository(inner application.QuoteRepository, cfg config.RetryConfig, retryable func(error) bool) *RetryQuoteRepository {
	maxRetries := cfg.MaxRetries
	if maxRetries < 1 {
		maxRetries = 1
	}
	return &RetryQuoteRepository{
		inner:      inner,
		retryable:  retryable,
		baseDelay:  cfg.BaseDelay,
		maxRetries: maxRetries,
	}
}

func (r *RetryQuoteRepository) Save(ctx context.Context, quote *domain.Quote) error {
	_, err := retry(r, ctx, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, r.inner.Save(ctx, quote)
	})
	return err
}

func (r *RetryQuoteRepository) FindByID(ctx context.Context, id string) (*domain.Quote, error) {
	return retry(r, ctx, func(ctx context.Context) (*domain.Quote, error) {
		return r.inner.FindByID(ctx, id)
	})
}

func (r *RetryQuoteRepository) FindByFingerprint(ctx context.Context, fingerprint string, limit int) ([]*domain.Quote, error) {
	return retry(r, ctx, func(ctx context.Context) ([]*domain.Quote, error) {
		return r.inner.FindByFingerprint(ctx, fingerprint, limit)
	})
}

func (r *RetryQuoteRepository) DeleteExpired(ctx context.Context, now time.Time, limit int) (int, error) {
	return retry(r, ctx, func(ctx context.Context) (int, error) {
		return r.inner.DeleteExpired(ctx, now, limit)
	})
}

func retry[T any](r *RetryQuoteRepository, ctx context.Context, operation func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	var lastErr error

	for attempt := 0; attempt < r.maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return zero, err
		}

		resp, err := operation(ctx)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		if !r.retryable(err) {
			return zero, err
		}

		if attempt < r.maxRetries-1 {
			select {
			case <-ctx.Done():
				return zero, ctx.Err()
			case <-time.After(r.backoff(attempt)):
			}
		}
	}

	return zero, fmt.Errorf("maximum retries exceeded: %w", lastErr)
}

// backoff doubles the base delay per attempt and adds up to 50% jitter.
func (r *RetryQuoteRepository) backoff(attempt int) time.Duration {
	base := r.baseDelay * time.Duration(1<<attempt)
	if base <= 0 {
		return 0
	}
	return base + time.Duration(rand.Int63n(int64(base)/2+1))
}

package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/DanielPopoola/rental-pricing-engine/internal/application"
	"github.com/DanielPopoola/rental-pricing-engine/internal/domain"
)

var ErrDuplicateQuote = errors.New("quote already exists")

// QuoteRepository keeps quotes in process memory. Used for local runs and
// service tests.
type QuoteRepository struct {
	mu     sync.RWMutex
	quotes map[string]*domain.Quote
}

func NewQuoteRepository() *QuoteRepository {
	return &QuoteRepository{quotes: make(map[string]*domain.Quote)}
}

func (r *QuoteRepository) Save(ctx context.Context, quote *domain.Quote) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.quotes[quote.ID]; exists {
		return ErrDuplicateQuote
	}
	stored := *quote
	r.quotes[quote.ID] = &stored
	return nil
}

func (r *QuoteRepository) FindByID(ctx context.Context, id string) (*domain.Quote, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	q, ok := r.quotes[id]
	if !ok {
		return nil, application.ErrQuoteNotFound
	}
	out := *q
	return &out, nil
}

func (r *QuoteRepository) FindByFingerprint(ctx context.Context, fingerprint string, limit int) ([]*domain.Quote, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	var quotes []*domain.Quote
	for _, q := range r.quotes {
		if q.Fingerprint == fingerprint {
			out := *q
			quotes = append(quotes, &out)
		}
	}
	sort.Slice(quotes, func(i, j int) bool {
		return quotes[i].CreatedAt.After(quotes[j].CreatedAt)
	})
	if limit > 0 && len(quotes) > limit {
		quotes = quotes[:limit]
	}
	return quotes, nil
}

func (r *QuoteRepository) DeleteExpired(ctx context.Context, now time.Time, limit int) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	var expired []*domain.Quote
	for _, q := range r.quotes {
		if q.IsExpired(now) {
			expired = append(expired, q)
		}
	}
	sort.Slice(expired, func(i, j int) bool {
		return expired[i].ExpiresAt.Before(expired[j].ExpiresAt)
	})
	if limit > 0 && len(expired) > limit {
		expired = expired[:limit]
	}
	for _, q := range expired {
		delete(r.quotes, q.ID)
	}
	return len(expired), nil
}

func (r *QuoteRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.quotes)
}

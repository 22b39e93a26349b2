package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/DanielPopoola/rental-pricing-engine/internal/application"
)

// maxBatchesPerRun bounds one sweep so a large backlog cannot starve shutdown.
const maxBatchesPerRun = 20

type QuoteExpirationWorker struct {
	quoteRepo application.QuoteRepository
	metrics   application.Metrics
	interval  time.Duration
	batchSize int
	logger    *slog.Logger
	now       func() time.Time
}

func NewQuoteExpirationWorker(
	quoteRepo application.QuoteRepository,
	metrics application.Metrics,
	interval time.Duration,
	batchSize int,
	logger *slog.Logger,
) *QuoteExpirationWorker {
	if metrics == nil {
		metrics = application.NopMetrics{}
	}
	return &QuoteExpirationWorker{
		quoteRepo: quoteRepo,
		metrics:   metrics,
		interval:  interval,
		batchSize: batchSize,
		logger:    logger,
		now:       time.Now,
	}
}

// Start sweeps once immediately, then on every tick until ctx is done.
func (w *QuoteExpirationWorker) Start(ctx context.Context) {
	w.logger.Info("quote expiration worker started",
		"interval", w.interval,
		"batch_size", w.batchSize)
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	if _, err := w.RunOnce(ctx); err != nil {
		w.logger.Error("quote expiration sweep failed", "error", err)
	}

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("quote expiration worker stopping")
			return
		case <-ticker.C:
			if _, err := w.RunOnce(ctx); err != nil {
				w.logger.Error("quote expiration sweep failed", "error", err)
			}
		}
	}
}

// RunOnce deletes expired quotes in batches until a batch comes back short,
// and returns how many were removed.
func (w *QuoteExpirationWorker) RunOnce(ctx context.Context) (int, error) {
	cutoff := w.now()
	total := 0

	for i := 0; i < maxBatchesPerRun; i++ {
		n, err := w.quoteRepo.DeleteExpired(ctx, cutoff, w.batchSize)
		total += n
		w.metrics.AddExpiredQuotes(n)
		if err != nil {
			return total, err
		}
		if n < w.batchSize {
			break
		}
	}

	if total > 0 {
		w.logger.Info("expired quotes removed",
			"removed", total,
			"cutoff", cutoff)
	}
	return total, nil
}

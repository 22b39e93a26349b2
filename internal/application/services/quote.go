package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/DanielPopoola/rental-pricing-engine/internal/application"
	"github.com/DanielPopoola/rental-pricing-engine/internal/domain"
	"github.com/google/uuid"
)

const DefaultQuoteValidity = 72 * time.Hour

type QuoteService struct {
	quoteRepo application.QuoteRepository
	metrics   application.Metrics
	events    application.QuoteEvents
	logger    *slog.Logger
	validity  time.Duration
}

type QuoteServiceOption func(*QuoteService)

// WithQuoteEvents publishes every stored quote.
func WithQuoteEvents(events application.QuoteEvents) QuoteServiceOption {
	return func(s *QuoteService) {
		if events != nil {
			s.events = events
		}
	}
}

func NewQuoteService(
	quoteRepo application.QuoteRepository,
	metrics application.Metrics,
	logger *slog.Logger,
	validity time.Duration,
	opts ...QuoteServiceOption,
) *QuoteService {
	if metrics == nil {
		metrics = application.NopMetrics{}
	}
	if validity <= 0 {
		validity = DefaultQuoteValidity
	}
	s := &QuoteService{
		quoteRepo: quoteRepo,
		metrics:   metrics,
		events:    application.NopQuoteEvents{},
		logger:    logger,
		validity:  validity,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Evaluate prices a command without storing anything.
func (s *QuoteService) Evaluate(cmd QuoteCommand) (domain.QuoteRequest, domain.QuoteResult, error) {
	req, err := parseQuoteCommand(cmd)
	if err != nil {
		s.metrics.IncQuoteRejected(application.ToErrorCode(err))
		return domain.QuoteRequest{}, domain.QuoteResult{}, err
	}
	return req, domain.EvaluateQuote(req), nil
}

// CreateQuote evaluates the command and stores the issued quote.
// An unbookable quote is still issued: its validation results say why.
func (s *QuoteService) CreateQuote(ctx context.Context, cmd QuoteCommand) (*domain.Quote, error) {
	start := time.Now()

	req, result, err := s.Evaluate(cmd)
	if err != nil {
		s.logger.Debug("quote rejected",
			"field", application.ErrorField(err),
			"error", err)
		return nil, err
	}

	quote, err := domain.NewQuote(uuid.New().String(), req, result, fingerprint(req), start, s.validity)
	if err != nil {
		return nil, application.NewInternalError(err)
	}

	if err := s.quoteRepo.Save(ctx, quote); err != nil {
		s.logger.Error("failed to save quote",
			"quote_id", quote.ID,
			"error", err)
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, application.NewTimeoutError()
		}
		return nil, application.NewInternalError(err)
	}

	// The quote is already stored; a lost event is logged, not returned.
	if err := s.events.QuoteIssued(ctx, quote); err != nil {
		s.logger.Warn("failed to publish quote event",
			"quote_id", quote.ID,
			"error", err)
	}

	s.metrics.ObserveQuote(req.Policy.Name(), result.Bookable, time.Since(start))
	s.logger.Info("quote issued",
		"quote_id", quote.ID,
		"policy", quote.PolicyName,
		"category", quote.CategoryCode,
		"days", result.Days,
		"total_net", result.TotalPrice.Net().StringFixed(2),
		"bookable", result.Bookable)

	return quote, nil
}

const (
	DefaultHistoryLimit = 20
	MaxHistoryLimit     = 100
)

// QuoteHistory lists quotes issued for the same normalized request, newest
// first.
func (s *QuoteService) QuoteHistory(ctx context.Context, fingerprint string, limit int) ([]*domain.Quote, error) {
	if !isFingerprint(fingerprint) {
		return nil, application.NewInvalidInputError(
			domain.NewInvalidArgumentError("fingerprint", "must be 64 lowercase hex characters"))
	}
	if limit == 0 {
		limit = DefaultHistoryLimit
	}
	if limit < 1 || limit > MaxHistoryLimit {
		return nil, application.NewInvalidInputError(
			domain.NewInvalidArgumentError("limit", fmt.Sprintf("must be between 1 and %d", MaxHistoryLimit)))
	}

	quotes, err := s.quoteRepo.FindByFingerprint(ctx, fingerprint, limit)
	if err != nil {
		s.logger.Error("failed to list quotes by fingerprint",
			"fingerprint", fingerprint,
			"error", err)
		return nil, application.NewInternalError(err)
	}
	return quotes, nil
}

func (s *QuoteService) GetQuote(ctx context.Context, id string) (*domain.Quote, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, application.NewNotFoundError("quote", id)
	}

	quote, err := s.quoteRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, application.ErrQuoteNotFound) {
			return nil, application.NewNotFoundError("quote", id)
		}
		return nil, application.NewInternalError(err)
	}
	return quote, nil
}

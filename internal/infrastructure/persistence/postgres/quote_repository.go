package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/DanielPopoola/rental-pricing-engine/internal/application"
	"github.com/DanielPopoola/rental-pricing-engine/internal/domain"
	"github.com/DanielPopoola/rental-pricing-engine/internal/infrastructure/persistence"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrDuplicateQuote is returned when a quote ID is saved twice.
var ErrDuplicateQuote = errors.New("quote already exists")

const quoteColumns = `
	id, policy_name, category_code, pickup_at, return_at, destinations,
	insurance_type, kilometer_package, estimated_km, payment_terms_days,
	bookable, total_net, currency, result, fingerprint, created_at, expires_at`

type QuoteRepository struct {
	db *pgxpool.Pool
}

func NewQuoteRepository(db *pgxpool.Pool) *QuoteRepository {
	return &QuoteRepository{db: db}
}

func (r *QuoteRepository) Save(ctx context.Context, quote *domain.Quote) error {
	query := `INSERT INTO quotes (` + quoteColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`

	m, err := persistence.ToQuoteModel(quote)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, query,
		m.ID,
		m.PolicyName,
		m.CategoryCode,
		m.PickupAt,
		m.ReturnAt,
		m.Destinations,
		m.InsuranceType,
		m.KilometerPackage,
		m.EstimatedKm,
		m.PaymentTermsDays,
		m.Bookable,
		m.TotalNet,
		m.Currency,
		m.Result,
		m.Fingerprint,
		m.CreatedAt,
		m.ExpiresAt,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			return ErrDuplicateQuote
		}
		return fmt.Errorf("failed to save quote: %w", err)
	}
	return nil
}

// FindByID retrieves a quote
func (r *QuoteRepository) FindByID(ctx context.Context, id string) (*domain.Quote, error) {
	query := `SELECT ` + quoteColumns + ` FROM quotes WHERE id = $1`

	row := r.db.QueryRow(ctx, query, id)
	return scanQuote(row)
}

// FindByFingerprint lists quotes issued for the same normalized request, newest first.
func (r *QuoteRepository) FindByFingerprint(ctx context.Context, fingerprint string, limit int) ([]*domain.Quote, error) {
	query := `SELECT ` + quoteColumns + `
		FROM quotes
		WHERE fingerprint = $1
		ORDER BY created_at DESC
		LIMIT $2`

	rows, err := r.db.Query(ctx, query, fingerprint, limit)
	if err != nil {
		return nil, fmt.Errorf("query quotes by fingerprint: %w", err)
	}

	results, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*domain.Quote, error) {
		return scanQuote(row)
	})
	if err != nil {
		return nil, fmt.Errorf("scan quotes by fingerprint: %w", err)
	}
	return results, nil
}

// DeleteExpired removes the oldest expired quotes first.
func (r *QuoteRepository) DeleteExpired(ctx context.Context, now time.Time, limit int) (int, error) {
	query := `
		DELETE FROM quotes
		WHERE id IN (
			SELECT id FROM quotes
			WHERE expires_at <= $1
			ORDER BY expires_at ASC
			LIMIT $2
		)`

	tag, err := r.db.Exec(ctx, query, now, limit)
	if err != nil {
		return 0, fmt.Errorf("delete expired quotes: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

// scanQuote converts a database row into a domain Quote.
// Returns application.ErrQuoteNotFound if the row doesn't exist.
func scanQuote(row pgx.Row) (*domain.Quote, error) {
	var m persistence.QuoteModel
	err := row.Scan(
		&m.ID, &m.PolicyName, &m.CategoryCode, &m.PickupAt, &m.ReturnAt, &m.Destinations,
		&m.InsuranceType, &m.KilometerPackage, &m.EstimatedKm, &m.PaymentTermsDays,
		&m.Bookable, &m.TotalNet, &m.Currency, &m.Result, &m.Fingerprint, &m.CreatedAt, &m.ExpiresAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, application.ErrQuoteNotFound
		}
		return nil, fmt.Errorf("failed to scan quote: %w", err)
	}
	return persistence.ToDomainQuote(m)
}

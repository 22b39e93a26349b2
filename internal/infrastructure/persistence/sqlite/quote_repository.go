package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/DanielPopoola/rental-pricing-engine/internal/application"
	"github.com/DanielPopoola/rental-pricing-engine/internal/domain"
	"github.com/DanielPopoola/rental-pricing-engine/internal/infrastructure/persistence"
)

var ErrDuplicateQuote = errors.New("quote already exists")

// Timestamps are stored as fixed-width UTC text so they sort and compare
// lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

const quoteColumns = `id, policy_name, category_code, pickup_at, return_at, destinations,
	insurance_type, kilometer_package, estimated_km, payment_terms_days,
	bookable, total_net, currency, result, fingerprint, created_at, expires_at`

type QuoteRepository struct {
	db *sql.DB
}

func NewQuoteRepository(db *sql.DB) *QuoteRepository {
	return &QuoteRepository{db: db}
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func (r *QuoteRepository) Save(ctx context.Context, quote *domain.Quote) error {
	m, err := persistence.ToQuoteModel(quote)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO quotes (`+quoteColumns+`)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		m.ID, m.PolicyName, m.CategoryCode, formatTime(m.PickupAt), formatTime(m.ReturnAt),
		m.Destinations, m.InsuranceType, m.KilometerPackage, m.EstimatedKm, m.PaymentTermsDays,
		m.Bookable, m.TotalNet.StringFixed(2), m.Currency, string(m.Result), m.Fingerprint,
		formatTime(m.CreatedAt), formatTime(m.ExpiresAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateQuote
		}
		return fmt.Errorf("insert quote: %w", err)
	}
	return nil
}

func (r *QuoteRepository) FindByID(ctx context.Context, id string) (*domain.Quote, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+quoteColumns+` FROM quotes WHERE id = ?`, id)
	return scanQuote(row)
}

// FindByFingerprint lists quotes issued for the same normalized request, newest first.
func (r *QuoteRepository) FindByFingerprint(ctx context.Context, fingerprint string, limit int) ([]*domain.Quote, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+quoteColumns+` FROM quotes WHERE fingerprint = ? ORDER BY created_at DESC LIMIT ?`,
		fingerprint, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query quotes by fingerprint: %w", err)
	}
	defer rows.Close()

	var quotes []*domain.Quote
	for rows.Next() {
		q, err := scanQuote(rows)
		if err != nil {
			return nil, err
		}
		quotes = append(quotes, q)
	}
	return quotes, rows.Err()
}

func (r *QuoteRepository) DeleteExpired(ctx context.Context, now time.Time, limit int) (int, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM quotes WHERE id IN (
			SELECT id FROM quotes WHERE expires_at <= ? ORDER BY expires_at LIMIT ?
		)`,
		formatTime(now), limit,
	)
	if err != nil {
		return 0, fmt.Errorf("delete expired quotes: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return int(n), nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanQuote(row rowScanner) (*domain.Quote, error) {
	var (
		m                                      persistence.QuoteModel
		pickup, ret, created, expires, payload string
	)
	err := row.Scan(
		&m.ID, &m.PolicyName, &m.CategoryCode, &pickup, &ret, &m.Destinations,
		&m.InsuranceType, &m.KilometerPackage, &m.EstimatedKm, &m.PaymentTermsDays,
		&m.Bookable, &m.TotalNet, &m.Currency, &payload, &m.Fingerprint, &created, &expires,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, application.ErrQuoteNotFound
		}
		return nil, fmt.Errorf("scan quote: %w", err)
	}
	m.Result = []byte(payload)

	for _, f := range []struct {
		dst *time.Time
		src string
	}{
		{&m.PickupAt, pickup},
		{&m.ReturnAt, ret},
		{&m.CreatedAt, created},
		{&m.ExpiresAt, expires},
	} {
		if *f.dst, err = time.Parse(timeLayout, f.src); err != nil {
			return nil, fmt.Errorf("parse quote timestamp %q: %w", f.src, err)
		}
	}

	return persistence.ToDomainQuote(m)
}

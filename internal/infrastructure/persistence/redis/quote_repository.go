package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/DanielPopoola/rental-pricing-engine/internal/application"
	"github.com/DanielPopoola/rental-pricing-engine/internal/domain"
	"github.com/DanielPopoola/rental-pricing-engine/internal/infrastructure/persistence"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

var ErrDuplicateQuote = errors.New("quote already exists")

const (
	quoteKeyPrefix       = "pricing:quote:"
	fingerprintKeyPrefix = "pricing:quotes:fp:"
)

// quoteRecord is the JSON value stored under each quote key.
type quoteRecord struct {
	ID               string          `json:"id"`
	PolicyName       string          `json:"policy_name"`
	CategoryCode     string          `json:"category_code"`
	PickupAt         time.Time       `json:"pickup_at"`
	ReturnAt         time.Time       `json:"return_at"`
	Destinations     string          `json:"destinations"`
	InsuranceType    string          `json:"insurance_type"`
	KilometerPackage string          `json:"kilometer_package"`
	EstimatedKm      int             `json:"estimated_km"`
	PaymentTermsDays int             `json:"payment_terms_days"`
	Bookable         bool            `json:"bookable"`
	TotalNet         decimal.Decimal `json:"total_net"`
	Currency         string          `json:"currency"`
	Result           json.RawMessage `json:"result"`
	Fingerprint      string          `json:"fingerprint"`
	CreatedAt        time.Time       `json:"created_at"`
	ExpiresAt        time.Time       `json:"expires_at"`
}

// QuoteRepository stores each quote under its own key with the quote's
// expiry as the key's expiry, so the server drops expired quotes by itself.
// A sorted set per fingerprint, scored by creation time, indexes the history.
type QuoteRepository struct {
	client *redis.Client
}

// saveScript writes the quote and its index entry in one step. A key that
// already holds the same payload is a replayed save and still gets indexed;
// any other payload under the key is a duplicate.
var saveScript = redis.NewScript(`
if not redis.call('SET', KEYS[1], ARGV[1], 'NX', 'PXAT', ARGV[2]) then
	if redis.call('GET', KEYS[1]) ~= ARGV[1] then
		return 0
	end
end
redis.call('ZADD', KEYS[2], ARGV[3], ARGV[4])
redis.call('PEXPIREAT', KEYS[2], ARGV[2])
return 1
`)

func NewQuoteRepository(client *redis.Client) *QuoteRepository {
	return &QuoteRepository{client: client}
}

func quoteKey(id string) string { return quoteKeyPrefix + id }

func fingerprintKey(fp string) string { return fingerprintKeyPrefix + fp }

func (r *QuoteRepository) Save(ctx context.Context, quote *domain.Quote) error {
	m, err := persistence.ToQuoteModel(quote)
	if err != nil {
		return err
	}
	payload, err := json.Marshal(toRecord(m))
	if err != nil {
		return fmt.Errorf("encode quote: %w", err)
	}

	stored, err := saveScript.Run(ctx, r.client,
		[]string{quoteKey(m.ID), fingerprintKey(m.Fingerprint)},
		payload,
		m.ExpiresAt.UnixMilli(),
		m.CreatedAt.UnixNano(),
		m.ID,
	).Int()
	if err != nil {
		return fmt.Errorf("save quote: %w", err)
	}
	if stored == 0 {
		return ErrDuplicateQuote
	}
	return nil
}

func (r *QuoteRepository) FindByID(ctx context.Context, id string) (*domain.Quote, error) {
	payload, err := r.client.Get(ctx, quoteKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, application.ErrQuoteNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get quote: %w", err)
	}
	return decodeQuote(payload)
}

// FindByFingerprint lists quotes issued for the same normalized request,
// newest first. Index entries whose quote already expired are skipped.
func (r *QuoteRepository) FindByFingerprint(ctx context.Context, fingerprint string, limit int) ([]*domain.Quote, error) {
	ids, err := r.client.ZRevRange(ctx, fingerprintKey(fingerprint), 0, int64(limit)-1).Result()
	if err != nil {
		return nil, fmt.Errorf("query fingerprint index: %w", err)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = quoteKey(id)
	}
	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("load quotes: %w", err)
	}

	quotes := make([]*domain.Quote, 0, len(values))
	for _, v := range values {
		s, ok := v.(string)
		if !ok {
			continue
		}
		q, err := decodeQuote([]byte(s))
		if err != nil {
			return nil, err
		}
		quotes = append(quotes, q)
	}
	return quotes, nil
}

// DeleteExpired only prunes fingerprint index entries. Quote keys expire on
// the server, so the count is always zero.
func (r *QuoteRepository) DeleteExpired(ctx context.Context, _ time.Time, limit int) (int, error) {
	var cursor uint64
	for scanned := 0; scanned < limit; {
		keys, next, err := r.client.Scan(ctx, cursor, fingerprintKeyPrefix+"*", int64(limit)).Result()
		if err != nil {
			return 0, fmt.Errorf("scan fingerprint index: %w", err)
		}
		for _, key := range keys {
			if err := r.pruneIndex(ctx, key); err != nil {
				return 0, err
			}
		}
		scanned += len(keys)
		cursor = next
		if cursor == 0 {
			break
		}
	}
	return 0, nil
}

func (r *QuoteRepository) pruneIndex(ctx context.Context, indexKey string) error {
	ids, err := r.client.ZRange(ctx, indexKey, 0, -1).Result()
	if err != nil {
		return fmt.Errorf("read fingerprint index: %w", err)
	}
	for _, id := range ids {
		exists, err := r.client.Exists(ctx, quoteKey(id)).Result()
		if err != nil {
			return fmt.Errorf("check quote: %w", err)
		}
		if exists == 0 {
			if err := r.client.ZRem(ctx, indexKey, id).Err(); err != nil {
				return fmt.Errorf("prune fingerprint index: %w", err)
			}
		}
	}
	return nil
}

func decodeQuote(payload []byte) (*domain.Quote, error) {
	var rec quoteRecord
	if err := json.Unmarshal(payload, &rec); err != nil {
		return nil, fmt.Errorf("decode quote: %w", err)
	}
	return persistence.ToDomainQuote(rec.model())
}

func toRecord(m *persistence.QuoteModel) quoteRecord {
	return quoteRecord{
		ID:               m.ID,
		PolicyName:       m.PolicyName,
		CategoryCode:     m.CategoryCode,
		PickupAt:         m.PickupAt,
		ReturnAt:         m.ReturnAt,
		Destinations:     m.Destinations,
		InsuranceType:    m.InsuranceType,
		KilometerPackage: m.KilometerPackage,
		EstimatedKm:      m.EstimatedKm,
		PaymentTermsDays: m.PaymentTermsDays,
		Bookable:         m.Bookable,
		TotalNet:         m.TotalNet,
		Currency:         m.Currency,
		Result:           m.Result,
		Fingerprint:      m.Fingerprint,
		CreatedAt:        m.CreatedAt,
		ExpiresAt:        m.ExpiresAt,
	}
}

func (rec quoteRecord) model() persistence.QuoteModel {
	return persistence.QuoteModel{
		ID:               rec.ID,
		PolicyName:       rec.PolicyName,
		CategoryCode:     rec.CategoryCode,
		PickupAt:         rec.PickupAt,
		ReturnAt:         rec.ReturnAt,
		Destinations:     rec.Destinations,
		InsuranceType:    rec.InsuranceType,
		KilometerPackage: rec.KilometerPackage,
		EstimatedKm:      rec.EstimatedKm,
		PaymentTermsDays: rec.PaymentTermsDays,
		Bookable:         rec.Bookable,
		TotalNet:         rec.TotalNet,
		Currency:         rec.Currency,
		Result:           rec.Result,
		Fingerprint:      rec.Fingerprint,
		CreatedAt:        rec.CreatedAt,
		ExpiresAt:        rec.ExpiresAt,
	}
}

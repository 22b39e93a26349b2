package events

import (
	"time"

	"github.com/DanielPopoola/rental-pricing-engine/internal/domain"
	"github.com/google/uuid"
)

const QuoteIssuedType = "quote.issued"

// QuoteIssuedEvent is the message value published for every stored quote.
type QuoteIssuedEvent struct {
	EventID      string    `json:"event_id"`
	Type         string    `json:"type"`
	QuoteID      string    `json:"quote_id"`
	Policy       string    `json:"policy"`
	Category     string    `json:"category"`
	Destinations []string  `json:"destinations"`
	Days         int       `json:"days"`
	Bookable     bool      `json:"bookable"`
	TotalNet     string    `json:"total_net"`
	TotalGross   string    `json:"total_gross"`
	Currency     string    `json:"currency"`
	Fingerprint  string    `json:"fingerprint"`
	IssuedAt     time.Time `json:"issued_at"`
	ExpiresAt    time.Time `json:"expires_at"`
}

func NewQuoteIssuedEvent(q *domain.Quote) QuoteIssuedEvent {
	destinations := make([]string, len(q.Destinations))
	for i, c := range q.Destinations {
		destinations[i] = c.String()
	}

	total := q.Result.TotalPrice
	return QuoteIssuedEvent{
		EventID:      uuid.New().String(),
		Type:         QuoteIssuedType,
		QuoteID:      q.ID,
		Policy:       q.PolicyName,
		Category:     q.CategoryCode,
		Destinations: destinations,
		Days:         q.Result.Days,
		Bookable:     q.Result.Bookable,
		TotalNet:     total.Net().StringFixed(2),
		TotalGross:   total.Gross().StringFixed(2),
		Currency:     total.Currency(),
		Fingerprint:  q.Fingerprint,
		IssuedAt:     q.CreatedAt,
		ExpiresAt:    q.ExpiresAt,
	}
}

package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/DanielPopoola/rental-pricing-engine/internal/config"
	"github.com/DanielPopoola/rental-pricing-engine/internal/domain"
	"github.com/twmb/franz-go/pkg/kgo"
)

// QuotePublisher writes QuoteIssuedEvents to a Kafka topic. Records are keyed
// by request fingerprint so repeat quotes for one request stay ordered.
type QuotePublisher struct {
	client *kgo.Client
	topic  string
	logger *slog.Logger
}

func NewQuotePublisher(cfg config.EventsConfig, logger *slog.Logger, opts ...kgo.Opt) (*QuotePublisher, error) {
	base := []kgo.Opt{
		kgo.SeedBrokers(cfg.Brokers...),
		kgo.DefaultProduceTopic(cfg.Topic),
		kgo.AllowAutoTopicCreation(),
		kgo.RequiredAcks(kgo.AllISRAcks()),
	}
	client, err := kgo.NewClient(append(base, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}

	logger.Info("quote events enabled", "brokers", cfg.Brokers, "topic", cfg.Topic)
	return &QuotePublisher{client: client, topic: cfg.Topic, logger: logger}, nil
}

func (p *QuotePublisher) QuoteIssued(ctx context.Context, quote *domain.Quote) error {
	record, err := buildRecord(p.topic, quote)
	if err != nil {
		return err
	}
	if err := p.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("produce quote event: %w", err)
	}
	p.logger.Debug("quote event published", "quote_id", quote.ID, "topic", p.topic)
	return nil
}

// Close flushes buffered records and closes the client.
func (p *QuotePublisher) Close() {
	p.client.Close()
}

func buildRecord(topic string, quote *domain.Quote) (*kgo.Record, error) {
	payload, err := json.Marshal(NewQuoteIssuedEvent(quote))
	if err != nil {
		return nil, fmt.Errorf("encode quote event: %w", err)
	}
	return &kgo.Record{
		Topic: topic,
		Key:   []byte(quote.Fingerprint),
		Value: payload,
		Headers: []kgo.RecordHeader{
			{Key: "event_type", Value: []byte(QuoteIssuedType)},
		},
	}, nil
}

//go:build integration

package events_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/DanielPopoola/rental-pricing-engine/internal/config"
	"github.com/DanielPopoola/rental-pricing-engine/internal/infrastructure/events"
	"github.com/DanielPopoola/rental-pricing-engine/internal/testhelpers"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/redpanda"
	"github.com/twmb/franz-go/pkg/kgo"
)

func TestQuotePublisher_Redpanda(t *testing.T) {
	ctx := context.Background()

	container, err := redpanda.Run(ctx, "docker.redpanda.com/redpandadata/redpanda:v23.3.3",
		redpanda.WithAutoCreateTopics())
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	broker, err := container.KafkaSeedBroker(ctx)
	require.NoError(t, err)

	cfg := config.EventsConfig{Enabled: true, Brokers: []string{broker}, Topic: "quotes-test"}
	publisher, err := events.NewQuotePublisher(cfg, testhelpers.DiscardLogger())
	require.NoError(t, err)
	defer publisher.Close()

	quote := testhelpers.NewQuote("q-kafka", time.Now().UTC(), time.Hour)
	require.NoError(t, publisher.QuoteIssued(ctx, quote))

	consumer, err := kgo.NewClient(
		kgo.SeedBrokers(broker),
		kgo.ConsumeTopics(cfg.Topic),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	)
	require.NoError(t, err)
	defer consumer.Close()

	pollCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	fetches := consumer.PollFetches(pollCtx)
	require.Empty(t, fetches.Errors())

	records := fetches.Records()
	require.Len(t, records, 1)

	var event events.QuoteIssuedEvent
	require.NoError(t, json.Unmarshal(records[0].Value, &event))
	require.Equal(t, "q-kafka", event.QuoteID)
	require.Equal(t, []byte(quote.Fingerprint), records[0].Key)
}

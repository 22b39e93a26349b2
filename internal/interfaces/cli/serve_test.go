package cli

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/DanielPopoola/rental-pricing-engine/internal/config"
	"github.com/DanielPopoola/rental-pricing-engine/internal/infrastructure/persistence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServe_ShutsDownOnCancel(t *testing.T) {
	t.Setenv("PRICING_SERVER__PORT", "0")
	t.Setenv("PRICING_STORAGE__DRIVER", config.DriverSQLite)
	t.Setenv("PRICING_STORAGE__SQLITE_PATH", filepath.Join(t.TempDir(), "quotes.db"))
	t.Setenv("PRICING_METRICS__ENABLED", "true")
	t.Setenv("PRICING_METRICS__ADDR", "127.0.0.1:0")

	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	assert.NoError(t, serve(ctx, cfg, discardLogger()))
}

func TestOpenStore_UnknownDriver(t *testing.T) {
	cfg := &config.Config{Storage: config.StorageConfig{Driver: "mongo"}}

	_, _, err := openStore(context.Background(), cfg, discardLogger())
	assert.Error(t, err)
}

func TestOpenStore_WrapsDurableStoresWithRetry(t *testing.T) {
	cfg := &config.Config{Storage: config.StorageConfig{
		Driver:     config.DriverSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "quotes.db"),
		Retry:      config.RetryConfig{MaxRetries: 2, BaseDelay: time.Millisecond},
	}}

	repo, closeStore, err := openStore(context.Background(), cfg, discardLogger())
	require.NoError(t, err)
	defer closeStore()

	assert.IsType(t, &persistence.RetryQuoteRepository{}, repo)
}

func TestOpenStore_RedisBadURL(t *testing.T) {
	cfg := &config.Config{
		Storage: config.StorageConfig{Driver: config.DriverRedis},
		Redis:   config.RedisConfig{URL: "not-a-url"},
	}

	_, _, err := openStore(context.Background(), cfg, discardLogger())
	assert.Error(t, err)
}

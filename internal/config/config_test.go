package config_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/DanielPopoola/rental-pricing-engine/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := config.LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, config.DriverMemory, cfg.Storage.Driver)
	assert.Equal(t, 72*time.Hour, cfg.Quote.Validity)
	assert.Equal(t, 10*time.Minute, cfg.Worker.Interval)
	assert.Equal(t, 500, cfg.Worker.BatchSize)
	assert.Equal(t, 3, cfg.Storage.Retry.MaxRetries)
	assert.Equal(t, 100*time.Millisecond, cfg.Storage.Retry.BaseDelay)
	assert.False(t, cfg.Metrics.Enabled)
}

func TestLoadConfig_EnvironmentOverrides(t *testing.T) {
	t.Setenv("PRICING_SERVER__PORT", "9999")
	t.Setenv("PRICING_QUOTE__VALIDITY", "24h")
	t.Setenv("PRICING_WORKER__BATCH_SIZE", "25")
	t.Setenv("PRICING_STORAGE__DRIVER", "sqlite")
	t.Setenv("PRICING_STORAGE__SQLITE_PATH", "/tmp/quotes.db")

	cfg, err := config.LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, "9999", cfg.Server.Port)
	assert.Equal(t, 24*time.Hour, cfg.Quote.Validity)
	assert.Equal(t, 25, cfg.Worker.BatchSize)
	assert.Equal(t, "/tmp/quotes.db", cfg.Storage.SQLitePath)
}

func TestLoadConfig_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pricing.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: "7070"
logger:
  level: debug
  format: text
metrics:
  enabled: true
  addr: ":9191"
`), 0o600))
	t.Setenv("PRICING_CONFIG_FILE", path)
	t.Setenv("PRICING_LOGGER__LEVEL", "warn")

	cfg, err := config.LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, "7070", cfg.Server.Port)
	assert.Equal(t, "warn", cfg.Logger.Level, "environment wins over file")
	assert.Equal(t, "text", cfg.Logger.Format)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, ":9191", cfg.Metrics.Addr)
}

func TestLoadConfig_EventsAndRedis(t *testing.T) {
	t.Setenv("PRICING_STORAGE__DRIVER", "redis")
	t.Setenv("PRICING_REDIS__URL", "redis://localhost:6379/0")
	t.Setenv("PRICING_EVENTS__ENABLED", "true")
	t.Setenv("PRICING_EVENTS__BROKERS", "kafka-1:9092,kafka-2:9092")

	cfg, err := config.LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, "redis://localhost:6379/0", cfg.Redis.URL)
	assert.Equal(t, 10, cfg.Redis.PoolSize)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Events.Brokers)
	assert.Equal(t, "pricing.quotes.issued", cfg.Events.Topic)
}

func TestLoadConfig_Invalid(t *testing.T) {
	t.Run("unknown storage driver", func(t *testing.T) {
		t.Setenv("PRICING_STORAGE__DRIVER", "mongo")

		_, err := config.LoadConfig()
		assert.Error(t, err)
	})

	t.Run("retries must be positive", func(t *testing.T) {
		t.Setenv("PRICING_STORAGE__RETRY__MAX_RETRIES", "0")

		_, err := config.LoadConfig()
		assert.Error(t, err)
	})

	t.Run("redis requires a url", func(t *testing.T) {
		t.Setenv("PRICING_STORAGE__DRIVER", "redis")

		_, err := config.LoadConfig()
		assert.Error(t, err)
	})

	t.Run("events require brokers", func(t *testing.T) {
		t.Setenv("PRICING_EVENTS__ENABLED", "true")

		_, err := config.LoadConfig()
		assert.Error(t, err)
	})

	t.Run("postgres requires database settings", func(t *testing.T) {
		t.Setenv("PRICING_STORAGE__DRIVER", "postgres")

		_, err := config.LoadConfig()
		assert.Error(t, err)
	})

	t.Run("postgres with database settings", func(t *testing.T) {
		t.Setenv("PRICING_STORAGE__DRIVER", "postgres")
		t.Setenv("PRICING_DATABASE__HOST", "localhost")
		t.Setenv("PRICING_DATABASE__PORT", "5432")
		t.Setenv("PRICING_DATABASE__USER", "pricing")
		t.Setenv("PRICING_DATABASE__PASSWORD", "p@ss/word")
		t.Setenv("PRICING_DATABASE__NAME", "pricing")
		t.Setenv("PRICING_DATABASE__SSL_MODE", "disable")
		t.Setenv("PRICING_DATABASE__MAX_OPEN_CONNS", "10")
		t.Setenv("PRICING_DATABASE__MAX_IDLE_CONNS", "2")
		t.Setenv("PRICING_DATABASE__CONN_MAX_LIFETIME", "1h")
		t.Setenv("PRICING_DATABASE__CONN_MAX_IDLE_TIME", "5m")

		cfg, err := config.LoadConfig()
		require.NoError(t, err)

		pgx, err := cfg.Database.PgxConfig(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "p@ss/word", pgx.ConnConfig.Password)
		assert.Equal(t, int32(10), pgx.MaxConns)
	})
}

func TestLoggerConfig_NewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := config.LoggerConfig{Level: "warn", Format: "json"}.NewLoggerTo(&buf)

	logger.Info("hidden")
	logger.Warn("shown", "quote_id", "q-1")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"quote_id":"q-1"`)
}

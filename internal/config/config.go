package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
)

const (
	envPrefix     = "PRICING_"
	configFileEnv = "PRICING_CONFIG_FILE"
)

type Config struct {
	Primary  Primary        `koanf:"primary"`
	Server   ServerConfig   `koanf:"server"`
	Storage  StorageConfig  `koanf:"storage"`
	Database DatabaseConfig `koanf:"database" validate:"-"`
	Redis    RedisConfig    `koanf:"redis"`
	Logger   LoggerConfig   `koanf:"logger"`
	Worker   WorkerConfig   `koanf:"worker"`
	Quote    QuoteConfig    `koanf:"quote"`
	Metrics  MetricsConfig  `koanf:"metrics"`
	Events   EventsConfig   `koanf:"events"`
}

type WorkerConfig struct {
	Interval  time.Duration `koanf:"interval" validate:"required"`
	BatchSize int           `koanf:"batch_size" validate:"required,min=1"`
}

type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

type ServerConfig struct {
	Port           string        `koanf:"port" validate:"required"`
	ReadTimeout    time.Duration `koanf:"read_timeout" validate:"required"`
	WriteTimeout   time.Duration `koanf:"write_timeout" validate:"required"`
	IdleTimeout    time.Duration `koanf:"idle_timeout" validate:"required"`
	RequestTimeout time.Duration `koanf:"request_timeout" validate:"required"`
}

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverRedis    = "redis"
	DriverMemory   = "memory"
)

type StorageConfig struct {
	Driver     string      `koanf:"driver" validate:"required,oneof=postgres sqlite redis memory"`
	SQLitePath string      `koanf:"sqlite_path"`
	Retry      RetryConfig `koanf:"retry"`
}

type RetryConfig struct {
	MaxRetries int           `koanf:"max_retries" validate:"min=1"`
	BaseDelay  time.Duration `koanf:"base_delay"`
}

type DatabaseConfig struct {
	Host            string        `koanf:"host" validate:"required"`
	Port            int           `koanf:"port" validate:"required"`
	User            string        `koanf:"user" validate:"required"`
	Password        string        `koanf:"password" validate:"required"`
	Name            string        `koanf:"name" validate:"required"`
	SSLMode         string        `koanf:"ssl_mode" validate:"required"`
	MaxOpenConns    int           `koanf:"max_open_conns" validate:"required"`
	MaxIdleConns    int           `koanf:"max_idle_conns" validate:"required"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime" validate:"required"`
	ConnMaxIdleTime time.Duration `koanf:"conn_max_idle_time" validate:"required"`
}

type RedisConfig struct {
	URL          string        `koanf:"url"`
	PoolSize     int           `koanf:"pool_size" validate:"min=0"`
	DialTimeout  time.Duration `koanf:"dial_timeout"`
	ReadTimeout  time.Duration `koanf:"read_timeout"`
	WriteTimeout time.Duration `koanf:"write_timeout"`
}

// EventsConfig controls publishing of issued quotes to Kafka.
type EventsConfig struct {
	Enabled bool     `koanf:"enabled"`
	Brokers []string `koanf:"brokers"`
	Topic   string   `koanf:"topic"`
}

type QuoteConfig struct {
	Validity time.Duration `koanf:"validity" validate:"required"`
}

type MetricsConfig struct {
	Enabled bool   `koanf:"enabled"`
	Addr    string `koanf:"addr"`
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"primary.env":               "development",
		"server.port":               "8080",
		"server.read_timeout":       "5s",
		"server.write_timeout":      "10s",
		"server.idle_timeout":       "60s",
		"server.request_timeout":    "5s",
		"storage.driver":            DriverMemory,
		"storage.sqlite_path":       "pricing.db",
		"storage.retry.max_retries": 3,
		"storage.retry.base_delay":  "100ms",
		"redis.pool_size":           10,
		"redis.dial_timeout":        "5s",
		"redis.read_timeout":        "3s",
		"redis.write_timeout":       "3s",
		"logger.level":              "info",
		"logger.format":             "json",
		"worker.interval":           "10m",
		"worker.batch_size":         500,
		"quote.validity":            "72h",
		"metrics.enabled":           false,
		"metrics.addr":              ":9090",
		"events.enabled":            false,
		"events.topic":              "pricing.quotes.issued",
	}
}

func LoadConfig() (*Config, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		logger.Error("failed to load defaults", "error", err)
		return nil, err
	}

	if path := os.Getenv(configFileEnv); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			logger.Error("failed to load config file", "path", path, "error", err)
			return nil, err
		}
	}

	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ReplaceAll(
			strings.ToLower(strings.TrimPrefix(s, envPrefix)),
			"__",
			".",
		)
	}), nil)
	if err != nil {
		logger.Error("failed to load environment variables", "error", err)
		return nil, err
	}

	mainConfig := &Config{}

	err = k.Unmarshal("", mainConfig)
	if err != nil {
		logger.Error("could not unmarshal main config", "error", err)
		return nil, err
	}

	if err := mainConfig.Validate(); err != nil {
		logger.Error("config validation failed", "error", err)
		return nil, err
	}

	return mainConfig, nil
}

// Validate checks every section; database settings only matter for the
// postgres driver.
func (c *Config) Validate() error {
	validate := validator.New()

	if err := validate.Struct(c); err != nil {
		return err
	}
	if c.Storage.Driver == DriverPostgres {
		if err := validate.Struct(c.Database); err != nil {
			return err
		}
	}
	if c.Storage.Driver == DriverSQLite && c.Storage.SQLitePath == "" {
		return fmt.Errorf("storage.sqlite_path is required for the sqlite driver")
	}
	if c.Storage.Driver == DriverRedis && c.Redis.URL == "" {
		return fmt.Errorf("redis.url is required for the redis driver")
	}
	if c.Events.Enabled && (len(c.Events.Brokers) == 0 || c.Events.Topic == "") {
		return fmt.Errorf("events.brokers and events.topic are required when events are enabled")
	}
	if c.Metrics.Enabled && c.Metrics.Addr == "" {
		return fmt.Errorf("metrics.addr is required when metrics are enabled")
	}
	return nil
}

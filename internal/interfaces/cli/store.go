package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/DanielPopoola/rental-pricing-engine/internal/application"
	"github.com/DanielPopoola/rental-pricing-engine/internal/config"
	"github.com/DanielPopoola/rental-pricing-engine/internal/infrastructure/persistence"
	"github.com/DanielPopoola/rental-pricing-engine/internal/infrastructure/persistence/memory"
	"github.com/DanielPopoola/rental-pricing-engine/internal/infrastructure/persistence/postgres"
	"github.com/DanielPopoola/rental-pricing-engine/internal/infrastructure/persistence/redis"
	"github.com/DanielPopoola/rental-pricing-engine/internal/infrastructure/persistence/sqlite"
)

// openStore returns the quote repository for the configured driver and a
// function that releases it.
func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (application.QuoteRepository, func(), error) {
	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		db, err := postgres.Connect(ctx, &cfg.Database, logger)
		if err != nil {
			return nil, nil, err
		}
		repo := postgres.NewQuoteRepository(db.Pool)
		return persistence.NewRetryQuoteRepository(repo, cfg.Storage.Retry, postgres.IsTransient), db.Close, nil

	case config.DriverSQLite:
		db, err := sqlite.InitDB(cfg.Storage.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("using sqlite quote store", "path", cfg.Storage.SQLitePath)
		repo := sqlite.NewQuoteRepository(db)
		return persistence.NewRetryQuoteRepository(repo, cfg.Storage.Retry, sqlite.IsBusy), func() { _ = db.Close() }, nil

	case config.DriverRedis:
		client, err := redis.Connect(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("using redis quote store", "addr", client.Options().Addr)
		repo := redis.NewQuoteRepository(client)
		return persistence.NewRetryQuoteRepository(repo, cfg.Storage.Retry, redis.IsTransient), func() { _ = client.Close() }, nil

	case config.DriverMemory:
		logger.Warn("using in-memory quote store; quotes are lost on restart")
		return memory.NewQuoteRepository(), func() {}, nil
	}

	return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
}

package cli

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/DanielPopoola/rental-pricing-engine/internal/api"
	"github.com/DanielPopoola/rental-pricing-engine/internal/application"
	"github.com/DanielPopoola/rental-pricing-engine/internal/application/services"
	"github.com/DanielPopoola/rental-pricing-engine/internal/config"
	"github.com/DanielPopoola/rental-pricing-engine/internal/infrastructure/events"
	"github.com/DanielPopoola/rental-pricing-engine/internal/interfaces/rest/handlers"
	"github.com/DanielPopoola/rental-pricing-engine/internal/metrics"
	"github.com/DanielPopoola/rental-pricing-engine/internal/worker"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 30 * time.Second

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long:  "Serve the pricing API. Configuration comes from PRICING_* environment variables and an optional PRICING_CONFIG_FILE.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return serve(ctx, cfg, cfg.Logger.NewLogger())
		},
	}
}

func serve(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	slog.SetDefault(logger)
	logger.Info("starting pricing service",
		"env", cfg.Primary.Env,
		"port", cfg.Server.Port,
		"storage", cfg.Storage.Driver,
	)

	quoteRepo, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to open quote store", "error", err)
		return err
	}
	defer closeStore()

	var appMetrics application.Metrics = application.NopMetrics{}
	var collector *metrics.Metrics
	if cfg.Metrics.Enabled {
		collector = metrics.New()
		appMetrics = collector
	}

	var quoteOpts []services.QuoteServiceOption
	if cfg.Events.Enabled {
		publisher, err := events.NewQuotePublisher(cfg.Events, logger)
		if err != nil {
			logger.Error("failed to start quote publisher", "error", err)
			return err
		}
		defer publisher.Close()
		quoteOpts = append(quoteOpts, services.WithQuoteEvents(publisher))
	}

	h := handlers.NewHandlers(
		services.NewQuoteService(quoteRepo, appMetrics, logger, cfg.Quote.Validity, quoteOpts...),
		services.NewPolicyService(appMetrics),
		services.NewCatalogService(),
		services.NewComplianceService(),
		logger,
	)

	router, err := api.NewRouter(h, logger, cfg.Server.RequestTimeout)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	expirationWorker := worker.NewQuoteExpirationWorker(
		quoteRepo,
		appMetrics,
		cfg.Worker.Interval,
		cfg.Worker.BatchSize,
		logger,
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	var metricsServer *http.Server
	if collector != nil {
		metricsServer = &http.Server{
			Addr:              cfg.Metrics.Addr,
			Handler:           collector.Handler(),
			ReadHeaderTimeout: cfg.Server.ReadTimeout,
		}
		g.Go(func() error {
			logger.Info("metrics server starting", "addr", metricsServer.Addr)
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
	}

	g.Go(func() error {
		expirationWorker.Start(gctx)
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("server forced to shutdown", "error", err)
		}
		if metricsServer != nil {
			if err := metricsServer.Shutdown(shutdownCtx); err != nil {
				logger.Error("metrics server forced to shutdown", "error", err)
			}
		}
		return nil
	})

	err = g.Wait()
	logger.Info("server exited")
	return err
}

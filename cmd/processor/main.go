package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/benx421/payment-gateway/processor/internal/config"
	"github.com/benx421/payment-gateway/processor/internal/db"
	"github.com/benx421/payment-gateway/processor/internal/gateway"
	"github.com/benx421/payment-gateway/processor/internal/gateway/simulator"
	"github.com/benx421/payment-gateway/processor/internal/handlers"
	"github.com/benx421/payment-gateway/processor/internal/middleware"
	"github.com/benx421/payment-gateway/processor/internal/models"
	"github.com/benx421/payment-gateway/processor/internal/repository"
	"github.com/benx421/payment-gateway/processor/internal/service"
)

type storeBackend interface {
	repository.Store
	service.HealthChecker
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := cfg.Logger.NewLogger()
	slog.SetDefault(logger)

	logger.Info("starting processor api",
		"port", cfg.Server.Port,
		"log_level", cfg.Logger.Level,
		"store_backend", cfg.Store.Backend,
		"provider_type", cfg.Provider.Type,
	)

	ctx := context.Background()
	store, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to open store", "error", err)
		os.Exit(1)
	}
	defer closeStore()

	registry := gateway.NewRegistry(logger)
	if err := registry.Register(simulator.Type, simulator.Factory(logger)); err != nil {
		logger.Error("failed to register provider", "error", err)
		os.Exit(1)
	}
	provider, err := registry.Get(gateway.Config{
		ProviderID: cfg.Provider.ID,
		Type:       cfg.Provider.Type,
		Params:     cfg.ProviderParams(),
	})
	if err != nil {
		logger.Error("failed to create provider", "error", err)
		os.Exit(1)
	}

	processor := service.NewProcessor(provider, store, logger)
	handler := handlers.NewHandler(processor, processor, store, models.Principal(cfg.App.DefaultPrincipal), logger)
	router, err := handlers.NewRouter(handler, middleware.NewCacheIdempotencyStore(cfg.App.IdempotencyTTL), logger)
	if err != nil {
		logger.Error("failed to build router", "error", err)
		os.Exit(1)
	}

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info("server listening", "address", server.Addr, "provider_id", provider.ID())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server stopped")
}

// openStore returns the configured store and a function releasing it.
func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (storeBackend, func(), error) {
	switch cfg.Store.Backend {
	case config.StoreBackendPostgres:
		database, err := db.Connect(ctx, &cfg.Database, logger)
		if err != nil {
			return nil, nil, err
		}
		if err := database.Migrate(ctx); err != nil {
			_ = database.Close()
			return nil, nil, err
		}
		return repository.NewPostgresStore(database, logger), func() { _ = database.Close() }, nil
	case config.StoreBackendFile:
		return repository.NewFileStore(cfg.Store.FilePath, logger), func() {}, nil
	default:
		return repository.NewMemoryStore(logger), func() {}, nil
	}
}

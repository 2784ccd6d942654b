package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"aquaflow/internal/auth"
	"aquaflow/internal/config"
	"aquaflow/internal/database"
	"aquaflow/internal/handler"
	"aquaflow/internal/router"
	"aquaflow/internal/service"
	"aquaflow/internal/store"
	"aquaflow/internal/store/memory"
	"aquaflow/internal/store/postgres"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Str("backend", cfg.Store.Backend).Msg("starting aquaflow API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize the persistence backend
	var st *store.Store
	switch cfg.Store.Backend {
	case config.BackendPostgres:
		pool, err := database.NewPool(ctx, cfg.Database, logger)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		defer pool.Close()

		if err := database.Migrate(pool, logger); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}

		st = postgres.New(pool, logger)

	case config.BackendMemory:
		st, err = memory.Open(cfg.Store.DataPath, logger)
		if err != nil {
			return fmt.Errorf("failed to open memory store: %w", err)
		}
	}

	// Initialize sessions and services
	sessions := auth.NewSessions(cfg.Session.TTL, logger)
	accountService := service.NewAccountService(st, logger)
	inventoryService := service.NewInventoryService(st, logger)
	orderService := service.NewOrderService(st, logger)
	invoiceService := service.NewInvoiceService(st, logger)
	reportService := service.NewReportService(st, logger)

	// Initialize HTTP handlers
	handlers := router.Handlers{
		Auth:      handler.NewAuthHandler(accountService, sessions, logger),
		Area:      handler.NewAreaHandler(accountService, logger),
		Address:   handler.NewAddressHandler(accountService, logger),
		Inventory: handler.NewInventoryHandler(inventoryService, logger),
		Order:     handler.NewOrderHandler(orderService, invoiceService, logger),
		Invoice:   handler.NewInvoiceHandler(invoiceService, logger),
		Report:    handler.NewReportHandler(reportService, logger),
	}

	// Initialize router
	mux := router.New(handlers, sessions, accountService, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		// Create a context with timeout for shutdown
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		// Attempt graceful shutdown
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			// Force close
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}

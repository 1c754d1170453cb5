package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/Denizcan35/barin/internal/amqp"
	"github.com/Denizcan35/barin/internal/api"
	"github.com/Denizcan35/barin/internal/audit"
	"github.com/Denizcan35/barin/internal/config"
	apphttp "github.com/Denizcan35/barin/internal/http"
	applog "github.com/Denizcan35/barin/internal/log"
	"github.com/Denizcan35/barin/internal/service"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	// Setup structured logging
	logger := applog.New(applog.Config{
		Level:     slog.LevelInfo,
		Component: applog.ComponentApp,
	})
	applog.SetDefault(logger)

	logger.Info("Starting barin dashboard")

	// Load configuration
	cfg := config.Load()

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	// Backend API client
	backend := api.NewClient(cfg.APIBaseURL, cfg.APIToken, cfg.APITimeout)
	logger.Info("Receipt backend configured", "base_url", cfg.APIBaseURL, "timeout", cfg.APITimeout)

	// Local audit journal
	journal, err := audit.NewStore(cfg.AuditDBPath)
	if err != nil {
		logger.Error("Failed to initialize audit journal", "error", err, "path", cfg.AuditDBPath)
		os.Exit(1)
	}
	defer journal.Close()

	// AMQP change events (optional)
	var publisher *amqp.Client
	if cfg.AMQPURL != "" {
		publisher, err = amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to initialize AMQP client", "error", err)
			os.Exit(1)
		}
		defer publisher.Close()
		logger.Info("AMQP publisher initialized", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
	} else {
		logger.Info("AMQP disabled - no AMQP_URL provided")
	}

	var svc *service.ReceiptService
	if publisher != nil {
		svc = service.NewReceiptService(backend, journal, publisher)
	} else {
		svc = service.NewReceiptService(backend, journal, nil)
	}

	srv := apphttp.NewServer(":"+cfg.Port, svc, cfg.SessionTTL, cfg.StatsCacheTTL)

	// Configure server timeouts and limits
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 30 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting barin server", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	logger.Info("Server stopped gracefully")
}

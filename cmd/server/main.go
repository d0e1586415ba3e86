package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/VINCLARIFY/payment-service/internal/adapter/repository"
	"github.com/VINCLARIFY/payment-service/internal/config"
	domainProvider "github.com/VINCLARIFY/payment-service/internal/domain/provider"
	domainRepo "github.com/VINCLARIFY/payment-service/internal/domain/repository"
	httpServer "github.com/VINCLARIFY/payment-service/internal/infrastructure/http"
	"github.com/VINCLARIFY/payment-service/internal/infrastructure/provider"
	"github.com/VINCLARIFY/payment-service/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	var logger *zap.Logger
	if cfg.Service.Environment == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize payment provider
	factory := provider.NewFactory(cfg, logger)
	paymentProvider, err := factory.GetProvider(domainProvider.ProviderTypePayPal)
	if err != nil {
		logger.Fatal("Failed to initialize payment provider", zap.Error(err))
	}

	// Initialize capture record sink
	var records domainRepo.CaptureRecordRepository
	if cfg.Sheets.WebhookURL != "" {
		records = repository.NewSheetsCaptureRecordRepository(cfg.Sheets.WebhookURL, logger)
	} else {
		logger.Warn("No sheets webhook configured; capture records will not be forwarded")
		records = repository.NoopCaptureRecordRepository{}
	}

	checkout := usecase.NewCheckoutService(paymentProvider, records, cfg.Policy, logger)

	// Start HTTP server
	srv := httpServer.NewServer(cfg, logger, checkout)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start HTTP server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Failed to shutdown HTTP server", zap.Error(err))
	}

	logger.Info("Server shut down successfully")
}

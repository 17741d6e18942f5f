package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/markethub/products-api/internal/app/service"
	"github.com/markethub/products-api/internal/infrastructure/auth"
	"github.com/markethub/products-api/internal/infrastructure/config"
	"github.com/markethub/products-api/internal/infrastructure/http"
	"github.com/markethub/products-api/internal/infrastructure/http/handler"
	"github.com/markethub/products-api/internal/infrastructure/repository/mongodb"
	"github.com/markethub/products-api/internal/infrastructure/telemetry"
)

func main() {
	cfg := config.LoadConfig()

	var telem *telemetry.Telemetry
	if cfg.OTLP.ExportEnabled {
		t, err := telemetry.NewTelemetry(&cfg.OTLP)
		if err != nil {
			log.Fatalf("Failed to initialize telemetry: %v", err)
		}
		telem = t
	} else {
		telem = telemetry.NewNoOpTelemetry(&cfg.OTLP)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := telem.Shutdown(shutdownCtx); err != nil {
			log.Printf("Error shutting down telemetry: %v", err)
		}
	}()

	tracer := telem.TracerProvider.Tracer("products-api")
	meter := telem.MeterProvider.Meter("products-api")
	logger := telem.Logger

	logger.Info("Starting Products API")

	client, err := mongodb.Connect(cfg.Mongo)
	if err != nil {
		logger.Error("Failed to connect to MongoDB", "error", err.Error())
		os.Exit(1)
	}
	defer func() {
		disconnectCtx, disconnectCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer disconnectCancel()
		if err := client.Disconnect(disconnectCtx); err != nil {
			logger.Error("Error disconnecting from MongoDB", "error", err.Error())
		}
	}()

	repo := mongodb.NewProductRepository(client.Database(cfg.Mongo.Database), tracer, logger)

	productService := service.NewProductService(repo, tracer, meter, logger)
	productHandler := handler.NewProductHandler(productService, logger)
	tokens := auth.NewManager(cfg.Auth)

	server := http.NewServer(&cfg.Server, productHandler, tokens, repo, logger, telem)

	go func() {
		if err := server.Start(); err != nil {
			logger.Error("Server error", "error", err.Error())
			cancel()
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
		logger.Info("Shutting down server...")
	case <-ctx.Done():
		logger.Info("Context cancelled, shutting down...")
	}

	logger.Info("Server stopped")
}

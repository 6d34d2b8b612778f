// cmd/storefront/main.go
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/your-org/storefront-client/internal/api"
	"github.com/your-org/storefront-client/internal/config"
	"github.com/your-org/storefront-client/internal/domain/cart"
	"github.com/your-org/storefront-client/internal/domain/checkout"
	"github.com/your-org/storefront-client/internal/domain/session"
	httpserver "github.com/your-org/storefront-client/internal/interfaces/http"
	"github.com/your-org/storefront-client/internal/pkg/logging"
	"github.com/your-org/storefront-client/internal/pkg/receipt"
	"github.com/your-org/storefront-client/internal/storage"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting %s v%s in %s mode", cfg.App.Name, cfg.App.Version, cfg.App.Environment)

	logger := logging.New(cfg)

	// Open the persistence substrate
	store, closeStore, err := storage.Open(cfg)
	if err != nil {
		log.Fatalf("Failed to open storage backend %q: %v", cfg.Storage.Backend, err)
	}
	defer closeStore()

	ctx := context.Background()

	// Restore persisted state and wire the engine
	sessions := session.NewManager(ctx, store, logger)
	cartStore := cart.NewStore(ctx, store, logger)
	client := api.NewClient(cfg, sessions.Token, logger)

	var receipts checkout.ReceiptWriter
	if cfg.Receipt.Enabled {
		receipts = receipt.NewService(cfg, logger)
	}
	coordinator := checkout.NewCoordinator(cartStore, client, client, receipts, cfg.Checkout, logger)

	// Create and start the HTTP facade
	server := httpserver.NewServer(cfg, httpserver.Dependencies{
		Cart:        cartStore,
		Sessions:    sessions,
		Coordinator: coordinator,
		API:         client,
		Logger:      logger,
	})

	go func() {
		if err := server.Start(); err != nil {
			log.Fatalf("Failed to start HTTP server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Stop(shutdownCtx); err != nil {
		log.Printf("Failed to shutdown HTTP server gracefully: %v", err)
	}

	log.Println("Server shutdown completed")
}

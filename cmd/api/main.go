package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"loja-rosa/internal/checkout"
	"loja-rosa/internal/config"
	"loja-rosa/internal/database"
	"loja-rosa/internal/delivery"
	"loja-rosa/internal/handler"
	"loja-rosa/internal/pricing"
	"loja-rosa/internal/promo"
	"loja-rosa/internal/repository"
	"loja-rosa/internal/router"
	"loja-rosa/internal/service"
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
	logger.Info().Msg("starting loja-rosa API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection pool
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	// Initialize repositories
	productRepo := repository.NewProductRepository(pool, logger)
	orderRepo := repository.NewOrderRepository(pool, logger)

	// Initialize promo catalog loader with S3 primary and local fallback
	fileLoader := promo.NewFileLoader(logger)
	promoLoader := fileLoader

	if cfg.Promo.S3Enabled {
		s3Loader, err := promo.NewS3Loader(ctx, cfg.Promo.S3Bucket, cfg.Promo.S3Region, cfg.Promo.S3Prefix, logger)
		if err != nil {
			logger.Warn().
				Err(err).
				Msg("failed to initialise S3 loader, falling back to local file system only")
		} else {
			promoLoader = promo.NewFallbackLoader(s3Loader, fileLoader, logger)
		}
	} else {
		logger.Info().Msg("using local file system for promo catalogs (S3 disabled)")
	}

	// Initialize promo resolver
	resolver, err := promo.NewResolver(ctx, &promo.ResolverConfig{Paths: cfg.Promo.Paths}, promoLoader, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize promo resolver: %w", err)
	}
	defer resolver.Close()

	// Initialize pricing engine and checkout flow
	engine := pricing.NewEngine(pricing.Config{
		FreeDeliveryThreshold: cfg.Pricing.FreeDeliveryThreshold,
		BaseDeliveryFee:       cfg.Pricing.BaseDeliveryFee,
	})
	catalog := checkout.NewCatalog(nil, checkout.DefaultDeliveryMethods(), checkout.DefaultPaymentMethods())
	flow := checkout.NewFlow(engine, catalog, logger)
	postal := delivery.NewPostalValidator(delivery.DefaultPostalRanges())

	// Initialize services
	productService := service.NewProductService(productRepo, logger)
	cartService := service.NewCartService(engine, resolver, logger)
	checkoutService := service.NewCheckoutService(flow, catalog, postal, orderRepo, productRepo, resolver, logger)

	// Initialize HTTP handlers
	productHandler := handler.NewProductHandler(productService, logger)
	cartHandler := handler.NewCartHandler(cartService, logger)
	checkoutHandler := handler.NewCheckoutHandler(checkoutService, logger)
	orderHandler := handler.NewOrderHandler(checkoutService, logger)

	// Initialize router
	mux := router.New(productHandler, cartHandler, checkoutHandler, orderHandler, cfg.Auth.APIKey, logger)

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

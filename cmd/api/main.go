package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"solesnaps-api/internal/auth"
	"solesnaps-api/internal/config"
	"solesnaps-api/internal/coupon"
	"solesnaps-api/internal/database"
	"solesnaps-api/internal/handler"
	"solesnaps-api/internal/repository"
	"solesnaps-api/internal/router"
	"solesnaps-api/internal/service"
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
	logger := config.NewLogger(cfg)
	logger.Info().Msg("starting solesnaps API server")

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
	userRepo := repository.NewUserRepository(pool, logger)
	productRepo := repository.NewProductRepository(pool, logger)
	locationRepo := repository.NewLocationRepository(pool, logger)
	cartRepo := repository.NewCartRepository(pool, logger)
	orderRepo := repository.NewOrderRepository(pool, logger)
	couponRepo := repository.NewCouponRepository(pool, logger)

	// Initialize coupon code loader with S3 and local fallback
	fileLoader := coupon.NewFileLoader(logger)
	var couponLoader coupon.Loader = fileLoader

	if cfg.S3.Enabled {
		s3Loader, err := coupon.NewS3Loader(ctx, cfg.S3.Bucket, cfg.S3.Region, logger)
		if err != nil {
			logger.Warn().
				Err(err).
				Msg("failed to initialise S3 loader, falling back to local file system only")
		} else {
			couponLoader = coupon.NewFallbackLoader(s3Loader, fileLoader, cfg.S3.Prefix, true, logger)
		}
	} else {
		logger.Info().Msg("using local file system for coupon code files (S3 disabled)")
	}

	// Initialize token issuer
	issuer := auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.AccessTTL, cfg.Auth.RefreshTTL)

	// Initialize services
	userService := service.NewUserService(userRepo, issuer, logger)
	productService := service.NewProductService(productRepo, logger)
	locationService := service.NewLocationService(locationRepo, logger)
	cartService := service.NewCartService(cartRepo, productRepo, logger)
	couponService := service.NewCouponService(couponRepo, couponLoader, logger)
	orderService := service.NewOrderService(orderRepo, productRepo, cartRepo, locationRepo, couponRepo, userRepo, logger)

	// Initialize HTTP handlers
	handlers := router.Handlers{
		Auth:     handler.NewAuthHandler(userService, logger),
		Product:  handler.NewProductHandler(productService, logger),
		Cart:     handler.NewCartHandler(cartService, logger),
		Order:    handler.NewOrderHandler(orderService, logger),
		Location: handler.NewLocationHandler(locationService, logger),
		Coupon:   handler.NewCouponHandler(couponService, logger),
	}

	// Initialize router
	mux := router.New(cfg, issuer, handlers, logger)

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

		logger.Info().Msg("server shutdown complete")
	}

	return nil
}

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"roastery/internal/cache"
	"roastery/internal/checkout"
	"roastery/internal/config"
	"roastery/internal/database"
	"roastery/internal/handler"
	"roastery/internal/notify"
	"roastery/internal/payment"
	"roastery/internal/repository"
	"roastery/internal/router"
	"roastery/internal/service"
	"roastery/internal/shipping"

	"github.com/redis/go-redis/v9"
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
	logger.Info().Msg("starting roastery API server")

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
	customerRepo := repository.NewCustomerRepository(pool, logger)

	// Optional Redis-backed catalogue cache. The service degrades to plain
	// database lookups when disabled or unreachable.
	var productCache *cache.ProductCache
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
		})
		defer redisClient.Close()

		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Warn().Err(err).Msg("redis unreachable, continuing without catalogue cache")
		} else {
			productCache = cache.NewProductCache(
				redisClient,
				time.Duration(cfg.Redis.TTL)*time.Second,
				logger,
			)
			logger.Info().Str("addr", cfg.Redis.Addr).Msg("catalogue cache enabled")
		}
	}

	// New-customer credential notifications go to a webhook when configured.
	var notifier notify.Notifier
	if cfg.Notify.WebhookURL != "" {
		notifier = notify.NewWebhookNotifier(cfg.Notify.WebhookURL, logger)
	} else {
		notifier = notify.NewNopNotifier()
		logger.Info().Msg("no notification webhook configured, credential notifications disabled")
	}

	// Initialize services
	productService := service.NewProductService(productRepo, productCache, logger)
	orderService := service.NewOrderService(orderRepo, customerRepo, notifier, logger)

	// Shipping: remote rule lookup with the hardcoded fallback rate behind it.
	ruleLookup := shipping.NewHTTPRuleLookup(
		cfg.Shipping.RuleServiceURL,
		time.Duration(cfg.Shipping.TimeoutSeconds)*time.Second,
		logger,
	)
	shippingCalc := shipping.NewCalculator(ruleLookup, logger)

	// Payment gateway
	gateway := payment.NewStripeGateway(cfg.Payment.StripeAPIKey, logger)

	// Checkout orchestrator
	orchestrator := checkout.NewOrchestrator(
		productService,
		shippingCalc,
		gateway,
		orderService,
		cfg.Payment.Currency,
		logger,
	)

	// Initialize HTTP handlers
	productHandler := handler.NewProductHandler(productService, logger)
	checkoutHandler := handler.NewCheckoutHandler(orchestrator, logger)
	shippingHandler := handler.NewShippingHandler(shippingCalc, logger)
	orderHandler := handler.NewOrderHandler(orderService, logger)
	newsletterHandler := handler.NewNewsletterHandler(customerRepo, logger)

	// Initialize router
	mux := router.New(
		productHandler,
		checkoutHandler,
		shippingHandler,
		orderHandler,
		newsletterHandler,
		cfg.Auth.AdminAPIKey,
		logger,
	)

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

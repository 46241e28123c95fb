package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/orlecare/storefront-backend/api/routes"
	cartsvc "github.com/orlecare/storefront-backend/internal/cart"
	"github.com/orlecare/storefront-backend/internal/catalog"
	checkoutsvc "github.com/orlecare/storefront-backend/internal/checkout"
	"github.com/orlecare/storefront-backend/pkg/config"
	"github.com/orlecare/storefront-backend/pkg/logger"
	"github.com/orlecare/storefront-backend/pkg/metrics"
	"github.com/orlecare/storefront-backend/pkg/sheets"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	catalogService, err := catalog.NewService(cfg.Catalog)
	if err != nil {
		logg.Error(context.Background(), "failed to load catalog", err)
		os.Exit(1)
	}

	store := cartsvc.NewStore()
	cartService, err := cartsvc.NewService(store, catalogService, cfg.Pricing)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	collector, err := sheets.NewClient(cfg.Checkout, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create order collector", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	checkoutService, err := checkoutsvc.NewService(cartService, collector, metrics.NewCheckoutMetrics(registry), logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout service", err)
		os.Exit(1)
	}

	go sweepIdleCarts(store, cfg.Cart, logg)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"products": len(catalogService.List()),
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, catalogService, cartService, checkoutService, registry),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

func sweepIdleCarts(store *cartsvc.Store, cfg config.CartConfig, logg *logger.Logger) {
	interval := cfg.SweepInterval
	if interval <= 0 {
		interval = time.Hour
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		if dropped := store.PruneIdle(cfg.IdleTTL); dropped > 0 {
			ctx := logg.WithField(context.Background(), "dropped", dropped)
			logg.Info(ctx, "pruned idle carts")
		}
	}
}

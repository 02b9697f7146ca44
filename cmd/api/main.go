package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/aarshhmi/luminique-admin-backend/api/controllers"
	"github.com/aarshhmi/luminique-admin-backend/api/routes"
	"github.com/aarshhmi/luminique-admin-backend/internal/cms"
	"github.com/aarshhmi/luminique-admin-backend/internal/masterdata"
	"github.com/aarshhmi/luminique-admin-backend/internal/pricing"
	"github.com/aarshhmi/luminique-admin-backend/internal/pricingrules"
	"github.com/aarshhmi/luminique-admin-backend/internal/products"
	"github.com/aarshhmi/luminique-admin-backend/pkg/config"
	"github.com/aarshhmi/luminique-admin-backend/pkg/currency"
	"github.com/aarshhmi/luminique-admin-backend/pkg/db"
	"github.com/aarshhmi/luminique-admin-backend/pkg/logger"
	"github.com/aarshhmi/luminique-admin-backend/pkg/metrics"
	"github.com/aarshhmi/luminique-admin-backend/pkg/migrate"
	"github.com/aarshhmi/luminique-admin-backend/pkg/redis"
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

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := metrics.NewHTTPMetrics(registry)
	importMetrics := metrics.NewImportMetrics(registry)

	masterDataService, err := masterdata.NewService(
		masterdata.NewRepository(dbClient.DB()),
		dbClient,
		redisClient,
		cfg.Cache.MasterDataTTL,
		logg,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create master-data service", err)
		os.Exit(1)
	}

	productService, err := products.NewService(products.NewRepository(dbClient.DB()), dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create product service", err)
		os.Exit(1)
	}

	calc := pricing.NewCalculator(currency.FromConfig(cfg.Currency))
	pricingRuleService, err := pricingrules.NewService(
		pricingrules.NewRepository(dbClient.DB()),
		productService,
		calc,
		logg,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create pricing-rule service", err)
		os.Exit(1)
	}

	cmsService, err := cms.NewService(cms.NewRepository(dbClient.DB()), dbClient, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create cms service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting admin api server")

	handler := routes.NewRouter(
		cfg,
		logg,
		map[string]controllers.Pinger{
			"postgres": dbClient,
			"redis":    redisClient,
		},
		redisClient,
		registry,
		httpMetrics,
		importMetrics,
		masterDataService,
		productService,
		pricingRuleService,
		cmsService,
	)

	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "admin api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case sig := <-stop:
		logg.Info(logg.WithField(ctx, "signal", sig.String()), "shutting down admin api server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
			os.Exit(1)
		}
	}
}

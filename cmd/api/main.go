package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/verdantly/verdantly-backend/api/controllers"
	"github.com/verdantly/verdantly-backend/api/routes"
	"github.com/verdantly/verdantly-backend/internal/analytics"
	"github.com/verdantly/verdantly-backend/internal/cart"
	"github.com/verdantly/verdantly-backend/internal/catalog"
	"github.com/verdantly/verdantly-backend/internal/wishlist"
	"github.com/verdantly/verdantly-backend/pkg/config"
	"github.com/verdantly/verdantly-backend/pkg/db"
	"github.com/verdantly/verdantly-backend/pkg/logger"
	"github.com/verdantly/verdantly-backend/pkg/metrics"
	"github.com/verdantly/verdantly-backend/pkg/migrate"
	"github.com/verdantly/verdantly-backend/pkg/pubsub"
	"github.com/verdantly/verdantly-backend/pkg/redis"
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

	dbClient, err := db.New(context.Background(), cfg.DB, cfg.FeatureFlags.UseSQLite, logg)
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

	pingers := map[string]controllers.Pinger{"db": dbClient}

	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient, err = redis.New(context.Background(), cfg.Redis, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
		pingers["redis"] = redisClient
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	cartMetrics := metrics.NewCartMetrics(registry)

	catalogRepo, err := catalog.NewRepository(dbClient.DB())
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog repository", err)
		os.Exit(1)
	}
	catalogService, err := catalog.NewService(catalogRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	var snapshots cart.SnapshotStore
	if redisClient != nil {
		snapshots, err = cart.NewRedisSnapshotStore(redisClient, cfg.Pricing.CartMaxAge)
	} else {
		snapshots, err = cart.NewDBSnapshotStore(dbClient.DB())
	}
	if err != nil {
		logg.Error(context.Background(), "failed to create snapshot store", err)
		os.Exit(1)
	}

	sinks := []analytics.Sink{&analytics.LogSink{Logger: logg}}
	if cfg.PubSub.Enabled() {
		pubsubClient, err := pubsub.NewClient(context.Background(), cfg.PubSub, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap pubsub", err)
			os.Exit(1)
		}
		defer func() {
			if err := pubsubClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing pubsub", err)
			}
		}()
		sinks = append(sinks, analytics.NewPubSubSink(pubsubClient.EventsPublisher()))
		pingers["pubsub"] = pubsubClient
	}

	catalogAdapter := catalog.NewCartAdapter(catalogRepo, nil)
	cartService, err := cart.NewService(cart.ServiceParams{
		Products:  catalogAdapter,
		Coupons:   catalogAdapter,
		Shipping:  catalogAdapter,
		Snapshots: snapshots,
		Analytics: &analytics.MultiSink{Sinks: sinks},
		Metrics:   cartMetrics,
		Logger:    logg,
		Rules: cart.Pricing{
			TaxRate:               cfg.Pricing.TaxRateDecimal(),
			FlatShippingFee:       cfg.Pricing.FlatShippingFeeDecimal(),
			FreeShippingThreshold: cfg.Pricing.FreeShippingThresholdDecimal(),
		},
		MaxAge: cfg.Pricing.CartMaxAge,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	wishlistRepo, err := wishlist.NewRepository(dbClient.DB())
	if err != nil {
		logg.Error(context.Background(), "failed to create wishlist repository", err)
		os.Exit(1)
	}
	wishlistService, err := wishlist.NewService(wishlistRepo, catalogService)
	if err != nil {
		logg.Error(context.Background(), "failed to create wishlist service", err)
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
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:   cfg,
			Logger:   logg,
			Catalog:  catalogService,
			Cart:     cartService,
			Wishlist: wishlistService,
			Pingers:  pingers,
			Registry: registry,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

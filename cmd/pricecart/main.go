package main

import (
	"context"
	"flag"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/pricecart/pricecart/internal/httpapi/handlers"
	"github.com/pricecart/pricecart/internal/httpapi/server"
	"github.com/pricecart/pricecart/pkg/basket"
	"github.com/pricecart/pricecart/pkg/cache"
	"github.com/pricecart/pricecart/pkg/cache/inmemory"
	"github.com/pricecart/pricecart/pkg/cache/redis"
	"github.com/pricecart/pricecart/pkg/clients/pricefinder"
	"github.com/pricecart/pricecart/pkg/config"
	"github.com/pricecart/pricecart/pkg/logger"
	"github.com/pricecart/pricecart/pkg/search"
	"github.com/pricecart/pricecart/pkg/session"
	"github.com/pricecart/pricecart/pkg/store"
	"github.com/pricecart/pricecart/pkg/telemetry"
)

const serviceVersion = "0.1.0"

func main() {
	configPath := flag.String("config", "", "path to the config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logrus.WithError(err).Fatal("failed to load configuration")
	}

	logger.Init(cfg.App.LogLevel, cfg.App.Environment)
	ctx := context.Background()

	if err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    cfg.App.Name,
		ServiceVersion: serviceVersion,
		OTLPEndpoint:   cfg.Telemetry.OTLPEndpoint,
		Insecure:       cfg.Telemetry.Insecure,
		Enabled:        cfg.Telemetry.Enabled,
	}); err != nil {
		logrus.WithError(err).Fatal("failed to initialize telemetry")
	}
	defer func() {
		if err := telemetry.Shutdown(ctx); err != nil {
			logrus.WithError(err).Error("failed to shut down telemetry")
		}
	}()

	storageCache, err := newCache(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("failed to initialize storage cache")
	}
	if err := storageCache.Ping(ctx); err != nil {
		logrus.WithError(err).Fatal("storage cache is unreachable")
	}

	metrics, err := telemetry.NewMetrics()
	if err != nil {
		logrus.WithError(err).Fatal("failed to create metrics")
	}

	backend, err := pricefinder.NewClient(cfg.SearchBackend)
	if err != nil {
		logrus.WithError(err).Fatal("failed to create pricefinder client")
	}

	st := store.New(storageCache)
	sess := session.New(st)
	searchCache := search.New(st.Search, backend, metrics)
	basketStore := basket.New(ctx, st.Basket, metrics)

	logrus.WithFields(logrus.Fields{
		"environment":   cfg.App.Environment,
		"cacheProvider": cfg.Cache.Provider,
		"sessionActive": sess.IsActive(ctx),
		"basketLines":   len(basketStore.Items()),
	}).Info("state layer initialized")

	h := handlers.NewHandlers(cfg, searchCache, basketStore, sess)
	apiServer := server.NewAPIServer(cfg, h)
	if err := apiServer.Start(); err != nil {
		logrus.WithError(err).Error("http API server exited with error")
		os.Exit(1)
	}
}

func newCache(cfg *config.AppConfig) (cache.Cache, error) {
	switch cfg.Cache.Provider {
	case "redis":
		return redis.NewCache(&cfg.Cache.Redis)
	default:
		return inmemory.NewCache(&cfg.Cache.InMemory)
	}
}

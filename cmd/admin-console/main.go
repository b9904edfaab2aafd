package main

import (
	"context"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"admin-console/internal/backend"
	"admin-console/internal/common/cache"
	"admin-console/internal/common/config"
	"admin-console/internal/common/logger"
	"admin-console/internal/common/observability"
	"admin-console/internal/console/offerfilter"
	"admin-console/internal/console/partnerregistry"
)

func main() {
	// Bootstrap logger until the configured one is available.
	bootLog := logger.New("info", "console")

	cfg, err := config.Load()
	if err != nil {
		bootLog.Fatal("config load failed", zap.Error(err))
	}
	_ = bootLog.Sync()

	log := logger.NewStructured(cfg.Logging.Level, cfg.Logging.Format)
	log.Info("Starting admin console...", map[string]interface{}{
		"environment": cfg.App.Environment,
		"backend":     cfg.Backend.BaseURL,
	})

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init Redis (optional; catalog cache degrades without it) ---
	var redisCache *cache.RedisClient
	if cfg.Catalog.CacheTTL > 0 {
		redisCache, err = cache.NewRedis(cfg.Cache.Redis)
		if err == nil {
			err = redisCache.Ping(ctx)
		}
		if err != nil {
			log.Warn("redis unavailable, catalog cache disabled", map[string]interface{}{"error": err.Error()})
			redisCache = nil
		} else {
			defer redisCache.Close()
			log.Info("Redis connected successfully", nil)
		}
	}

	// --- Init backend client and screens ---
	client := backend.NewClient(cfg.Backend, log)
	registry := partnerregistry.NewRegistry(client, log)
	offers := offerfilter.NewEngine(client, redisCache, cfg.Catalog.GetCacheTTL(), log)

	// --- Backend reachability probe ---
	if partners, err := registry.List(ctx); err != nil {
		log.Warn("backend probe failed", map[string]interface{}{"error": err.Error()})
	} else {
		log.Info("backend reachable", map[string]interface{}{"partners": len(partners)})
	}

	// --- Warm the offer catalog (best effort) ---
	if catalog, err := offers.LoadCatalog(ctx); err != nil {
		log.Warn("offer catalog warmup failed", map[string]interface{}{"error": err.Error()})
	} else {
		log.Info("offer catalog warmed", map[string]interface{}{"offers": len(catalog)})
	}

	// --- Metrics endpoint ---
	if cfg.Metrics.Enabled {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			mux.Handle("/debug/pprof/", http.DefaultServeMux)
			log.Info("metrics listening", map[string]interface{}{"address": cfg.Metrics.Address})
			if err := http.ListenAndServe(cfg.Metrics.Address, mux); err != nil {
				log.Error("metrics server stopped", map[string]interface{}{"error": err.Error()})
			}
		}()
	}

	log.Info("Admin console ready", nil)

	// Block until shutdown signal
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Info("Shutting down admin console...", nil)
}

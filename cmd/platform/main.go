package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/pressid/mission-orders/internal/api"
	"github.com/pressid/mission-orders/internal/buildinfo"
	"github.com/pressid/mission-orders/internal/config"
	"github.com/pressid/mission-orders/internal/core/services"
	"github.com/pressid/mission-orders/internal/db"
	"github.com/pressid/mission-orders/internal/health"
	"github.com/pressid/mission-orders/internal/log"
	"github.com/pressid/mission-orders/internal/metrics"
	"github.com/pressid/mission-orders/internal/redis"
	"github.com/pressid/mission-orders/internal/repositories"
	"github.com/pressid/mission-orders/pkg/cache"
	"github.com/pressid/mission-orders/pkg/pubsub"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load("")
	if err != nil {
		log.Error(context.Background(), "cannot load config", "err", err)
		return
	}

	ctx, cancel := context.WithCancel(log.NewContext(context.Background(), cfg.Log.Level, cfg.Log.Mode, os.Stdout))
	defer cancel()
	log.Info(ctx, "starting mission orders platform", buildinfo.LogAttrs()...)

	if err := cfg.Sanitize(); err != nil {
		log.Error(ctx, "there are errors in the configuration that prevent server to start", "err", err)
		return
	}
	location, _ := cfg.Issuer.TimeLocation()

	storage, err := db.NewStorage(cfg.Database.URL)
	if err != nil {
		log.Error(ctx, "cannot connect to database", "err", err)
		return
	}
	defer func() { _ = storage.Close() }()

	pingers := map[string]health.Ping{"db": storage}
	cachex, ps, err := newCacheAndPubSub(ctx, cfg, pingers)
	if err != nil {
		log.Error(ctx, "cannot connect to cache", "err", err, "provider", cfg.Cache.Provider)
		return
	}
	var publisher pubsub.Publisher
	if ps != nil {
		defer func() { _ = ps.Close() }()
		publisher = ps
	}

	m := metrics.New(prometheus.DefaultRegisterer)

	journalistRepository := repositories.NewJournalist(*storage)
	assignmentRepository := repositories.NewAssignment(*storage)
	verificationLogRepository := repositories.NewVerificationLog(*storage)

	assignmentService := services.NewAssignment(services.AssignmentCfg{
		Organization: cfg.Issuer.Organization,
		Position:     cfg.Issuer.Position,
		Location:     location,
	}, storage, services.NewJournalist(journalistRepository), assignmentRepository, publisher, m)
	verificationService := services.NewVerification(services.VerificationCfg{
		Location: location,
		CacheTTL: cfg.Cache.TTL,
	}, assignmentRepository, verificationLogRepository, cachex, publisher, m)

	mux := chi.NewRouter()
	mux.Use(
		chiMiddleware.RequestID,
		log.ChiMiddleware(ctx),
		chiMiddleware.Recoverer,
		cors.AllowAll().Handler,
		chiMiddleware.NoCache,
		m.Instrument,
	)
	mux.Handle("/metrics", metrics.Handler(prometheus.DefaultGatherer))
	api.NewServer(cfg, assignmentService, verificationService, health.New(pingers)).Register(mux)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Info(ctx, "server started", "port", cfg.ServerPort)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error(ctx, "starting http server", "err", err)
			quit <- syscall.SIGTERM
		}
	}()

	<-quit
	log.Info(ctx, "Shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "shutting down http server", "err", err)
	}
}

// newCacheAndPubSub opens the verification cache and, when enabled, the event publisher.
// A redis connection is shared by both and added to the health checks.
func newCacheAndPubSub(ctx context.Context, cfg *config.Configuration, pingers map[string]health.Ping) (cache.Cache, pubsub.Client, error) {
	if cfg.Cache.Provider == config.CacheProviderRedis {
		rdb, err := redis.Open(ctx, cfg.Cache.Url)
		if err != nil {
			return nil, nil, err
		}
		pingers["redis"] = redis.Pinger{Client: rdb}
		var ps pubsub.Client
		if cfg.PubSub.Enabled {
			ps = pubsub.NewRedis(rdb)
		}
		return cache.NewRedisCache(rdb), ps, nil
	}

	c, err := cache.NewCacheClient(ctx, *cfg)
	if err != nil {
		return nil, nil, err
	}
	if !cfg.PubSub.Enabled {
		return c, nil, nil
	}
	ps, err := pubsub.NewPubSub(ctx, *cfg)
	if err != nil {
		return nil, nil, err
	}
	return c, ps, nil
}

// Command community-api serves community aggregates over HTTP.
//
// Configuration is read from an optional file (-config) and COMMUNITY_*
// environment variables, for example:
//
//	COMMUNITY_POSTGRES_URI=postgres://community@db/community
//	COMMUNITY_CACHE_TTL=10m
//	COMMUNITY_REDIS_URI=redis://cache:6379/0
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/StricklySoft/stricklysoft-community/pkg/aggregates"
	"github.com/StricklySoft/stricklysoft-community/pkg/api"
	"github.com/StricklySoft/stricklysoft-community/pkg/clients/postgres"
	"github.com/StricklySoft/stricklysoft-community/pkg/clients/redis"
	"github.com/StricklySoft/stricklysoft-community/pkg/config"
	"github.com/StricklySoft/stricklysoft-community/pkg/lifecycle"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	configPath := flag.String("config", "", "path to a YAML or JSON config file")
	flag.Parse()

	cfg := config.MustLoad[ServiceConfig](
		config.New().WithEnvPrefix(envPrefix).WithFile(*configPath),
	)
	level, _ := cfg.level()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("community-api exited with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg ServiceConfig, logger *slog.Logger) error {
	var (
		db    *postgres.Client
		cache *redis.Client
	)

	svc, err := lifecycle.NewServiceBuilder("community-api", version).
		WithLogger(logger).
		WithOnStart(func(ctx context.Context) error {
			var err error
			db, err = postgres.NewClient(ctx, cfg.Postgres)
			return err
		}).
		WithOnStart(func(ctx context.Context) error {
			if cfg.CacheTTL <= 0 {
				return nil
			}
			var err error
			cache, err = redis.NewClient(ctx, cfg.Redis)
			return err
		}).
		WithOnStop(func(context.Context) error {
			db.Close()
			return nil
		}).
		WithOnStop(func(context.Context) error {
			if cache == nil {
				return nil
			}
			return cache.Close()
		}).
		WithHealthCheck("postgres", func(ctx context.Context) error { return db.Health(ctx) }).
		WithHealthCheck("redis", func(ctx context.Context) error {
			if cache == nil {
				return nil
			}
			return cache.Health(ctx)
		}).
		Build()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := svc.Start(ctx); err != nil {
		// A failed start skips the stop hooks.
		if db != nil {
			db.Close()
		}
		return err
	}

	var reader aggregates.Reader = aggregates.NewPostgresReader(db)
	if cache != nil {
		reader = aggregates.NewFallbackReader(reader, cache, cfg.CacheTTL, logger)
		logger.Info("stale aggregate fallback enabled", "ttl", cfg.CacheTTL)
	}

	registry := prometheus.NewRegistry()
	metrics := api.NewMetrics()
	registry.MustRegister(metrics, collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	responder := api.NewResponder(api.WithLogger(logger), api.WithMetrics(metrics))
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: newServer(reader, responder, svc).routes(registry),
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-ctx.Done():
		logger.Info("received signal, shutting down")
	case err := <-serveErr:
		if err != nil {
			logger.Error("http server failed", "error", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return errors.Join(srv.Shutdown(shutdownCtx), svc.Stop(shutdownCtx))
}

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

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/reviewsearch/internal/db/connector"
	"github.com/kailas-cloud/reviewsearch/internal/metrics"
	"github.com/kailas-cloud/reviewsearch/internal/transport/web"
	healthuc "github.com/kailas-cloud/reviewsearch/internal/usecase/health"
	searchuc "github.com/kailas-cloud/reviewsearch/internal/usecase/search"
	"github.com/kailas-cloud/reviewsearch/internal/version"
)

func runServe(ctx context.Context, env string) error {
	a, err := bootstrap(env)
	if err != nil {
		return err
	}
	cfg, logger := a.cfg, a.logger
	defer func() { _ = logger.Sync() }()

	if err := cfg.VectorStore.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger.Info("Starting reviewsearch",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("search_api", cfg.SearchAPI.BaseURL),
		zap.String("vector_store_driver", cfg.VectorStore.Driver),
		zap.String("vector_store_addr", cfg.VectorStore.Address),
	)

	store, err := connector.Open(cfg.VectorStore)
	if err != nil {
		return fmt.Errorf("open vector store: %w", err)
	}
	defer store.Close()

	if err := store.WaitForReady(ctx, time.Duration(cfg.VectorStore.ReadinessTimeout)*time.Second); err != nil {
		return fmt.Errorf("vector store not ready: %w", err)
	}
	logger.Info("Connected to vector store", zap.String("driver", store.Driver()), zap.String("addr", store.Addr()))

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	httpMetrics, err := metrics.NewHTTP(reg)
	if err != nil {
		return fmt.Errorf("register http metrics: %w", err)
	}

	client := newSearchClient(cfg.SearchAPI, logger)
	viewLogger := logger.Named("view")
	sessions := web.NewSessions(func(id string) (*searchuc.View, error) {
		return searchuc.New(client,
			searchuc.WithLogger(viewLogger.With(zap.String("session", id))),
			searchuc.WithPrometheus(reg),
		)
	}, web.SessionsConfig{
		TTL:               time.Duration(cfg.UI.SessionTTLSec) * time.Second,
		SearchesPerMinute: cfg.UI.SearchesPerMinute,
		Gauge:             httpMetrics.Sessions(),
		Logger:            logger.Named("sessions"),
	})
	defer sessions.Close()

	server := web.NewServer(web.Config{
		Language:   cfg.UI.Language,
		APIKeys:    cfg.HTTP.APIKeys,
		CookieTTL:  time.Duration(cfg.UI.SessionTTLSec) * time.Second,
		SecureOnly: a.secureCookies(),
	}, sessions, healthuc.New(store, client), httpMetrics, reg, logger)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      server.Router(),
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		sessions.Run(gctx)
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("Server stopped gracefully")
	return nil
}

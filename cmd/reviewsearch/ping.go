package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/kailas-cloud/reviewsearch/internal/db"
	"github.com/kailas-cloud/reviewsearch/internal/db/connector"
)

func runPing(ctx context.Context, env string, out io.Writer) error {
	a, err := bootstrap(env)
	if err != nil {
		return err
	}
	defer func() { _ = a.logger.Sync() }()

	cfg := a.cfg
	if err := cfg.VectorStore.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	store, err := connector.Open(cfg.VectorStore)
	if err != nil {
		return fmt.Errorf("open vector store: %w", err)
	}
	defer store.Close()

	return pingStore(ctx, store, time.Duration(cfg.VectorStore.ReadinessTimeout)*time.Second, out)
}

func pingStore(ctx context.Context, store db.Store, timeout time.Duration, out io.Writer) error {
	start := time.Now()
	if err := store.WaitForReady(ctx, timeout); err != nil {
		return fmt.Errorf("%s at %s: %w", store.Driver(), store.Addr(), err)
	}
	_, err := fmt.Fprintf(out, "%s at %s is ready (%s)\n", store.Driver(), store.Addr(), time.Since(start).Round(time.Millisecond))
	return err
}

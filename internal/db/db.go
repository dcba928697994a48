// Package db defines the vector store connector contract shared by every
// driver. Drivers live in subpackages and expose their SDK handle unchanged.
package db

import (
	"context"
	"fmt"
	"time"
)

// Store is an open connection to a vector database.
//
// A Store is created once by the composition root and closed on shutdown.
type Store interface {
	Pinger
	WaitForReady(ctx context.Context, timeout time.Duration) error
	Close()
	Driver() string
	Addr() string
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// readyPollInterval is how often WaitForReady retries Ping.
const readyPollInterval = 100 * time.Millisecond

// WaitForReady polls Ping until the store responds or timeout expires.
func WaitForReady(ctx context.Context, p Pinger, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(readyPollInterval)
	defer ticker.Stop()

	var lastErr error
	for {
		select {
		case <-ctx.Done():
			if lastErr != nil {
				return fmt.Errorf("timeout waiting for database: %w (last ping: %w)", ctx.Err(), lastErr)
			}
			return fmt.Errorf("timeout waiting for database: %w", ctx.Err())
		case <-ticker.C:
			lastErr = p.Ping(ctx)
			if lastErr == nil {
				return nil
			}
		}
	}
}

// Package redis is the Redis 8+ driver of the vector store connector.
package redis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/rueidis"

	"github.com/kailas-cloud/reviewsearch/internal/db"
)

// Compile-time check: Store implements db.Store.
var _ db.Store = (*Store)(nil)

// Driver is the name this store reports.
const Driver = "redis"

// Config holds connection parameters for a Redis store.
type Config struct {
	Addrs    []string
	Password string
}

// Store implements db.Store via rueidis for Redis 8+.
type Store struct {
	client rueidis.Client
	addr   string
}

// NewStore creates a Redis store via rueidis.
func NewStore(cfg Config) (*Store, error) {
	if len(cfg.Addrs) == 0 || cfg.Addrs[0] == "" {
		return nil, db.ErrAddressRequired
	}

	client, err := rueidis.NewClient(rueidis.ClientOption{
		InitAddress:  cfg.Addrs,
		Password:     cfg.Password,
		DisableCache: true,
	})
	if err != nil {
		return nil, &db.Error{Op: db.OpConnect, Err: fmt.Errorf("redis %s: %w", strings.Join(cfg.Addrs, ","), err)}
	}

	return &Store{client: client, addr: strings.Join(cfg.Addrs, ",")}, nil
}

// Client returns the underlying rueidis client.
func (s *Store) Client() rueidis.Client { return s.client }

// Driver returns "redis".
func (s *Store) Driver() string { return Driver }

// Addr returns the configured address list, comma separated.
func (s *Store) Addr() string { return s.addr }

// Ping checks connectivity.
func (s *Store) Ping(ctx context.Context) error {
	cmd := s.client.B().Ping().Build()
	if err := s.client.Do(ctx, cmd).Error(); err != nil {
		if isRedisErr(err, "noauth") || isRedisErr(err, "wrongpass") {
			err = fmt.Errorf("%w: %w", db.ErrAuth, err)
		}
		return &db.Error{Op: db.OpPing, Err: err}
	}
	return nil
}

// WaitForReady polls Ping until the store responds or timeout expires.
func (s *Store) WaitForReady(ctx context.Context, timeout time.Duration) error {
	return db.WaitForReady(ctx, s, timeout)
}

// Close shuts down the client.
func (s *Store) Close() {
	s.client.Close()
}

// isRedisErr checks if err is a Redis server error containing substr (case-insensitive).
func isRedisErr(err error, substr string) bool {
	re, ok := rueidis.IsRedisErr(err)
	if !ok {
		return false
	}
	return strings.Contains(strings.ToLower(re.Error()), strings.ToLower(substr))
}

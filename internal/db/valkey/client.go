// Package valkey is the Valkey driver of the vector store connector.
package valkey

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
const Driver = "valkey"

// Config holds connection parameters for a Valkey store.
type Config struct {
	Addr     string
	Password string
}

// Store implements db.Store via rueidis for Valkey with valkey-search.
type Store struct {
	client rueidis.Client
	addr   string
}

// NewStore creates a Valkey store via rueidis. rueidis dials during
// construction, so an unreachable address fails here.
func NewStore(cfg Config) (*Store, error) {
	if cfg.Addr == "" {
		return nil, db.ErrAddressRequired
	}

	client, err := rueidis.NewClient(rueidis.ClientOption{
		InitAddress:  []string{cfg.Addr},
		Password:     cfg.Password,
		DisableCache: true,
	})
	if err != nil {
		return nil, &db.Error{Op: db.OpConnect, Err: fmt.Errorf("valkey %s: %w", cfg.Addr, err)}
	}

	return &Store{client: client, addr: cfg.Addr}, nil
}

// Client returns the underlying rueidis client.
func (s *Store) Client() rueidis.Client { return s.client }

// Driver returns "valkey".
func (s *Store) Driver() string { return Driver }

// Addr returns the configured address.
func (s *Store) Addr() string { return s.addr }

// Ping checks connectivity.
func (s *Store) Ping(ctx context.Context) error {
	cmd := s.client.B().Ping().Build()
	if err := s.client.Do(ctx, cmd).Error(); err != nil {
		if isAuthErr(err) {
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

// isAuthErr reports a NOAUTH or WRONGPASS server reply.
func isAuthErr(err error) bool {
	re, ok := rueidis.IsRedisErr(err)
	if !ok {
		return false
	}
	msg := strings.ToUpper(re.Error())
	return strings.HasPrefix(msg, "NOAUTH") || strings.HasPrefix(msg, "WRONGPASS")
}

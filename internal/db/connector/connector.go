// Package connector builds the vector store selected by configuration.
package connector

import (
	"fmt"

	"github.com/kailas-cloud/reviewsearch/internal/config"
	"github.com/kailas-cloud/reviewsearch/internal/db"
	"github.com/kailas-cloud/reviewsearch/internal/db/qdrant"
	"github.com/kailas-cloud/reviewsearch/internal/db/redis"
	"github.com/kailas-cloud/reviewsearch/internal/db/valkey"
)

// Open creates the store for cfg.Driver. The caller owns the returned store
// and must Close it.
func Open(cfg config.VectorStoreConfig) (db.Store, error) {
	if cfg.Address == "" {
		return nil, db.ErrAddressRequired
	}

	var (
		s   db.Store
		err error
	)
	switch cfg.Driver {
	case config.DriverValkey, "":
		s, err = valkey.NewStore(valkey.Config{Addr: cfg.Address, Password: cfg.Password})
	case config.DriverRedis:
		s, err = redis.NewStore(redis.Config{Addrs: []string{cfg.Address}, Password: cfg.Password})
	case config.DriverQdrant:
		s, err = qdrant.NewStore(qdrant.Config{Addr: cfg.Address, APIKey: cfg.Password})
	default:
		return nil, fmt.Errorf("%w: %q", db.ErrUnknownDriver, cfg.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", cfg.Driver, err)
	}
	return s, nil
}

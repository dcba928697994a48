package connector

import (
	"errors"
	"strings"
	"testing"

	"github.com/kailas-cloud/reviewsearch/internal/config"
	"github.com/kailas-cloud/reviewsearch/internal/db"
	"github.com/kailas-cloud/reviewsearch/internal/db/qdrant"
)

func TestOpen_EmptyAddress(t *testing.T) {
	for _, driver := range []string{config.DriverValkey, config.DriverRedis, config.DriverQdrant} {
		_, err := Open(config.VectorStoreConfig{Driver: driver})
		if !errors.Is(err, db.ErrAddressRequired) {
			t.Errorf("%s: expected ErrAddressRequired, got %v", driver, err)
		}
	}
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(config.VectorStoreConfig{Driver: "milvus", Address: "localhost:19530"})
	if !errors.Is(err, db.ErrUnknownDriver) {
		t.Fatalf("expected ErrUnknownDriver, got %v", err)
	}
}

func TestOpen_Qdrant(t *testing.T) {
	s, err := Open(config.VectorStoreConfig{Driver: config.DriverQdrant, Address: "localhost:6334"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer s.Close()

	q, ok := s.(*qdrant.Store)
	if !ok {
		t.Fatalf("expected *qdrant.Store, got %T", s)
	}
	if q.Driver() != config.DriverQdrant || q.Addr() != "localhost:6334" {
		t.Errorf("unexpected store %s@%s", q.Driver(), q.Addr())
	}
}

func TestOpen_ValkeyUnreachable(t *testing.T) {
	// rueidis dials during construction
	_, err := Open(config.VectorStoreConfig{Driver: config.DriverValkey, Address: "127.0.0.1:1"})
	var dbErr *db.Error
	if !errors.As(err, &dbErr) || dbErr.Op != db.OpConnect {
		t.Fatalf("expected connect error, got %v", err)
	}
}

func TestOpen_RedisUsesAddressAndPassword(t *testing.T) {
	_, err := Open(config.VectorStoreConfig{Driver: config.DriverRedis, Address: "127.0.0.1:1", Password: "secret"})
	var dbErr *db.Error
	if !errors.As(err, &dbErr) || dbErr.Op != db.OpConnect {
		t.Fatalf("expected connect error, got %v", err)
	}
	if !strings.Contains(err.Error(), "127.0.0.1:1") {
		t.Errorf("error should name the address, got %v", err)
	}
}

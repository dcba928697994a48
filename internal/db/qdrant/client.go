// Package qdrant is the Qdrant gRPC driver of the vector store connector.
package qdrant

import (
	"context"
	"fmt"
	"time"

	pb "github.com/qdrant/go-client/qdrant"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"

	"github.com/kailas-cloud/reviewsearch/internal/db"
)

// Compile-time check: Store implements db.Store.
var _ db.Store = (*Store)(nil)

// Driver is the name this store reports.
const Driver = "qdrant"

// Config holds connection parameters for a Qdrant store. Addr is the gRPC
// endpoint, usually host:6334.
type Config struct {
	Addr   string
	APIKey string
}

// Store implements db.Store over a Qdrant gRPC connection. The connection is
// established lazily, so construction never fails on an unreachable address.
type Store struct {
	conn   *grpc.ClientConn
	qdrant pb.QdrantClient
	points pb.PointsClient
	addr   string
}

// NewStore creates a Qdrant store.
func NewStore(cfg Config) (*Store, error) {
	if cfg.Addr == "" {
		return nil, db.ErrAddressRequired
	}

	opts := []grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}
	if cfg.APIKey != "" {
		opts = append(opts, grpc.WithUnaryInterceptor(apiKeyInterceptor(cfg.APIKey)))
	}

	conn, err := grpc.NewClient(cfg.Addr, opts...)
	if err != nil {
		return nil, &db.Error{Op: db.OpConnect, Err: fmt.Errorf("qdrant %s: %w", cfg.Addr, err)}
	}

	return &Store{
		conn:   conn,
		qdrant: pb.NewQdrantClient(conn),
		points: pb.NewPointsClient(conn),
		addr:   cfg.Addr,
	}, nil
}

// Conn returns the underlying gRPC connection.
func (s *Store) Conn() *grpc.ClientConn { return s.conn }

// Points returns the Qdrant points service client.
func (s *Store) Points() pb.PointsClient { return s.points }

// Driver returns "qdrant".
func (s *Store) Driver() string { return Driver }

// Addr returns the configured address.
func (s *Store) Addr() string { return s.addr }

// Ping calls the Qdrant health check RPC.
func (s *Store) Ping(ctx context.Context) error {
	if _, err := s.qdrant.HealthCheck(ctx, &pb.HealthCheckRequest{}); err != nil {
		return &db.Error{Op: db.OpHealthCheck, Err: err}
	}
	return nil
}

// WaitForReady polls Ping until the store responds or timeout expires.
func (s *Store) WaitForReady(ctx context.Context, timeout time.Duration) error {
	return db.WaitForReady(ctx, s, timeout)
}

// Close tears down the gRPC connection.
func (s *Store) Close() {
	_ = s.conn.Close()
}

func apiKeyInterceptor(key string) grpc.UnaryClientInterceptor {
	return func(
		ctx context.Context, method string, req, reply any,
		cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption,
	) error {
		ctx = metadata.AppendToOutgoingContext(ctx, "api-key", key)
		return invoker(ctx, method, req, reply, cc, opts...)
	}
}

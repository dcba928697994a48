package qdrant

import (
	"context"
	"errors"
	"net"
	"sync"
	"testing"
	"time"

	pb "github.com/qdrant/go-client/qdrant"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/kailas-cloud/reviewsearch/internal/db"
)

// --- Fake server ---

type fakeQdrant struct {
	pb.UnimplementedQdrantServer

	mu      sync.Mutex
	apiKeys []string
	fail    bool
}

func (f *fakeQdrant) HealthCheck(ctx context.Context, _ *pb.HealthCheckRequest) (*pb.HealthCheckReply, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		f.apiKeys = append(f.apiKeys, md.Get("api-key")...)
	}
	if f.fail {
		return nil, status.Error(codes.Unavailable, "starting up")
	}
	return &pb.HealthCheckReply{Title: "qdrant - vector search engine", Version: "1.16.2"}, nil
}

func startFake(t *testing.T, f *fakeQdrant) string {
	t.Helper()
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	srv := grpc.NewServer()
	pb.RegisterQdrantServer(srv, f)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)
	return lis.Addr().String()
}

// --- Tests ---

func TestNewStore_EmptyAddr(t *testing.T) {
	if _, err := NewStore(Config{}); !errors.Is(err, db.ErrAddressRequired) {
		t.Fatalf("expected ErrAddressRequired, got %v", err)
	}
}

func TestNewStore_UnreachableIsLazy(t *testing.T) {
	s, err := NewStore(Config{Addr: "127.0.0.1:1"})
	if err != nil {
		t.Fatalf("construction must not dial: %v", err)
	}
	defer s.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	err = s.Ping(ctx)
	var dbErr *db.Error
	if !errors.As(err, &dbErr) || dbErr.Op != db.OpHealthCheck {
		t.Fatalf("expected HealthCheck error, got %v", err)
	}
}

func TestPing_Success(t *testing.T) {
	f := &fakeQdrant{}
	addr := startFake(t, f)

	s, err := NewStore(Config{Addr: addr, APIKey: "secret"})
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	defer s.Close()

	if err := s.WaitForReady(context.Background(), 2*time.Second); err != nil {
		t.Fatalf("WaitForReady: %v", err)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.apiKeys) == 0 || f.apiKeys[0] != "secret" {
		t.Errorf("expected api-key metadata, got %v", f.apiKeys)
	}
}

func TestPing_ServerError(t *testing.T) {
	addr := startFake(t, &fakeQdrant{fail: true})

	s, err := NewStore(Config{Addr: addr})
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	defer s.Close()

	err = s.Ping(context.Background())
	if status.Code(errors.Unwrap(err)) != codes.Unavailable {
		t.Fatalf("expected Unavailable, got %v", err)
	}
}

func TestAccessors(t *testing.T) {
	s, err := NewStore(Config{Addr: "qdrant.internal:6334"})
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	defer s.Close()

	if s.Driver() != "qdrant" || s.Addr() != "qdrant.internal:6334" {
		t.Errorf("unexpected driver/addr: %q %q", s.Driver(), s.Addr())
	}
	if s.Conn() == nil || s.Points() == nil {
		t.Error("expected SDK handles to be exposed")
	}
}

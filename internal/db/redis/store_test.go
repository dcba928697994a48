package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/rueidis/mock"
	"go.uber.org/mock/gomock"

	"github.com/kailas-cloud/reviewsearch/internal/db"
)

func TestNewStore_NoAddrs(t *testing.T) {
	for _, addrs := range [][]string{nil, {""}} {
		if _, err := NewStore(Config{Addrs: addrs}); !errors.Is(err, db.ErrAddressRequired) {
			t.Errorf("NewStore(%q): expected ErrAddressRequired, got %v", addrs, err)
		}
	}
}

func TestPing_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("PING")).
		Return(mock.Result(mock.RedisString("PONG")))

	s := NewStoreForTest(c, "localhost:6379")
	if err := s.Ping(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestPing_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("PING")).
		Return(mock.ErrorResult(context.DeadlineExceeded))

	s := NewStoreForTest(c, "localhost:6379")
	err := s.Ping(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if errors.Is(err, db.ErrAuth) {
		t.Error("timeout must not be reported as an auth failure")
	}
}

func TestPing_WrongPass(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("PING")).
		Return(mock.Result(mock.RedisError("WRONGPASS invalid username-password pair")))

	s := NewStoreForTest(c, "localhost:6379")
	if err := s.Ping(context.Background()); !errors.Is(err, db.ErrAuth) {
		t.Fatalf("expected ErrAuth, got %v", err)
	}
}

func TestWaitForReady_Timeout(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("PING")).
		Return(mock.ErrorResult(errors.New("connection refused"))).
		AnyTimes()

	s := NewStoreForTest(c, "localhost:6379")
	err := s.WaitForReady(context.Background(), 250*time.Millisecond)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected DeadlineExceeded, got %v", err)
	}
}

func TestIsRedisErr(t *testing.T) {
	tests := []struct {
		err  error
		sub  string
		want bool
	}{
		{errors.New("plain error"), "plain", false},
		{nil, "anything", false},
	}
	for _, tc := range tests {
		if got := isRedisErr(tc.err, tc.sub); got != tc.want {
			t.Errorf("isRedisErr(%v, %q) = %v, want %v", tc.err, tc.sub, got, tc.want)
		}
	}
}

func TestAccessors(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)
	c.EXPECT().Close()

	s := NewStoreForTest(c, "redis-a:6379,redis-b:6379")
	if s.Driver() != "redis" {
		t.Errorf("expected driver redis, got %q", s.Driver())
	}
	if s.Addr() != "redis-a:6379,redis-b:6379" {
		t.Errorf("unexpected addr %q", s.Addr())
	}
	s.Close()
}

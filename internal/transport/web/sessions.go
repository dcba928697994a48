package web

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/kailas-cloud/reviewsearch/internal/domain"
	searchuc "github.com/kailas-cloud/reviewsearch/internal/usecase/search"
)

// ViewFactory builds the search view of a new session.
type ViewFactory func(sessionID string) (*searchuc.View, error)

// SessionsConfig configures a session registry.
type SessionsConfig struct {
	TTL               time.Duration // idle time before eviction
	SearchesPerMinute int           // 0 = unlimited
	Gauge             prometheus.Gauge
	Logger            *zap.Logger
}

// Sessions maps browser sessions to their search views.
type Sessions struct {
	newView   ViewFactory
	ttl       time.Duration
	perMinute int
	gauge     prometheus.Gauge
	logger    *zap.Logger
	now       func() time.Time

	mu     sync.Mutex
	byID   map[string]*session
	closed bool // guarded by mu; wg.Add only happens while false

	// ctx outlives requests; submits run under it.
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

type session struct {
	id       string
	view     *searchuc.View
	limiter  *rate.Limiter // nil = unlimited
	lastSeen time.Time
}

// NewSessions creates an empty registry.
func NewSessions(newView ViewFactory, cfg SessionsConfig) *Sessions {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.TTL <= 0 {
		cfg.TTL = 30 * time.Minute
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Sessions{
		newView:   newView,
		ttl:       cfg.TTL,
		perMinute: cfg.SearchesPerMinute,
		gauge:     cfg.Gauge,
		logger:    cfg.Logger,
		now:       time.Now,
		byID:      make(map[string]*session),
		ctx:       ctx,
		cancel:    cancel,
	}
}

// lookup returns the live session with id and marks it as seen.
func (s *Sessions) lookup(id string) (*session, bool) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.byID[id]
	if ok {
		sess.lastSeen = s.now()
	}
	return sess, ok
}

// create starts a new session with a fresh view.
func (s *Sessions) create() (*session, error) {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return nil, domain.ErrViewClosed
	}

	id := uuid.NewString()
	view, err := s.newView(id)
	if err != nil {
		return nil, fmt.Errorf("create session view: %w", err)
	}

	sess := &session{id: id, view: view, lastSeen: s.now()}
	if s.perMinute > 0 {
		sess.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(s.perMinute)), s.perMinute)
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		view.Close()
		return nil, domain.ErrViewClosed
	}
	s.byID[id] = sess
	s.mu.Unlock()

	if s.gauge != nil {
		s.gauge.Inc()
	}
	s.logger.Debug("session created", zap.String("session", id))
	return sess, nil
}

// dispatch submits query for sess without waiting for the result. The view
// is already loading when dispatch returns.
func (s *Sessions) dispatch(sess *session, query string) error {
	if strings.TrimSpace(query) == "" {
		return fmt.Errorf("dispatch: %w", domain.ErrEmptyQuery)
	}
	if sess.limiter != nil && !sess.limiter.Allow() {
		return fmt.Errorf("dispatch: %w", domain.ErrRateLimited)
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return fmt.Errorf("dispatch: %w", domain.ErrViewClosed)
	}
	sess.view.SetQuery(query)
	done, err := sess.view.Dispatch(s.ctx)
	if err != nil {
		s.mu.Unlock()
		return fmt.Errorf("dispatch: %w", err)
	}
	s.wg.Add(1)
	s.mu.Unlock()

	go func() {
		defer s.wg.Done()
		err := <-done
		switch {
		case err == nil, errors.Is(err, domain.ErrSuperseded):
		case errors.Is(err, domain.ErrSearchFailed):
			// already logged by the view
		default:
			s.logger.Error("search settled with unexpected error",
				zap.String("session", sess.id), zap.Error(err))
		}
	}()
	return nil
}

// Sweep evicts sessions idle longer than the TTL and closes their views.
// It returns the number of evicted sessions.
func (s *Sessions) Sweep() int {
	cutoff := s.now().Add(-s.ttl)

	s.mu.Lock()
	var expired []*session
	for id, sess := range s.byID {
		if sess.lastSeen.Before(cutoff) {
			expired = append(expired, sess)
			delete(s.byID, id)
		}
	}
	s.mu.Unlock()

	for _, sess := range expired {
		sess.view.Close()
		if s.gauge != nil {
			s.gauge.Dec()
		}
		s.logger.Debug("session evicted", zap.String("session", sess.id))
	}
	return len(expired)
}

// Run sweeps idle sessions until ctx is done.
func (s *Sessions) Run(ctx context.Context) {
	interval := s.ttl / 4
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				s.logger.Info("evicted idle sessions", zap.Int("count", n))
			}
		}
	}
}

// Len returns the number of live sessions.
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byID)
}

// Close closes every view, cancelling in-flight searches, and waits for
// their settlements.
func (s *Sessions) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		s.wg.Wait()
		return
	}
	s.closed = true
	s.cancel()
	all := s.byID
	s.byID = make(map[string]*session)
	s.mu.Unlock()

	for _, sess := range all {
		sess.view.Close()
		if s.gauge != nil {
			s.gauge.Dec()
		}
	}
	s.wg.Wait()
}

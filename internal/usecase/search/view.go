package search

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/kailas-cloud/reviewsearch/internal/domain"
	"github.com/kailas-cloud/reviewsearch/internal/domain/search/failure"
	"github.com/kailas-cloud/reviewsearch/internal/domain/search/request"
	"github.com/kailas-cloud/reviewsearch/internal/domain/search/result"
	"github.com/kailas-cloud/reviewsearch/internal/domain/search/state"
)

// View holds the search page state and runs one search per submit.
//
// Only the latest dispatched submit may settle into the state: a new submit
// cancels the one in flight, and settlements of older submits are dropped.
// View is safe for concurrent use.
type View struct {
	searcher Searcher
	obs      *observer

	mu     sync.Mutex
	st     state.State
	cancel context.CancelFunc // in-flight submit, nil when idle
	closed bool
}

// New creates a search view backed by searcher.
func New(searcher Searcher, opts ...Option) (*View, error) {
	cfg := &viewConfig{}
	for _, o := range opts {
		o(cfg)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, fmt.Errorf("search view: %w", err)
	}

	return &View{searcher: searcher, obs: obs}, nil
}

// SetQuery replaces the query text without searching.
func (v *View) SetQuery(q string) {
	v.mu.Lock()
	v.st.Query = q
	v.mu.Unlock()
}

// SubmitQuery sets the query and submits it. A blank q leaves the state
// untouched, including the current query.
func (v *View) SubmitQuery(ctx context.Context, q string) error {
	if strings.TrimSpace(q) == "" {
		return fmt.Errorf("submit query: %w", domain.ErrEmptyQuery)
	}
	v.mu.Lock()
	if !v.closed {
		v.st.Query = q
	}
	v.mu.Unlock()
	return v.Submit(ctx)
}

// Submit searches for the current query and blocks until the search settles.
//
// A blank query is a no-op returning domain.ErrEmptyQuery. Otherwise Loading
// is set and the previous error cleared before the call is made. On success
// the results are replaced wholesale; on failure the error is recorded and
// the previous results are kept. domain.ErrSuperseded is returned when a
// newer submit (or Close) replaced this one before it settled.
func (v *View) Submit(ctx context.Context) error {
	sub, err := v.begin(ctx)
	if err != nil {
		return err
	}
	return v.run(sub)
}

// Dispatch is Submit without blocking: Loading is already set when it
// returns, and the settlement error is delivered on the returned channel.
// A panicking searcher is reported as an error instead of crashing the
// caller's goroutine.
func (v *View) Dispatch(ctx context.Context) (<-chan error, error) {
	sub, err := v.begin(ctx)
	if err != nil {
		return nil, err
	}

	done := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- fmt.Errorf("search panic: %v", r)
			}
		}()
		done <- v.run(sub)
	}()
	return done, nil
}

// submission is one dispatched search.
type submission struct {
	ctx    context.Context
	cancel context.CancelFunc
	seq    uint64
	req    request.Request
	start  time.Time
}

// begin validates the query and moves the view into Loading.
func (v *View) begin(ctx context.Context) (*submission, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.closed {
		return nil, domain.ErrViewClosed
	}
	req, err := request.New(v.st.Query)
	if err != nil {
		return nil, err
	}
	if v.cancel != nil {
		v.cancel()
	}

	ctx, cancel := context.WithCancel(ctx)
	v.st.Seq++
	v.st.Loading = true
	v.st.Err = nil
	v.cancel = cancel

	return &submission{ctx: ctx, cancel: cancel, seq: v.st.Seq, req: req, start: time.Now()}, nil
}

// run performs the search of sub and settles it.
func (v *View) run(sub *submission) error {
	defer func() {
		if r := recover(); r != nil {
			_ = v.settle(sub, nil, failure.Network(fmt.Errorf("searcher panic: %v", r)))
			panic(r)
		}
	}()

	results, err := v.searcher.Search(sub.ctx, &sub.req)
	return v.settle(sub, results, err)
}

// settle applies the outcome of sub if it is still the latest submit.
func (v *View) settle(sub *submission, results []result.Result, searchErr error) error {
	sub.cancel()

	v.mu.Lock()
	defer v.mu.Unlock()

	if v.closed || sub.seq != v.st.Seq {
		v.obs.observe(sub.seq, outcomeSuperseded, sub.start, len(results), searchErr)
		return domain.ErrSuperseded
	}

	v.cancel = nil
	v.st.Loading = false

	if searchErr != nil {
		fe := failure.From(searchErr)
		v.st.Err = fe
		v.obs.observe(sub.seq, outcomeError, sub.start, 0, fe)
		return fmt.Errorf("submit search: %w", fe)
	}

	if results == nil {
		results = []result.Result{}
	}
	v.st.Results = results
	v.obs.observe(sub.seq, outcomeOK, sub.start, len(results), nil)
	return nil
}

// Snapshot returns a copy of the current state.
func (v *View) Snapshot() state.State {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.st.Clone()
}

// Close tears the view down: the in-flight search is cancelled, its result is
// discarded, and further submits fail with domain.ErrViewClosed.
func (v *View) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.closed {
		return
	}
	v.closed = true
	if v.cancel != nil {
		v.cancel()
		v.cancel = nil
	}
	v.st.Loading = false
}

package search

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/reviewsearch/internal/domain/search/failure"
	"github.com/kailas-cloud/reviewsearch/internal/metrics"
)

// Submit outcomes.
const (
	outcomeOK         = "ok"
	outcomeError      = "error"
	outcomeSuperseded = "superseded"
)

type viewMetrics struct {
	searches *prometheus.CounterVec
	failures *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func newViewMetrics(reg prometheus.Registerer) (*viewMetrics, error) {
	m := &viewMetrics{
		searches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metrics.Namespace,
			Name:      "search_requests_total",
			Help:      "Settled search submits by outcome.",
		}, []string{"outcome"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metrics.Namespace,
			Name:      "search_failures_total",
			Help:      "Failed search submits by failure kind.",
		}, []string{"kind"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metrics.Namespace,
			Name:      "search_duration_seconds",
			Help:      "Time from dispatch to settlement in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"outcome"}),
	}
	if err := metrics.RegisterOrReuse(reg, &m.searches); err != nil {
		return nil, err
	}
	if err := metrics.RegisterOrReuse(reg, &m.failures); err != nil {
		return nil, err
	}
	if err := metrics.RegisterOrReuse(reg, &m.duration); err != nil {
		return nil, err
	}
	return m, nil
}

// observer logs and counts settled submits.
type observer struct {
	logger  *zap.Logger
	metrics *viewMetrics
}

func newObserver(logger *zap.Logger, reg prometheus.Registerer) (*observer, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	var m *viewMetrics
	if reg != nil {
		var err error
		m, err = newViewMetrics(reg)
		if err != nil {
			return nil, err
		}
	}
	return &observer{logger: logger, metrics: m}, nil
}

func (o *observer) observe(seq uint64, outcome string, start time.Time, hits int, err error) {
	dur := time.Since(start)

	if o.metrics != nil {
		o.metrics.searches.WithLabelValues(outcome).Inc()
		o.metrics.duration.WithLabelValues(outcome).Observe(dur.Seconds())
		if outcome == outcomeError {
			o.metrics.failures.WithLabelValues(string(failure.From(err).Kind)).Inc()
		}
	}

	switch outcome {
	case outcomeError:
		fe := failure.From(err)
		o.logger.Warn("search failed",
			zap.Uint64("seq", seq),
			zap.String("kind", string(fe.Kind)),
			zap.Int("status", fe.StatusCode),
			zap.Duration("duration", dur),
			zap.Error(err),
		)
	case outcomeSuperseded:
		o.logger.Debug("search superseded",
			zap.Uint64("seq", seq),
			zap.Duration("duration", dur),
		)
	default:
		o.logger.Debug("search completed",
			zap.Uint64("seq", seq),
			zap.Int("hits", hits),
			zap.Duration("duration", dur),
		)
	}
}

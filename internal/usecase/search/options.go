package search

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Option configures a View.
type Option func(*viewConfig)

type viewConfig struct {
	logger     *zap.Logger
	metricsReg prometheus.Registerer
}

// WithLogger sets the logger failures and settlements are reported to.
func WithLogger(l *zap.Logger) Option {
	return func(c *viewConfig) {
		c.logger = l
	}
}

// WithPrometheus records submit counts and durations on the given registerer.
// Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return func(c *viewConfig) {
		c.metricsReg = reg
	}
}

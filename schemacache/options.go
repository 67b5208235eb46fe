package schemacache

import (
	"github.com/erraggy/asynctools/asyncerrors"
	"github.com/erraggy/asynctools/logging"
	"github.com/prometheus/client_golang/prometheus"
)

// Option is a function that configures a Cache.
type Option func(*cacheConfig) error

type cacheConfig struct {
	logger   logging.Logger
	registry prometheus.Registerer
}

func applyOptions(opts ...Option) (*cacheConfig, error) {
	cfg := &cacheConfig{logger: logging.NopLogger{}}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// WithLogger sets the logger for cache events. Computations and failures
// are logged at debug level.
// Default: logging.NopLogger
func WithLogger(l logging.Logger) Option {
	return func(cfg *cacheConfig) error {
		cfg.logger = logging.OrNop(l)
		return nil
	}
}

// WithMetrics registers the cache's Prometheus collectors on reg.
// Registering two caches on the same registry panics, as promauto does.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(cfg *cacheConfig) error {
		if reg == nil {
			return &asyncerrors.ConfigError{Option: "WithMetrics", Message: "registerer must not be nil"}
		}
		cfg.registry = reg
		return nil
	}
}

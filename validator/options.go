package validator

import (
	"github.com/erraggy/asynctools/asyncerrors"
	"github.com/erraggy/asynctools/logging"
	"github.com/erraggy/asynctools/schemacache"
)

// Option is a function that configures a Validator
type Option func(*validateConfig) error

// validateConfig holds configuration for a Validator
type validateConfig struct {
	includeWarnings       bool
	kindMismatchAsWarning bool
	cache                 *schemacache.Cache
	logger                logging.Logger
}

// applyOptions applies option functions and validates configuration
func applyOptions(opts ...Option) (*validateConfig, error) {
	cfg := &validateConfig{
		includeWarnings: true,
	}

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// WithIncludeWarnings enables or disables configuration warnings
// Default: true
func WithIncludeWarnings(enabled bool) Option {
	return func(cfg *validateConfig) error {
		cfg.includeWarnings = enabled
		return nil
	}
}

// WithKindMismatchAsWarning reports references that name an entry of another
// component kind as warnings instead of errors. References to names that do
// not exist at all remain errors.
// Default: false
func WithKindMismatchAsWarning(enabled bool) Option {
	return func(cfg *validateConfig) error {
		cfg.kindMismatchAsWarning = enabled
		return nil
	}
}

// WithCache sets the schema cache used to derive message schemas.
// Default: schemacache.Default()
func WithCache(cache *schemacache.Cache) Option {
	return func(cfg *validateConfig) error {
		if cache == nil {
			return &asyncerrors.ConfigError{Option: "cache", Message: "cache must not be nil"}
		}
		cfg.cache = cache
		return nil
	}
}

// WithLogger sets the logger used to report validation summaries.
// Default: logging.NopLogger
func WithLogger(l logging.Logger) Option {
	return func(cfg *validateConfig) error {
		cfg.logger = l
		return nil
	}
}

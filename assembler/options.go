package assembler

import (
	"github.com/erraggy/asynctools/asyncerrors"
	"github.com/erraggy/asynctools/builder"
	"github.com/erraggy/asynctools/logging"
	"github.com/erraggy/asynctools/schemacache"
	"github.com/erraggy/asynctools/validator"
)

// Option configures an Assembler
type Option func(*assembleConfig) error

// assembleConfig holds configuration for an Assembler
type assembleConfig struct {
	cache            *schemacache.Cache
	logger           logging.Logger
	builderOptions   []builder.Option
	validatorOptions []validator.Option
}

// applyOptions applies option functions and validates configuration
func applyOptions(opts ...Option) (*assembleConfig, error) {
	cfg := &assembleConfig{}
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

// WithCache sets the schema cache used to derive message schemas.
// Default: schemacache.Default()
func WithCache(cache *schemacache.Cache) Option {
	return func(cfg *assembleConfig) error {
		if cache == nil {
			return &asyncerrors.ConfigError{Option: "cache", Message: "cache must not be nil"}
		}
		cfg.cache = cache
		return nil
	}
}

// WithLogger sets the logger for the builder, the validator and the
// pipeline outcome.
// Default: logging.NopLogger
func WithLogger(l logging.Logger) Option {
	return func(cfg *assembleConfig) error {
		cfg.logger = l
		return nil
	}
}

// WithBuilderOptions appends options passed to builder.New.
func WithBuilderOptions(opts ...builder.Option) Option {
	return func(cfg *assembleConfig) error {
		cfg.builderOptions = append(cfg.builderOptions, opts...)
		return nil
	}
}

// WithValidatorOptions appends options passed to validator.New, e.g.
// validator.WithKindMismatchAsWarning(true).
func WithValidatorOptions(opts ...validator.Option) Option {
	return func(cfg *assembleConfig) error {
		cfg.validatorOptions = append(cfg.validatorOptions, opts...)
		return nil
	}
}

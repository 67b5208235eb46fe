package builder

import (
	"github.com/erraggy/asynctools/logging"
	"github.com/erraggy/asynctools/spec"
)

// Option configures a Builder instance.
// Options are applied when creating a new Builder with New().
type Option func(*builderConfig)

// builderConfig holds builder configuration applied via options.
type builderConfig struct {
	info               spec.Info
	id                 string
	defaultContentType string
	logger             logging.Logger
}

// WithInfo sets the document's Info object.
func WithInfo(info spec.Info) Option {
	return func(cfg *builderConfig) {
		cfg.info = info
	}
}

// WithID sets the document's application identifier (a URI).
func WithID(id string) Option {
	return func(cfg *builderConfig) {
		cfg.id = id
	}
}

// WithDefaultContentType sets the content type used by messages that
// declare none, e.g. "application/json".
func WithDefaultContentType(contentType string) Option {
	return func(cfg *builderConfig) {
		cfg.defaultContentType = contentType
	}
}

// WithLogger sets the logger used to trace insertions.
// Default: logging.NopLogger
func WithLogger(l logging.Logger) Option {
	return func(cfg *builderConfig) {
		cfg.logger = l
	}
}

package parser

import (
	"fmt"
	"io"

	"github.com/erraggy/asynctools/asyncerrors"
	"github.com/erraggy/asynctools/internal/options"
	"github.com/erraggy/asynctools/logging"
)

// Option is a function that configures a parse operation
type Option func(*parseConfig) error

// parseConfig holds configuration for a parse operation
type parseConfig struct {
	// Input source (exactly one must be set)
	filePath *string
	reader   io.Reader
	bytes    []byte

	logger         logging.Logger
	buildSourceMap bool
	maxFileSize    int64

	// sourceName overrides SourcePath in the result
	sourceName *string
}

// ParseWithOptions parses an AsyncAPI document using functional options.
// This combines input source selection and configuration in a single call.
//
// Example:
//
//	result, err := parser.ParseWithOptions(
//	    parser.WithFilePath("asyncapi.yaml"),
//	    parser.WithSourceMap(true),
//	)
func ParseWithOptions(opts ...Option) (*ParseResult, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("parser: invalid options: %w", err)
	}

	p := &Parser{
		Logger:         cfg.logger,
		BuildSourceMap: cfg.buildSourceMap,
		MaxFileSize:    cfg.maxFileSize,
	}

	var result *ParseResult
	switch {
	case cfg.filePath != nil:
		result, err = p.Parse(*cfg.filePath)
	case cfg.reader != nil:
		result, err = p.ParseReader(cfg.reader)
	default:
		result, err = p.ParseBytes(cfg.bytes)
	}
	if err != nil {
		return nil, err
	}

	if cfg.sourceName != nil {
		result.SourcePath = *cfg.sourceName
		result.SourceMap.setFile(*cfg.sourceName)
	}
	return result, nil
}

// applyOptions applies option functions and validates configuration
func applyOptions(opts ...Option) (*parseConfig, error) {
	cfg := &parseConfig{maxFileSize: DefaultMaxFileSize}

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if err := options.SingleInputSource("input",
		options.Source{Name: "WithFilePath", Set: cfg.filePath != nil},
		options.Source{Name: "WithReader", Set: cfg.reader != nil},
		options.Source{Name: "WithBytes", Set: cfg.bytes != nil},
	); err != nil {
		return nil, err
	}
	return cfg, nil
}

// WithFilePath specifies a file path as the input source
func WithFilePath(path string) Option {
	return func(cfg *parseConfig) error {
		cfg.filePath = &path
		return nil
	}
}

// WithReader specifies an io.Reader as the input source
func WithReader(r io.Reader) Option {
	return func(cfg *parseConfig) error {
		if r == nil {
			return &asyncerrors.ConfigError{Option: "reader", Message: "reader must not be nil"}
		}
		cfg.reader = r
		return nil
	}
}

// WithBytes specifies a byte slice as the input source
func WithBytes(data []byte) Option {
	return func(cfg *parseConfig) error {
		if data == nil {
			data = []byte{}
		}
		cfg.bytes = data
		return nil
	}
}

// WithLogger sets a structured logger for debug output.
// By default, logging is disabled (nil logger).
func WithLogger(l logging.Logger) Option {
	return func(cfg *parseConfig) error {
		cfg.logger = l
		return nil
	}
}

// WithSourceMap enables source location tracking.
// Default: false
func WithSourceMap(enabled bool) Option {
	return func(cfg *parseConfig) error {
		cfg.buildSourceMap = enabled
		return nil
	}
}

// WithMaxFileSize sets the maximum input size in bytes.
// Default: 10MB
func WithMaxFileSize(size int64) Option {
	return func(cfg *parseConfig) error {
		if size <= 0 {
			return &asyncerrors.ConfigError{Option: "maxFileSize", Value: size, Message: "must be positive"}
		}
		cfg.maxFileSize = size
		return nil
	}
}

// WithSourceName overrides the SourcePath in the result and the file name
// recorded in the source map. Useful when parsing from a reader or bytes.
func WithSourceName(name string) Option {
	return func(cfg *parseConfig) error {
		cfg.sourceName = &name
		return nil
	}
}

package assembler

import (
	"fmt"

	"github.com/erraggy/asynctools/builder"
	"github.com/erraggy/asynctools/logging"
	"github.com/erraggy/asynctools/spec"
	"github.com/erraggy/asynctools/validator"
)

// Assembler builds documents from fragments and validates them.
// An Assembler may be used concurrently; every call builds its own document.
type Assembler struct {
	validator      *validator.Validator
	builderOptions []builder.Option
	logger         logging.Logger
}

// New creates an Assembler configured by opts.
func New(opts ...Option) (*Assembler, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("assembler: invalid options: %w", err)
	}
	logger := logging.OrNop(cfg.logger)

	vopts := []validator.Option{validator.WithLogger(logger)}
	if cfg.cache != nil {
		vopts = append(vopts, validator.WithCache(cfg.cache))
	}
	v, err := validator.New(append(vopts, cfg.validatorOptions...)...)
	if err != nil {
		return nil, fmt.Errorf("assembler: %w", err)
	}

	return &Assembler{
		validator:      v,
		builderOptions: append([]builder.Option{builder.WithLogger(logger)}, cfg.builderOptions...),
		logger:         logger,
	}, nil
}

// Run builds a document from fragments and validates it. Both entry points
// are thin wrappers around Run.
//
// On success it returns the document and the validation result. On failure
// the document is nil and the error is either the builder's error as is, or
// a *validator.ReportError carrying every fatal finding. The result is
// non-nil whenever validation ran, so warnings are available either way.
func (a *Assembler) Run(fragments ...builder.Fragment) (*spec.Document, *validator.Result, error) {
	b := builder.New(a.builderOptions...)
	if err := b.Apply(fragments...); err != nil {
		a.logger.Debug("assembler: build failed", "error", err)
		return nil, nil, err
	}
	doc := b.Build()

	result := a.validator.Validate(doc)
	if err := result.Err(); err != nil {
		a.logger.Debug("assembler: validation failed", "errors", result.ErrorCount, "warnings", result.WarningCount)
		return nil, result, err
	}
	a.logger.Debug("assembler: assembled document", "warnings", result.WarningCount)
	return doc, result, nil
}

// TryAssemble builds and validates fragments, returning the error instead of
// panicking.
func (a *Assembler) TryAssemble(fragments ...builder.Fragment) (*spec.Document, error) {
	doc, _, err := a.Run(fragments...)
	return doc, err
}

// Assemble is TryAssemble for call sites that treat an invalid document as
// a programming defect: it panics with the error TryAssemble would return.
func (a *Assembler) Assemble(fragments ...builder.Fragment) *spec.Document {
	doc, _, err := a.Run(fragments...)
	if err != nil {
		panic(err)
	}
	return doc
}

// TryAssemble builds and validates fragments with a default Assembler.
// See Assembler.TryAssemble.
func TryAssemble(fragments ...builder.Fragment) (*spec.Document, error) {
	a, err := New()
	if err != nil {
		return nil, err
	}
	return a.TryAssemble(fragments...)
}

// Assemble builds and validates fragments with a default Assembler,
// panicking on failure. See Assembler.Assemble.
func Assemble(fragments ...builder.Fragment) *spec.Document {
	a, err := New()
	if err != nil {
		panic(err)
	}
	return a.Assemble(fragments...)
}

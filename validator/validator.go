package validator

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/erraggy/asynctools/internal/issues"
	"github.com/erraggy/asynctools/internal/severity"
	"github.com/erraggy/asynctools/logging"
	"github.com/erraggy/asynctools/schemacache"
	"github.com/erraggy/asynctools/spec"
)

// Severity indicates the severity level of a validation issue
type Severity = severity.Severity

const (
	// SeverityError indicates a fatal finding that makes the document invalid
	SeverityError = severity.SeverityError
	// SeverityWarning indicates a configuration warning
	SeverityWarning = severity.SeverityWarning
	// SeverityInfo indicates informational messages
	SeverityInfo = severity.SeverityInfo
)

const (
	// defaultErrorCapacity is the initial capacity for error slices
	defaultErrorCapacity = 10
	// defaultWarningCapacity is the initial capacity for warning slices
	defaultWarningCapacity = 10
)

// Issue represents a single validation finding
type Issue = issues.Issue

// Result contains the findings of validating a document
type Result struct {
	// Valid is true if no errors were found (warnings are allowed)
	Valid bool
	// Errors contains all fatal findings, ordered by container then name
	Errors []Issue
	// Warnings contains all warnings, ordered by container then name
	Warnings []Issue
	// ErrorCount is the total number of errors
	ErrorCount int
	// WarningCount is the total number of warnings
	WarningCount int
	// Duration is the time taken to validate the document
	Duration time.Duration
}

// Err returns nil when the document is valid and a *ReportError carrying
// every fatal finding otherwise.
func (r *Result) Err() error {
	if r == nil || r.Valid {
		return nil
	}
	return &ReportError{Issues: slices.Clone(r.Errors)}
}

// ReportError is the error form of a failed validation. Its message
// enumerates every fatal finding, and it unwraps to each finding's typed
// error so errors.Is and errors.As see through it.
type ReportError struct {
	Issues []Issue
}

// Error renders the complete enumeration of fatal findings.
func (e *ReportError) Error() string {
	if len(e.Issues) == 1 {
		return "validation failed: " + e.Issues[0].Error()
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "validation failed with %d error(s):", len(e.Issues))
	for _, issue := range e.Issues {
		sb.WriteString("\n  - ")
		sb.WriteString(issue.Error())
	}
	return sb.String()
}

// Unwrap returns the typed error of every finding for errors.Is/As support.
func (e *ReportError) Unwrap() []error {
	errs := make([]error, 0, len(e.Issues))
	for _, issue := range e.Issues {
		if issue.Err != nil {
			errs = append(errs, issue.Err)
		} else {
			errs = append(errs, issue)
		}
	}
	return errs
}

// Validator checks AsyncAPI documents.
//
// A Validator holds no per-document state and may be used concurrently.
type Validator struct {
	// IncludeWarnings determines whether warnings are reported
	IncludeWarnings bool
	// KindMismatchAsWarning downgrades kind-mismatched references to warnings
	KindMismatchAsWarning bool

	cache  *schemacache.Cache
	logger logging.Logger
}

// New creates a Validator configured by opts.
func New(opts ...Option) (*Validator, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("validator: invalid options: %w", err)
	}
	cache := cfg.cache
	if cache == nil {
		cache = schemacache.Default()
	}
	return &Validator{
		IncludeWarnings:       cfg.includeWarnings,
		KindMismatchAsWarning: cfg.kindMismatchAsWarning,
		cache:                 cache,
		logger:                logging.OrNop(cfg.logger),
	}, nil
}

// Validate validates doc with a Validator configured by opts.
//
// Example:
//
//	result, err := validator.Validate(doc, validator.WithIncludeWarnings(false))
func Validate(doc *spec.Document, opts ...Option) (*Result, error) {
	v, err := New(opts...)
	if err != nil {
		return nil, err
	}
	return v.Validate(doc), nil
}

// Validate runs every validation step over doc and returns all findings.
// doc is only read; derived message schemas are resolved through the
// validator's schema cache.
func (v *Validator) Validate(doc *spec.Document) *Result {
	start := time.Now()
	if doc == nil {
		doc = &spec.Document{}
	}

	p := &pass{
		v:        v,
		doc:      doc,
		errors:   make([]finding, 0, defaultErrorCapacity),
		warnings: make([]finding, 0, defaultWarningCapacity),
	}
	p.validateDocument()
	p.validateServers()
	p.validateChannels()
	p.validateOperations()
	p.validateMessages()
	p.validateFormats()
	p.validateReferences()

	result := &Result{
		Errors:   p.sorted(p.errors),
		Warnings: make([]Issue, 0),
	}
	if v.IncludeWarnings {
		result.Warnings = p.sorted(p.warnings)
	}
	result.ErrorCount = len(result.Errors)
	result.WarningCount = len(result.Warnings)
	result.Valid = result.ErrorCount == 0
	result.Duration = time.Since(start)

	v.logger.Debug("validator: validated document",
		"valid", result.Valid,
		"errors", result.ErrorCount,
		"warnings", result.WarningCount,
		"duration", result.Duration,
	)
	return result
}

// container ranks the top-level sections of a document for report ordering.
type container int

const (
	containerDocument container = iota
	containerServers
	containerChannels
	containerOperations
	containerComponents
)

// finding is an Issue plus the key it is ordered by.
type finding struct {
	container container
	name      string
	issue     Issue
}

// pass holds the state of one Validate call.
type pass struct {
	v        *Validator
	doc      *spec.Document
	errors   []finding
	warnings []finding
}

// owner identifies the top-level entry a finding belongs to.
type owner struct {
	container container
	name      string
}

var documentOwner = owner{container: containerDocument}

func serverOwner(name string) owner    { return owner{containerServers, name} }
func channelOwner(name string) owner   { return owner{containerChannels, name} }
func operationOwner(name string) owner { return owner{containerOperations, name} }

func componentOwner(kind spec.ComponentKind, name string) owner {
	return owner{containerComponents, string(kind) + "." + name}
}

// addError records a fatal finding backed by err.
func (p *pass) addError(o owner, path string, err error, opts ...func(*Issue)) {
	issue := Issue{
		Path:     path,
		Message:  err.Error(),
		Severity: SeverityError,
		Err:      err,
	}
	for _, opt := range opts {
		opt(&issue)
	}
	p.errors = append(p.errors, finding{container: o.container, name: o.name, issue: issue})
}

// addWarning records a non-fatal finding.
func (p *pass) addWarning(o owner, path, message string, opts ...func(*Issue)) {
	issue := Issue{
		Path:     path,
		Message:  message,
		Severity: SeverityWarning,
	}
	for _, opt := range opts {
		opt(&issue)
	}
	p.warnings = append(p.warnings, finding{container: o.container, name: o.name, issue: issue})
}

// withField sets the Field on an Issue.
func withField(field string) func(*Issue) {
	return func(i *Issue) { i.Field = field }
}

// withValue sets the Value on an Issue.
func withValue(value any) func(*Issue) {
	return func(i *Issue) { i.Value = value }
}

// withErr attaches a typed error to a warning.
func withErr(err error) func(*Issue) {
	return func(i *Issue) { i.Err = err }
}

// sorted orders findings by container then name, keeping emission order
// within one entry.
func (p *pass) sorted(findings []finding) []Issue {
	slices.SortStableFunc(findings, func(a, b finding) int {
		if c := cmp.Compare(a.container, b.container); c != 0 {
			return c
		}
		return cmp.Compare(a.name, b.name)
	})
	out := make([]Issue, len(findings))
	for i, f := range findings {
		out[i] = f.issue
	}
	return out
}

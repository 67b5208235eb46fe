package asyncerrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrStructural indicates a duplicate name was inserted into the builder.
	ErrStructural = errors.New("structural error")

	// ErrSchemaDerivation indicates a payload or header schema could not be derived.
	ErrSchemaDerivation = errors.New("schema derivation error")

	// ErrReference indicates a reference that does not resolve.
	ErrReference = errors.New("reference error")

	// ErrKindMismatch indicates a reference that names an entry of another component kind.
	ErrKindMismatch = errors.New("component kind mismatch")

	// ErrIntegrity indicates an operation that is inconsistent with its channel or messages.
	ErrIntegrity = errors.New("integrity error")

	// ErrValidation indicates a structural violation found during validation.
	ErrValidation = errors.New("validation error")

	// ErrConfig indicates an invalid configuration.
	ErrConfig = errors.New("configuration error")

	// ErrParse indicates a document could not be decoded.
	ErrParse = errors.New("parse error")
)

// StructuralError is returned by the builder when a name is inserted twice
// into the same map or component kind.
type StructuralError struct {
	// Kind is the container the name was inserted into (e.g. "channel", "components.messages")
	Kind string
	// Name is the duplicated name
	Name string
	// Message provides additional context
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *StructuralError) Error() string {
	msg := "structural error"
	if e.Kind != "" {
		msg += ": duplicate " + e.Kind
	}
	if e.Name != "" {
		msg += fmt.Sprintf(" %q", e.Name)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *StructuralError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *StructuralError) Is(target error) bool {
	return target == ErrStructural
}

// SchemaDerivationError reports a schema that could not be derived from a Go type.
type SchemaDerivationError struct {
	// TypeName is the display name of the originating type
	TypeName string
	// Site identifies the message the schema belongs to (e.g. "channels.orders.messages.Created.payload")
	Site string
	// Cause is the error returned by the derivation
	Cause error
}

// Error returns a human-readable error message.
func (e *SchemaDerivationError) Error() string {
	msg := "schema derivation error"
	if e.Site != "" {
		msg += " at " + e.Site
	}
	if e.TypeName != "" {
		msg += " for type " + e.TypeName
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *SchemaDerivationError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *SchemaDerivationError) Is(target error) bool {
	return target == ErrSchemaDerivation
}

// ReferenceError reports a reference that names a missing entry, or an entry
// of a different kind than the referring site expects.
type ReferenceError struct {
	// ExpectedKind is the kind the referring site requires (e.g. "channels", "messages")
	ExpectedKind string
	// Name is the referenced name
	Name string
	// Site is the path of the referring field
	Site string
	// ActualKind is set when the name exists under another component kind
	ActualKind string
	// Message provides additional context
	Message string
}

// IsKindMismatch reports whether the name exists, but under another kind.
func (e *ReferenceError) IsKindMismatch() bool {
	return e.ActualKind != ""
}

// Error returns a human-readable error message.
func (e *ReferenceError) Error() string {
	msg := "reference error"
	if e.IsKindMismatch() {
		msg = "component kind mismatch"
	}
	if e.Site != "" {
		msg += " at " + e.Site
	}
	if e.ExpectedKind != "" {
		msg += ": " + e.ExpectedKind
	}
	if e.Name != "" {
		msg += fmt.Sprintf(" %q", e.Name)
	}
	if e.IsKindMismatch() {
		msg += " is defined in " + e.ActualKind
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Unwrap returns nil as ReferenceError has no underlying cause.
func (e *ReferenceError) Unwrap() error {
	return nil
}

// Is reports whether target matches this error type.
// Matches ErrReference, and also ErrKindMismatch when the name exists under another kind.
func (e *ReferenceError) Is(target error) bool {
	if target == ErrReference {
		return true
	}
	return target == ErrKindMismatch && e.IsKindMismatch()
}

// IntegrityError reports an operation whose channel, messages, action, or id
// are inconsistent with the rest of the document.
type IntegrityError struct {
	// OperationID is the offending operation's id
	OperationID string
	// Name is the offending channel or message name, if any
	Name string
	// Message describes the inconsistency
	Message string
}

// Error returns a human-readable error message.
func (e *IntegrityError) Error() string {
	msg := "integrity error"
	if e.OperationID != "" {
		msg += fmt.Sprintf(" in operation %q", e.OperationID)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Name != "" {
		msg += fmt.Sprintf(" (%q)", e.Name)
	}
	return msg
}

// Unwrap returns nil as IntegrityError has no underlying cause.
func (e *IntegrityError) Unwrap() error {
	return nil
}

// Is reports whether target matches this error type.
func (e *IntegrityError) Is(target error) bool {
	return target == ErrIntegrity
}

// ValidationError represents a structural violation that is not a reference
// or operation integrity problem, such as an empty channel address.
type ValidationError struct {
	// Path is the dotted path to the problematic field (e.g. "channels.orders")
	Path string
	// Field is the specific field name with the issue
	Field string
	// Value is the problematic value (may be nil)
	Value any
	// Message describes the validation failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ValidationError) Error() string {
	msg := "validation error"
	if e.Path != "" {
		msg += " at " + e.Path
	}
	if e.Field != "" {
		msg += "." + e.Field
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ValidationError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// ConfigError represents an invalid configuration or input.
type ConfigError struct {
	// Option is the name of the problematic configuration option
	Option string
	// Value is the invalid value that was provided (may be nil)
	Value any
	// Message describes the configuration error
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ConfigError) Error() string {
	msg := "configuration error"
	if e.Option != "" {
		msg += " for " + e.Option
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}

// ParseError represents a failure to decode a document.
type ParseError struct {
	// Path is the file path or source identifier
	Path string
	// Message describes the parsing failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ParseError) Error() string {
	msg := "parse error"
	if e.Path != "" {
		msg += " in " + e.Path
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// Package asyncerrors provides structured error types for the asynctools library.
//
// Import path: github.com/erraggy/asynctools/asyncerrors
//
// This package enables programmatic error handling via [errors.Is] and [errors.As],
// allowing callers to distinguish between the categories of failure produced while
// assembling and validating an AsyncAPI document.
//
// # Error Types
//
//   - [StructuralError]: a name was inserted twice into the builder
//   - [SchemaDerivationError]: a payload or header schema could not be derived from a Go type
//   - [ReferenceError]: a reference names a missing entry, or an entry of another kind
//   - [IntegrityError]: an operation is inconsistent with its channel or messages
//   - [ValidationError]: other structural violations (e.g. an empty channel address)
//   - [ConfigError]: invalid configuration or input options
//   - [ParseError]: a JSON or YAML document could not be decoded
//
// # Sentinel Errors
//
// Each error type has a corresponding sentinel error for use with errors.Is():
//
//   - [ErrStructural]: Matches any [StructuralError]
//   - [ErrSchemaDerivation]: Matches any [SchemaDerivationError]
//   - [ErrReference]: Matches any [ReferenceError]
//   - [ErrKindMismatch]: Matches [ReferenceError] with a non-empty ActualKind
//   - [ErrIntegrity]: Matches any [IntegrityError]
//   - [ErrValidation]: Matches any [ValidationError]
//   - [ErrConfig]: Matches any [ConfigError]
//   - [ErrParse]: Matches any [ParseError]
//
// # Usage Examples
//
// The validator's report error unwraps to every fatal finding, so both
// errors.Is and errors.As see through it:
//
//	doc, err := assembler.TryAssemble(fragments...)
//	if errors.Is(err, asyncerrors.ErrReference) {
//	    // at least one reference did not resolve
//	}
//
//	var intErr *asyncerrors.IntegrityError
//	if errors.As(err, &intErr) {
//	    fmt.Printf("operation %s is inconsistent: %s\n", intErr.OperationID, intErr.Message)
//	}
package asyncerrors

// Package issues provides the finding type reported by the validator.
package issues

import (
	"fmt"

	"github.com/erraggy/asynctools/internal/severity"
)

// Issue represents a single finding produced while validating a document.
type Issue struct {
	// Path is the dotted path to the problematic element (e.g., "operations.sendEvent.channel")
	Path string
	// Message is a human-readable description of the issue
	Message string
	// Severity indicates the severity level of the issue
	Severity severity.Severity
	// Field is the specific field name that has the issue
	Field string
	// Value is the problematic value (optional)
	Value any
	// Err is the typed error behind a fatal finding (see the asyncerrors package).
	// Warnings may leave it nil.
	Err error
	// Context provides additional information about the issue (optional)
	Context string
}

// String returns a formatted string representation of the issue.
// Uses different symbols based on severity level:
// - "✗" for Error severity
// - "⚠" for Warning severity
// - "ℹ" for Info severity
func (i Issue) String() string {
	var symbol string
	switch i.Severity {
	case severity.SeverityError:
		symbol = "✗"
	case severity.SeverityWarning:
		symbol = "⚠"
	case severity.SeverityInfo:
		symbol = "ℹ"
	default:
		symbol = "?"
	}

	result := fmt.Sprintf("%s %s: %s", symbol, i.Path, i.Message)
	if i.Context != "" {
		result += fmt.Sprintf("\n    Context: %s", i.Context)
	}
	return result
}

// Error returns the message of the underlying typed error when present,
// so an Issue can be used wherever an error description is expected.
func (i Issue) Error() string {
	if i.Err != nil {
		return i.Err.Error()
	}
	return i.Path + ": " + i.Message
}

// Unwrap returns the typed error behind the finding.
func (i Issue) Unwrap() error {
	return i.Err
}

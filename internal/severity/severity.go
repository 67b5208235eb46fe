// Package severity provides severity level constants for findings reported
// by the validator.
//
// The levels are:
//   - SeverityError: a fatal finding that makes the document invalid
//   - SeverityWarning: a configuration warning that never fails validation
//   - SeverityInfo: informational notes
package severity

// Severity indicates the severity level of a validation finding.
type Severity int

const (
	// SeverityError indicates a fatal finding that makes the document invalid.
	SeverityError Severity = iota

	// SeverityWarning indicates a non-fatal finding, such as an unused server variable.
	SeverityWarning

	// SeverityInfo indicates an informational message.
	SeverityInfo
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// IsFatal reports whether the severity fails validation.
func (s Severity) IsFatal() bool {
	return s == SeverityError
}

// MarshalText renders the severity as its string form, so findings encode
// as "error" or "warning" in JSON and YAML output.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

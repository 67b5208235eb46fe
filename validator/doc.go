// Package validator proves the referential and structural integrity of an
// AsyncAPI document.
//
// Import path: github.com/erraggy/asynctools/validator
//
// Validation is a single pass over a finished spec.Document. It never stops
// at the first problem: every fatal finding is collected into one [Result],
// so a caller fixing one error does not have to re-run validation to find
// the next.
//
// # Validation Steps
//
//  1. Servers: security scheme references resolve; every {placeholder} in
//     the host or pathname has a variable with a default or an enum.
//     Unused variables are warnings.
//  2. Channels: the address is non-empty; component message references name
//     an entry in components.messages; channel servers are declared.
//  3. Operations: the channel resolves; the action is send or receive; the
//     message list is non-empty and every message is declared by the
//     operation's own channel; operation ids are unique.
//  4. Messages: payload and header schemas derived from Go types are
//     computed through the schema cache. A derivation failure is fatal and
//     names the Go type. Content types, contact details, and documentation
//     URLs are checked for format; malformed values are warnings.
//  5. Components: every reference (bindings, traits, parameters, schemas,
//     security schemes) resolves to an entry of the matching kind.
//
// # Findings
//
// Fatal findings carry a typed error from the asyncerrors package
// (ReferenceError, IntegrityError, SchemaDerivationError, ValidationError).
// Warnings never fail validation and can be suppressed with
// WithIncludeWarnings(false).
//
// Findings are ordered by container (info, servers, channels, operations,
// components) and then by name, so validating the same document twice
// yields identical reports.
//
// # Kind Mismatches
//
// A reference naming an entry of another component kind is fatal. For
// documents written before this check existed, WithKindMismatchAsWarning(true)
// reports kind mismatches as warnings instead; a reference to a name that
// exists nowhere stays fatal.
//
// # Usage
//
//	v, err := validator.New(validator.WithIncludeWarnings(false))
//	if err != nil {
//		log.Fatal(err)
//	}
//	result := v.Validate(doc)
//	if err := result.Err(); err != nil {
//		log.Fatal(err) // enumerates every fatal finding
//	}
package validator

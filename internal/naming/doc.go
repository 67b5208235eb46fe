// Package naming provides case conversion and Go type naming utilities shared
// by the builder and schema packages.
//
// Functions include ToPascalCase, ToCamelCase, Words and Title for case
// conversion, and TypeName and ComponentName for deriving display and
// component names from reflect.Type values.
//
// As an internal package, these functions are not part of the public API
// and may change without notice.
package naming

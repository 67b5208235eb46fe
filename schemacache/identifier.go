package schemacache

import (
	"reflect"

	"github.com/erraggy/asynctools/internal/naming"
)

// Identifier is the cache key for a declared Go type.
// Two Identifiers are equal exactly when they wrap the same reflect.Type,
// so distinct types that share a name never collide.
type Identifier struct {
	t reflect.Type
}

// IdentifierOf returns the Identifier for T.
func IdentifierOf[T any]() Identifier {
	return Identifier{t: reflect.TypeFor[T]()}
}

// IdentifierFor returns the Identifier for t.
func IdentifierFor(t reflect.Type) Identifier {
	return Identifier{t: t}
}

// Type returns the wrapped type, or nil for the zero Identifier.
func (id Identifier) Type() reflect.Type {
	return id.t
}

// IsZero reports whether id wraps no type.
func (id Identifier) IsZero() bool {
	return id.t == nil
}

// DisplayName returns a human-readable name such as "orders.Created",
// used in diagnostics and SchemaDerivationError values.
func (id Identifier) DisplayName() string {
	return naming.TypeName(id.t)
}

// String implements fmt.Stringer.
func (id Identifier) String() string {
	return id.DisplayName()
}

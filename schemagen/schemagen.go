// Package schemagen derives JSON Schema values from Go types.
//
// Derivation is reflection-based (github.com/google/jsonschema-go) and honors
// encoding/json struct tags plus the jsonschema tag for descriptions. Results
// are canonicalized into a [schema.Value] so they can be shared through a
// [schemacache.Cache]:
//
//	v, err := schemagen.Derive[orders.Created](schemacache.Default())
package schemagen

import (
	"github.com/erraggy/asynctools/asyncerrors"
	"github.com/erraggy/asynctools/schema"
	"github.com/erraggy/asynctools/schemacache"
	"github.com/google/jsonschema-go/jsonschema"
)

// For returns the compute function that derives the schema of T.
// Types that cannot be represented (channels, functions, complex numbers,
// recursive types) make the returned function fail with a
// [asyncerrors.SchemaDerivationError].
func For[T any]() schemacache.ComputeFunc {
	return func() (schema.Value, error) {
		s, err := jsonschema.For[T](nil)
		if err != nil {
			return schema.Value{}, &asyncerrors.SchemaDerivationError{
				TypeName: schemacache.IdentifierOf[T]().DisplayName(),
				Cause:    err,
			}
		}
		return schema.New(s)
	}
}

// Derive returns the schema of T through cache, computing it on first use.
// A nil cache uses schemacache.Default().
func Derive[T any](cache *schemacache.Cache) (schema.Value, error) {
	if cache == nil {
		cache = schemacache.Default()
	}
	return cache.GetOrCompute(schemacache.IdentifierOf[T](), For[T]())
}

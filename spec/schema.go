package spec

import (
	"errors"
	"sync/atomic"

	"github.com/erraggy/asynctools/schema"
	"github.com/erraggy/asynctools/schemacache"
	"github.com/goccy/go-json"
)

// ErrUnresolvedSchema is returned when a derived schema is encoded before it
// has been resolved through a cache.
var ErrUnresolvedSchema = errors.New("spec: derived schema has not been resolved")

// Schema is a message payload or headers schema. It is one of:
//   - an inline schema.Value,
//   - a reference to components.schemas,
//   - a schema derived from a Go type, computed through a schemacache.Cache.
//
// Copies of a derived Schema share its resolution, which is safe for
// concurrent use.
type Schema struct {
	inline  schema.Value
	ref     *Reference
	derived *derivation
}

type derivation struct {
	id       schemacache.Identifier
	compute  schemacache.ComputeFunc
	resolved atomic.Pointer[schema.Value]
}

// InlineSchema returns a Schema holding v.
func InlineSchema(v schema.Value) *Schema {
	return &Schema{inline: v}
}

// SchemaRef returns a Schema referencing components.schemas[name].
func SchemaRef(name string) *Schema {
	ref := Ref(KindSchemas, name)
	return &Schema{ref: &ref}
}

// DerivedSchema returns a Schema computed on demand by compute and memoized
// in a cache under id.
func DerivedSchema(id schemacache.Identifier, compute schemacache.ComputeFunc) *Schema {
	return &Schema{derived: &derivation{id: id, compute: compute}}
}

// IsRef reports whether s references a component.
func (s *Schema) IsRef() bool {
	return s.ref != nil
}

// IsDerived reports whether s is derived from a Go type.
func (s *Schema) IsDerived() bool {
	return s.derived != nil
}

// Reference returns the referenced component, if s is a reference.
func (s *Schema) Reference() (Reference, bool) {
	if s.ref == nil {
		return Reference{}, false
	}
	return *s.ref, true
}

// Identifier returns the cache key of a derived schema.
func (s *Schema) Identifier() (schemacache.Identifier, bool) {
	if s.derived == nil {
		return schemacache.Identifier{}, false
	}
	return s.derived.id, true
}

// Value returns the inline value, or the resolved value of a derived schema.
// It returns false for references and unresolved derived schemas.
func (s *Schema) Value() (schema.Value, bool) {
	switch {
	case s.derived != nil:
		if v := s.derived.resolved.Load(); v != nil {
			return *v, true
		}
		return schema.Value{}, false
	case s.ref != nil:
		return schema.Value{}, false
	default:
		return s.inline, !s.inline.IsZero()
	}
}

// Resolve computes a derived schema through cache (schemacache.Default()
// when nil) and remembers the result. Inline schemas return their value;
// references return the zero Value and no error.
func (s *Schema) Resolve(cache *schemacache.Cache) (schema.Value, error) {
	if s.derived == nil {
		v, _ := s.Value()
		return v, nil
	}
	if v := s.derived.resolved.Load(); v != nil {
		return *v, nil
	}
	if cache == nil {
		cache = schemacache.Default()
	}
	v, err := cache.GetOrCompute(s.derived.id, s.derived.compute)
	if err != nil {
		return schema.Value{}, err
	}
	s.derived.resolved.CompareAndSwap(nil, &v)
	return *s.derived.resolved.Load(), nil
}

// MarshalJSON encodes the schema value or {"$ref": "..."}.
// Derived schemas must be resolved first.
func (s *Schema) MarshalJSON() ([]byte, error) {
	if s.ref != nil {
		return s.ref.MarshalJSON()
	}
	v, ok := s.Value()
	if !ok && s.derived != nil {
		return nil, ErrUnresolvedSchema
	}
	return json.Marshal(v)
}

// UnmarshalJSON decodes an inline schema or a reference.
func (s *Schema) UnmarshalJSON(data []byte) error {
	if isRefObject(data) {
		var ref Reference
		if err := ref.UnmarshalJSON(data); err != nil {
			return err
		}
		*s = Schema{ref: &ref}
		return nil
	}
	var v schema.Value
	if err := v.UnmarshalJSON(data); err != nil {
		return err
	}
	*s = Schema{inline: v}
	return nil
}

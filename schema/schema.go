// Package schema provides Value, an immutable JSON-Schema-like tree shared
// between the schema cache and every message that references it.
//
// A Value is canonical: it only ever holds the shapes produced by decoding
// JSON (map[string]any, []any, string, float64, bool and nil). Accessors
// return copies, so a Value handed out by the cache can be shared freely
// across goroutines.
package schema

import (
	"bytes"
	"fmt"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// Value is an immutable JSON-like schema tree.
// The zero Value represents "no schema".
type Value struct {
	root any
	set  bool
}

// New canonicalizes v by encoding it to JSON and decoding it back.
// v may be any JSON-encodable value, including a *jsonschema.Schema.
func New(v any) (Value, error) {
	if val, ok := v.(Value); ok {
		return val, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return Value{}, fmt.Errorf("schema: failed to encode value: %w", err)
	}
	return Parse(data)
}

// MustNew is like New but panics on error. Intended for schema literals in
// tests and package-level declarations.
func MustNew(v any) Value {
	val, err := New(v)
	if err != nil {
		panic(err)
	}
	return val
}

// Parse decodes a JSON document into a Value.
func Parse(data []byte) (Value, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return Value{}, fmt.Errorf("schema: empty document")
	}
	var root any
	if err := json.Unmarshal(trimmed, &root); err != nil {
		return Value{}, fmt.Errorf("schema: failed to decode value: %w", err)
	}
	return Value{root: root, set: true}, nil
}

// IsZero reports whether v holds no schema.
func (v Value) IsZero() bool {
	return !v.set
}

// Type returns the "type" keyword of an object schema, or "" when absent
// or not a single string.
func (v Value) Type() string {
	obj, ok := v.root.(map[string]any)
	if !ok {
		return ""
	}
	t, _ := obj["type"].(string)
	return t
}

// Lookup walks object keys (and decimal array indices) and returns the
// sub-tree found at the end of the path.
func (v Value) Lookup(path ...string) (Value, bool) {
	if !v.set {
		return Value{}, false
	}
	cur := v.root
	for _, seg := range path {
		switch node := cur.(type) {
		case map[string]any:
			next, ok := node[seg]
			if !ok {
				return Value{}, false
			}
			cur = next
		case []any:
			idx, err := strconv.Atoi(seg)
			if err != nil || idx < 0 || idx >= len(node) {
				return Value{}, false
			}
			cur = node[idx]
		default:
			return Value{}, false
		}
	}
	return Value{root: deepCopy(cur), set: true}, true
}

// Properties returns the sorted names under the "properties" keyword.
func (v Value) Properties() []string {
	obj, ok := v.root.(map[string]any)
	if !ok {
		return nil
	}
	props, ok := obj["properties"].(map[string]any)
	if !ok {
		return nil
	}
	names := make([]string, 0, len(props))
	for name := range props {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Required returns the "required" keyword of an object schema.
func (v Value) Required() []string {
	obj, ok := v.root.(map[string]any)
	if !ok {
		return nil
	}
	list, _ := obj["required"].([]any)
	out := make([]string, 0, len(list))
	for _, item := range list {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// Equal reports deep structural equality.
func (v Value) Equal(other Value) bool {
	return v.set == other.set && reflect.DeepEqual(v.root, other.root)
}

// Interface returns a deep copy of the underlying tree.
func (v Value) Interface() any {
	return deepCopy(v.root)
}

// String renders v as compact JSON.
func (v Value) String() string {
	data, err := v.MarshalJSON()
	if err != nil {
		return "<invalid schema>"
	}
	return string(data)
}

// MarshalJSON implements json.Marshaler. The zero Value encodes as null.
func (v Value) MarshalJSON() ([]byte, error) {
	if !v.set {
		return []byte("null"), nil
	}
	return json.Marshal(v.root)
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(data []byte) error {
	if strings.TrimSpace(string(data)) == "null" {
		*v = Value{}
		return nil
	}
	parsed, err := Parse(data)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// MarshalYAML implements the yaml Marshaler interface.
func (v Value) MarshalYAML() (any, error) {
	return v.Interface(), nil
}

func deepCopy(v any) any {
	switch node := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(node))
		for k, child := range node {
			out[k] = deepCopy(child)
		}
		return out
	case []any:
		out := make([]any, len(node))
		for i, child := range node {
			out[i] = deepCopy(child)
		}
		return out
	default:
		return node
	}
}

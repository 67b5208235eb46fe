package spec

import (
	"maps"
	"slices"

	"github.com/erraggy/asynctools/schema"
)

// Components is the component store: reusable definitions keyed by kind and
// name. Names are unique within a kind; the same name may appear under
// several kinds.
type Components struct {
	Schemas         map[string]schema.Value   `json:"schemas,omitempty"`
	Messages        map[string]Message        `json:"messages,omitempty"`
	SecuritySchemes SecuritySchemes           `json:"securitySchemes,omitempty"`
	Parameters      map[string]Parameter      `json:"parameters,omitempty"`
	ChannelBindings map[string]Bindings       `json:"channelBindings,omitempty"`
	MessageBindings map[string]Bindings       `json:"messageBindings,omitempty"`
	ServerBindings  map[string]Bindings       `json:"serverBindings,omitempty"`
	OperationTraits map[string]OperationTrait `json:"operationTraits,omitempty"`
	MessageTraits   map[string]MessageTrait   `json:"messageTraits,omitempty"`
}

// Has reports whether an entry named name exists under kind.
func (c *Components) Has(kind ComponentKind, name string) bool {
	switch kind {
	case KindSchemas:
		return hasKey(c.Schemas, name)
	case KindMessages:
		return hasKey(c.Messages, name)
	case KindSecuritySchemes:
		return hasKey(c.SecuritySchemes, name)
	case KindParameters:
		return hasKey(c.Parameters, name)
	case KindChannelBindings:
		return hasKey(c.ChannelBindings, name)
	case KindMessageBindings:
		return hasKey(c.MessageBindings, name)
	case KindServerBindings:
		return hasKey(c.ServerBindings, name)
	case KindOperationTraits:
		return hasKey(c.OperationTraits, name)
	case KindMessageTraits:
		return hasKey(c.MessageTraits, name)
	}
	return false
}

// KindsOf returns, in ComponentKinds order, every kind that defines name.
func (c *Components) KindsOf(name string) []ComponentKind {
	var kinds []ComponentKind
	for _, kind := range ComponentKinds() {
		if c.Has(kind, name) {
			kinds = append(kinds, kind)
		}
	}
	return kinds
}

// Names returns the entry names of kind in ascending order.
func (c *Components) Names(kind ComponentKind) []string {
	switch kind {
	case KindSchemas:
		return sortedKeys(c.Schemas)
	case KindMessages:
		return sortedKeys(c.Messages)
	case KindSecuritySchemes:
		return sortedKeys(c.SecuritySchemes)
	case KindParameters:
		return sortedKeys(c.Parameters)
	case KindChannelBindings:
		return sortedKeys(c.ChannelBindings)
	case KindMessageBindings:
		return sortedKeys(c.MessageBindings)
	case KindServerBindings:
		return sortedKeys(c.ServerBindings)
	case KindOperationTraits:
		return sortedKeys(c.OperationTraits)
	case KindMessageTraits:
		return sortedKeys(c.MessageTraits)
	}
	return nil
}

// Len returns the total number of entries across all kinds.
func (c *Components) Len() int {
	return len(c.Schemas) + len(c.Messages) + len(c.SecuritySchemes) + len(c.Parameters) +
		len(c.ChannelBindings) + len(c.MessageBindings) + len(c.ServerBindings) +
		len(c.OperationTraits) + len(c.MessageTraits)
}

// IsEmpty reports whether the store holds no entries.
func (c *Components) IsEmpty() bool {
	return c.Len() == 0
}

func hasKey[V any](m map[string]V, key string) bool {
	_, ok := m[key]
	return ok
}

func sortedKeys[V any](m map[string]V) []string {
	if len(m) == 0 {
		return nil
	}
	return slices.Sorted(maps.Keys(m))
}

package builder

import (
	"github.com/erraggy/asynctools/spec"
)

// FromDocument splits doc into the fragments that rebuild it: document
// metadata, tags, component entries (in spec.ComponentKinds order), then
// servers, channels and operations, each in ascending name order.
// Channels keep their messages; re-applying the fragments to a fresh
// Builder reproduces doc.
func FromDocument(doc *spec.Document) []Fragment {
	if doc == nil {
		return nil
	}

	fragments := []Fragment{Info(doc.Info)}
	if doc.ID != "" {
		fragments = append(fragments, DocumentID(doc.ID))
	}
	if doc.DefaultContentType != "" {
		fragments = append(fragments, DefaultContentType(doc.DefaultContentType))
	}
	for _, tag := range doc.Tags {
		fragments = append(fragments, Tag(tag))
	}

	c := &doc.Components
	for _, kind := range spec.ComponentKinds() {
		for _, name := range c.Names(kind) {
			fragments = append(fragments, componentFragment(c, kind, name))
		}
	}

	for _, name := range doc.ServerNames() {
		fragments = append(fragments, Server(name, doc.Servers[name]))
	}
	for _, name := range doc.ChannelNames() {
		fragments = append(fragments, Channel(name, doc.Channels[name]))
	}
	for _, name := range doc.OperationNames() {
		fragments = append(fragments, Operation(name, doc.Operations[name]))
	}
	return fragments
}

func componentFragment(c *spec.Components, kind spec.ComponentKind, name string) Fragment {
	switch kind {
	case spec.KindSchemas:
		return Schema(name, c.Schemas[name])
	case spec.KindMessages:
		return Message(name, c.Messages[name])
	case spec.KindSecuritySchemes:
		return SecurityScheme(name, c.SecuritySchemes[name])
	case spec.KindParameters:
		return Parameter(name, c.Parameters[name])
	case spec.KindChannelBindings:
		return ChannelBindings(name, c.ChannelBindings[name])
	case spec.KindMessageBindings:
		return MessageBindings(name, c.MessageBindings[name])
	case spec.KindServerBindings:
		return ServerBindings(name, c.ServerBindings[name])
	case spec.KindOperationTraits:
		return OperationTrait(name, c.OperationTraits[name])
	case spec.KindMessageTraits:
		return MessageTrait(name, c.MessageTraits[name])
	}
	return nil
}

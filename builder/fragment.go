package builder

import (
	"github.com/erraggy/asynctools/schema"
	"github.com/erraggy/asynctools/spec"
)

// Fragment is one independently declared piece of a document.
type Fragment interface {
	// Apply inserts the fragment into b.
	Apply(b *Builder) error
}

// FragmentFunc adapts a function to the Fragment interface.
type FragmentFunc func(b *Builder) error

// Apply calls f(b).
func (f FragmentFunc) Apply(b *Builder) error {
	return f(b)
}

// Apply inserts fragments in order and returns the first error.
// Fragments after a failing one are not applied.
func (b *Builder) Apply(fragments ...Fragment) error {
	for _, f := range fragments {
		if f == nil {
			continue
		}
		if err := f.Apply(b); err != nil {
			return err
		}
	}
	return nil
}

// Info sets the document's Info object.
func Info(info spec.Info) Fragment {
	return FragmentFunc(func(b *Builder) error {
		b.SetInfo(info)
		return nil
	})
}

// DocumentID sets the document's application identifier.
func DocumentID(id string) Fragment {
	return FragmentFunc(func(b *Builder) error {
		b.SetID(id)
		return nil
	})
}

// DefaultContentType sets the document's default content type.
func DefaultContentType(contentType string) Fragment {
	return FragmentFunc(func(b *Builder) error {
		b.SetDefaultContentType(contentType)
		return nil
	})
}

// Tag adds a root-level tag.
func Tag(tag spec.Tag) Fragment {
	return FragmentFunc(func(b *Builder) error { return b.AddTag(tag) })
}

// Server adds a server.
func Server(name string, server spec.Server) Fragment {
	return FragmentFunc(func(b *Builder) error { return b.AddServer(name, server) })
}

// Channel adds a channel.
func Channel(name string, channel spec.Channel) Fragment {
	return FragmentFunc(func(b *Builder) error { return b.AddChannel(name, channel) })
}

// ChannelMessage adds a message to a previously added channel.
func ChannelMessage(channel, name string, msg spec.OrRef[spec.Message]) Fragment {
	return FragmentFunc(func(b *Builder) error { return b.AddChannelMessage(channel, name, msg) })
}

// Operation adds an operation.
func Operation(name string, op spec.Operation) Fragment {
	return FragmentFunc(func(b *Builder) error { return b.AddOperation(name, op) })
}

// Message registers a component message.
func Message(name string, msg spec.Message) Fragment {
	return FragmentFunc(func(b *Builder) error { return b.AddMessage(name, msg) })
}

// Schema registers a component schema.
func Schema(name string, v schema.Value) Fragment {
	return FragmentFunc(func(b *Builder) error { return b.AddSchema(name, v) })
}

// Parameter registers a component parameter.
func Parameter(name string, p spec.Parameter) Fragment {
	return FragmentFunc(func(b *Builder) error { return b.AddParameter(name, p) })
}

// ChannelBindings registers component channel bindings.
func ChannelBindings(name string, bindings spec.Bindings) Fragment {
	return FragmentFunc(func(b *Builder) error { return b.AddChannelBindings(name, bindings) })
}

// MessageBindings registers component message bindings.
func MessageBindings(name string, bindings spec.Bindings) Fragment {
	return FragmentFunc(func(b *Builder) error { return b.AddMessageBindings(name, bindings) })
}

// ServerBindings registers component server bindings.
func ServerBindings(name string, bindings spec.Bindings) Fragment {
	return FragmentFunc(func(b *Builder) error { return b.AddServerBindings(name, bindings) })
}

// OperationTrait registers a component operation trait.
func OperationTrait(name string, trait spec.OperationTrait) Fragment {
	return FragmentFunc(func(b *Builder) error { return b.AddOperationTrait(name, trait) })
}

// MessageTrait registers a component message trait.
func MessageTrait(name string, trait spec.MessageTrait) Fragment {
	return FragmentFunc(func(b *Builder) error { return b.AddMessageTrait(name, trait) })
}

// SecurityScheme registers a component security scheme.
func SecurityScheme(name string, scheme spec.SecurityScheme) Fragment {
	return FragmentFunc(func(b *Builder) error { return b.AddSecurityScheme(name, scheme) })
}

package builder

import (
	"reflect"

	"github.com/erraggy/asynctools/internal/naming"
	"github.com/erraggy/asynctools/schemacache"
	"github.com/erraggy/asynctools/schemagen"
	"github.com/erraggy/asynctools/spec"
)

// MessageOption configures a message built by MessageFor.
type MessageOption func(*spec.Message)

// MessageFor returns a message whose payload schema is derived from T.
// The message is named after the Go type ("OrderCreated", or
// "Envelope_OrderCreated" for a generic instantiation) and titled from
// that name ("Order Created"). Derivation is deferred to validation.
//
// Example:
//
//	msg := builder.MessageFor[OrderCreated](
//		builder.WithContentType("application/json"),
//		builder.WithSummary("An order was placed"),
//	)
func MessageFor[T any](opts ...MessageOption) spec.Message {
	name := naming.ComponentName(reflect.TypeFor[T]())
	msg := spec.Message{
		Name:    name,
		Title:   naming.Title(name),
		Payload: DerivedSchema[T](),
	}
	for _, opt := range opts {
		opt(&msg)
	}
	return msg
}

// DerivedSchema returns a schema derived from T through the schema cache.
func DerivedSchema[T any]() *spec.Schema {
	return spec.DerivedSchema(schemacache.IdentifierOf[T](), schemagen.For[T]())
}

// WithHeaders sets the message's headers schema.
func WithHeaders(headers *spec.Schema) MessageOption {
	return func(m *spec.Message) {
		m.Headers = headers
	}
}

// WithMessageID sets the message id.
func WithMessageID(id string) MessageOption {
	return func(m *spec.Message) {
		m.MessageID = id
	}
}

// WithMessageName overrides the name derived from the Go type.
func WithMessageName(name string) MessageOption {
	return func(m *spec.Message) {
		m.Name = name
	}
}

// WithTitle overrides the title derived from the Go type.
func WithTitle(title string) MessageOption {
	return func(m *spec.Message) {
		m.Title = title
	}
}

// WithSummary sets the message summary.
func WithSummary(summary string) MessageOption {
	return func(m *spec.Message) {
		m.Summary = summary
	}
}

// WithDescription sets the message description.
func WithDescription(desc string) MessageOption {
	return func(m *spec.Message) {
		m.Description = desc
	}
}

// WithContentType sets the message content type.
func WithContentType(contentType string) MessageOption {
	return func(m *spec.Message) {
		m.ContentType = contentType
	}
}

// WithCorrelationID sets the runtime expression locating the correlation id.
func WithCorrelationID(location string) MessageOption {
	return func(m *spec.Message) {
		m.CorrelationID = &spec.CorrelationID{Location: location}
	}
}

// WithMessageBindings sets inline message bindings.
func WithMessageBindings(bindings spec.Bindings) MessageOption {
	return func(m *spec.Message) {
		b := spec.Inline(bindings)
		m.Bindings = &b
	}
}

// WithMessageBindingsRef points the message's bindings at a component.
func WithMessageBindingsRef(name string) MessageOption {
	return func(m *spec.Message) {
		b := spec.RefTo[spec.Bindings](spec.KindMessageBindings, name)
		m.Bindings = &b
	}
}

// WithMessageTraits appends references to component message traits.
func WithMessageTraits(names ...string) MessageOption {
	return func(m *spec.Message) {
		for _, name := range names {
			m.Traits = append(m.Traits, spec.Ref(spec.KindMessageTraits, name))
		}
	}
}

// WithExample appends an example payload.
func WithExample(name string, payload any) MessageOption {
	return func(m *spec.Message) {
		m.Examples = append(m.Examples, spec.MessageExample{Name: name, Payload: payload})
	}
}

// WithTags appends tags.
func WithTags(tags ...spec.Tag) MessageOption {
	return func(m *spec.Message) {
		m.Tags = append(m.Tags, tags...)
	}
}

package builder

import (
	"maps"
	"slices"

	"github.com/erraggy/asynctools/asyncerrors"
	"github.com/erraggy/asynctools/logging"
	"github.com/erraggy/asynctools/schema"
	"github.com/erraggy/asynctools/spec"
)

// Container names used in StructuralError.Kind.
const (
	kindServer    = "server"
	kindChannel   = "channel"
	kindOperation = "operation"
	kindTag       = "tag"
)

// Builder accretes fragments into a single AsyncAPI document.
//
// Concurrency: Builder instances are not safe for concurrent use.
// Create separate Builder instances for concurrent assemblies.
type Builder struct {
	doc    *spec.Document
	logger logging.Logger
	built  bool
}

// New creates a new Builder with an empty document.
//
// Example:
//
//	b := builder.New(
//		builder.WithInfo(spec.Info{Title: "Orders", Version: "1.0.0"}),
//		builder.WithDefaultContentType("application/json"),
//	)
func New(opts ...Option) *Builder {
	cfg := &builderConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	doc := spec.NewDocument(cfg.info)
	doc.ID = cfg.id
	doc.DefaultContentType = cfg.defaultContentType

	return &Builder{
		doc:    doc,
		logger: logging.OrNop(cfg.logger),
	}
}

// SetInfo replaces the document's Info object.
func (b *Builder) SetInfo(info spec.Info) *Builder {
	b.doc.Info = info
	return b
}

// SetTitle sets the title in the Info object.
func (b *Builder) SetTitle(title string) *Builder {
	b.doc.Info.Title = title
	return b
}

// SetVersion sets the version in the Info object.
// Note: This is the API version, not the AsyncAPI specification version.
func (b *Builder) SetVersion(version string) *Builder {
	b.doc.Info.Version = version
	return b
}

// SetDescription sets the description in the Info object.
func (b *Builder) SetDescription(desc string) *Builder {
	b.doc.Info.Description = desc
	return b
}

// SetID sets the document's application identifier.
func (b *Builder) SetID(id string) *Builder {
	b.doc.ID = id
	return b
}

// SetDefaultContentType sets the document's default content type.
func (b *Builder) SetDefaultContentType(contentType string) *Builder {
	b.doc.DefaultContentType = contentType
	return b
}

// AddTag adds a root-level tag. Tag names are unique.
func (b *Builder) AddTag(tag spec.Tag) error {
	if err := b.checkInsert(kindTag, tag.Name); err != nil {
		return err
	}
	for _, existing := range b.doc.Tags {
		if existing.Name == tag.Name {
			return duplicate(kindTag, tag.Name)
		}
	}
	b.doc.Tags = append(b.doc.Tags, tag)
	b.logger.Debug("builder: added tag", "name", tag.Name)
	return nil
}

// AddServer adds a server under name.
func (b *Builder) AddServer(name string, server spec.Server) error {
	return insert(b, &b.doc.Servers, kindServer, name, server)
}

// AddChannel adds a copy of channel under name. Its message and parameter
// maps are copied so AddChannelMessage never writes to caller-owned maps.
func (b *Builder) AddChannel(name string, channel spec.Channel) error {
	channel.Messages = maps.Clone(channel.Messages)
	channel.Parameters = maps.Clone(channel.Parameters)
	channel.Servers = slices.Clone(channel.Servers)
	return insert(b, &b.doc.Channels, kindChannel, name, channel)
}

// AddChannelMessage adds a message, inline or a reference to a component
// message, to the channel registered under channel.
func (b *Builder) AddChannelMessage(channel, name string, msg spec.OrRef[spec.Message]) error {
	kind := "channels." + channel + ".messages"
	if err := b.checkInsert(kind, name); err != nil {
		return err
	}
	ch, ok := b.doc.Channels[channel]
	if !ok {
		return &asyncerrors.ReferenceError{
			ExpectedKind: "channels",
			Name:         channel,
			Message:      "channel must be added before its messages",
		}
	}
	if err := insert(b, &ch.Messages, kind, name, msg); err != nil {
		return err
	}
	b.doc.Channels[channel] = ch
	return nil
}

// AddOperation adds an operation under name. When op.ID is empty the
// operation id defaults to name.
func (b *Builder) AddOperation(name string, op spec.Operation) error {
	return insert(b, &b.doc.Operations, kindOperation, name, op)
}

// AddMessage registers a reusable message in components.messages.
func (b *Builder) AddMessage(name string, msg spec.Message) error {
	return insertComponent(b, &b.doc.Components.Messages, spec.KindMessages, name, msg)
}

// AddSchema registers a reusable schema in components.schemas.
func (b *Builder) AddSchema(name string, v schema.Value) error {
	if v.IsZero() {
		return &asyncerrors.ConfigError{Option: componentKind(spec.KindSchemas), Value: name, Message: "schema must not be empty"}
	}
	return insertComponent(b, &b.doc.Components.Schemas, spec.KindSchemas, name, v)
}

// AddParameter registers a reusable channel parameter in components.parameters.
func (b *Builder) AddParameter(name string, p spec.Parameter) error {
	return insertComponent(b, &b.doc.Components.Parameters, spec.KindParameters, name, p)
}

// AddChannelBindings registers reusable channel bindings.
func (b *Builder) AddChannelBindings(name string, bindings spec.Bindings) error {
	return insertComponent(b, &b.doc.Components.ChannelBindings, spec.KindChannelBindings, name, bindings)
}

// AddMessageBindings registers reusable message bindings.
func (b *Builder) AddMessageBindings(name string, bindings spec.Bindings) error {
	return insertComponent(b, &b.doc.Components.MessageBindings, spec.KindMessageBindings, name, bindings)
}

// AddServerBindings registers reusable server bindings.
func (b *Builder) AddServerBindings(name string, bindings spec.Bindings) error {
	return insertComponent(b, &b.doc.Components.ServerBindings, spec.KindServerBindings, name, bindings)
}

// AddOperationTrait registers a reusable operation trait.
func (b *Builder) AddOperationTrait(name string, trait spec.OperationTrait) error {
	return insertComponent(b, &b.doc.Components.OperationTraits, spec.KindOperationTraits, name, trait)
}

// AddMessageTrait registers a reusable message trait.
func (b *Builder) AddMessageTrait(name string, trait spec.MessageTrait) error {
	return insertComponent(b, &b.doc.Components.MessageTraits, spec.KindMessageTraits, name, trait)
}

// AddSecurityScheme registers a security scheme in components.securitySchemes.
func (b *Builder) AddSecurityScheme(name string, scheme spec.SecurityScheme) error {
	if scheme == nil {
		return &asyncerrors.ConfigError{Option: componentKind(spec.KindSecuritySchemes), Value: name, Message: "scheme must not be nil"}
	}
	m := map[string]spec.SecurityScheme(b.doc.Components.SecuritySchemes)
	if err := insertComponent(b, &m, spec.KindSecuritySchemes, name, scheme); err != nil {
		return err
	}
	b.doc.Components.SecuritySchemes = m
	return nil
}

// Build returns the assembled document. Build never fails: whether the
// document is consistent is decided by the validator. The builder cannot be
// used after Build.
func (b *Builder) Build() *spec.Document {
	b.built = true
	b.logger.Debug("builder: built document",
		"servers", len(b.doc.Servers),
		"channels", len(b.doc.Channels),
		"operations", len(b.doc.Operations),
		"components", b.doc.Components.Len(),
	)
	return b.doc
}

func (b *Builder) checkInsert(kind, name string) error {
	if b.built {
		return &asyncerrors.ConfigError{Option: kind, Value: name, Message: "builder already built its document"}
	}
	if name == "" {
		return &asyncerrors.ConfigError{Option: kind, Message: "name must not be empty"}
	}
	return nil
}

func insert[V any](b *Builder, m *map[string]V, kind, name string, v V) error {
	if err := b.checkInsert(kind, name); err != nil {
		return err
	}
	if *m == nil {
		*m = make(map[string]V)
	}
	if _, exists := (*m)[name]; exists {
		return duplicate(kind, name)
	}
	(*m)[name] = v
	b.logger.Debug("builder: added "+kind, "name", name)
	return nil
}

func insertComponent[V any](b *Builder, m *map[string]V, kind spec.ComponentKind, name string, v V) error {
	return insert(b, m, componentKind(kind), name, v)
}

func componentKind(kind spec.ComponentKind) string {
	return "components." + string(kind)
}

func duplicate(kind, name string) error {
	return &asyncerrors.StructuralError{
		Kind:    kind,
		Name:    name,
		Message: "name is already registered",
	}
}

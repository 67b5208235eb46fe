package spec

import (
	"maps"
	"slices"

	"github.com/goccy/go-json"
)

// Version is the AsyncAPI version emitted for new documents.
const Version = "3.0.0"

// Document is the root of an AsyncAPI document.
//
// A Document is built by a single goroutine (normally through the builder
// package) and treated as an immutable snapshot once handed to the validator;
// concurrent reads of a finished Document are safe.
type Document struct {
	AsyncAPI           string               `json:"asyncapi"`
	ID                 string               `json:"id,omitempty"`
	Info               Info                 `json:"info"`
	DefaultContentType string               `json:"defaultContentType,omitempty"`
	Servers            map[string]Server    `json:"servers,omitempty"`
	Channels           map[string]Channel   `json:"channels,omitempty"`
	Operations         map[string]Operation `json:"operations,omitempty"`
	Components         Components           `json:"-"`
	Tags               []Tag                `json:"tags,omitempty"`
}

// NewDocument returns an empty document for the current AsyncAPI version.
func NewDocument(info Info) *Document {
	return &Document{
		AsyncAPI:   Version,
		Info:       info,
		Servers:    make(map[string]Server),
		Channels:   make(map[string]Channel),
		Operations: make(map[string]Operation),
	}
}

// ServerNames returns the server names in ascending order.
func (d *Document) ServerNames() []string {
	return slices.Sorted(maps.Keys(d.Servers))
}

// ChannelNames returns the channel names in ascending order.
func (d *Document) ChannelNames() []string {
	return slices.Sorted(maps.Keys(d.Channels))
}

// OperationNames returns the operation names in ascending order.
func (d *Document) OperationNames() []string {
	return slices.Sorted(maps.Keys(d.Operations))
}

type documentAlias Document

type documentJSON struct {
	*documentAlias
	Components *Components `json:"components,omitempty"`
}

// MarshalJSON omits "components" when the store is empty.
func (d Document) MarshalJSON() ([]byte, error) {
	out := documentJSON{documentAlias: (*documentAlias)(&d)}
	if !d.Components.IsEmpty() {
		out.Components = &d.Components
	}
	return json.Marshal(out)
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Document) UnmarshalJSON(data []byte) error {
	in := documentJSON{documentAlias: (*documentAlias)(d)}
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	if in.Components != nil {
		d.Components = *in.Components
	}
	return nil
}

// Info carries the document's metadata.
type Info struct {
	Title          string        `json:"title"`
	Version        string        `json:"version"`
	Description    string        `json:"description,omitempty"`
	TermsOfService string        `json:"termsOfService,omitempty"`
	Contact        *Contact      `json:"contact,omitempty"`
	License        *License      `json:"license,omitempty"`
	Tags           []Tag         `json:"tags,omitempty"`
	ExternalDocs   *ExternalDocs `json:"externalDocs,omitempty"`
}

// Contact information for the exposed API.
type Contact struct {
	Name  string `json:"name,omitempty"`
	URL   string `json:"url,omitempty"`
	Email string `json:"email,omitempty"`
}

// License information for the exposed API.
type License struct {
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
}

// Tag adds metadata to a document element.
type Tag struct {
	Name         string        `json:"name"`
	Description  string        `json:"description,omitempty"`
	ExternalDocs *ExternalDocs `json:"externalDocs,omitempty"`
}

// ExternalDocs references external documentation.
type ExternalDocs struct {
	URL         string `json:"url"`
	Description string `json:"description,omitempty"`
}

// Bindings maps a protocol name ("kafka", "mqtt", ...) to its binding object.
type Bindings map[string]any

// Has reports whether b carries a binding for protocol.
func (b Bindings) Has(protocol string) bool {
	_, ok := b[protocol]
	return ok
}

// Protocols returns the binding keys in ascending order.
func (b Bindings) Protocols() []string {
	return slices.Sorted(maps.Keys(b))
}

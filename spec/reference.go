package spec

import (
	"fmt"
	"strings"

	"github.com/erraggy/asynctools/asyncerrors"
	"github.com/goccy/go-json"
)

// ComponentKind names one of the maps under "components".
type ComponentKind string

// Component kinds, named as they appear in the document.
const (
	KindMessages        ComponentKind = "messages"
	KindSchemas         ComponentKind = "schemas"
	KindParameters      ComponentKind = "parameters"
	KindChannelBindings ComponentKind = "channelBindings"
	KindMessageBindings ComponentKind = "messageBindings"
	KindServerBindings  ComponentKind = "serverBindings"
	KindOperationTraits ComponentKind = "operationTraits"
	KindMessageTraits   ComponentKind = "messageTraits"
	KindSecuritySchemes ComponentKind = "securitySchemes"
)

// ComponentKinds returns every kind in document order.
func ComponentKinds() []ComponentKind {
	return []ComponentKind{
		KindSchemas,
		KindMessages,
		KindSecuritySchemes,
		KindParameters,
		KindChannelBindings,
		KindMessageBindings,
		KindServerBindings,
		KindOperationTraits,
		KindMessageTraits,
	}
}

// Valid reports whether k is a known component kind.
func (k ComponentKind) Valid() bool {
	switch k {
	case KindMessages, KindSchemas, KindParameters, KindChannelBindings, KindMessageBindings,
		KindServerBindings, KindOperationTraits, KindMessageTraits, KindSecuritySchemes:
		return true
	}
	return false
}

const (
	componentsPrefix = "#/components/"
	channelsPrefix   = "#/channels/"
	messagesInfix    = "/messages/"
)

// Reference points at a named entry of the component store, or at a message
// declared inline by a channel when Channel is set (Kind is then KindMessages).
// It never owns its target and is resolved only by the validator.
type Reference struct {
	Kind    ComponentKind
	Name    string
	Channel string
}

// Ref returns a Reference to the named component.
func Ref(kind ComponentKind, name string) Reference {
	return Reference{Kind: kind, Name: name}
}

// ChannelMessage returns a Reference to the message name declared by channel.
func ChannelMessage(channel, name string) Reference {
	return Reference{Kind: KindMessages, Name: name, Channel: channel}
}

// IsChannelMessage reports whether r points into a channel's message map.
func (r Reference) IsChannelMessage() bool {
	return r.Channel != ""
}

// IsZero reports whether r points at nothing.
func (r Reference) IsZero() bool {
	return r.Kind == "" && r.Name == ""
}

// String returns the JSON pointer form, e.g. "#/components/messages/Created"
// or "#/channels/orders/messages/Created".
func (r Reference) String() string {
	if r.IsChannelMessage() {
		return channelsPrefix + escapePointer(r.Channel) + messagesInfix + escapePointer(r.Name)
	}
	return componentsPrefix + string(r.Kind) + "/" + escapePointer(r.Name)
}

// MarshalJSON encodes r as a {"$ref": "..."} object.
func (r Reference) MarshalJSON() ([]byte, error) {
	return marshalRef(r.String())
}

// UnmarshalJSON decodes a {"$ref": "..."} object.
func (r *Reference) UnmarshalJSON(data []byte) error {
	s, err := unmarshalRef(data)
	if err != nil {
		return err
	}
	parsed, err := ParseReference(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// ParseReference parses "#/components/<kind>/<name>" or
// "#/channels/<channel>/messages/<name>".
func ParseReference(s string) (Reference, error) {
	if strings.HasPrefix(s, channelsPrefix) {
		channel, name, err := parseChannelMessage(s)
		if err != nil {
			return Reference{}, err
		}
		return ChannelMessage(channel, name), nil
	}
	rest, ok := strings.CutPrefix(s, componentsPrefix)
	if !ok {
		return Reference{}, refError(s, "expected a #/components/ or #/channels/ reference")
	}
	kind, name, ok := strings.Cut(rest, "/")
	if !ok || name == "" {
		return Reference{}, refError(s, "expected #/components/<kind>/<name>")
	}
	k := ComponentKind(kind)
	if !k.Valid() {
		return Reference{}, refError(s, fmt.Sprintf("unknown component kind %q", kind))
	}
	return Reference{Kind: k, Name: unescapePointer(name)}, nil
}

// ChannelRef points at a channel declared in the document's channel map.
type ChannelRef struct {
	Name string
}

// String returns "#/channels/<name>".
func (r ChannelRef) String() string {
	return channelsPrefix + escapePointer(r.Name)
}

// MarshalJSON encodes r as a {"$ref": "..."} object.
func (r ChannelRef) MarshalJSON() ([]byte, error) {
	return marshalRef(r.String())
}

// UnmarshalJSON decodes a {"$ref": "..."} object.
func (r *ChannelRef) UnmarshalJSON(data []byte) error {
	s, err := unmarshalRef(data)
	if err != nil {
		return err
	}
	parsed, err := ParseChannelRef(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// ParseChannelRef parses "#/channels/<name>".
func ParseChannelRef(s string) (ChannelRef, error) {
	name, ok := strings.CutPrefix(s, channelsPrefix)
	if !ok || name == "" || strings.Contains(name, "/") {
		return ChannelRef{}, refError(s, "expected #/channels/<name>")
	}
	return ChannelRef{Name: unescapePointer(name)}, nil
}

// MessageRef points at a message by name inside a channel's message map.
// An empty Channel means the message is named by its component
// ("#/components/messages/<name>") and is looked up in the operation's channel.
type MessageRef struct {
	Channel string
	Name    string
}

// String returns "#/channels/<channel>/messages/<name>", or
// "#/components/messages/<name>" when Channel is empty.
func (r MessageRef) String() string {
	if r.Channel == "" {
		return Ref(KindMessages, r.Name).String()
	}
	return channelsPrefix + escapePointer(r.Channel) + messagesInfix + escapePointer(r.Name)
}

// MarshalJSON encodes r as a {"$ref": "..."} object.
func (r MessageRef) MarshalJSON() ([]byte, error) {
	return marshalRef(r.String())
}

// UnmarshalJSON decodes a {"$ref": "..."} object.
func (r *MessageRef) UnmarshalJSON(data []byte) error {
	s, err := unmarshalRef(data)
	if err != nil {
		return err
	}
	parsed, err := ParseMessageRef(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// ParseMessageRef parses "#/channels/<channel>/messages/<name>" or
// "#/components/messages/<name>".
func ParseMessageRef(s string) (MessageRef, error) {
	if strings.HasPrefix(s, componentsPrefix) {
		ref, err := ParseReference(s)
		if err != nil {
			return MessageRef{}, err
		}
		if ref.Kind != KindMessages {
			return MessageRef{}, refError(s, "operation messages must reference messages")
		}
		return MessageRef{Name: ref.Name}, nil
	}
	channel, name, err := parseChannelMessage(s)
	if err != nil {
		return MessageRef{}, err
	}
	return MessageRef{Channel: channel, Name: name}, nil
}

// parseChannelMessage splits "#/channels/<channel>/messages/<name>".
func parseChannelMessage(s string) (channel, name string, err error) {
	rest, ok := strings.CutPrefix(s, channelsPrefix)
	if !ok {
		return "", "", refError(s, "expected #/channels/<channel>/messages/<name>")
	}
	channel, name, ok = strings.Cut(rest, messagesInfix)
	if !ok || channel == "" || name == "" {
		return "", "", refError(s, "expected #/channels/<channel>/messages/<name>")
	}
	return unescapePointer(channel), unescapePointer(name), nil
}

// OrRef holds either an inline value or a Reference to a component.
// Exactly one of Ref and Value is set; the zero OrRef holds neither.
type OrRef[T any] struct {
	Ref   *Reference
	Value *T
}

// Inline wraps v as an inline value.
func Inline[T any](v T) OrRef[T] {
	return OrRef[T]{Value: &v}
}

// RefTo returns an OrRef pointing at the named component.
func RefTo[T any](kind ComponentKind, name string) OrRef[T] {
	ref := Ref(kind, name)
	return OrRef[T]{Ref: &ref}
}

// IsZero reports whether o holds neither a reference nor a value.
func (o OrRef[T]) IsZero() bool {
	return o.Ref == nil && o.Value == nil
}

// IsRef reports whether o is a reference.
func (o OrRef[T]) IsRef() bool {
	return o.Ref != nil
}

// MarshalJSON encodes the reference as {"$ref": "..."} or the inline value as-is.
func (o OrRef[T]) MarshalJSON() ([]byte, error) {
	if o.Ref != nil {
		return o.Ref.MarshalJSON()
	}
	if o.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// UnmarshalJSON decodes either form.
func (o *OrRef[T]) UnmarshalJSON(data []byte) error {
	if isRefObject(data) {
		var ref Reference
		if err := ref.UnmarshalJSON(data); err != nil {
			return err
		}
		*o = OrRef[T]{Ref: &ref}
		return nil
	}
	if string(data) == "null" {
		*o = OrRef[T]{}
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*o = OrRef[T]{Value: &v}
	return nil
}

type refObject struct {
	Ref *string `json:"$ref"`
}

func marshalRef(s string) ([]byte, error) {
	return json.Marshal(refObject{Ref: &s})
}

func unmarshalRef(data []byte) (string, error) {
	var obj refObject
	if err := json.Unmarshal(data, &obj); err != nil {
		return "", err
	}
	if obj.Ref == nil {
		return "", &asyncerrors.ParseError{Message: "expected an object with a $ref field"}
	}
	return *obj.Ref, nil
}

// isRefObject reports whether data is a JSON object carrying "$ref".
func isRefObject(data []byte) bool {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return false
	}
	_, ok := probe["$ref"]
	return ok
}

func refError(s, msg string) error {
	return &asyncerrors.ParseError{Message: fmt.Sprintf("invalid reference %q: %s", s, msg)}
}

var (
	pointerEscaper   = strings.NewReplacer("~", "~0", "/", "~1")
	pointerUnescaper = strings.NewReplacer("~1", "/", "~0", "~")
)

func escapePointer(s string) string {
	return pointerEscaper.Replace(s)
}

func unescapePointer(s string) string {
	return pointerUnescaper.Replace(s)
}

// Package spec is the in-memory model of an AsyncAPI 3.0 document.
//
// The model uses explicit references instead of embedding: a channel's
// message may be an inline [Message] or a [Reference] into
// [Components].Messages, an operation points at its channel through a
// [ChannelRef] and at its messages through [MessageRef] values. References
// are plain lookup keys; this package never resolves them. Resolution is the
// validator's job.
//
// Statically checkable constraints live at construction time: [ParseAction]
// only accepts "send" and "receive", [ParseReference] only accepts known
// component kinds, and each [SecurityScheme] variant is its own type carrying
// only the fields that variant uses.
//
// Documents encode to AsyncAPI 3.0 JSON with github.com/goccy/go-json.
// References encode as {"$ref": "#/components/<kind>/<name>"} objects,
// security schemes carry their "type" discriminator, and derived message
// schemas encode their resolved value (see [Schema.Resolve]).
package spec

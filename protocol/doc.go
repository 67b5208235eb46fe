// Package protocol provides protocol identifiers, default ports and typed
// binding constructors for AsyncAPI servers, channels and messages.
//
// Import path: github.com/erraggy/asynctools/protocol
//
// # Identifiers
//
// [Kafka], [MQTT] and [NATS] have first-class binding support. The other
// identifiers are accepted as known protocols by the validator, which warns
// about a server whose protocol is not listed by [Known].
//
// # Bindings
//
// Binding types marshal into the spec.Bindings shape keyed by protocol:
//
//	bindings, err := protocol.KafkaChannelBinding{
//	    Topic:      "orders",
//	    Partitions: 6,
//	}.Bindings()
//	if err != nil {
//	    return err
//	}
//	inline := spec.Inline(bindings)
//	channel.Bindings = &inline
package protocol

package protocol

import (
	"fmt"

	"github.com/erraggy/asynctools/spec"
	"github.com/goccy/go-json"
)

// Binding versions emitted by the constructors in this package.
const (
	KafkaBindingVersion = "0.5.0"
	MQTTBindingVersion  = "0.2.0"
	NATSBindingVersion  = "0.1.0"
)

// QoS is an MQTT quality-of-service level.
type QoS int

// MQTT quality-of-service levels.
const (
	AtMostOnce  QoS = 0
	AtLeastOnce QoS = 1
	ExactlyOnce QoS = 2
)

// Valid reports whether q is 0, 1 or 2.
func (q QoS) Valid() bool {
	return q >= AtMostOnce && q <= ExactlyOnce
}

// ParseQoS converts an integer level into a QoS.
func ParseQoS(level int) (QoS, error) {
	q := QoS(level)
	if !q.Valid() {
		return 0, fmt.Errorf("protocol: invalid MQTT QoS %d: must be 0, 1 or 2", level)
	}
	return q, nil
}

// KafkaChannelBinding describes the Kafka topic behind a channel.
type KafkaChannelBinding struct {
	Topic              string         `json:"topic,omitempty"`
	Partitions         int            `json:"partitions,omitempty"`
	Replicas           int            `json:"replicas,omitempty"`
	TopicConfiguration map[string]any `json:"topicConfiguration,omitempty"`
	BindingVersion     string         `json:"bindingVersion,omitempty"`
}

// Bindings returns b keyed by "kafka".
func (b KafkaChannelBinding) Bindings() (spec.Bindings, error) {
	if b.Partitions < 0 || b.Replicas < 0 {
		return nil, fmt.Errorf("protocol: kafka partitions and replicas must not be negative")
	}
	b.BindingVersion = versionOr(b.BindingVersion, KafkaBindingVersion)
	return keyed(Kafka, b)
}

// KafkaMessageBinding describes how a message is keyed and encoded in Kafka.
type KafkaMessageBinding struct {
	Key                     any    `json:"key,omitempty"`
	SchemaIDLocation        string `json:"schemaIdLocation,omitempty"`
	SchemaIDPayloadEncoding string `json:"schemaIdPayloadEncoding,omitempty"`
	SchemaLookupStrategy    string `json:"schemaLookupStrategy,omitempty"`
	BindingVersion          string `json:"bindingVersion,omitempty"`
}

// Bindings returns b keyed by "kafka".
func (b KafkaMessageBinding) Bindings() (spec.Bindings, error) {
	b.BindingVersion = versionOr(b.BindingVersion, KafkaBindingVersion)
	return keyed(Kafka, b)
}

// MQTTChannelBinding describes the MQTT topic behind a channel.
type MQTTChannelBinding struct {
	Topic          string `json:"topic,omitempty"`
	QoS            *QoS   `json:"qos,omitempty"`
	Retain         *bool  `json:"retain,omitempty"`
	BindingVersion string `json:"bindingVersion,omitempty"`
}

// Bindings returns b keyed by "mqtt".
func (b MQTTChannelBinding) Bindings() (spec.Bindings, error) {
	if b.QoS != nil && !b.QoS.Valid() {
		return nil, fmt.Errorf("protocol: invalid MQTT QoS %d", *b.QoS)
	}
	b.BindingVersion = versionOr(b.BindingVersion, MQTTBindingVersion)
	return keyed(MQTT, b)
}

// MQTTMessageBinding describes MQTT delivery of a message.
type MQTTMessageBinding struct {
	QoS            *QoS   `json:"qos,omitempty"`
	Retain         *bool  `json:"retain,omitempty"`
	ContentType    string `json:"contentType,omitempty"`
	MessageExpiry  int    `json:"messageExpiryInterval,omitempty"`
	ResponseTopic  string `json:"responseTopic,omitempty"`
	BindingVersion string `json:"bindingVersion,omitempty"`
}

// Bindings returns b keyed by "mqtt".
func (b MQTTMessageBinding) Bindings() (spec.Bindings, error) {
	if b.QoS != nil && !b.QoS.Valid() {
		return nil, fmt.Errorf("protocol: invalid MQTT QoS %d", *b.QoS)
	}
	b.BindingVersion = versionOr(b.BindingVersion, MQTTBindingVersion)
	return keyed(MQTT, b)
}

// NATSChannelBinding describes the NATS subject behind a channel.
type NATSChannelBinding struct {
	Queue          string `json:"queue,omitempty"`
	BindingVersion string `json:"bindingVersion,omitempty"`
}

// Bindings returns b keyed by "nats".
func (b NATSChannelBinding) Bindings() (spec.Bindings, error) {
	b.BindingVersion = versionOr(b.BindingVersion, NATSBindingVersion)
	return keyed(NATS, b)
}

// NATSMessageBinding describes NATS headers sent with a message.
type NATSMessageBinding struct {
	Headers        map[string]string `json:"headers,omitempty"`
	BindingVersion string            `json:"bindingVersion,omitempty"`
}

// Bindings returns b keyed by "nats".
func (b NATSMessageBinding) Bindings() (spec.Bindings, error) {
	b.BindingVersion = versionOr(b.BindingVersion, NATSBindingVersion)
	return keyed(NATS, b)
}

// Merge combines binding sets for several protocols. A protocol present in
// more than one set is an error.
func Merge(sets ...spec.Bindings) (spec.Bindings, error) {
	out := make(spec.Bindings)
	for _, set := range sets {
		for key, value := range set {
			if _, dup := out[key]; dup {
				return nil, fmt.Errorf("protocol: duplicate %q binding", key)
			}
			out[key] = value
		}
	}
	return out, nil
}

func versionOr(v, def string) string {
	if v != "" {
		return v
	}
	return def
}

// keyed converts v into the plain JSON value tree stored in spec.Bindings so
// typed and decoded bindings compare equal.
func keyed(key string, v any) (spec.Bindings, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("protocol: encoding %s binding: %w", key, err)
	}
	var tree map[string]any
	if err := json.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("protocol: encoding %s binding: %w", key, err)
	}
	return spec.Bindings{key: tree}, nil
}

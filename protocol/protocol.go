package protocol

import (
	"maps"
	"slices"
	"strings"
)

// Protocol identifiers as used in a server's "protocol" field.
const (
	Kafka        = "kafka"
	KafkaSecure  = "kafka-secure"
	MQTT         = "mqtt"
	SecureMQTT   = "secure-mqtt"
	NATS         = "nats"
	AMQP         = "amqp"
	AMQPS        = "amqps"
	HTTP         = "http"
	HTTPS        = "https"
	WS           = "ws"
	WSS          = "wss"
	JMS          = "jms"
	SNS          = "sns"
	SQS          = "sqs"
	STOMP        = "stomp"
	STOMPS       = "stomps"
	Redis        = "redis"
	Pulsar       = "pulsar"
	Solace       = "solace"
	IBMMQ        = "ibmmq"
	GooglePubSub = "googlepubsub"
	AnypointMQ   = "anypointmq"
	Mercure      = "mercure"
)

// Info describes a known protocol.
type Info struct {
	// ID is the protocol identifier, e.g. "kafka"
	ID string
	// Name is the human-readable protocol name
	Name string
	// BindingKey is the key the protocol's bindings are stored under
	BindingKey string
	// DefaultPort is the conventional port, or 0 when there is none
	DefaultPort int
	// RequiresBinding is true for protocols whose channels and messages are
	// expected to carry a binding for the protocol
	RequiresBinding bool
}

var known = map[string]Info{
	Kafka:        {ID: Kafka, Name: "Apache Kafka", BindingKey: Kafka, DefaultPort: 9092, RequiresBinding: true},
	KafkaSecure:  {ID: KafkaSecure, Name: "Apache Kafka (TLS)", BindingKey: Kafka, DefaultPort: 9093, RequiresBinding: true},
	MQTT:         {ID: MQTT, Name: "MQTT", BindingKey: MQTT, DefaultPort: 1883, RequiresBinding: true},
	SecureMQTT:   {ID: SecureMQTT, Name: "MQTT (TLS)", BindingKey: MQTT, DefaultPort: 8883, RequiresBinding: true},
	NATS:         {ID: NATS, Name: "NATS", BindingKey: NATS, DefaultPort: 4222, RequiresBinding: true},
	AMQP:         {ID: AMQP, Name: "AMQP", BindingKey: AMQP, DefaultPort: 5672},
	AMQPS:        {ID: AMQPS, Name: "AMQP (TLS)", BindingKey: AMQP, DefaultPort: 5671},
	HTTP:         {ID: HTTP, Name: "HTTP", BindingKey: HTTP, DefaultPort: 80},
	HTTPS:        {ID: HTTPS, Name: "HTTPS", BindingKey: HTTP, DefaultPort: 443},
	WS:           {ID: WS, Name: "WebSockets", BindingKey: WS, DefaultPort: 80},
	WSS:          {ID: WSS, Name: "WebSockets (TLS)", BindingKey: WS, DefaultPort: 443},
	JMS:          {ID: JMS, Name: "JMS", BindingKey: JMS},
	SNS:          {ID: SNS, Name: "Amazon SNS", BindingKey: SNS},
	SQS:          {ID: SQS, Name: "Amazon SQS", BindingKey: SQS},
	STOMP:        {ID: STOMP, Name: "STOMP", BindingKey: STOMP, DefaultPort: 61613},
	STOMPS:       {ID: STOMPS, Name: "STOMP (TLS)", BindingKey: STOMP, DefaultPort: 61614},
	Redis:        {ID: Redis, Name: "Redis", BindingKey: Redis, DefaultPort: 6379},
	Pulsar:       {ID: Pulsar, Name: "Apache Pulsar", BindingKey: Pulsar, DefaultPort: 6650},
	Solace:       {ID: Solace, Name: "Solace", BindingKey: Solace, DefaultPort: 55555},
	IBMMQ:        {ID: IBMMQ, Name: "IBM MQ", BindingKey: IBMMQ, DefaultPort: 1414},
	GooglePubSub: {ID: GooglePubSub, Name: "Google Cloud Pub/Sub", BindingKey: GooglePubSub},
	AnypointMQ:   {ID: AnypointMQ, Name: "Anypoint MQ", BindingKey: AnypointMQ},
	Mercure:      {ID: Mercure, Name: "Mercure", BindingKey: Mercure},
}

// Lookup returns the Info for id. Identifiers are matched case-insensitively.
func Lookup(id string) (Info, bool) {
	info, ok := known[strings.ToLower(id)]
	return info, ok
}

// Known reports whether id is a known protocol identifier.
func Known(id string) bool {
	_, ok := Lookup(id)
	return ok
}

// All returns every known protocol identifier in ascending order.
func All() []string {
	return slices.Sorted(maps.Keys(known))
}

// DefaultPort returns the conventional port of id, or 0 when id is unknown
// or has no conventional port.
func DefaultPort(id string) int {
	info, _ := Lookup(id)
	return info.DefaultPort
}

// BindingKey returns the bindings key for id. TLS variants share the key of
// their plain protocol ("kafka-secure" uses "kafka"). Unknown identifiers are
// returned lower-cased.
func BindingKey(id string) string {
	if info, ok := Lookup(id); ok {
		return info.BindingKey
	}
	return strings.ToLower(id)
}

// RequiresBinding reports whether channels and messages served over id are
// expected to carry a binding for it.
func RequiresBinding(id string) bool {
	info, _ := Lookup(id)
	return info.RequiresBinding
}

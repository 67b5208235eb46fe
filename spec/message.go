package spec

// Message describes a message carried over a channel. A Message is either
// inlined in a channel or registered once in components.messages and
// referenced from many channels.
type Message struct {
	MessageID     string           `json:"messageId,omitempty"`
	Name          string           `json:"name,omitempty"`
	Title         string           `json:"title,omitempty"`
	Summary       string           `json:"summary,omitempty"`
	Description   string           `json:"description,omitempty"`
	ContentType   string           `json:"contentType,omitempty"`
	Headers       *Schema          `json:"headers,omitempty"`
	Payload       *Schema          `json:"payload,omitempty"`
	CorrelationID *CorrelationID   `json:"correlationId,omitempty"`
	Tags          []Tag            `json:"tags,omitempty"`
	ExternalDocs  *ExternalDocs    `json:"externalDocs,omitempty"`
	Bindings      *OrRef[Bindings] `json:"bindings,omitempty"`
	Examples      []MessageExample `json:"examples,omitempty"`
	Traits        []Reference      `json:"traits,omitempty"`
}

// CorrelationID identifies the message field used to correlate requests
// and replies, as a runtime expression such as "$message.header#/correlationId".
type CorrelationID struct {
	Description string `json:"description,omitempty"`
	Location    string `json:"location"`
}

// MessageExample is an example of a message's headers and payload.
type MessageExample struct {
	Name    string         `json:"name,omitempty"`
	Summary string         `json:"summary,omitempty"`
	Headers map[string]any `json:"headers,omitempty"`
	Payload any            `json:"payload,omitempty"`
}

// MessageTrait holds message fields that can be applied to many messages.
type MessageTrait struct {
	MessageID     string         `json:"messageId,omitempty"`
	Name          string         `json:"name,omitempty"`
	Title         string         `json:"title,omitempty"`
	Summary       string         `json:"summary,omitempty"`
	Description   string         `json:"description,omitempty"`
	ContentType   string         `json:"contentType,omitempty"`
	Headers       *Schema        `json:"headers,omitempty"`
	CorrelationID *CorrelationID `json:"correlationId,omitempty"`
	Tags          []Tag          `json:"tags,omitempty"`
	ExternalDocs  *ExternalDocs  `json:"externalDocs,omitempty"`
	Bindings      Bindings       `json:"bindings,omitempty"`
}

// OperationTrait holds operation fields that can be applied to many operations.
type OperationTrait struct {
	Title        string        `json:"title,omitempty"`
	Summary      string        `json:"summary,omitempty"`
	Description  string        `json:"description,omitempty"`
	Tags         []Tag         `json:"tags,omitempty"`
	ExternalDocs *ExternalDocs `json:"externalDocs,omitempty"`
	Bindings     Bindings      `json:"bindings,omitempty"`
}

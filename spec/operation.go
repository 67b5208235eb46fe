package spec

import (
	"fmt"

	"github.com/erraggy/asynctools/asyncerrors"
)

// Action is the direction of an operation.
type Action string

const (
	// ActionSend means the application sends messages to the channel.
	ActionSend Action = "send"
	// ActionReceive means the application receives messages from the channel.
	ActionReceive Action = "receive"
)

// ParseAction returns the Action named by s, which must be "send" or "receive".
func ParseAction(s string) (Action, error) {
	a := Action(s)
	if !a.Valid() {
		return "", &asyncerrors.ConfigError{
			Option:  "action",
			Value:   s,
			Message: fmt.Sprintf("must be %q or %q", ActionSend, ActionReceive),
		}
	}
	return a, nil
}

// Valid reports whether a is send or receive.
func (a Action) Valid() bool {
	return a == ActionSend || a == ActionReceive
}

// Operation describes what an application does with a channel.
//
// ID is the document-wide operation id. When empty it defaults to the
// operation's key in Document.Operations; see EffectiveID.
type Operation struct {
	ID           string        `json:"x-operationId,omitempty"`
	Action       Action        `json:"action"`
	Channel      ChannelRef    `json:"channel"`
	Messages     []MessageRef  `json:"messages,omitempty"`
	Title        string        `json:"title,omitempty"`
	Summary      string        `json:"summary,omitempty"`
	Description  string        `json:"description,omitempty"`
	Tags         []Tag         `json:"tags,omitempty"`
	ExternalDocs *ExternalDocs `json:"externalDocs,omitempty"`
	Traits       []Reference   `json:"traits,omitempty"`
	Bindings     Bindings      `json:"bindings,omitempty"`
}

// EffectiveID returns op.ID, or key when ID is empty.
func (op Operation) EffectiveID(key string) string {
	if op.ID != "" {
		return op.ID
	}
	return key
}

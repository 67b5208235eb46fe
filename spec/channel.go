package spec

import (
	"maps"
	"slices"
)

// Channel is an addressable component through which messages flow.
// Messages maps a message name to an inline Message or a reference to
// components.messages.
type Channel struct {
	Address      string                      `json:"address"`
	Title        string                      `json:"title,omitempty"`
	Summary      string                      `json:"summary,omitempty"`
	Description  string                      `json:"description,omitempty"`
	Messages     map[string]OrRef[Message]   `json:"messages,omitempty"`
	Servers      []string                    `json:"servers,omitempty"`
	Parameters   map[string]OrRef[Parameter] `json:"parameters,omitempty"`
	Tags         []Tag                       `json:"tags,omitempty"`
	ExternalDocs *ExternalDocs               `json:"externalDocs,omitempty"`
	Bindings     *OrRef[Bindings]            `json:"bindings,omitempty"`
}

// MessageNames returns the channel's message names in ascending order.
func (c Channel) MessageNames() []string {
	return slices.Sorted(maps.Keys(c.Messages))
}

// HasMessage reports whether the channel declares a message named name.
func (c Channel) HasMessage(name string) bool {
	_, ok := c.Messages[name]
	return ok
}

// Parameter describes a {placeholder} in a channel address.
type Parameter struct {
	Enum        []string `json:"enum,omitempty"`
	Default     string   `json:"default,omitempty"`
	Description string   `json:"description,omitempty"`
	Examples    []string `json:"examples,omitempty"`
	Location    string   `json:"location,omitempty"`
}

package spec

import "github.com/erraggy/asynctools/internal/template"

// Server describes a message broker or other host the API is served from.
// Host and Pathname may contain {variable} placeholders defined in Variables.
type Server struct {
	Host            string                    `json:"host"`
	Protocol        string                    `json:"protocol"`
	ProtocolVersion string                    `json:"protocolVersion,omitempty"`
	Pathname        string                    `json:"pathname,omitempty"`
	Title           string                    `json:"title,omitempty"`
	Summary         string                    `json:"summary,omitempty"`
	Description     string                    `json:"description,omitempty"`
	Variables       map[string]ServerVariable `json:"variables,omitempty"`
	Security        []Reference               `json:"security,omitempty"`
	Tags            []Tag                     `json:"tags,omitempty"`
	ExternalDocs    *ExternalDocs             `json:"externalDocs,omitempty"`
	Bindings        *OrRef[Bindings]          `json:"bindings,omitempty"`
}

// Template returns the templated part of the server's URL (host and pathname).
func (s Server) Template() string {
	return s.Host + s.Pathname
}

// URL returns the server's URL template, e.g. "kafka://{host}:{port}".
func (s Server) URL() string {
	if s.Protocol == "" {
		return s.Template()
	}
	return s.Protocol + "://" + s.Template()
}

// ServerVariable substitutes a placeholder in a server's host or pathname.
type ServerVariable struct {
	Enum        []string `json:"enum,omitempty"`
	Default     string   `json:"default,omitempty"`
	Description string   `json:"description,omitempty"`
	Examples    []string `json:"examples,omitempty"`
}

// ResolvedURL returns URL with each variable placeholder replaced by the
// variable's default, or its first enum value when it has no default.
// Placeholders without a value are left as they are.
func (s Server) ResolvedURL() string {
	values := make(map[string]string, len(s.Variables))
	for name, v := range s.Variables {
		switch {
		case v.Default != "":
			values[name] = v.Default
		case len(v.Enum) > 0:
			values[name] = v.Enum[0]
		}
	}
	return template.Expand(s.URL(), values)
}

// HasValue reports whether the variable defines a default or an enum.
func (v ServerVariable) HasValue() bool {
	return v.Default != "" || len(v.Enum) > 0
}

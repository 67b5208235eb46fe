package validator

import (
	"fmt"
	"slices"

	"github.com/erraggy/asynctools/asyncerrors"
	"github.com/erraggy/asynctools/internal/issues"
	"github.com/erraggy/asynctools/internal/template"
	"github.com/erraggy/asynctools/protocol"
	"github.com/erraggy/asynctools/spec"
)

// validateDocument checks document-level metadata. All findings are warnings.
func (p *pass) validateDocument() {
	if p.doc.Info.Title == "" {
		p.addWarning(documentOwner, "info.title", "info should have a title", withField("title"))
	}
	if p.doc.Info.Version == "" {
		p.addWarning(documentOwner, "info.version", "info should have a version", withField("version"))
	}
	if len(p.doc.Channels) == 0 {
		p.addWarning(documentOwner, "channels", "document declares no channels")
	}
}

// validateServers checks server URL templates and security references.
func (p *pass) validateServers() {
	for _, name := range p.doc.ServerNames() {
		server := p.doc.Servers[name]
		o := serverOwner(name)
		base := issues.FormatPath("servers", name)

		p.validateServerProtocol(o, base, server)
		p.validateServerVariables(o, base, server)

		for i, ref := range server.Security {
			p.checkReference(o, issues.IndexPath(base, "security", i), spec.KindSecuritySchemes, ref)
		}
	}
}

func (p *pass) validateServerProtocol(o owner, base string, server spec.Server) {
	if server.Host == "" {
		p.addWarning(o, base+".host", "server should have a host", withField("host"))
	}
	switch {
	case server.Protocol == "":
		p.addWarning(o, base+".protocol", "server should declare a protocol", withField("protocol"))
	case !protocol.Known(server.Protocol):
		p.addWarning(o, base+".protocol",
			fmt.Sprintf("unknown protocol %q", server.Protocol),
			withField("protocol"),
			withValue(server.Protocol),
		)
	}
}

// validateServerVariables checks that every placeholder in the server's
// host and pathname has a usable variable, and that every variable is used.
func (p *pass) validateServerVariables(o owner, base string, server spec.Server) {
	used := template.Set(server.Template())

	for _, field := range []struct{ name, value string }{{"host", server.Host}, {"pathname", server.Pathname}} {
		for _, placeholder := range template.Placeholders(field.value) {
			variable, ok := server.Variables[placeholder]
			if !ok {
				p.addError(o, base+"."+field.name, &asyncerrors.ReferenceError{
					ExpectedKind: "variables",
					Name:         placeholder,
					Site:         base + "." + field.name,
					Message:      "placeholder has no variable definition",
				}, withField(field.name), withValue(placeholder))
				continue
			}
			if !variable.HasValue() {
				path := issues.FormatPath(base, "variables", placeholder)
				p.addError(o, path, &asyncerrors.ValidationError{
					Path:    path,
					Message: "variable must define a default or an enum",
				})
			}
		}
	}

	for _, name := range sortedKeys(server.Variables) {
		variable := server.Variables[name]
		path := issues.FormatPath(base, "variables", name)
		if _, ok := used[name]; !ok {
			p.addWarning(o, path,
				fmt.Sprintf("variable %q is not used in the server URL %q", name, server.URL()),
				withValue(name),
			)
		}
		if variable.Default != "" && len(variable.Enum) > 0 && !slices.Contains(variable.Enum, variable.Default) {
			p.addWarning(o, path+".default",
				fmt.Sprintf("default %q is not one of the enum values", variable.Default),
				withField("default"),
				withValue(variable.Default),
			)
		}
	}
}

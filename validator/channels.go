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

// validateChannels checks channel addresses, message resolvability and
// channel server references.
func (p *pass) validateChannels() {
	for _, name := range p.doc.ChannelNames() {
		channel := p.doc.Channels[name]
		o := channelOwner(name)
		base := issues.FormatPath("channels", name)

		if channel.Address == "" {
			p.addError(o, base+".address", &asyncerrors.ValidationError{
				Path:    base,
				Field:   "address",
				Message: "channel address must not be empty",
			}, withField("address"))
		}

		if len(channel.Messages) == 0 {
			p.addWarning(o, base+".messages", "channel declares no messages", withField("messages"))
		}
		for _, msgName := range channel.MessageNames() {
			p.validateChannelMessage(o, issues.FormatPath(base, "messages", msgName), channel.Messages[msgName])
		}

		for i, serverName := range channel.Servers {
			if _, ok := p.doc.Servers[serverName]; !ok {
				site := issues.IndexPath(base, "servers", i)
				p.addError(o, site, &asyncerrors.ReferenceError{
					ExpectedKind: "servers",
					Name:         serverName,
					Site:         site,
				}, withValue(serverName))
			}
		}

		p.validateChannelParameters(o, base, channel)
		p.validateChannelBindingKeys(o, base, channel)
	}
}

// validateChannelMessage checks that a channel message is inline or names a
// component message.
func (p *pass) validateChannelMessage(o owner, path string, msg spec.OrRef[spec.Message]) {
	switch {
	case msg.IsRef():
		p.checkReference(o, path, spec.KindMessages, *msg.Ref)
	case msg.Value == nil:
		p.addError(o, path, &asyncerrors.ValidationError{
			Path:    path,
			Message: "message must be an inline message or a reference",
		})
	}
}

// validateChannelParameters compares address placeholders with declared
// parameters. Mismatches are warnings.
func (p *pass) validateChannelParameters(o owner, base string, channel spec.Channel) {
	placeholders := template.Placeholders(channel.Address)
	for _, placeholder := range placeholders {
		if _, ok := channel.Parameters[placeholder]; !ok {
			p.addWarning(o, base+".address",
				fmt.Sprintf("address placeholder {%s} has no parameter", placeholder),
				withField("address"),
				withValue(placeholder),
			)
		}
	}
	for _, name := range sortedKeys(channel.Parameters) {
		if !slices.Contains(placeholders, name) {
			p.addWarning(o, issues.FormatPath(base, "parameters", name),
				fmt.Sprintf("parameter %q does not appear in the channel address", name),
				withValue(name),
			)
		}
	}
}

// validateChannelBindingKeys warns when inline bindings of a channel, or of
// its inline messages, lack a binding for the protocol of a server the
// channel is available on.
func (p *pass) validateChannelBindingKeys(o owner, base string, channel spec.Channel) {
	keys := p.requiredBindingKeys(channel)
	if len(keys) == 0 {
		return
	}
	if channel.Bindings != nil && channel.Bindings.Value != nil {
		p.warnMissingBindingKeys(o, base+".bindings", *channel.Bindings.Value, keys)
	}
	for _, msgName := range channel.MessageNames() {
		msg := channel.Messages[msgName]
		if msg.Value == nil || msg.Value.Bindings == nil || msg.Value.Bindings.Value == nil {
			continue
		}
		p.warnMissingBindingKeys(o, issues.FormatPath(base, "messages", msgName, "bindings"), *msg.Value.Bindings.Value, keys)
	}
}

// requiredBindingKeys returns, in order, the binding keys of protocols that
// expect bindings among the channel's servers (all servers when the channel
// lists none).
func (p *pass) requiredBindingKeys(channel spec.Channel) []string {
	servers := channel.Servers
	if len(servers) == 0 {
		servers = p.doc.ServerNames()
	}
	var keys []string
	for _, name := range servers {
		server, ok := p.doc.Servers[name]
		if !ok || !protocol.RequiresBinding(server.Protocol) {
			continue
		}
		if key := protocol.BindingKey(server.Protocol); !slices.Contains(keys, key) {
			keys = append(keys, key)
		}
	}
	slices.Sort(keys)
	return keys
}

func (p *pass) warnMissingBindingKeys(o owner, path string, bindings spec.Bindings, keys []string) {
	for _, key := range keys {
		if !bindings.Has(key) {
			p.addWarning(o, path,
				fmt.Sprintf("bindings have no %q entry for the channel's %s servers", key, key),
				withValue(key),
			)
		}
	}
}

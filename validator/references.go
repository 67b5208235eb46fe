package validator

import (
	"fmt"

	"github.com/erraggy/asynctools/asyncerrors"
	"github.com/erraggy/asynctools/internal/issues"
	"github.com/erraggy/asynctools/spec"
)

// validateReferences checks that every component reference not covered by
// an earlier step resolves to an entry of the kind its site expects.
func (p *pass) validateReferences() {
	for _, name := range p.doc.ServerNames() {
		server := p.doc.Servers[name]
		p.checkBindingsRef(serverOwner(name), issues.FormatPath("servers", name, "bindings"),
			spec.KindServerBindings, server.Bindings)
	}

	for _, name := range p.doc.ChannelNames() {
		channel := p.doc.Channels[name]
		o := channelOwner(name)
		base := issues.FormatPath("channels", name)
		p.checkBindingsRef(o, base+".bindings", spec.KindChannelBindings, channel.Bindings)
		for _, param := range sortedKeys(channel.Parameters) {
			if ref := channel.Parameters[param].Ref; ref != nil {
				p.checkReference(o, issues.FormatPath(base, "parameters", param), spec.KindParameters, *ref)
			}
		}
	}

	p.eachMessage(func(o owner, path string, msg *spec.Message) {
		p.checkBindingsRef(o, path+".bindings", spec.KindMessageBindings, msg.Bindings)
		p.checkSchemaRef(o, path+".payload", msg.Payload)
		p.checkSchemaRef(o, path+".headers", msg.Headers)
		for i, ref := range msg.Traits {
			p.checkReference(o, issues.IndexPath(path, "traits", i), spec.KindMessageTraits, ref)
		}
	})

	for _, name := range p.doc.Components.Names(spec.KindMessageTraits) {
		trait := p.doc.Components.MessageTraits[name]
		p.checkSchemaRef(componentOwner(spec.KindMessageTraits, name),
			issues.FormatPath("components", "messageTraits", name, "headers"), trait.Headers)
	}

	for _, key := range p.doc.OperationNames() {
		op := p.doc.Operations[key]
		base := issues.FormatPath("operations", key)
		for i, ref := range op.Traits {
			p.checkReference(operationOwner(key), issues.IndexPath(base, "traits", i), spec.KindOperationTraits, ref)
		}
	}
}

func (p *pass) checkBindingsRef(o owner, site string, expected spec.ComponentKind, b *spec.OrRef[spec.Bindings]) {
	if b == nil || b.Ref == nil {
		return
	}
	p.checkReference(o, site, expected, *b.Ref)
}

func (p *pass) checkSchemaRef(o owner, site string, s *spec.Schema) {
	if s == nil {
		return
	}
	if ref, ok := s.Reference(); ok {
		p.checkReference(o, site, spec.KindSchemas, ref)
	}
}

// checkReference reports ref unless it names an existing entry of kind
// expected. A reference to an existing entry of another kind is a kind
// mismatch, which lint mode downgrades to a warning; a reference to a
// missing entry is always fatal.
func (p *pass) checkReference(o owner, site string, expected spec.ComponentKind, ref spec.Reference) {
	if ref.IsChannelMessage() {
		p.checkChannelMessageRef(o, site, expected, ref)
		return
	}
	c := &p.doc.Components
	if ref.Kind == expected && c.Has(expected, ref.Name) {
		return
	}

	err := &asyncerrors.ReferenceError{
		ExpectedKind: string(expected),
		Name:         ref.Name,
		Site:         site,
	}
	switch {
	case ref.Kind != expected && c.Has(ref.Kind, ref.Name):
		err.ActualKind = string(ref.Kind)
	case ref.Kind != expected:
		err.Message = fmt.Sprintf("reference points into %s", ref.Kind)
	default:
		if kinds := c.KindsOf(ref.Name); len(kinds) > 0 {
			err.Message = fmt.Sprintf("no such entry; the name exists under %s", kinds[0])
		}
	}

	p.reportReference(o, err, ref)
}

// checkChannelMessageRef resolves a "#/channels/<c>/messages/<m>" reference
// against the channel's own message map.
func (p *pass) checkChannelMessageRef(o owner, site string, expected spec.ComponentKind, ref spec.Reference) {
	channel, ok := p.doc.Channels[ref.Channel]
	exists := ok && channel.HasMessage(ref.Name)
	if exists && expected == spec.KindMessages {
		return
	}

	err := &asyncerrors.ReferenceError{
		ExpectedKind: string(expected),
		Name:         ref.Name,
		Site:         site,
	}
	switch {
	case exists:
		err.ActualKind = "channels." + ref.Channel + ".messages"
	case !ok:
		err.Message = fmt.Sprintf("channel %q is not declared", ref.Channel)
	default:
		err.Message = fmt.Sprintf("channel %q declares no such message", ref.Channel)
	}
	p.reportReference(o, err, ref)
}

func (p *pass) reportReference(o owner, err *asyncerrors.ReferenceError, ref spec.Reference) {
	if err.IsKindMismatch() && p.v.KindMismatchAsWarning {
		p.addWarning(o, err.Site, err.Error(), withErr(err), withValue(ref.String()))
		return
	}
	p.addError(o, err.Site, err, withValue(ref.String()))
}

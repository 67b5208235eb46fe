package validator

import (
	"errors"
	"fmt"

	"github.com/erraggy/asynctools/asyncerrors"
	"github.com/erraggy/asynctools/internal/issues"
	"github.com/erraggy/asynctools/spec"
)

// eachMessage calls fn for every message in the document: inline channel
// messages first, then component messages, each in ascending name order.
func (p *pass) eachMessage(fn func(o owner, path string, msg *spec.Message)) {
	for _, channelName := range p.doc.ChannelNames() {
		channel := p.doc.Channels[channelName]
		for _, msgName := range channel.MessageNames() {
			msg := channel.Messages[msgName]
			if msg.Value == nil {
				continue
			}
			fn(channelOwner(channelName), issues.FormatPath("channels", channelName, "messages", msgName), msg.Value)
		}
	}
	for _, name := range p.doc.Components.Names(spec.KindMessages) {
		msg := p.doc.Components.Messages[name]
		fn(componentOwner(spec.KindMessages, name), issues.FormatPath("components", "messages", name), &msg)
	}
}

// validateMessages derives message schemas through the cache and reports
// message-level warnings.
func (p *pass) validateMessages() {
	messageIDs := make(map[string]string)

	p.eachMessage(func(o owner, path string, msg *spec.Message) {
		if msg.Payload == nil {
			p.addWarning(o, path+".payload", "message has no payload", withField("payload"))
		}
		p.resolveSchema(o, path+".payload", msg.Payload)
		p.resolveSchema(o, path+".headers", msg.Headers)

		if msg.MessageID == "" {
			return
		}
		if first, dup := messageIDs[msg.MessageID]; dup {
			p.addWarning(o, path+".messageId",
				fmt.Sprintf("messageId %q is also used by %s", msg.MessageID, first),
				withField("messageId"),
				withValue(msg.MessageID),
			)
			return
		}
		messageIDs[msg.MessageID] = path
	})

	for _, name := range p.doc.Components.Names(spec.KindMessageTraits) {
		trait := p.doc.Components.MessageTraits[name]
		p.resolveSchema(componentOwner(spec.KindMessageTraits, name),
			issues.FormatPath("components", "messageTraits", name, "headers"), trait.Headers)
	}
}

// resolveSchema computes a derived schema through the cache. Inline and
// referenced schemas need no derivation.
func (p *pass) resolveSchema(o owner, site string, s *spec.Schema) {
	if s == nil || !s.IsDerived() {
		return
	}
	if _, err := s.Resolve(p.v.cache); err != nil {
		id, _ := s.Identifier()
		derr := &asyncerrors.SchemaDerivationError{TypeName: id.DisplayName(), Cause: err}
		var cached *asyncerrors.SchemaDerivationError
		if errors.As(err, &cached) {
			copied := *cached
			derr = &copied
		}
		derr.Site = site
		p.addError(o, site, derr, withValue(id.DisplayName()))
	}
}

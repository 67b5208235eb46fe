package validator

import (
	"fmt"

	"github.com/erraggy/asynctools/asyncerrors"
	"github.com/erraggy/asynctools/internal/issues"
	"github.com/erraggy/asynctools/spec"
)

// validateOperations checks each operation against its channel, and
// operation id uniqueness across the document.
func (p *pass) validateOperations() {
	seen := make(map[string]string, len(p.doc.Operations))

	for _, key := range p.doc.OperationNames() {
		op := p.doc.Operations[key]
		id := op.EffectiveID(key)
		o := operationOwner(key)
		base := issues.FormatPath("operations", key)

		if first, dup := seen[id]; dup {
			p.addError(o, base, &asyncerrors.IntegrityError{
				OperationID: id,
				Message:     fmt.Sprintf("duplicate operation id, first used by operations.%s", first),
			}, withValue(id))
		} else {
			seen[id] = key
		}

		if !op.Action.Valid() {
			p.addError(o, base+".action", &asyncerrors.IntegrityError{
				OperationID: id,
				Message:     fmt.Sprintf("action %q must be %q or %q", op.Action, spec.ActionSend, spec.ActionReceive),
			}, withField("action"), withValue(string(op.Action)))
		}

		if len(op.Messages) == 0 {
			p.addError(o, base+".messages", &asyncerrors.IntegrityError{
				OperationID: id,
				Message:     "operation must reference at least one message",
			}, withField("messages"))
		}

		channel, ok := p.doc.Channels[op.Channel.Name]
		if !ok {
			p.addError(o, base+".channel", &asyncerrors.ReferenceError{
				ExpectedKind: "channels",
				Name:         op.Channel.Name,
				Site:         base + ".channel",
			}, withField("channel"), withValue(op.Channel.Name))
			// Message membership is only meaningful against a declared channel.
			continue
		}

		for i, ref := range op.Messages {
			path := issues.IndexPath(base, "messages", i)
			switch {
			case ref.Channel != "" && ref.Channel != op.Channel.Name:
				p.addError(o, path, &asyncerrors.IntegrityError{
					OperationID: id,
					Name:        ref.Name,
					Message: fmt.Sprintf("message belongs to channel %q, not the operation's channel %q",
						ref.Channel, op.Channel.Name),
				}, withValue(ref.String()))
			case !channel.HasMessage(ref.Name):
				p.addError(o, path, &asyncerrors.IntegrityError{
					OperationID: id,
					Name:        ref.Name,
					Message:     fmt.Sprintf("message is not declared by channel %q", op.Channel.Name),
				}, withValue(ref.String()))
			}
		}
	}
}

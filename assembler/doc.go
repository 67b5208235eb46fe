// Package assembler runs the build and validate pipeline over a set of
// fragments.
//
// Import path: github.com/erraggy/asynctools/assembler
//
// Two entry points share one pipeline and differ only in how failure is
// surfaced:
//
//   - [TryAssemble] returns the validated document, or an error. A
//     duplicate name is an *asyncerrors.StructuralError; a failed
//     validation is a *validator.ReportError enumerating every fatal
//     finding.
//   - [Assemble] panics with that same error. Use it where an invalid
//     document is a programming defect, e.g. in package initialization.
//
// Example:
//
//	doc, err := assembler.TryAssemble(
//		builder.Info(spec.Info{Title: "Orders", Version: "1.0.0"}),
//		builder.Channel("orders", spec.Channel{Address: "orders"}),
//		builder.ChannelMessage("orders", "OrderCreated", spec.Inline(builder.MessageFor[OrderCreated]())),
//		builder.Operation("publishOrder", spec.Operation{
//			Action:   spec.ActionSend,
//			Channel:  spec.ChannelRef{Name: "orders"},
//			Messages: []spec.MessageRef{{Channel: "orders", Name: "OrderCreated"}},
//		}),
//	)
package assembler

// Package builder assembles AsyncAPI documents from independently declared
// fragments.
//
// Import path: github.com/erraggy/asynctools/builder
//
// A Builder accretes servers, channels, operations and component entries into
// one spec.Document. Every insertion is keyed by name; inserting a name twice
// into the same map or component kind fails immediately with an
// *asyncerrors.StructuralError. The builder stores references verbatim and
// never resolves them: use the validator package (or the assembler package,
// which runs both) to prove the finished document is consistent.
//
// # Quick Start
//
//	b := builder.New(builder.WithInfo(spec.Info{Title: "Orders", Version: "1.0.0"}))
//
//	if err := b.AddChannel("orders", spec.Channel{Address: "orders"}); err != nil {
//		log.Fatal(err)
//	}
//	if err := b.AddChannelMessage("orders", "OrderCreated", spec.Inline(builder.MessageFor[OrderCreated]())); err != nil {
//		log.Fatal(err)
//	}
//	if err := b.AddOperation("publishOrder", spec.Operation{
//		Action:   spec.ActionSend,
//		Channel:  spec.ChannelRef{Name: "orders"},
//		Messages: []spec.MessageRef{{Channel: "orders", Name: "OrderCreated"}},
//	}); err != nil {
//		log.Fatal(err)
//	}
//	doc := b.Build()
//
// # Fragments
//
// Declaration sites that cannot hold a Builder produce [Fragment] values
// instead. [Builder.Apply] inserts them in order and stops at the first
// error:
//
//	err := b.Apply(
//		builder.Server("production", spec.Server{Host: "broker:9092", Protocol: "kafka"}),
//		builder.Channel("orders", spec.Channel{Address: "orders"}),
//	)
//
// # Derived payloads
//
// [MessageFor] builds a message whose payload schema is derived from a Go
// type. Derivation is deferred: the schema is computed through the
// schemacache package when the document is validated, so a type that
// cannot be represented surfaces as a SchemaDerivationError in the
// validation report rather than at the declaration site.
//
// # Concurrency
//
// A Builder is not safe for concurrent use. The Document returned by Build
// must not be modified afterwards; it may be read concurrently.
package builder

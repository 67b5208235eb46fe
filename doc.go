// Package asynctools assembles and validates AsyncAPI 3.x documents from
// typed Go fragments.
//
// Declaration sites across a program each contribute fragments (a channel,
// a message derived from a Go type, an operation) and asynctools merges them
// into one document, checks that every reference resolves, and hands back
// either the finished document or a report of everything that is wrong.
//
// # Packages
//
//   - spec: the document model (servers, channels, operations, messages,
//     components, security schemes, references)
//   - schemacache: a process-wide cache of JSON Schemas derived from Go types
//   - schemagen: JSON Schema derivation for Go types
//   - builder: accretive document construction; duplicate names fail at once
//   - validator: one pass that collects every fatal finding and warning
//   - assembler: Assemble (panics) and TryAssemble (returns an error) over
//     the same build and validate pipeline
//   - parser: JSON/YAML decoding and rendering of existing documents
//   - protocol: protocol names, default ports, and typed binding objects
//   - asyncerrors: the error taxonomy shared by every package
//   - logging: a structured logging interface with slog and zerolog adapters
//
// # Quick Start
//
//	type OrderPlaced struct {
//		OrderID string  `json:"orderId"`
//		Total   float64 `json:"total"`
//	}
//
//	doc, err := assembler.TryAssemble(
//		builder.Info(spec.Info{Title: "Orders", Version: "1.0.0"}),
//		builder.Channel("orders", spec.Channel{Address: "orders.placed"}),
//		builder.ChannelMessage("orders", "OrderPlaced",
//			spec.Inline(builder.MessageFor[OrderPlaced]())),
//		builder.Operation("publishOrder", spec.Operation{
//			Action:   spec.ActionSend,
//			Channel:  spec.ChannelRef{Name: "orders"},
//			Messages: []spec.MessageRef{{Channel: "orders", Name: "OrderPlaced"}},
//		}),
//	)
//	if err != nil {
//		log.Fatal(err) // every fatal finding, one per line
//	}
//	out, _ := parser.Render(doc, parser.SourceFormatYAML)
//
// # Command Line
//
// The asynctools command validates and renders document files and serves the
// same operations to MCP clients:
//
//	asynctools validate asyncapi.yaml
//	asynctools validate --watch --lint asyncapi.yaml
//	asynctools render --format json asyncapi.yaml
//	asynctools mcp
package asynctools

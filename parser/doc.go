// Package parser reads AsyncAPI 3.x documents from JSON or YAML and renders
// documents back to either format.
//
// Import path: github.com/erraggy/asynctools/parser
//
// # Quick Start
//
//	result, err := parser.ParseWithOptions(
//		parser.WithFilePath("asyncapi.yaml"),
//		parser.WithSourceMap(true),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(result.Document.Info.Title)
//
// Or with a reusable Parser:
//
//	p := parser.New()
//	result, err := p.Parse("asyncapi.json")
//
// # Decoding
//
// Both formats are read through a single YAML node tree (JSON is a subset of
// YAML), so the two behave identically:
//
//   - a key defined twice in one mapping is rejected with an
//     *asyncerrors.StructuralError naming the mapping and the key
//   - the "asyncapi" field must be present and carry a 3.x version
//   - anchors, aliases, and "<<" merge keys are expanded
//
// The resulting tree is decoded into a *spec.Document. References are stored
// verbatim; resolving them is the validator's job.
//
// # Source Maps
//
// With [WithSourceMap] the result carries a [SourceMap] keyed by the same
// dotted paths the validator reports ("channels.events.address",
// "operations.send.messages[0]"), so findings can be annotated with the line
// and column they came from:
//
//	loc := result.SourceMap.Locate(issue.Path)
//	fmt.Printf("%s: %s\n", loc, issue.Message)
//
// # Rendering
//
// [Render] serializes a document as indented JSON or block-style YAML. Struct
// fields keep their declaration order and map keys are sorted, so rendering
// is deterministic.
package parser

package parser

import (
	"fmt"

	"github.com/goccy/go-json"
	"go.yaml.in/yaml/v4"

	"github.com/erraggy/asynctools/asyncerrors"
	"github.com/erraggy/asynctools/spec"
)

// Render serializes doc in the given format. JSON output is indented with
// two spaces; YAML output uses block style throughout.
func Render(doc *spec.Document, format SourceFormat) ([]byte, error) {
	if doc == nil {
		return nil, &asyncerrors.ConfigError{Option: "document", Message: "document must not be nil"}
	}
	switch format {
	case SourceFormatJSON:
		return renderJSON(doc)
	case SourceFormatYAML:
		return renderYAML(doc)
	default:
		return nil, &asyncerrors.ConfigError{Option: "format", Value: string(format), Message: "must be json or yaml"}
	}
}

func renderJSON(doc *spec.Document) ([]byte, error) {
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("parser: failed to render json: %w", err)
	}
	return append(out, '\n'), nil
}

// renderYAML re-reads the JSON encoding as a node tree, which keeps the
// field order of the JSON encoding, and switches every node to block style.
func renderYAML(doc *spec.Document) ([]byte, error) {
	encoded, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("parser: failed to render yaml: %w", err)
	}
	var root yaml.Node
	if err := yaml.Unmarshal(encoded, &root); err != nil {
		return nil, fmt.Errorf("parser: failed to render yaml: %w", err)
	}
	clearStyle(&root)
	out, err := yaml.Marshal(&root)
	if err != nil {
		return nil, fmt.Errorf("parser: failed to render yaml: %w", err)
	}
	return out, nil
}

// clearStyle resets the flow and quoting styles inherited from JSON. The
// encoder still quotes strings whose plain form would read back as another type.
func clearStyle(node *yaml.Node) {
	node.Style = 0
	for _, child := range node.Content {
		clearStyle(child)
	}
}

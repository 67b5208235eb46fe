package parser

import (
	"fmt"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/asynctools/asyncerrors"
)

// maxNestingDepth bounds recursion through nested collections and aliases.
const maxNestingDepth = 512

// treeDecoder converts a yaml.Node tree into plain Go values
// (map[string]any, []any, scalars), rejecting duplicate mapping keys and
// optionally recording source locations.
type treeDecoder struct {
	sm   *SourceMap
	file string
}

// decode converts node, whose dotted path is path, into a plain Go value.
func (d *treeDecoder) decode(node *yaml.Node, path string, depth int) (any, error) {
	if node == nil {
		return nil, nil
	}
	if depth > maxNestingDepth {
		return nil, fmt.Errorf("line %d: nesting exceeds %d levels", node.Line, maxNestingDepth)
	}
	if node.Kind != yaml.DocumentNode {
		d.sm.set(path, d.location(node))
	}

	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return nil, nil
		}
		return d.decode(node.Content[0], path, depth+1)
	case yaml.AliasNode:
		return d.decode(node.Alias, path, depth+1)
	case yaml.MappingNode:
		return d.decodeMapping(node, path, depth)
	case yaml.SequenceNode:
		out := make([]any, len(node.Content))
		for i, child := range node.Content {
			v, err := d.decode(child, fmt.Sprintf("%s[%d]", path, i), depth+1)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	case yaml.ScalarNode:
		var v any
		if err := node.Decode(&v); err != nil {
			return nil, fmt.Errorf("line %d: %w", node.Line, err)
		}
		return v, nil
	default:
		return nil, fmt.Errorf("line %d: unexpected node kind %v", node.Line, node.Kind)
	}
}

// decodeMapping converts a mapping node. Explicit keys win over keys pulled
// in through "<<" merges regardless of their order in the source.
func (d *treeDecoder) decodeMapping(node *yaml.Node, path string, depth int) (any, error) {
	out := make(map[string]any, len(node.Content)/2)
	seen := make(map[string]*yaml.Node, len(node.Content)/2)
	var merged []map[string]any

	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valNode := node.Content[i], node.Content[i+1]

		if isMergeKey(keyNode) {
			maps, err := d.decodeMerge(valNode, path, depth)
			if err != nil {
				return nil, err
			}
			merged = append(merged, maps...)
			continue
		}

		if keyNode.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("line %d: mapping keys must be scalars", keyNode.Line)
		}
		key := keyNode.Value
		if first, ok := seen[key]; ok {
			return nil, &asyncerrors.StructuralError{
				Kind:    mappingName(path),
				Name:    key,
				Message: fmt.Sprintf("key on line %d was already defined on line %d", keyNode.Line, first.Line),
			}
		}
		seen[key] = keyNode

		childPath := joinPath(path, key)
		d.sm.setKey(childPath, d.location(keyNode))
		v, err := d.decode(valNode, childPath, depth+1)
		if err != nil {
			return nil, err
		}
		out[key] = v
	}

	for _, m := range merged {
		for k, v := range m {
			if _, ok := out[k]; !ok {
				out[k] = v
			}
		}
	}
	return out, nil
}

// decodeMerge returns the mappings named by the value of a "<<" key: either
// one mapping or a sequence of them.
func (d *treeDecoder) decodeMerge(node *yaml.Node, path string, depth int) ([]map[string]any, error) {
	// Merged values have no location of their own in the source map.
	sub := &treeDecoder{}
	v, err := sub.decode(node, path, depth+1)
	if err != nil {
		return nil, err
	}
	switch v := v.(type) {
	case map[string]any:
		return []map[string]any{v}, nil
	case []any:
		out := make([]map[string]any, 0, len(v))
		for _, item := range v {
			m, ok := item.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("line %d: merge sequence must contain mappings", node.Line)
			}
			out = append(out, m)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("line %d: merge value must be a mapping", node.Line)
	}
}

func (d *treeDecoder) location(node *yaml.Node) SourceLocation {
	return SourceLocation{Line: node.Line, Column: node.Column, File: d.file}
}

func isMergeKey(node *yaml.Node) bool {
	return node.Kind == yaml.ScalarNode && node.Value == "<<" && node.Style == 0 &&
		(node.Tag == "!!merge" || node.Tag == "")
}

// joinPath appends key to a dotted path.
func joinPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

// mappingName names the mapping at path for error messages.
func mappingName(path string) string {
	if path == "" {
		return "document"
	}
	return path
}

package docs

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/queryscan/queryscan/internal/model"
)

// Metadata keys of a documentation entry. Everything else under an entry
// is treated as a field when the entry declares type "dict".
var metadataKeys = map[string]bool{
	"type":        true,
	"description": true,
	"returned":    true,
	"sample":      true,
	"elements":    true,
	"contains":    true,
}

// Parse deserializes an extracted documentation fragment into the ordered
// schema tree. It returns ErrParse-wrapped errors for syntactically invalid
// YAML and ErrEmptySchema when the fragment parses but the root is not
// mapping-shaped. Both failure paths route to the same fallback analysis.
//
// Design decision: we decode into yaml.Node rather than map[string]any
// because Go maps do not preserve key order, and the identifier and
// container heuristics are specified over document order.
func Parse(fragment string) ([]*model.Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(fragment), &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, ErrEmptySchema
	}
	root := resolveAlias(doc.Content[0])
	if root == nil || root.Kind != yaml.MappingNode {
		return nil, ErrEmptySchema
	}

	return buildNodes(root), nil
}

// buildNodes converts a YAML mapping into schema nodes in document order.
func buildNodes(mapping *yaml.Node) []*model.Node {
	nodes := make([]*model.Node, 0, len(mapping.Content)/2)
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		key := mapping.Content[i].Value
		nodes = append(nodes, buildNode(key, resolveAlias(mapping.Content[i+1])))
	}
	return nodes
}

// buildNode converts one key/value pair into a schema node. Mapping-shaped
// values are split into metadata (type, returned, sample, contains) and
// remaining properties; scalar values yield a bare node.
func buildNode(key string, value *yaml.Node) *model.Node {
	node := &model.Node{Key: key}
	if value == nil || value.Kind != yaml.MappingNode {
		return node
	}
	node.Mapping = true

	for i := 0; i+1 < len(value.Content); i += 2 {
		k := value.Content[i].Value
		v := resolveAlias(value.Content[i+1])

		switch k {
		case "type":
			if v != nil && v.Kind == yaml.ScalarNode {
				node.DeclaredType = v.Value
			}
		case "returned":
			node.Returned = truthy(v)
		case "sample":
			if sample := buildValue(v); !sample.IsEmpty() {
				node.Sample = sample
			}
		case "contains":
			if v != nil && v.Kind == yaml.MappingNode {
				node.Contains = buildNodes(v)
			}
		case "description", "elements":
			// Metadata with no bearing on identifier discovery.
		default:
			node.Extra = append(node.Extra, buildNode(k, v))
		}
	}
	return node
}

// buildValue converts an arbitrary YAML subtree into a generic sample value.
func buildValue(n *yaml.Node) *model.Value {
	n = resolveAlias(n)
	if n == nil {
		return &model.Value{Kind: model.ValueScalar}
	}

	switch n.Kind {
	case yaml.MappingNode:
		v := &model.Value{Kind: model.ValueMapping}
		for i := 0; i+1 < len(n.Content); i += 2 {
			v.Entries = append(v.Entries, model.MapEntry{
				Key:   n.Content[i].Value,
				Value: buildValue(n.Content[i+1]),
			})
		}
		return v
	case yaml.SequenceNode:
		v := &model.Value{Kind: model.ValueSequence}
		for _, item := range n.Content {
			v.Items = append(v.Items, buildValue(item))
		}
		return v
	default:
		scalar := n.Value
		if n.Tag == "!!null" {
			scalar = ""
		}
		return &model.Value{Kind: model.ValueScalar, Scalar: scalar}
	}
}

// truthy reports whether a "returned" marker value counts as present.
// Null, false, and empty values do not; any other scalar (e.g. "always",
// "on success") and any non-empty collection does.
func truthy(n *yaml.Node) bool {
	if n == nil {
		return false
	}
	switch n.Kind {
	case yaml.ScalarNode:
		if n.Tag == "!!null" || n.Value == "" {
			return false
		}
		if n.Tag == "!!bool" {
			return n.Value == "true" || n.Value == "True" || n.Value == "TRUE"
		}
		return true
	case yaml.MappingNode, yaml.SequenceNode:
		return len(n.Content) > 0
	default:
		return false
	}
}

// resolveAlias follows YAML anchors so the rest of the parser only ever
// sees concrete nodes.
func resolveAlias(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	return n
}

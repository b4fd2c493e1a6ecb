package directive

import (
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// ParseYAML parses a YAML directive document.
func ParseYAML(data []byte, filename string) (*Document, error) {
	var doc Document

	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse directive YAML %s: %w", filename, err)
	}

	doc.setFile(filename)

	return &doc, nil
}

// UnmarshalYAML implements custom YAML unmarshaling for RecordDirectives,
// keeping the source position of the record entry.
func (r *RecordDirectives) UnmarshalYAML(node *yaml.Node) error {
	type plain RecordDirectives

	var p plain

	if err := node.Decode(&p); err != nil {
		return err
	}

	*r = RecordDirectives(p)
	r.Pos = Pos{Line: node.Line, Column: node.Column}

	return nil
}

// UnmarshalYAML implements custom YAML unmarshaling for FieldTrees.
// Accepts a mapping from field name to directive tree; order is kept.
func (f *FieldTrees) UnmarshalYAML(node *yaml.Node) error {
	node = resolveAlias(node)

	if isNull(node) {
		*f = nil
		return nil
	}

	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: fields must be a mapping from field name to directives", node.Line)
	}

	fields := make(FieldTrees, 0, len(node.Content)/2)

	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		if key.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: field name must be a scalar", key.Line)
		}

		tree, err := treeFromYAML(value)
		if err != nil {
			return fmt.Errorf("field %q: %w", key.Value, err)
		}

		fields = append(fields, FieldDirectives{
			Name:    key.Value,
			Builder: tree,
			Pos:     Pos{Line: key.Line, Column: key.Column},
		})
	}

	*f = fields

	return nil
}

// UnmarshalYAML implements custom YAML unmarshaling for Tree.
// Accepts:
//   - Mapping: {pattern: owned, public: ~, setter: {into: ~}}
//   - List of words and single-key maps: [public, {pattern: owned}]
//   - Null: no directives
func (t *Tree) UnmarshalYAML(node *yaml.Node) error {
	tree, err := treeFromYAML(node)
	if err != nil {
		return err
	}

	*t = tree

	return nil
}

func treeFromYAML(node *yaml.Node) (Tree, error) {
	node = resolveAlias(node)

	switch node.Kind {
	case yaml.MappingNode:
		tree := make(Tree, 0, len(node.Content)/2)

		for i := 0; i+1 < len(node.Content); i += 2 {
			key, value := node.Content[i], node.Content[i+1]
			if key.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("line %d: directive name must be a scalar", key.Line)
			}

			n, err := nodeFromYAML(key, value)
			if err != nil {
				return nil, err
			}

			tree = append(tree, n)
		}

		return tree, nil

	case yaml.SequenceNode:
		tree := make(Tree, 0, len(node.Content))

		for _, item := range node.Content {
			item = resolveAlias(item)

			switch item.Kind {
			case yaml.ScalarNode:
				if isNull(item) || item.Value == "" {
					return nil, fmt.Errorf("line %d: empty directive in list", item.Line)
				}

				w := Word(item.Value)
				w.Pos = Pos{Line: item.Line, Column: item.Column}
				tree = append(tree, w)

			case yaml.MappingNode:
				sub, err := treeFromYAML(item)
				if err != nil {
					return nil, err
				}

				tree = append(tree, sub...)

			default:
				return nil, fmt.Errorf("line %d: nested lists are not directives", item.Line)
			}
		}

		return tree, nil

	case yaml.ScalarNode:
		if isNull(node) {
			return nil, nil
		}

		return nil, fmt.Errorf("line %d: expected directives, got scalar %q", node.Line, node.Value)

	default:
		return nil, fmt.Errorf("line %d: expected directives", node.Line)
	}
}

func nodeFromYAML(key, value *yaml.Node) (Node, error) {
	value = resolveAlias(value)
	pos := Pos{Line: key.Line, Column: key.Column}

	switch value.Kind {
	case yaml.ScalarNode:
		if isNull(value) {
			return Node{Name: key.Value, Kind: KindWord, Pos: pos}, nil
		}

		return Node{Name: key.Value, Kind: KindLiteral, Literal: literalFromYAML(value), Pos: pos}, nil

	case yaml.MappingNode, yaml.SequenceNode:
		children, err := treeFromYAML(value)
		if err != nil {
			return Node{}, fmt.Errorf("%s: %w", key.Value, err)
		}

		return Node{Name: key.Value, Kind: KindTree, Children: children, Pos: pos}, nil

	default:
		return Node{}, fmt.Errorf("line %d: unsupported value for %q", value.Line, key.Value)
	}
}

func literalFromYAML(node *yaml.Node) Literal {
	switch node.ShortTag() {
	case "!!bool":
		if b, err := strconv.ParseBool(node.Value); err == nil {
			return Literal{Kind: LiteralBool, Text: strconv.FormatBool(b)}
		}

		return Literal{Kind: LiteralBool, Text: node.Value}
	case "!!int", "!!float":
		return Literal{Kind: LiteralNumber, Text: node.Value}
	default:
		return Literal{Kind: LiteralString, Text: node.Value}
	}
}

func resolveAlias(node *yaml.Node) *yaml.Node {
	for node != nil && node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}

	return node
}

func isNull(node *yaml.Node) bool {
	return node == nil || (node.Kind == yaml.ScalarNode && node.ShortTag() == "!!null")
}

func (d *Document) setFile(filename string) {
	for i := range d.Records {
		r := &d.Records[i]
		r.Pos.File = filename
		setTreeFile(r.Builder, filename)

		for j := range r.Fields {
			r.Fields[j].Pos.File = filename
			setTreeFile(r.Fields[j].Builder, filename)
		}
	}
}

func setTreeFile(t Tree, filename string) {
	for i := range t {
		t[i].Pos.File = filename
		setTreeFile(t[i].Children, filename)
	}
}

package directive

import (
	"fmt"
	"slices"
	"sort"
	"strconv"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

const (
	hclRecordBlock = "record"
	hclFieldBlock  = "field"
	hclVersionAttr = "version"
)

// ParseHCL parses an HCL directive document.
//
// Attributes become literals (or lists when the value is a tuple or object),
// nested blocks become directive lists and empty blocks become bare words.
// Unquoted identifiers are read as strings, so `pattern = owned` and
// `pattern = "owned"` are equivalent.
func ParseHCL(data []byte, filename string) (*Document, error) {
	parser := hclparse.NewParser()

	file, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse directive HCL %s: %w", filename, diags)
	}

	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		return nil, fmt.Errorf("failed to parse directive HCL %s: unexpected body type %T", filename, file.Body)
	}

	doc := &Document{}

	for _, name := range sortedAttributeNames(body) {
		attr := body.Attributes[name]
		if name != hclVersionAttr {
			return nil, fmt.Errorf("%s: unknown top-level attribute %q", posOf(attr.SrcRange), name)
		}

		n, err := nodeFromAttribute(attr)
		if err != nil {
			return nil, err
		}

		if n.Kind != KindLiteral {
			return nil, fmt.Errorf("%s: version must be a single value", n.Pos)
		}

		doc.Version = n.Literal.Text
	}

	for _, block := range body.Blocks {
		if block.Type != hclRecordBlock {
			return nil, fmt.Errorf("%s: unknown top-level block %q (expected %q)", posOf(block.DefRange()), block.Type, hclRecordBlock)
		}

		rec, err := recordFromHCL(block)
		if err != nil {
			return nil, err
		}

		doc.Records = append(doc.Records, rec)
	}

	return doc, nil
}

func recordFromHCL(block *hclsyntax.Block) (RecordDirectives, error) {
	if len(block.Labels) != 1 {
		return RecordDirectives{}, fmt.Errorf("%s: record block needs exactly one label, the record name", posOf(block.DefRange()))
	}

	rec := RecordDirectives{Name: block.Labels[0], Pos: posOf(block.DefRange())}

	for _, it := range orderedItems(block.Body) {
		if it.block != nil && it.block.Type == hclFieldBlock {
			if len(it.block.Labels) != 1 {
				return rec, fmt.Errorf("%s: field block needs exactly one label, the field name", posOf(it.block.DefRange()))
			}

			tree, err := treeFromBody(it.block.Body)
			if err != nil {
				return rec, fmt.Errorf("record %q field %q: %w", rec.Name, it.block.Labels[0], err)
			}

			rec.Fields = append(rec.Fields, FieldDirectives{
				Name:    it.block.Labels[0],
				Builder: tree,
				Pos:     posOf(it.block.DefRange()),
			})

			continue
		}

		n, err := it.node()
		if err != nil {
			return rec, fmt.Errorf("record %q: %w", rec.Name, err)
		}

		rec.Builder = append(rec.Builder, n)
	}

	return rec, nil
}

func treeFromBody(body *hclsyntax.Body) (Tree, error) {
	items := orderedItems(body)
	tree := make(Tree, 0, len(items))

	for _, it := range items {
		n, err := it.node()
		if err != nil {
			return nil, err
		}

		tree = append(tree, n)
	}

	return tree, nil
}

// bodyItem is an attribute or a block, positioned for source ordering.
type bodyItem struct {
	attr  *hclsyntax.Attribute
	block *hclsyntax.Block
	start int
}

func (it bodyItem) node() (Node, error) {
	if it.attr != nil {
		return nodeFromAttribute(it.attr)
	}

	if len(it.block.Labels) > 0 {
		return Node{}, fmt.Errorf("%s: block %q does not take labels", posOf(it.block.DefRange()), it.block.Type)
	}

	children, err := treeFromBody(it.block.Body)
	if err != nil {
		return Node{}, fmt.Errorf("%s: %w", it.block.Type, err)
	}

	pos := posOf(it.block.DefRange())
	if children.IsEmpty() {
		return Node{Name: it.block.Type, Kind: KindWord, Pos: pos}, nil
	}

	return Node{Name: it.block.Type, Kind: KindTree, Children: children, Pos: pos}, nil
}

func orderedItems(body *hclsyntax.Body) []bodyItem {
	items := make([]bodyItem, 0, len(body.Attributes)+len(body.Blocks))

	for _, attr := range body.Attributes {
		items = append(items, bodyItem{attr: attr, start: attr.SrcRange.Start.Byte})
	}

	for _, block := range body.Blocks {
		items = append(items, bodyItem{block: block, start: block.TypeRange.Start.Byte})
	}

	slices.SortFunc(items, func(a, b bodyItem) int { return a.start - b.start })

	return items
}

func sortedAttributeNames(body *hclsyntax.Body) []string {
	names := make([]string, 0, len(body.Attributes))
	for name := range body.Attributes {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

func nodeFromAttribute(attr *hclsyntax.Attribute) (Node, error) {
	pos := posOf(attr.SrcRange)

	// Only a bare identifier is a keyword. Literal true, false and null also
	// answer to ExprAsKeyword and must keep their value kind.
	if _, ok := attr.Expr.(*hclsyntax.ScopeTraversalExpr); ok {
		if kw := hcl.ExprAsKeyword(attr.Expr); kw != "" {
			return Node{Name: attr.Name, Kind: KindLiteral, Literal: Literal{Kind: LiteralString, Text: kw}, Pos: pos}, nil
		}
	}

	v, diags := attr.Expr.Value(nil)
	if diags.HasErrors() {
		return Node{}, fmt.Errorf("%s: %s: %w", pos, attr.Name, diags)
	}

	return nodeFromValue(attr.Name, v, pos)
}

// nodeFromValue converts an evaluated attribute value into a directive node.
func nodeFromValue(name string, v cty.Value, pos Pos) (Node, error) {
	if v.IsNull() {
		return Node{Name: name, Kind: KindWord, Pos: pos}, nil
	}

	if !v.IsKnown() {
		return Node{}, fmt.Errorf("%s: %s: value must be known", pos, name)
	}

	ty := v.Type()

	switch {
	case ty == cty.String:
		return Node{Name: name, Kind: KindLiteral, Literal: Literal{Kind: LiteralString, Text: v.AsString()}, Pos: pos}, nil

	case ty == cty.Bool:
		var b bool
		if err := gocty.FromCtyValue(v, &b); err != nil {
			return Node{}, fmt.Errorf("%s: %s: %w", pos, name, err)
		}

		return Node{Name: name, Kind: KindLiteral, Literal: Literal{Kind: LiteralBool, Text: strconv.FormatBool(b)}, Pos: pos}, nil

	case ty == cty.Number:
		return Node{Name: name, Kind: KindLiteral, Literal: Literal{Kind: LiteralNumber, Text: numberText(v)}, Pos: pos}, nil

	case ty.IsListType() || ty.IsTupleType() || ty.IsSetType():
		children := make(Tree, 0, v.LengthInt())

		it := v.ElementIterator()
		for it.Next() {
			_, elem := it.Element()

			switch {
			case elem.IsNull() || !elem.IsKnown():
				return Node{}, fmt.Errorf("%s: %s: list elements must be known", pos, name)
			case elem.Type() == cty.String:
				children = append(children, Node{Name: elem.AsString(), Kind: KindWord, Pos: pos})
			case elem.Type().IsObjectType() || elem.Type().IsMapType():
				sub, err := treeFromObject(elem, pos)
				if err != nil {
					return Node{}, fmt.Errorf("%s: %w", name, err)
				}

				children = append(children, sub...)
			default:
				return Node{}, fmt.Errorf("%s: %s: unsupported list element %s", pos, name, elem.Type().FriendlyName())
			}
		}

		return Node{Name: name, Kind: KindTree, Children: children, Pos: pos}, nil

	case ty.IsObjectType() || ty.IsMapType():
		children, err := treeFromObject(v, pos)
		if err != nil {
			return Node{}, fmt.Errorf("%s: %w", name, err)
		}

		return Node{Name: name, Kind: KindTree, Children: children, Pos: pos}, nil

	default:
		return Node{}, fmt.Errorf("%s: %s: unsupported value type %s", pos, name, ty.FriendlyName())
	}
}

// treeFromObject converts object entries into directives. cty iterates
// object attributes in lexical order.
func treeFromObject(v cty.Value, pos Pos) (Tree, error) {
	tree := make(Tree, 0, v.LengthInt())

	it := v.ElementIterator()
	for it.Next() {
		key, val := it.Element()

		n, err := nodeFromValue(key.AsString(), val, pos)
		if err != nil {
			return nil, err
		}

		tree = append(tree, n)
	}

	return tree, nil
}

func numberText(v cty.Value) string {
	var i int64
	if err := gocty.FromCtyValue(v, &i); err == nil {
		return strconv.FormatInt(i, 10)
	}

	return v.AsBigFloat().Text('g', -1)
}

func posOf(r hcl.Range) Pos {
	return Pos{File: r.Filename, Line: r.Start.Line, Column: r.Start.Column}
}

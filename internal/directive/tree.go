package directive

import (
	"fmt"
	"strings"

	"builder-generator/internal/common"
)

// Kind is the shape of a directive node.
type Kind int

const (
	// KindWord is a bare flag, e.g. "public" or "setter".
	KindWord Kind = iota
	// KindLiteral is a single value, e.g. "prefix = with".
	KindLiteral
	// KindTree is a nested directive list, e.g. "setter(into, prefix = with)".
	KindTree
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindWord:
		return "word"
	case KindLiteral:
		return "literal"
	case KindTree:
		return "list"
	default:
		return common.UnknownStr
	}
}

// LiteralKind records how a literal was written in the source document.
type LiteralKind int

const (
	LiteralString LiteralKind = iota
	LiteralBool
	LiteralNumber
)

// String returns a human-readable literal kind name.
func (k LiteralKind) String() string {
	switch k {
	case LiteralString:
		return "string"
	case LiteralBool:
		return "bool"
	case LiteralNumber:
		return "number"
	default:
		return common.UnknownStr
	}
}

// Pos is a source position of a directive node.
type Pos struct {
	File   string
	Line   int
	Column int
}

// String returns "file:line:col", omitting unknown parts.
func (p Pos) String() string {
	if p.Line == 0 {
		return p.File
	}

	if p.File == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}

	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

// Literal is the value of a KindLiteral node. Text is kept exactly as it
// should be emitted, e.g. an expression "42" or an identifier "with".
type Literal struct {
	Kind LiteralKind
	Text string
}

// Node is one directive.
type Node struct {
	Name     string
	Kind     Kind
	Literal  Literal
	Children Tree
	Pos      Pos
}

// Tree is an ordered list of directives at one scope.
type Tree []Node

// Word creates a bare flag node.
func Word(name string) Node {
	return Node{Name: name, Kind: KindWord}
}

// String creates a string literal node.
func String(name, value string) Node {
	return Node{Name: name, Kind: KindLiteral, Literal: Literal{Kind: LiteralString, Text: value}}
}

// Bool creates a boolean literal node.
func Bool(name string, value bool) Node {
	return Node{Name: name, Kind: KindLiteral, Literal: Literal{Kind: LiteralBool, Text: fmt.Sprint(value)}}
}

// Number creates a numeric literal node from its source text.
func Number(name, text string) Node {
	return Node{Name: name, Kind: KindLiteral, Literal: Literal{Kind: LiteralNumber, Text: text}}
}

// List creates a nested directive node.
func List(name string, children ...Node) Node {
	return Node{Name: name, Kind: KindTree, Children: Tree(children)}
}

// Get returns the first node with the given name.
func (t Tree) Get(name string) (Node, bool) {
	for _, n := range t {
		if n.Name == name {
			return n, true
		}
	}

	return Node{}, false
}

// Has reports whether a node with the given name exists.
func (t Tree) Has(name string) bool {
	_, ok := t.Get(name)
	return ok
}

// Names returns node names in order.
func (t Tree) Names() []string {
	names := make([]string, len(t))
	for i, n := range t {
		names[i] = n.Name
	}

	return names
}

// IsEmpty returns true if the tree has no directives.
func (t Tree) IsEmpty() bool {
	return common.IsEmpty(t)
}

// IsWordLike reports whether n can stand for a bare flag: a word, or an
// empty nested list (HCL has no bare words, so "setter {}" is the word form).
func (n Node) IsWordLike() bool {
	return n.Kind == KindWord || (n.Kind == KindTree && n.Children.IsEmpty())
}

// String renders the node in the attribute-like form used in diagnostics,
// e.g. `setter(into, prefix = "with")`.
func (n Node) String() string {
	switch n.Kind {
	case KindLiteral:
		return fmt.Sprintf("%s = %q", n.Name, n.Literal.Text)
	case KindTree:
		return n.Name + "(" + n.Children.String() + ")"
	default:
		return n.Name
	}
}

// String renders the tree as a comma-separated directive list.
func (t Tree) String() string {
	parts := make([]string, len(t))
	for i, n := range t {
		parts[i] = n.String()
	}

	return strings.Join(parts, ", ")
}

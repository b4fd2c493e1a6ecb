package directive

import (
	"fmt"
	"go/token"
	"slices"
	"sort"

	"builder-generator/internal/diagnostic"
	"builder-generator/internal/match"
)

// Capability names accepted by "derive".
const (
	CapabilityClone    = "Clone"
	CapabilityStringer = "Stringer"
)

// KnownCapabilities lists the accepted "derive" entries.
func KnownCapabilities() []string {
	return []string{CapabilityClone, CapabilityStringer}
}

// ParseRecordOptions parses the record-scope directive tree of a record.
func ParseRecordOptions(record string, tree Tree) (RecordOptions, diagnostic.Diagnostics) {
	p := &parser{record: record}

	var opts RecordOptions

	p.walk("", tree, handlers{
		"name": func(path string, n Node) {
			opts.Name = p.identPtr(path, n)
		},
		"pattern": func(path string, n Node) {
			opts.Pattern = p.pattern(path, n)
		},
		"public": func(path string, n Node) {
			opts.Vis.Public = p.flag(path, n)
		},
		"private": func(path string, n Node) {
			opts.Vis.Private = p.flag(path, n)
		},
		"vis": func(path string, n Node) {
			opts.Vis.Vis = p.textPtr(path, n)
		},
		"setter": func(path string, n Node) {
			opts.Setter = p.recordSetter(path, n)
		},
		"default": func(path string, n Node) {
			opts.Default = p.defaultExpr(path, n)
		},
		"build_fn": func(path string, n Node) {
			opts.BuildFn = p.buildFn(path, n)
		},
		"derive": func(path string, n Node) {
			opts.Derive = p.derive(path, n)
		},
		"custom_constructor": func(path string, n Node) {
			opts.CustomConstructor = p.flag(path, n)
		},
		"suppress_derive_clone": func(path string, n Node) {
			opts.SuppressDeriveClone = p.flag(path, n)
		},
		"try_setter": func(path string, n Node) {
			opts.TrySetter = p.flag(path, n)
		},
		"field": func(path string, n Node) {
			opts.Field = p.storage(path, n, false)
		},
	}, "each", "sub_builder")

	return opts, p.diags
}

// ParseFieldOptions parses the directive tree attached to one field.
func ParseFieldOptions(record, field string, tree Tree) (FieldOptions, diagnostic.Diagnostics) {
	p := &parser{record: record, field: field}

	var opts FieldOptions

	p.walk("", tree, handlers{
		"pattern": func(path string, n Node) {
			opts.Pattern = p.pattern(path, n)
		},
		"public": func(path string, n Node) {
			opts.Vis.Public = p.flag(path, n)
		},
		"private": func(path string, n Node) {
			opts.Vis.Private = p.flag(path, n)
		},
		"vis": func(path string, n Node) {
			opts.Vis.Vis = p.textPtr(path, n)
		},
		"setter": func(path string, n Node) {
			opts.Setter = p.fieldSetter(path, n)
		},
		"default": func(path string, n Node) {
			opts.Default = p.defaultExpr(path, n)
		},
		"try_setter": func(path string, n Node) {
			opts.TrySetter = p.flag(path, n)
		},
		"field": func(path string, n Node) {
			opts.Field = p.storage(path, n, true)
		},
		"sub_builder": func(path string, n Node) {
			opts.SubBuilder = p.subBuilder(path, n)
		},
	})

	return opts, p.diags
}

// handlers maps accepted directive names of a scope to their parsers.
type handlers map[string]func(path string, n Node)

func (h handlers) names() []string {
	names := make([]string, 0, len(h))
	for name := range h {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

type parser struct {
	record string
	field  string
	diags  diagnostic.Diagnostics
}

// walk dispatches every node of t to its handler. Names listed in
// wrongScope are valid directives elsewhere and get a dedicated error.
func (p *parser) walk(prefix string, t Tree, hs handlers, wrongScope ...string) {
	seen := make(map[string]bool, len(t))

	for _, n := range t {
		path := joinPath(prefix, n.Name)

		if seen[n.Name] {
			p.errorf(diagnostic.CodeDuplicateDirective, n, "directive %q is given more than once", path)
			continue
		}

		seen[n.Name] = true

		if h, ok := hs[n.Name]; ok {
			h(path, n)
			continue
		}

		if slices.Contains(wrongScope, n.Name) {
			p.errorf(diagnostic.CodeRecordScopeOnly, n, "directive %q is only allowed on fields", path)
			continue
		}

		p.diags.AddErrorWithSuggestions(
			diagnostic.CodeUnknownDirective,
			withPos(n, fmt.Sprintf("unknown directive %q", path)),
			p.record, p.field,
			match.Suggest(n.Name, hs.names()),
		)
	}
}

func (p *parser) errorf(code string, n Node, format string, args ...any) {
	p.diags.AddError(code, withPos(n, fmt.Sprintf(format, args...)), p.record, p.field)
}

func (p *parser) invalid(path string, n Node, want string) {
	p.errorf(diagnostic.CodeInvalidValue, n, "directive %q expects %s, got %s", path, want, n.Kind)
}

// flag reads a bare word, an empty list or a boolean literal.
func (p *parser) flag(path string, n Node) bool {
	v, ok := p.boolValue(path, n)
	return ok && v
}

func (p *parser) flagPtr(path string, n Node) *bool {
	v, ok := p.boolValue(path, n)
	if !ok {
		return nil
	}

	return &v
}

func (p *parser) boolValue(path string, n Node) (bool, bool) {
	if n.IsWordLike() {
		return true, true
	}

	if n.Kind == KindLiteral && n.Literal.Kind == LiteralBool {
		return n.Literal.Text == "true", true
	}

	p.invalid(path, n, "a flag")

	return false, false
}

func (p *parser) text(path string, n Node) (string, bool) {
	if n.Kind != KindLiteral {
		p.invalid(path, n, "a value")
		return "", false
	}

	return n.Literal.Text, true
}

func (p *parser) textPtr(path string, n Node) *string {
	s, ok := p.text(path, n)
	if !ok {
		return nil
	}

	return &s
}

// requiredText reads a non-empty literal.
func (p *parser) requiredText(path string, n Node) *string {
	s, ok := p.text(path, n)
	if !ok {
		return nil
	}

	if s == "" {
		p.errorf(diagnostic.CodeInvalidValue, n, "directive %q must not be empty", path)
		return nil
	}

	return &s
}

func (p *parser) identPtr(path string, n Node) *string {
	s, ok := p.text(path, n)
	if !ok {
		return nil
	}

	if !token.IsIdentifier(s) {
		p.errorf(diagnostic.CodeInvalidValue, n, "directive %q expects an identifier, got %q", path, s)
		return nil
	}

	return &s
}

// list returns the children of a nested directive. Word-like nodes are
// empty lists.
func (p *parser) list(path string, n Node) (Tree, bool) {
	if n.IsWordLike() {
		return nil, true
	}

	if n.Kind != KindTree {
		p.invalid(path, n, "a list")
		return nil, false
	}

	return n.Children, true
}

func (p *parser) pattern(path string, n Node) *Pattern {
	s, ok := p.text(path, n)
	if !ok {
		return nil
	}

	pat, err := ParsePattern(s)
	if err != nil {
		p.diags.AddErrorWithSuggestions(
			diagnostic.CodeInvalidValue,
			withPos(n, fmt.Sprintf("directive %q: %v", path, err)),
			p.record, p.field,
			match.Suggest(s, PatternNames()),
		)

		return nil
	}

	return &pat
}

func (p *parser) defaultExpr(path string, n Node) *DefaultExpr {
	if n.IsWordLike() {
		return &DefaultExpr{}
	}

	s, ok := p.text(path, n)
	if !ok {
		return nil
	}

	if s == "" {
		p.errorf(diagnostic.CodeEmptyDefault, n, "directive %q has an empty expression; use the bare word for the zero value", path)
		return nil
	}

	return &DefaultExpr{Expr: s}
}

func (p *parser) recordSetter(path string, n Node) RecordSetterOptions {
	var s RecordSetterOptions

	if n.IsWordLike() {
		s.Skip = boolPtr(false)
		return s
	}

	children, ok := p.list(path, n)
	if !ok {
		return s
	}

	p.walk(path, children, handlers{
		"prefix": func(path string, n Node) {
			s.Prefix = p.identPtr(path, n)
		},
		"into": func(path string, n Node) {
			s.Into = p.flagPtr(path, n)
		},
		"strip_option": func(path string, n Node) {
			s.StripOption = p.flagPtr(path, n)
		},
		"skip": func(path string, n Node) {
			s.Skip = p.flagPtr(path, n)
		},
	}, "name", "custom", "each")

	return s
}

func (p *parser) fieldSetter(path string, n Node) FieldSetterOptions {
	var s FieldSetterOptions

	// A bare "setter" re-enables a setter disabled at record scope.
	if n.IsWordLike() {
		s.Skip = boolPtr(false)
		return s
	}

	children, ok := p.list(path, n)
	if !ok {
		return s
	}

	p.walk(path, children, handlers{
		"prefix": func(path string, n Node) {
			s.Prefix = p.identPtr(path, n)
		},
		"name": func(path string, n Node) {
			s.Name = p.identPtr(path, n)
		},
		"into": func(path string, n Node) {
			s.Into = p.flagPtr(path, n)
		},
		"strip_option": func(path string, n Node) {
			s.StripOption = p.flagPtr(path, n)
		},
		"skip": func(path string, n Node) {
			s.Skip = p.flagPtr(path, n)
		},
		"custom": func(path string, n Node) {
			s.Custom = p.flagPtr(path, n)
		},
		"each": func(path string, n Node) {
			s.Each = p.each(path, n)
		},
	})

	return s
}

// each accepts "each = name" or "each(name = ..., into)".
func (p *parser) each(path string, n Node) *EachOptions {
	if n.Kind == KindLiteral {
		name := p.identPtr(path, n)
		if name == nil {
			return nil
		}

		return &EachOptions{Name: *name}
	}

	if n.IsWordLike() {
		p.errorf(diagnostic.CodeInvalidValue, n, "directive %q needs a setter name", path)
		return nil
	}

	var (
		each EachOptions
		name *string
	)

	p.walk(path, n.Children, handlers{
		"name": func(path string, n Node) {
			name = p.identPtr(path, n)
		},
		"into": func(path string, n Node) {
			each.Into = p.flag(path, n)
		},
	})

	if name == nil {
		if !n.Children.Has("name") {
			p.errorf(diagnostic.CodeInvalidValue, n, "directive %q needs a setter name", path)
		}

		return nil
	}

	each.Name = *name

	return &each
}

func (p *parser) buildFn(path string, n Node) BuildFnOptions {
	var b BuildFnOptions

	children, ok := p.list(path, n)
	if !ok {
		return b
	}

	p.walk(path, children, handlers{
		"skip": func(path string, n Node) {
			b.Skip = p.flag(path, n)
		},
		"name": func(path string, n Node) {
			b.Name = p.identPtr(path, n)
		},
		"validate": func(path string, n Node) {
			b.Validate = p.requiredText(path, n)
		},
		"post_build": func(path string, n Node) {
			b.PostBuild = p.requiredText(path, n)
		},
		"public": func(path string, n Node) {
			b.Vis.Public = p.flag(path, n)
		},
		"private": func(path string, n Node) {
			b.Vis.Private = p.flag(path, n)
		},
		"error": func(path string, n Node) {
			b.Error = p.errorOptions(path, n)
		},
	})

	return b
}

// errorOptions accepts "error = Type" or "error(type, uninitialized, validation)".
func (p *parser) errorOptions(path string, n Node) *ErrorOptions {
	if n.Kind == KindLiteral {
		typ := p.requiredText(path, n)
		if typ == nil {
			return nil
		}

		return &ErrorOptions{Type: *typ}
	}

	children, ok := p.list(path, n)
	if !ok {
		return nil
	}

	var (
		e   ErrorOptions
		typ *string
	)

	p.walk(path, children, handlers{
		"type": func(path string, n Node) {
			typ = p.requiredText(path, n)
		},
		"uninitialized": func(path string, n Node) {
			e.Uninitialized = p.requiredText(path, n)
		},
		"validation": func(path string, n Node) {
			e.Validation = p.requiredText(path, n)
		},
	})

	if typ == nil {
		if !children.Has("type") {
			p.errorf(diagnostic.CodeInvalidValue, n, "directive %q needs a type", path)
		}

		return nil
	}

	e.Type = *typ

	return &e
}

// derive accepts a single capability or a list of capability words.
func (p *parser) derive(path string, n Node) []string {
	var names []string

	switch {
	case n.Kind == KindLiteral:
		names = []string{n.Literal.Text}
	case n.Kind == KindTree:
		for _, c := range n.Children {
			if c.Kind != KindWord {
				p.invalid(joinPath(path, c.Name), c, "a capability name")
				continue
			}

			names = append(names, c.Name)
		}
	default:
		p.invalid(path, n, "a list of capabilities")
		return nil
	}

	out := make([]string, 0, len(names))

	for _, name := range names {
		if !slices.Contains(KnownCapabilities(), name) {
			p.diags.AddErrorWithSuggestions(
				diagnostic.CodeUnknownDirective,
				withPos(n, fmt.Sprintf("directive %q: unknown capability %q", path, name)),
				p.record, p.field,
				match.Suggest(name, KnownCapabilities()),
			)

			continue
		}

		if !slices.Contains(out, name) {
			out = append(out, name)
		}
	}

	return out
}

// storage parses "field(...)". type and build are accepted on fields only.
func (p *parser) storage(path string, n Node, fieldScope bool) StorageOptions {
	var s StorageOptions

	children, ok := p.list(path, n)
	if !ok {
		return s
	}

	hs := handlers{
		"public": func(path string, n Node) {
			s.Vis.Public = p.flag(path, n)
		},
		"private": func(path string, n Node) {
			s.Vis.Private = p.flag(path, n)
		},
	}

	if !fieldScope {
		p.walk(path, children, hs, "type", "build")
		return s
	}

	hs["type"] = func(path string, n Node) {
		s.Type = p.requiredText(path, n)
	}
	hs["build"] = func(path string, n Node) {
		s.Build = p.requiredText(path, n)
	}

	p.walk(path, children, hs)

	return s
}

func (p *parser) subBuilder(path string, n Node) *SubBuilderOptions {
	children, ok := p.list(path, n)
	if !ok {
		return nil
	}

	sb := &SubBuilderOptions{}

	p.walk(path, children, handlers{
		"fn_name": func(path string, n Node) {
			sb.FnName = p.identPtr(path, n)
		},
	})

	return sb
}

func joinPath(prefix, name string) string {
	if prefix == "" {
		return name
	}

	return prefix + "." + name
}

func withPos(n Node, msg string) string {
	if n.Pos.Line == 0 {
		return msg
	}

	return msg + " at " + n.Pos.String()
}

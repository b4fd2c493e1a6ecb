package directive

import (
	"errors"
	"fmt"
	"strings"

	"builder-generator/internal/common"
)

// Pattern selects how setters and the build method treat the builder value.
type Pattern int

const (
	// PatternMutable setters take and return a pointer to the same builder.
	PatternMutable Pattern = iota
	// PatternOwned setters take the builder by value and return the updated value.
	PatternOwned
	// PatternImmutable setters leave the receiver untouched and return a modified copy.
	PatternImmutable
)

// DefaultPattern is used when neither the field nor the record choose one.
const DefaultPattern = PatternMutable

// ParsePattern parses a pattern word.
func ParsePattern(s string) (Pattern, error) {
	switch strings.ToLower(s) {
	case "owned":
		return PatternOwned, nil
	case "mutable":
		return PatternMutable, nil
	case "immutable":
		return PatternImmutable, nil
	default:
		return 0, fmt.Errorf("unknown pattern %q (expected owned, mutable or immutable)", s)
	}
}

// PatternNames lists the accepted pattern words.
func PatternNames() []string {
	return []string{"owned", "mutable", "immutable"}
}

// String returns the pattern word.
func (p Pattern) String() string {
	switch p {
	case PatternOwned:
		return "owned"
	case PatternMutable:
		return "mutable"
	case PatternImmutable:
		return "immutable"
	default:
		return common.UnknownStr
	}
}

// MarshalYAML writes the pattern as its word.
func (p Pattern) MarshalYAML() (any, error) {
	return p.String(), nil
}

// RequiresClone reports whether builders using this pattern need to copy
// their state. Only owned builders move out of themselves.
func (p Pattern) RequiresClone() bool {
	return p != PatternOwned
}

// ByValue reports whether setters of this pattern use a value receiver.
func (p Pattern) ByValue() bool {
	return p == PatternOwned
}

// VisibilityKind is the shape of a resolved visibility.
type VisibilityKind int

const (
	VisInherited VisibilityKind = iota
	VisPublic
	VisPrivate
	VisExplicit
)

// Visibility of a generated item. Explicit visibilities carry the path text
// given by "vis = <path>".
type Visibility struct {
	Kind VisibilityKind
	Path string
}

var (
	Inherited = Visibility{Kind: VisInherited}
	Public    = Visibility{Kind: VisPublic}
	Private   = Visibility{Kind: VisPrivate}
)

// Explicit creates an explicit visibility.
func Explicit(path string) Visibility {
	return Visibility{Kind: VisExplicit, Path: path}
}

// String returns a human-readable visibility.
func (v Visibility) String() string {
	switch v.Kind {
	case VisInherited:
		return "inherited"
	case VisPublic:
		return "public"
	case VisPrivate:
		return "private"
	case VisExplicit:
		return "vis(" + v.Path + ")"
	default:
		return common.UnknownStr
	}
}

// MarshalYAML writes the visibility as its string form.
func (v Visibility) MarshalYAML() (any, error) {
	return v.String(), nil
}

// Explicit visibility paths Go can express.
const (
	VisPathPackage = "package"
	VisPathModule  = "module"
)

// Exported lowers the visibility to Go export status. Inherited visibilities
// use fallback. Of the explicit paths only "package" (unexported) and
// "module" (exported) exist in Go.
func (v Visibility) Exported(fallback bool) (bool, error) {
	switch v.Kind {
	case VisPublic:
		return true, nil
	case VisPrivate:
		return false, nil
	case VisExplicit:
		switch v.Path {
		case VisPathPackage:
			return false, nil
		case VisPathModule:
			return true, nil
		default:
			return false, fmt.Errorf("visibility %q has no Go equivalent (use %q or %q)", v.Path, VisPathPackage, VisPathModule)
		}
	default:
		return fallback, nil
	}
}

// ErrConflictingVisibility is returned when one scope expresses more than one
// visibility.
var ErrConflictingVisibility = errors.New("conflicting visibility: only one of public, private or vis may be given")

// VisibilityFlags are the mutually exclusive visibility directives of one
// scope as written.
type VisibilityFlags struct {
	Public  bool
	Private bool
	Vis     *string
}

// Expressed returns the visibility chosen at this scope. ok is false when
// nothing was expressed.
func (f VisibilityFlags) Expressed() (vis Visibility, ok bool, err error) {
	count := 0

	if f.Public {
		count++
		vis = Public
	}

	if f.Private {
		count++
		vis = Private
	}

	if f.Vis != nil {
		count++

		if *f.Vis == "" {
			vis = Private
		} else {
			vis = Explicit(*f.Vis)
		}
	}

	switch count {
	case 0:
		return Inherited, false, nil
	case 1:
		return vis, true, nil
	default:
		return Inherited, false, ErrConflictingVisibility
	}
}

// DefaultExpr is a default value directive. An empty Expr is the "default"
// word: the zero value of the field type.
type DefaultExpr struct {
	Expr string
}

// IsZeroValue reports whether the default is the zero value of the type.
func (d DefaultExpr) IsZeroValue() bool {
	return d.Expr == ""
}

// String returns the expression or "zero value".
func (d DefaultExpr) String() string {
	if d.IsZeroValue() {
		return "zero value"
	}

	return d.Expr
}

package emit

import (
	"builder-generator/internal/analyze"
	"builder-generator/internal/policy"
)

// EmitInitializer describes how the build method produces one record field.
//
// Every field maps to exactly one initializer kind. Only InitStored and
// InitDefault consult the default chain, and each of them ends in exactly
// one Fallback.
func EmitInitializer(fp *policy.FieldPolicy) InitializerSpec {
	spec := InitializerSpec{Field: fp.Name}

	switch {
	case !fp.FieldEnabled:
		spec.Kind = InitDefault
		spec.Fallback, spec.Expr = defaultFallback(fp, FallbackZero)
	case fp.HasCustomBuild():
		spec.Kind = InitCustomBuild
		spec.Expr = fp.Custom.Build
	case fp.SubBuilder != nil:
		spec.Kind = InitSubBuilder
		spec.Storage = StorageName(fp)
		spec.SubBuilderFn = fp.SubBuilder.FnName
	case fp.IsDirect():
		spec.Kind = InitMove
		spec.Storage = StorageName(fp)
	default:
		spec.Kind = InitStored
		spec.Storage = StorageName(fp)
		spec.Duplicate = duplicateOf(fp)
		spec.Fallback, spec.Expr = defaultFallback(fp, FallbackFail)
	}

	return spec
}

// defaultFallback walks the default chain: explicit expression, then the
// zero value word, then the record-wide default, then last.
func defaultFallback(fp *policy.FieldPolicy, last Fallback) (Fallback, string) {
	switch fp.Default {
	case policy.DefaultExplicit:
		return FallbackExplicit, fp.DefaultExpr
	case policy.DefaultZero:
		return FallbackZero, ""
	case policy.DefaultStruct:
		return FallbackStructDefault, ""
	default:
		return last, ""
	}
}

// duplicateOf returns the copy the build method makes of a stored value.
// Owned builders are consumed, so their values move.
func duplicateOf(fp *policy.FieldPolicy) Duplicate {
	if fp.Pattern.ByValue() {
		return DuplicateNone
	}

	switch fp.Field.Kind {
	case analyze.TypeKindSlice:
		return DuplicateSlice
	case analyze.TypeKindMap:
		return DuplicateMap
	default:
		return DuplicateNone
	}
}

package policy

import (
	"fmt"
	"strings"

	"builder-generator/internal/analyze"
	"builder-generator/internal/common"
	"builder-generator/internal/diagnostic"
	"builder-generator/internal/directive"
)

// ResolveField merges the options of one field with its record policy.
func ResolveField(field analyze.Field, opts directive.FieldOptions, record *RecordPolicy) (FieldPolicy, diagnostic.Diagnostics) {
	var diags diagnostic.Diagnostics

	r := fieldResolver{field: field, opts: opts, record: record, diags: &diags}

	fp := FieldPolicy{
		Field:         field,
		Name:          field.Name,
		SetterEnabled: valueOr(first(opts.Setter.SetterEnabled(), record.Setter.Enabled), true),
		FieldEnabled:  valueOr(first(opts.Setter.FieldEnabled(), record.Setter.Enabled), true),
		Pattern:       valueOr(opts.Pattern, record.Pattern),
		Into:          valueOr(opts.Setter.Into, record.Setter.Into),
		TrySetter:     opts.TrySetter || record.TrySetter,
	}

	fp.SetterName = r.setterName()
	fp.SetterVis = r.setterVis()
	fp.StorageVis = r.storageVis()
	fp.Default, fp.DefaultExpr = r.defaultSource()
	fp.StripOption = r.stripOption()
	fp.Custom = r.custom()
	fp.SubBuilder = r.subBuilder()
	fp.Each = r.each()

	r.checkConflicts()

	return fp, diags
}

type fieldResolver struct {
	field  analyze.Field
	opts   directive.FieldOptions
	record *RecordPolicy
	diags  *diagnostic.Diagnostics
}

func (r *fieldResolver) errorf(code, format string, args ...any) {
	r.diags.AddError(code, fmt.Sprintf(format, args...), r.record.Record, r.field.Name)
}

// setterName: custom name > prefix joined with the field name > field name.
func (r *fieldResolver) setterName() string {
	if r.opts.Setter.Name != nil {
		return *r.opts.Setter.Name
	}

	prefix := valueOr(r.opts.Setter.Prefix, r.record.Setter.Prefix)
	if prefix != "" {
		return common.JoinCamel(prefix, r.field.Name)
	}

	return r.field.Name
}

// setterVis: field public/private > record public/private > public.
func (r *fieldResolver) setterVis() directive.Visibility {
	vis := directive.Public
	if r.record.ExpressedVis != nil {
		vis = *r.record.ExpressedVis
	}

	// The record scope is checked once by ResolveRecord.
	if v, ok := expressed(r.opts.Vis, "", r.record.Record, r.field.Name, r.diags); ok {
		vis = v
		checkVisibility(vis, "setter", r.record.Record, r.field.Name, r.diags)
	}

	return vis
}

// storageVis: field field(public|private) > record field(public|private) > inherited.
func (r *fieldResolver) storageVis() directive.Visibility {
	vis := directive.Inherited
	if r.record.StorageVis != nil {
		vis = *r.record.StorageVis
	}

	if v, ok := expressed(r.opts.Field.Vis, "field", r.record.Record, r.field.Name, r.diags); ok {
		vis = v
		checkVisibility(vis, "field", r.record.Record, r.field.Name, r.diags)
	}

	return vis
}

// defaultSource: field expression or word > record default > none.
func (r *fieldResolver) defaultSource() (DefaultSource, string) {
	switch {
	case r.opts.Default != nil && r.opts.Default.IsZeroValue():
		return DefaultZero, ""
	case r.opts.Default != nil:
		return DefaultExplicit, r.opts.Default.Expr
	case r.record.Default != nil:
		return DefaultStruct, ""
	default:
		return DefaultNone, ""
	}
}

// stripOption applies to pointer fields only. Written on the field it must
// match the type; inherited from the record it skips other fields.
func (r *fieldResolver) stripOption() bool {
	if r.opts.Setter.StripOption != nil {
		if !*r.opts.Setter.StripOption {
			return false
		}

		if r.field.Kind != analyze.TypeKindPointer {
			r.errorf(diagnostic.CodeStripOptionType,
				"setter.strip_option needs a pointer field, %s has type %s", r.field.Name, r.field.Type)

			return false
		}

		return true
	}

	return r.record.Setter.StripOption && r.field.Kind == analyze.TypeKindPointer
}

func (r *fieldResolver) custom() *CustomField {
	storage := r.opts.Field
	if r.opts.SubBuilder != nil {
		// field(type) names the nested builder type instead.
		if storage.Build == nil {
			return nil
		}

		return &CustomField{Build: *storage.Build}
	}

	if storage.Type == nil && storage.Build == nil {
		return nil
	}

	return &CustomField{
		Type:  valueOr(storage.Type, ""),
		Build: valueOr(storage.Build, ""),
	}
}

func (r *fieldResolver) subBuilder() *SubBuilderPolicy {
	if r.opts.SubBuilder == nil {
		return nil
	}

	builderType := valueOr(r.opts.Field.Type, "")
	if builderType == "" {
		if r.field.Kind != analyze.TypeKindStruct || !r.field.Named {
			r.errorf(diagnostic.CodeSubBuilderConflict,
				"sub_builder needs a named struct field or field(type = ...), %s has type %s", r.field.Name, r.field.Type)

			return nil
		}

		builderType = builderTypeOf(r.field.Type)
	}

	return &SubBuilderPolicy{
		BuilderType: builderType,
		FnName:      valueOr(r.opts.SubBuilder.FnName, DefaultSubBuilderFn),
	}
}

// builderTypeOf derives the default builder type of a record type,
// keeping type arguments: "Pair[int, string]" becomes "PairBuilder[int, string]".
func builderTypeOf(typ string) string {
	if i := strings.IndexByte(typ, '['); i > 0 {
		return typ[:i] + BuilderSuffix + typ[i:]
	}

	return typ + BuilderSuffix
}

func (r *fieldResolver) each() *EachPolicy {
	opts := r.opts.Setter.Each
	if opts == nil {
		return nil
	}

	if !r.field.IsCollection() {
		r.errorf(diagnostic.CodeEachUnsupported,
			"setter.each needs a slice or map field, %s has type %s", r.field.Name, r.field.Type)

		return nil
	}

	if r.opts.Field.Type != nil {
		r.errorf(diagnostic.CodeEachUnsupported,
			"setter.each cannot be combined with a custom storage type field(type = %s)", *r.opts.Field.Type)

		return nil
	}

	return &EachPolicy{
		Name: opts.Name,
		Into: opts.Into,
		Kind: r.field.Kind,
		Elem: r.field.Elem,
		Key:  r.field.Key,
	}
}

// checkConflicts reports directive combinations with no sensible meaning.
func (r *fieldResolver) checkConflicts() {
	opts := r.opts

	if opts.Default != nil && opts.Field.Build != nil {
		r.errorf(diagnostic.CodeDefaultWithBuild,
			"default cannot be combined with field(build = ...): the build expression always provides the value")
	}

	if opts.Default != nil && opts.Field.Type != nil && opts.Field.Build == nil && opts.SubBuilder == nil {
		r.diags.AddWarning(diagnostic.CodeDefaultUnused,
			"default is unused: field(type = ...) without build moves the stored value",
			r.record.Record, r.field.Name)
	}

	if opts.SubBuilder != nil {
		if opts.Field.Build != nil {
			r.errorf(diagnostic.CodeSubBuilderConflict, "sub_builder cannot be combined with field(build = ...)")
		}

		if opts.Setter.Each != nil {
			r.errorf(diagnostic.CodeSubBuilderConflict, "sub_builder cannot be combined with setter.each")
		}

		if opts.Setter.StripOption != nil && *opts.Setter.StripOption {
			r.errorf(diagnostic.CodeSubBuilderConflict, "sub_builder cannot be combined with setter.strip_option")
		}
	}
}

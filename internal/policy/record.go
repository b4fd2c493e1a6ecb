package policy

import (
	"fmt"
	"slices"

	"builder-generator/internal/analyze"
	"builder-generator/internal/common"
	"builder-generator/internal/diagnostic"
	"builder-generator/internal/directive"
)

// ResolveRecord normalizes the record-scope options of a record.
//
// Clone requirements depend on the field patterns, so the returned policy
// is finished by Complete once all fields are resolved.
func ResolveRecord(record *analyze.Record, opts directive.RecordOptions) (RecordPolicy, diagnostic.Diagnostics) {
	var diags diagnostic.Diagnostics

	name := record.Name()

	rp := RecordPolicy{
		Record:              name,
		PkgName:             record.PkgName,
		TypeParams:          record.TypeParams,
		RecordExported:      record.Exported,
		Builder:             valueOr(opts.Name, name+BuilderSuffix),
		Pattern:             valueOr(opts.Pattern, directive.DefaultPattern),
		TrySetter:           opts.TrySetter,
		Default:             opts.Default,
		SuppressDeriveClone: opts.SuppressDeriveClone,
		ExplicitClone:       slices.Contains(opts.Derive, directive.CapabilityClone),
	}

	rp.Setter = SetterDefaults{
		Prefix:      valueOr(opts.Setter.Prefix, ""),
		Into:        valueOr(opts.Setter.Into, false),
		StripOption: valueOr(opts.Setter.StripOption, false),
		Enabled:     opts.Setter.Enabled(),
	}

	// Builder visibility: record public/private > the record's own export status.
	rp.BuilderVis = directive.Private
	if record.Exported {
		rp.BuilderVis = directive.Public
	}

	if vis, ok := expressed(opts.Vis, "", name, "", &diags); ok {
		rp.BuilderVis = vis
		rp.ExpressedVis = &vis
	}

	if vis, ok := expressed(opts.Field.Vis, "field", name, "", &diags); ok {
		rp.StorageVis = &vis
	}

	rp.BuildFn = BuildFnPolicy{
		Enabled:   !opts.BuildFn.Skip,
		Name:      valueOr(opts.BuildFn.Name, DefaultBuildFnName),
		Vis:       rp.BuilderVis,
		Validate:  valueOr(opts.BuildFn.Validate, ""),
		PostBuild: valueOr(opts.BuildFn.PostBuild, ""),
	}

	if vis, ok := expressed(opts.BuildFn.Vis, "build_fn", name, "", &diags); ok {
		rp.BuildFn.Vis = vis
	}

	rp.Error = resolveError(rp.Builder, opts.BuildFn.Error)

	rp.Capabilities = Capabilities{
		Default:  !opts.CustomConstructor,
		Stringer: slices.Contains(opts.Derive, directive.CapabilityStringer),
	}

	if rp.Capabilities.Default {
		rp.Constructor = common.JoinCamel(ConstructorPrefix, rp.Builder)
	}

	checkVisibility(rp.BuilderVis, "builder", name, "", &diags)
	checkVisibility(rp.BuildFn.Vis, "build_fn", name, "", &diags)

	if rp.StorageVis != nil {
		checkVisibility(*rp.StorageVis, "field", name, "", &diags)
	}

	return rp, diags
}

// resolveError picks the generated error type or the external one.
func resolveError(builder string, opts *directive.ErrorOptions) ErrorPolicy {
	if opts == nil {
		typ := builder + ErrorSuffix

		return ErrorPolicy{
			Generated:     true,
			Type:          typ,
			Uninitialized: typ + UninitializedConvName,
			Validation:    typ + ValidationConvName,
		}
	}

	return ErrorPolicy{
		Type:          opts.Type,
		Uninitialized: valueOr(opts.Uninitialized, ""),
		Validation:    valueOr(opts.Validation, ""),
	}
}

// expressed returns the visibility written at one scope, reporting
// contradicting flags as a configuration error.
func expressed(flags directive.VisibilityFlags, scope, record, field string, diags *diagnostic.Diagnostics) (directive.Visibility, bool) {
	vis, ok, err := flags.Expressed()
	if err != nil {
		msg := err.Error()
		if scope != "" {
			msg = fmt.Sprintf("%s: %s", scope, msg)
		}

		diags.AddError(diagnostic.CodeConflictingFlags, msg, record, field)

		return directive.Inherited, false
	}

	return vis, ok
}

// checkVisibility reports explicit visibility paths Go cannot express.
func checkVisibility(vis directive.Visibility, what, record, field string, diags *diagnostic.Diagnostics) {
	if _, err := vis.Exported(false); err != nil {
		diags.AddError(diagnostic.CodeUnsupportedVis, fmt.Sprintf("%s: %v", what, err), record, field)
	}
}

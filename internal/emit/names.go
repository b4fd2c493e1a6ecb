package emit

import (
	"builder-generator/internal/common"
	"builder-generator/internal/directive"
	"builder-generator/internal/policy"
)

// exported lowers a resolved visibility. Unrepresentable paths are rejected
// during resolution, so they fall back here without an error.
func exported(vis directive.Visibility, fallback bool) bool {
	ok, err := vis.Exported(fallback)
	if err != nil {
		return fallback
	}

	return ok
}

func builderExported(rp *policy.RecordPolicy) bool {
	return exported(rp.BuilderVis, rp.RecordExported)
}

// BuilderName returns the Go-cased builder type name.
func BuilderName(rp *policy.RecordPolicy) string {
	return common.Ident(rp.Builder, builderExported(rp))
}

// StorageName returns the builder field that stores a record field.
// Inherited storage visibility keeps builder fields unexported.
func StorageName(fp *policy.FieldPolicy) string {
	return common.Ident(fp.Name, exported(fp.StorageVis, false))
}

// SetterName returns the Go-cased name of the setter of a field.
func SetterName(fp *policy.FieldPolicy) string {
	return common.Ident(fp.SetterName, exported(fp.SetterVis, true))
}

// errorNames returns the error type and its two conversions. Generated names
// follow the builder visibility; external names are used as written.
func errorNames(rp *policy.RecordPolicy) (typ, fromUninit, fromValidation string) {
	if !rp.Error.Generated {
		return rp.Error.Type, rp.Error.Uninitialized, rp.Error.Validation
	}

	exp := builderExported(rp)

	return common.Ident(rp.Error.Type, exp),
		common.Ident(rp.Error.Uninitialized, exp),
		common.Ident(rp.Error.Validation, exp)
}

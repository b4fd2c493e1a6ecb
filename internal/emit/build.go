package emit

import (
	"builder-generator/internal/common"
	"builder-generator/internal/policy"
)

// EmitBuildMethod composes the initializers with the validation and
// post-build hooks. It returns nil when the build method is skipped.
func EmitBuildMethod(rp *policy.RecordPolicy, inits []InitializerSpec) *BuildMethodSpec {
	if !rp.BuildFn.Enabled {
		return nil
	}

	_, fromUninit, fromValidation := errorNames(rp)

	spec := &BuildMethodSpec{
		Name:              common.Ident(rp.BuildFn.Name, exported(rp.BuildFn.Vis, builderExported(rp))),
		Receiver:          receiverOf(rp.Pattern),
		Validate:          rp.BuildFn.Validate,
		PostBuild:         rp.BuildFn.PostBuild,
		Initializers:      inits,
		FromUninitialized: fromUninit,
		FromValidation:    fromValidation,
	}

	if rp.Default != nil {
		spec.StructDefault = rp.Default.Expr
	}

	for _, init := range inits {
		if init.NeedsStructDefault() {
			spec.NeedsStructDefault = true

			break
		}
	}

	return spec
}

// EmitErrorType describes the generated error type, or returns nil when the
// record uses an external one.
func EmitErrorType(rp *policy.RecordPolicy) *ErrorTypeSpec {
	if !rp.Error.Generated {
		return nil
	}

	name, fromUninit, fromValidation := errorNames(rp)
	kind := name + "Kind"

	return &ErrorTypeSpec{
		Name:     name,
		KindType: kind,
		Variants: []ErrorVariant{
			{Const: name + VariantUninitializedField, Name: VariantUninitializedField},
			{Const: name + VariantValidationError, Name: VariantValidationError},
		},
		FromUninitialized: fromUninit,
		FromValidation:    fromValidation,
	}
}

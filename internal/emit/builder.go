package emit

import (
	"builder-generator/internal/common"
	"builder-generator/internal/policy"
)

// EmitBuilder describes the complete builder of a record: storage fields in
// declaration order, the constructor, setters, the build method, the error
// type and the capability methods.
func EmitBuilder(rp *policy.RecordPolicy, fps []policy.FieldPolicy) BuilderSpec {
	errType, _, _ := errorNames(rp)

	spec := BuilderSpec{
		Record:     rp.Record,
		Name:       BuilderName(rp),
		TypeParams: rp.TypeParamsDecl(),
		TypeArgs:   rp.TypeArgs(),
		Pattern:    rp.Pattern,
		Receiver:   receiverOf(rp.Pattern),
		Error:      EmitErrorType(rp),
		ErrorType:  errType,
		Clone:      rp.Capabilities.Clone,
		Stringer:   rp.Capabilities.Stringer,
	}

	if rp.Capabilities.Default {
		spec.Constructor = common.Ident(rp.Constructor, builderExported(rp))
	}

	inits := make([]InitializerSpec, 0, len(fps))

	for i := range fps {
		fp := &fps[i]

		if fp.FieldEnabled {
			spec.Fields = append(spec.Fields, StorageFieldSpec{
				Name:  StorageName(fp),
				Field: fp.Name,
				Type:  fp.StorageType(),
				Kind:  storageKind(fp),
				Vis:   fp.StorageVis,
			})
		}

		spec.Setters = append(spec.Setters, EmitSetters(fp)...)
		inits = append(inits, EmitInitializer(fp))
	}

	spec.Build = EmitBuildMethod(rp, inits)

	return spec
}

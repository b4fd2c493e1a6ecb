package plan

import (
	"fmt"

	"builder-generator/internal/diagnostic"
	"builder-generator/internal/emit"
)

// checkCollisions reports generated identifiers that clash: builder members
// sharing a name, and package-level names declared twice by the builders or
// already taken by a record. Colliding builders are dropped from the plan.
func checkCollisions(plan *Plan, records []string) {
	owners := make(map[string]string, len(records))
	for _, r := range records {
		owners[r] = "struct " + r
	}

	kept := plan.Builders[:0]

	for _, b := range plan.Builders {
		var diags diagnostic.Diagnostics

		checkMembers(&b.Spec, &diags)

		for _, name := range topLevelNames(&b.Spec) {
			if owner, taken := owners[name]; taken {
				diags.AddError(diagnostic.CodeNameCollision,
					fmt.Sprintf("generated %s is already declared as %s", name, owner), b.Spec.Record, "")

				continue
			}

			owners[name] = "part of " + b.Spec.Name
		}

		plan.Diagnostics.Merge(diags)

		if !diags.HasErrors() {
			kept = append(kept, b)
		}
	}

	plan.Builders = kept
}

// checkMembers reports builder fields and methods sharing a name.
func checkMembers(spec *emit.BuilderSpec, diags *diagnostic.Diagnostics) {
	members := make(map[string]string)

	for _, f := range spec.Fields {
		members[f.Name] = "storage of " + f.Field
	}

	for _, m := range spec.Methods() {
		if owner, taken := members[m]; taken {
			diags.AddError(diagnostic.CodeNameCollision,
				fmt.Sprintf("method %s of %s collides with the %s", m, spec.Name, owner), spec.Record, "")

			continue
		}

		members[m] = "method " + m
	}
}

// topLevelNames lists the package-level identifiers a builder declares.
func topLevelNames(spec *emit.BuilderSpec) []string {
	names := []string{spec.Name}

	if spec.Constructor != "" {
		names = append(names, spec.Constructor)
	}

	if e := spec.Error; e != nil {
		names = append(names, e.Name, e.KindType, e.FromUninitialized, e.FromValidation)

		for _, v := range e.Variants {
			names = append(names, v.Const)
		}
	}

	return names
}

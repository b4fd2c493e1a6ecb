package policy

import (
	"fmt"
	"strings"

	"builder-generator/internal/diagnostic"
)

// Complete finishes a record policy once its fields are resolved: it derives
// the clone requirement and checks the error conversions the build method
// will need.
func Complete(rp *RecordPolicy, fps []FieldPolicy) diagnostic.Diagnostics {
	var diags diagnostic.Diagnostics

	rp.RequiresClone = rp.Pattern.RequiresClone()

	for i := range fps {
		if fps[i].Pattern.RequiresClone() {
			rp.RequiresClone = true
		}
	}

	rp.Capabilities.Clone = (rp.RequiresClone && !rp.SuppressDeriveClone) || rp.ExplicitClone

	if rp.RequiresClone && !rp.Capabilities.Clone {
		diags.AddInfo(diagnostic.CodeCloneSuppressed,
			"suppress_derive_clone is set but setters duplicate the builder: a Clone method must be provided by hand",
			rp.Record, "")
	}

	diags.Merge(CheckErrorObligations(rp, fps))

	return diags
}

// CheckErrorObligations verifies that an external error type declares every
// conversion the build method will use.
func CheckErrorObligations(rp *RecordPolicy, fps []FieldPolicy) diagnostic.Diagnostics {
	var diags diagnostic.Diagnostics

	if rp.Error.Generated || !rp.BuildFn.Enabled {
		return diags
	}

	if rp.Error.Uninitialized == "" {
		for i := range fps {
			if fps[i].CanFailUninitialized() {
				diags.AddError(diagnostic.CodeMissingConversion,
					fmt.Sprintf("build_fn.error %s needs an uninitialized conversion: field %s may be unset at build time",
						rp.Error.Type, fps[i].Name),
					rp.Record, "")

				break
			}
		}
	}

	if rp.Error.Validation == "" {
		if reasons := validationSources(rp, fps); len(reasons) > 0 {
			diags.AddError(diagnostic.CodeMissingConversion,
				fmt.Sprintf("build_fn.error %s needs a validation conversion for %s",
					rp.Error.Type, strings.Join(reasons, ", ")),
				rp.Record, "")
		}
	}

	return diags
}

// validationSources lists what can fail with a non-uninitialized error.
func validationSources(rp *RecordPolicy, fps []FieldPolicy) []string {
	var out []string

	if rp.BuildFn.Validate != "" {
		out = append(out, "validate hook "+rp.BuildFn.Validate)
	}

	if rp.BuildFn.PostBuild != "" {
		out = append(out, "post_build hook "+rp.BuildFn.PostBuild)
	}

	for i := range fps {
		if fps[i].SubBuilder != nil && fps[i].FieldEnabled {
			out = append(out, "sub_builder field "+fps[i].Name)
		}
	}

	return out
}

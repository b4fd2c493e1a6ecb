// Package buildrt is the runtime support package imported by generated
// builders.
//
// It provides the error values a generated build method can fail with
// (UninitializedFieldError, ValidationError and SubfieldBuildError) and the
// conversion interfaces accepted by "into" and "try_setter" setters:
//
//	b.Ipsum(buildrt.Value("lorem"))                      // Into[string]
//	b.TryPort(buildrt.TryConvert("8080", parsePort))     // TryInto[int]
package buildrt

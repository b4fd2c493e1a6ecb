// Package gen provides deterministic Go code generation for builders.
//
// Generation uses text/template and golang.org/x/tools/imports, which
// formats the output and prunes the imports a builder does not use.
//
// Each planned record produces one <record>_builder.go file in the record's
// package containing:
//   - the builder struct with one storage field per stored record field
//   - the constructor, unless the record asks for a custom one
//   - setters (plain, Try and accumulating each setters)
//   - the build method running the validate hook, the field initializers
//     and the post-build hook
//   - the generated error type and its conversions
//   - Clone and String methods when requested
package gen

// Package policy resolves directive options into fully determined policies.
//
// ResolveRecord normalizes the record-scope options into a RecordPolicy.
// ResolveField merges the options of one field with the RecordPolicy into a
// FieldPolicy. Every concern is decided by an explicit precedence chain:
//
//	field directive > record directive > global default
//
// Contradictions between sibling directives of one scope are configuration
// errors and are reported, never resolved by precedence.
//
// Complete finishes a record once all its fields are resolved: it decides
// whether the builder needs a Clone capability and checks that an external
// error type declares every conversion the build method will use.
package policy

// Package plan provides the planning pipeline that produces a Plan consumed
// by code generation.
//
// Planning pipeline:
//  1. Analyze packages → record schemas
//  2. Load the directive document (YAML or HCL) → validate
//  3. For each record with directives (or every record, see Config.AllRecords):
//     - Parse the record and field directive trees into typed options
//     - Resolve the record policy, then each field in declaration order
//     - Check the error conversions the build method will need
//     - Emit the builder description
//  4. Check generated names for collisions
//  5. Emit diagnostics (unknown records and fields, conflicts, suggestions)
//
// A record whose directives produce errors gets no builder; the other
// records are still planned.
package plan

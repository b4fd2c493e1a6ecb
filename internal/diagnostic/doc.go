// Package diagnostic provides structured configuration errors, warnings and
// notes for the builder generator.
//
// Every diagnostic names the scope it belongs to: the record (and, for
// field-scope problems, the field) whose directives caused it. Errors halt
// generation for that record; warnings and infos are reported only.
//
// Key capabilities:
//   - Conflicting or unknown directive reports with "did you mean" suggestions
//   - Record / field scoping for every message
//   - Folding all errors into one Go error
package diagnostic

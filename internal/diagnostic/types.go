package diagnostic

import (
	"errors"
	"fmt"
	"strings"

	"builder-generator/internal/common"
)

// Diagnostics holds all diagnostic information from resolution.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity DiagnosticSeverity
	// Code is a unique identifier for this type of diagnostic.
	Code string
	// Message is the human-readable description.
	Message string
	// Record names the record whose directives produced the diagnostic (if any).
	Record string
	// Field names the field whose directives produced the diagnostic (if any).
	// Empty for record-scope diagnostics.
	Field string
	// Suggestions are potential fixes or alternatives.
	Suggestions []string
}

// DiagnosticSeverity represents the severity level of a diagnostic.
type DiagnosticSeverity int

const (
	DiagnosticInfo DiagnosticSeverity = iota
	DiagnosticWarning
	DiagnosticError
)

// Diagnostic codes shared by the directive parser and the resolvers.
const (
	CodeUnknownDirective   = "unknown_directive"
	CodeDuplicateDirective = "duplicate_directive"
	CodeInvalidValue       = "invalid_value"
	CodeConflictingFlags   = "conflicting_flags"
	CodeEmptyDefault       = "empty_default"
	CodeDefaultWithBuild   = "default_with_custom_build"
	CodeDefaultUnused      = "default_unused"
	CodeSubBuilderConflict = "sub_builder_conflict"
	CodeEachUnsupported    = "each_unsupported_type"
	CodeStripOptionType    = "strip_option_non_pointer"
	CodeRecordScopeOnly    = "field_scope_only"
	CodeUnknownField       = "unknown_field"
	CodeUnknownRecord      = "unknown_record"
	CodeMissingConversion  = "missing_error_conversion"
	CodeCloneSuppressed    = "clone_suppressed"
	CodeUnsupportedVis     = "unsupported_visibility"
	CodeNameCollision      = "name_collision"
)

// String returns a human-readable severity name.
func (s DiagnosticSeverity) String() string {
	switch s {
	case DiagnosticInfo:
		return "info"
	case DiagnosticWarning:
		return "warning"
	case DiagnosticError:
		return "error"
	default:
		return common.UnknownStr
	}
}

// AddError adds an error diagnostic.
func (d *Diagnostics) AddError(code, message, record, field string) {
	d.Errors = append(d.Errors, Diagnostic{
		Severity: DiagnosticError,
		Code:     code,
		Message:  message,
		Record:   record,
		Field:    field,
	})
}

// AddErrorWithSuggestions adds an error diagnostic carrying "did you mean" candidates.
func (d *Diagnostics) AddErrorWithSuggestions(code, message, record, field string, suggestions []string) {
	d.Errors = append(d.Errors, Diagnostic{
		Severity:    DiagnosticError,
		Code:        code,
		Message:     message,
		Record:      record,
		Field:       field,
		Suggestions: suggestions,
	})
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code, message, record, field string) {
	d.Warnings = append(d.Warnings, Diagnostic{
		Severity: DiagnosticWarning,
		Code:     code,
		Message:  message,
		Record:   record,
		Field:    field,
	})
}

// AddInfo adds an info diagnostic.
func (d *Diagnostics) AddInfo(code, message, record, field string) {
	d.Infos = append(d.Infos, Diagnostic{
		Severity: DiagnosticInfo,
		Code:     code,
		Message:  message,
		Record:   record,
		Field:    field,
	})
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// Merge merges another Diagnostics instance into this one.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
	d.Infos = append(d.Infos, other.Infos...)
}

// IsValid returns true if there are no errors.
func (d *Diagnostics) IsValid() bool {
	return len(d.Errors) == 0
}

// ErrorsFor returns the error diagnostics attributed to the given record.
func (d *Diagnostics) ErrorsFor(record string) []Diagnostic {
	var out []Diagnostic

	for _, e := range d.Errors {
		if e.Record == record {
			out = append(out, e)
		}
	}

	return out
}

// HasCode reports whether any error carries the given code.
func (d *Diagnostics) HasCode(code string) bool {
	for _, e := range d.Errors {
		if e.Code == code {
			return true
		}
	}

	return false
}

// Error returns a combined error from all error diagnostics, or nil if valid.
func (d *Diagnostics) Error() error {
	if d.IsValid() {
		return nil
	}

	var parts []string
	for _, e := range d.Errors {
		parts = append(parts, e.String())
	}

	return errors.New(strings.Join(parts, "; "))
}

// Scope returns "Record" or "Record.field" for the diagnostic.
func (d Diagnostic) Scope() string {
	switch {
	case d.Record != "" && d.Field != "":
		return d.Record + "." + d.Field
	case d.Record != "":
		return d.Record
	default:
		return d.Field
	}
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if len(d.Suggestions) > 0 {
		msg += fmt.Sprintf(" (did you mean %s?)", strings.Join(quoteAll(d.Suggestions), " or "))
	}

	if scope := d.Scope(); scope != "" {
		return scope + ": " + msg
	}

	return msg
}

func quoteAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = fmt.Sprintf("%q", s)
	}

	return out
}

package diagnostic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagnostics_ErrorFolding(t *testing.T) {
	var d Diagnostics

	assert.True(t, d.IsValid())
	assert.NoError(t, d.Error())

	d.AddError(CodeConflictingFlags, "cannot be both public and private", "Lorem", "ipsum")
	d.AddError(CodeUnknownRecord, "record not found", "Dolor", "")
	d.AddWarning(CodeDefaultUnused, "default is unused", "Lorem", "amet")

	require.True(t, d.HasErrors())
	err := d.Error()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Lorem.ipsum: [conflicting_flags] cannot be both public and private")
	assert.Contains(t, err.Error(), "Dolor: [unknown_record] record not found")
	assert.NotContains(t, err.Error(), "default is unused")
}

func TestDiagnostic_StringWithSuggestions(t *testing.T) {
	var d Diagnostics
	d.AddErrorWithSuggestions(CodeUnknownDirective, `unknown directive "prefx"`, "Lorem", "", []string{"prefix"})

	assert.Equal(t, `Lorem: [unknown_directive] unknown directive "prefx" (did you mean "prefix"?)`, d.Errors[0].String())
}

func TestDiagnostics_MergeAndFilter(t *testing.T) {
	var a, b Diagnostics
	a.AddError(CodeInvalidValue, "bad pattern", "Lorem", "")
	b.AddError(CodeEmptyDefault, "empty default", "Ipsum", "dolor")
	b.AddInfo("note", "using zero value", "Ipsum", "sit")

	a.Merge(b)

	assert.Len(t, a.Errors, 2)
	assert.Len(t, a.Infos, 1)
	assert.Len(t, a.ErrorsFor("Ipsum"), 1)
	assert.True(t, a.HasCode(CodeEmptyDefault))
	assert.False(t, a.HasCode(CodeMissingConversion))
}

func TestSeverity_String(t *testing.T) {
	assert.Equal(t, "error", DiagnosticError.String())
	assert.Equal(t, "warning", DiagnosticWarning.String())
	assert.Equal(t, "info", DiagnosticInfo.String())
	assert.Equal(t, "unknown", DiagnosticSeverity(42).String())
}

package directive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"builder-generator/internal/diagnostic"
)

func TestParseRecordOptions(t *testing.T) {
	tree := Tree{
		String("name", "LoremMaker"),
		String("pattern", "immutable"),
		Word("public"),
		List("setter", String("prefix", "with"), Word("into"), Bool("strip_option", false)),
		Word("default"),
		List("build_fn",
			String("name", "Finish"),
			String("validate", "validateLorem"),
			String("post_build", "checkLorem"),
			Word("private"),
			List("error",
				String("type", "*AppError"),
				String("uninitialized", "appErrorFromField"),
				String("validation", "appErrorFromValidation"),
			),
		),
		List("derive", Word("Clone"), Word("Stringer")),
		Word("custom_constructor"),
		Bool("suppress_derive_clone", true),
		Word("try_setter"),
		List("field", Word("public")),
	}

	opts, diags := ParseRecordOptions("Lorem", tree)
	require.True(t, diags.IsValid(), diags.Error())

	require.NotNil(t, opts.Name)
	assert.Equal(t, "LoremMaker", *opts.Name)
	require.NotNil(t, opts.Pattern)
	assert.Equal(t, PatternImmutable, *opts.Pattern)
	assert.True(t, opts.Vis.Public)
	assert.False(t, opts.Vis.Private)

	require.NotNil(t, opts.Setter.Prefix)
	assert.Equal(t, "with", *opts.Setter.Prefix)
	require.NotNil(t, opts.Setter.Into)
	assert.True(t, *opts.Setter.Into)
	require.NotNil(t, opts.Setter.StripOption)
	assert.False(t, *opts.Setter.StripOption)
	assert.Nil(t, opts.Setter.Enabled())

	require.NotNil(t, opts.Default)
	assert.True(t, opts.Default.IsZeroValue())

	assert.False(t, opts.BuildFn.Skip)
	assert.Equal(t, "Finish", *opts.BuildFn.Name)
	assert.Equal(t, "validateLorem", *opts.BuildFn.Validate)
	assert.Equal(t, "checkLorem", *opts.BuildFn.PostBuild)
	assert.True(t, opts.BuildFn.Vis.Private)
	require.NotNil(t, opts.BuildFn.Error)
	assert.Equal(t, "*AppError", opts.BuildFn.Error.Type)
	assert.Equal(t, "appErrorFromField", *opts.BuildFn.Error.Uninitialized)
	assert.Equal(t, "appErrorFromValidation", *opts.BuildFn.Error.Validation)

	assert.Equal(t, []string{CapabilityClone, CapabilityStringer}, opts.Derive)
	assert.True(t, opts.CustomConstructor)
	assert.True(t, opts.SuppressDeriveClone)
	assert.True(t, opts.TrySetter)
	assert.True(t, opts.Field.Vis.Public)
}

func TestParseRecordOptions_Errors(t *testing.T) {
	tests := []struct {
		name        string
		tree        Tree
		code        string
		suggestions []string
	}{
		{
			name:        "unknown directive",
			tree:        Tree{Word("pubic")},
			code:        diagnostic.CodeUnknownDirective,
			suggestions: []string{"public"},
		},
		{
			name: "duplicate directive",
			tree: Tree{Word("public"), Word("public")},
			code: diagnostic.CodeDuplicateDirective,
		},
		{
			name:        "unknown pattern",
			tree:        Tree{String("pattern", "ownd")},
			code:        diagnostic.CodeInvalidValue,
			suggestions: []string{"owned"},
		},
		{
			name: "setter name at record scope",
			tree: Tree{List("setter", String("name", "foo"))},
			code: diagnostic.CodeRecordScopeOnly,
		},
		{
			name: "each at record scope",
			tree: Tree{List("setter", String("each", "item"))},
			code: diagnostic.CodeRecordScopeOnly,
		},
		{
			name: "sub_builder at record scope",
			tree: Tree{Word("sub_builder")},
			code: diagnostic.CodeRecordScopeOnly,
		},
		{
			name: "storage build at record scope",
			tree: Tree{List("field", String("build", "x"))},
			code: diagnostic.CodeRecordScopeOnly,
		},
		{
			name: "empty default",
			tree: Tree{String("default", "")},
			code: diagnostic.CodeEmptyDefault,
		},
		{
			name: "flag with value",
			tree: Tree{String("public", "yes")},
			code: diagnostic.CodeInvalidValue,
		},
		{
			name: "name is not an identifier",
			tree: Tree{String("name", "Lorem Builder")},
			code: diagnostic.CodeInvalidValue,
		},
		{
			name:        "unknown capability",
			tree:        Tree{List("derive", Word("Clne"))},
			code:        diagnostic.CodeUnknownDirective,
			suggestions: []string{"Clone"},
		},
		{
			name: "error without type",
			tree: Tree{List("build_fn", List("error", String("validation", "fromValidation")))},
			code: diagnostic.CodeInvalidValue,
		},
		{
			name: "empty validate hook",
			tree: Tree{List("build_fn", String("validate", ""))},
			code: diagnostic.CodeInvalidValue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, diags := ParseRecordOptions("Lorem", tt.tree)
			require.Len(t, diags.Errors, 1, diags.Error())

			d := diags.Errors[0]
			assert.Equal(t, tt.code, d.Code)
			assert.Equal(t, "Lorem", d.Record)
			assert.Empty(t, d.Field)

			for _, s := range tt.suggestions {
				assert.Contains(t, d.Suggestions, s)
			}
		})
	}
}

func TestParseRecordOptions_ErrorTypeShorthand(t *testing.T) {
	opts, diags := ParseRecordOptions("Lorem", Tree{List("build_fn", String("error", "*AppError"))})
	require.True(t, diags.IsValid())
	require.NotNil(t, opts.BuildFn.Error)
	assert.Equal(t, "*AppError", opts.BuildFn.Error.Type)
	assert.Nil(t, opts.BuildFn.Error.Uninitialized)
	assert.Nil(t, opts.BuildFn.Error.Validation)
}

func TestParseRecordOptions_SetterSkip(t *testing.T) {
	opts, diags := ParseRecordOptions("Lorem", Tree{List("setter", Word("skip"))})
	require.True(t, diags.IsValid())
	require.NotNil(t, opts.Setter.Enabled())
	assert.False(t, *opts.Setter.Enabled())
}

func TestParseFieldOptions(t *testing.T) {
	tree := Tree{
		String("pattern", "owned"),
		Word("private"),
		List("setter", String("name", "foo"), Word("into"), List("each", String("name", "item"), Word("into"))),
		String("default", "42"),
		Word("try_setter"),
		List("field", Word("public"), String("type", "[]string"), String("build", "b.items")),
	}

	opts, diags := ParseFieldOptions("Lorem", "ipsum", tree)
	require.True(t, diags.IsValid(), diags.Error())

	assert.Equal(t, PatternOwned, *opts.Pattern)
	assert.True(t, opts.Vis.Private)
	assert.Equal(t, "foo", *opts.Setter.Name)
	assert.True(t, *opts.Setter.Into)
	require.NotNil(t, opts.Setter.Each)
	assert.Equal(t, EachOptions{Name: "item", Into: true}, *opts.Setter.Each)
	assert.Equal(t, "42", opts.Default.Expr)
	assert.True(t, opts.TrySetter)
	assert.True(t, opts.Field.Vis.Public)
	assert.Equal(t, "[]string", *opts.Field.Type)
	assert.Equal(t, "b.items", *opts.Field.Build)
	assert.Nil(t, opts.SubBuilder)
}

func TestParseFieldOptions_Shorthands(t *testing.T) {
	opts, diags := ParseFieldOptions("Lorem", "ipsum", Tree{
		Word("setter"),
		Word("sub_builder"),
	})
	require.True(t, diags.IsValid(), diags.Error())

	require.NotNil(t, opts.Setter.SetterEnabled())
	assert.True(t, *opts.Setter.SetterEnabled())
	require.NotNil(t, opts.SubBuilder)
	assert.Nil(t, opts.SubBuilder.FnName)

	opts, diags = ParseFieldOptions("Lorem", "ipsum", Tree{
		List("setter", String("each", "item")),
		List("sub_builder", String("fn_name", "Finish")),
	})
	require.True(t, diags.IsValid(), diags.Error())
	assert.Equal(t, EachOptions{Name: "item"}, *opts.Setter.Each)
	assert.Equal(t, "Finish", *opts.SubBuilder.FnName)
}

func TestParseFieldOptions_Errors(t *testing.T) {
	tests := []struct {
		name string
		tree Tree
		code string
	}{
		{name: "each without name", tree: Tree{List("setter", Word("each"))}, code: diagnostic.CodeInvalidValue},
		{name: "each list without name", tree: Tree{List("setter", List("each", Word("into")))}, code: diagnostic.CodeInvalidValue},
		{name: "record directive on field", tree: Tree{Word("custom_constructor")}, code: diagnostic.CodeUnknownDirective},
		{name: "unknown setter property", tree: Tree{List("setter", Word("intoo"))}, code: diagnostic.CodeUnknownDirective},
		{name: "setter as literal", tree: Tree{String("setter", "skip")}, code: diagnostic.CodeInvalidValue},
		{name: "empty default", tree: Tree{String("default", "")}, code: diagnostic.CodeEmptyDefault},
		{name: "duplicate in setter", tree: Tree{List("setter", Word("into"), Word("into"))}, code: diagnostic.CodeDuplicateDirective},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, diags := ParseFieldOptions("Lorem", "ipsum", tt.tree)
			require.Len(t, diags.Errors, 1, diags.Error())
			assert.Equal(t, tt.code, diags.Errors[0].Code)
			assert.Equal(t, "ipsum", diags.Errors[0].Field)
		})
	}
}

func TestFieldSetterOptions_Enablement(t *testing.T) {
	tests := []struct {
		name   string
		opts   FieldSetterOptions
		setter *bool
		field  *bool
	}{
		{name: "nothing", opts: FieldSetterOptions{}, setter: nil, field: nil},
		{name: "skip", opts: FieldSetterOptions{Skip: boolPtr(true)}, setter: boolPtr(false), field: boolPtr(false)},
		{name: "unskip", opts: FieldSetterOptions{Skip: boolPtr(false)}, setter: boolPtr(true), field: boolPtr(true)},
		{name: "prefix forces", opts: FieldSetterOptions{Prefix: ptr("with")}, setter: boolPtr(true), field: boolPtr(true)},
		{name: "custom", opts: FieldSetterOptions{Custom: boolPtr(true)}, setter: boolPtr(false), field: nil},
		{name: "custom with each", opts: FieldSetterOptions{Custom: boolPtr(true), Each: &EachOptions{Name: "x"}}, setter: boolPtr(false), field: boolPtr(true)},
		{name: "custom false", opts: FieldSetterOptions{Custom: boolPtr(false), Skip: boolPtr(true)}, setter: boolPtr(true), field: boolPtr(false)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.setter, tt.opts.SetterEnabled())
			assert.Equal(t, tt.field, tt.opts.FieldEnabled())
		})
	}
}

func TestVisibilityFlags_Expressed(t *testing.T) {
	vis, ok, err := VisibilityFlags{}.Expressed()
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, Inherited, vis)

	vis, ok, err = VisibilityFlags{Public: true}.Expressed()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, Public, vis)

	vis, ok, err = VisibilityFlags{Vis: ptr("package")}.Expressed()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, Explicit("package"), vis)

	vis, _, err = VisibilityFlags{Vis: ptr("")}.Expressed()
	require.NoError(t, err)
	assert.Equal(t, Private, vis)

	_, _, err = VisibilityFlags{Public: true, Private: true}.Expressed()
	assert.ErrorIs(t, err, ErrConflictingVisibility)
}

func TestPattern(t *testing.T) {
	for _, name := range PatternNames() {
		p, err := ParsePattern(name)
		require.NoError(t, err)
		assert.Equal(t, name, p.String())
	}

	_, err := ParsePattern("shared")
	assert.Error(t, err)

	assert.False(t, PatternOwned.RequiresClone())
	assert.True(t, PatternMutable.RequiresClone())
	assert.True(t, PatternImmutable.RequiresClone())
	assert.Equal(t, PatternMutable, DefaultPattern)
}

func ptr[T any](v T) *T {
	return &v
}

func TestVisibility_Exported(t *testing.T) {
	tests := []struct {
		vis      Visibility
		fallback bool
		want     bool
		wantErr  bool
	}{
		{vis: Public, want: true},
		{vis: Private, fallback: true, want: false},
		{vis: Inherited, fallback: true, want: true},
		{vis: Inherited, fallback: false, want: false},
		{vis: Explicit(VisPathPackage), fallback: true, want: false},
		{vis: Explicit(VisPathModule), want: true},
		{vis: Explicit("crate::inner"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.vis.String(), func(t *testing.T) {
			got, err := tt.vis.Exported(tt.fallback)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

package emit

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"builder-generator/internal/analyze"
	"builder-generator/internal/directive"
	"builder-generator/internal/policy"
)

func loremRecord() *analyze.Record {
	return &analyze.Record{
		ID:       analyze.TypeID{PkgPath: "example.com/lorem", Name: "Lorem"},
		PkgName:  "lorem",
		Exported: true,
		Fields: []analyze.Field{
			{Name: "Ipsum", Type: "string", Kind: analyze.TypeKindBasic, Exported: true},
			{Name: "Dolor", Type: "int", Kind: analyze.TypeKindBasic, Exported: true, Index: 1},
			{Name: "Tags", Type: "[]string", Kind: analyze.TypeKindSlice, Elem: "string", Exported: true, Index: 2},
			{Name: "Labels", Type: "map[string]int", Kind: analyze.TypeKindMap, Key: "string", Elem: "int", Exported: true, Index: 3},
			{Name: "Note", Type: "*string", Kind: analyze.TypeKindPointer, Elem: "string", Exported: true, Index: 4},
			{Name: "Limits", Type: "Limits", Kind: analyze.TypeKindStruct, Named: true, Exported: true, Index: 5},
		},
	}
}

func field(name string, nodes ...directive.Node) directive.FieldDirectives {
	return directive.FieldDirectives{Name: name, Builder: directive.Tree(nodes)}
}

func resolve(t *testing.T, builder directive.Tree, fields ...directive.FieldDirectives) *policy.Resolved {
	t.Helper()

	res, diags := policy.Resolve(loremRecord(), &directive.RecordDirectives{
		Name:    "Lorem",
		Builder: builder,
		Fields:  fields,
	})
	require.True(t, diags.IsValid(), diags.Error())

	return res
}

func TestEmitSetters_Patterns(t *testing.T) {
	tests := []struct {
		pattern  string
		receiver Receiver
		clone    bool
	}{
		{pattern: "owned", receiver: ReceiverValue},
		{pattern: "mutable", receiver: ReceiverPointer},
		{pattern: "immutable", receiver: ReceiverPointer, clone: true},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			res := resolve(t, directive.Tree{directive.String("pattern", tt.pattern)})

			setters := EmitSetters(res.Field("Ipsum"))
			require.Len(t, setters, 1)

			s := setters[0]
			assert.Equal(t, SetterAssign, s.Kind)
			assert.Equal(t, "Ipsum", s.Name)
			assert.Equal(t, "ipsum", s.Storage)
			assert.Equal(t, StorageOptional, s.StoreAs)
			assert.Equal(t, tt.receiver, s.Receiver)
			assert.Equal(t, tt.clone, s.CloneFirst)
			assert.Equal(t, "string", s.Param)
			assert.Equal(t, ConvertNone, s.Convert)
		})
	}
}

func TestEmitSetters_Disabled(t *testing.T) {
	res := resolve(t, nil,
		field("Ipsum", directive.List("setter", directive.Word("skip"))),
		field("Dolor", directive.List("setter", directive.Word("custom"))),
	)

	assert.Empty(t, EmitSetters(res.Field("Ipsum")))
	assert.Empty(t, EmitSetters(res.Field("Dolor")))
}

func TestEmitSetters_IntoTryAndStripOption(t *testing.T) {
	res := resolve(t, directive.Tree{
		directive.List("setter", directive.String("prefix", "with")),
		directive.Word("try_setter"),
	},
		field("Ipsum", directive.List("setter", directive.Word("into"))),
		field("Note", directive.List("setter", directive.Word("strip_option"))),
	)

	ipsum := EmitSetters(res.Field("Ipsum"))
	require.Len(t, ipsum, 2)
	assert.Equal(t, "WithIpsum", ipsum[0].Name)
	assert.Equal(t, ConvertInto, ipsum[0].Convert)
	assert.Equal(t, "buildrt.Into[string]", ipsum[0].Param)
	assert.Equal(t, SetterTry, ipsum[1].Kind)
	assert.Equal(t, "TryWithIpsum", ipsum[1].Name)
	assert.Equal(t, ConvertTryInto, ipsum[1].Convert)
	assert.Equal(t, "buildrt.TryInto[string]", ipsum[1].Param)

	note := EmitSetters(res.Field("Note"))
	require.Len(t, note, 2)
	assert.True(t, note[0].StripOption)
	assert.Equal(t, "string", note[0].Param)
	assert.Equal(t, "buildrt.TryInto[string]", note[1].Param)
}

func TestEmitSetters_Each(t *testing.T) {
	res := resolve(t, nil,
		field("Tags", directive.List("setter", directive.String("each", "tag"))),
		field("Labels", directive.List("setter",
			directive.List("each", directive.String("name", "label"), directive.Word("into")),
		)),
	)

	tags := EmitSetters(res.Field("Tags"))
	require.Len(t, tags, 2)
	assert.Equal(t, SetterEach, tags[1].Kind)
	assert.Equal(t, "Tag", tags[1].Name)
	assert.Equal(t, "string", tags[1].Param)
	require.NotNil(t, tags[1].Each)
	assert.False(t, tags[1].Each.Map)
	assert.Equal(t, "[]string", tags[1].Each.Collection)

	labels := EmitSetters(res.Field("Labels"))
	require.Len(t, labels, 2)
	assert.Equal(t, "Label", labels[1].Name)
	assert.Equal(t, "buildrt.Into[int]", labels[1].Param)
	assert.True(t, labels[1].Each.Map)
	assert.Equal(t, "string", labels[1].Each.Key)
}

func TestEmitSetters_PrivateSetter(t *testing.T) {
	res := resolve(t, nil, field("Ipsum", directive.Word("private")))

	setters := EmitSetters(res.Field("Ipsum"))
	require.Len(t, setters, 1)
	assert.Equal(t, "ipsum", setters[0].Name)
}

func TestEmitInitializer_StateMachine(t *testing.T) {
	tests := []struct {
		name     string
		record   directive.Tree
		field    directive.FieldDirectives
		kind     InitKind
		fallback Fallback
		expr     string
	}{
		{
			name:     "stored without default fails",
			field:    field("Dolor"),
			kind:     InitStored,
			fallback: FallbackFail,
		},
		{
			name:     "stored with explicit default",
			field:    field("Dolor", directive.String("default", "42")),
			kind:     InitStored,
			fallback: FallbackExplicit,
			expr:     "42",
		},
		{
			name:     "stored with zero default",
			field:    field("Dolor", directive.Word("default")),
			kind:     InitStored,
			fallback: FallbackZero,
		},
		{
			name:     "stored with struct default",
			record:   directive.Tree{directive.String("default", "DefaultLorem()")},
			field:    field("Dolor"),
			kind:     InitStored,
			fallback: FallbackStructDefault,
		},
		{
			name:     "explicit beats struct default",
			record:   directive.Tree{directive.String("default", "DefaultLorem()")},
			field:    field("Dolor", directive.String("default", "7")),
			kind:     InitStored,
			fallback: FallbackExplicit,
			expr:     "7",
		},
		{
			name:     "disabled without default is zero",
			field:    field("Dolor", directive.List("setter", directive.Word("skip"))),
			kind:     InitDefault,
			fallback: FallbackZero,
		},
		{
			name:     "disabled with explicit default",
			field:    field("Dolor", directive.List("setter", directive.Word("skip")), directive.String("default", "3")),
			kind:     InitDefault,
			fallback: FallbackExplicit,
			expr:     "3",
		},
		{
			name:     "disabled with struct default",
			record:   directive.Tree{directive.Word("default")},
			field:    field("Dolor", directive.List("setter", directive.Word("skip"))),
			kind:     InitDefault,
			fallback: FallbackStructDefault,
		},
		{
			name:  "custom build",
			field: field("Dolor", directive.List("field", directive.String("type", "string"), directive.String("build", "len(b.dolor)"))),
			kind:  InitCustomBuild,
			expr:  "len(b.dolor)",
		},
		{
			name:  "custom type moves",
			field: field("Dolor", directive.List("field", directive.String("type", "int"))),
			kind:  InitMove,
		},
		{
			name:  "sub builder",
			field: field("Limits", directive.Word("sub_builder")),
			kind:  InitSubBuilder,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := resolve(t, tt.record, tt.field)

			init := EmitInitializer(res.Field(tt.field.Name))
			assert.Equal(t, tt.field.Name, init.Field)
			assert.Equal(t, tt.kind, init.Kind)
			assert.Equal(t, tt.fallback, init.Fallback)
			assert.Equal(t, tt.expr, init.Expr)
		})
	}
}

// A field with the setter disabled and no default never fails the build.
func TestEmitInitializer_DisabledNeverFails(t *testing.T) {
	res := resolve(t, directive.Tree{directive.List("setter", directive.Word("skip"))})

	for i := range res.Fields {
		init := EmitInitializer(&res.Fields[i])
		assert.Equal(t, InitDefault, init.Kind, init.Field)
		assert.Equal(t, FallbackZero, init.Fallback, init.Field)
		assert.False(t, init.CanFail(), init.Field)
	}
}

func TestEmitInitializer_Duplicate(t *testing.T) {
	owned := resolve(t, directive.Tree{directive.String("pattern", "owned")})
	for i := range owned.Fields {
		assert.Equal(t, DuplicateNone, EmitInitializer(&owned.Fields[i]).Duplicate, owned.Fields[i].Name)
	}

	mutable := resolve(t, nil)
	assert.Equal(t, DuplicateSlice, EmitInitializer(mutable.Field("Tags")).Duplicate)
	assert.Equal(t, DuplicateMap, EmitInitializer(mutable.Field("Labels")).Duplicate)
	assert.Equal(t, DuplicateNone, EmitInitializer(mutable.Field("Ipsum")).Duplicate)
}

func TestEmitBuildMethod(t *testing.T) {
	res := resolve(t, directive.Tree{
		directive.String("pattern", "owned"),
		directive.String("default", "DefaultLorem()"),
		directive.List("build_fn",
			directive.String("name", "finish"),
			directive.String("validate", "validateLorem"),
			directive.String("post_build", "checkLorem"),
		),
	})

	inits := make([]InitializerSpec, len(res.Fields))
	for i := range res.Fields {
		inits[i] = EmitInitializer(&res.Fields[i])
	}

	spec := EmitBuildMethod(&res.Record, inits)
	require.NotNil(t, spec)
	assert.Equal(t, "Finish", spec.Name)
	assert.Equal(t, ReceiverValue, spec.Receiver)
	assert.Equal(t, "validateLorem", spec.Validate)
	assert.Equal(t, "checkLorem", spec.PostBuild)
	assert.Equal(t, "DefaultLorem()", spec.StructDefault)
	assert.True(t, spec.NeedsStructDefault)
	assert.Equal(t, "LoremBuilderErrorFromUninitialized", spec.FromUninitialized)
	assert.Equal(t, "LoremBuilderErrorFromValidation", spec.FromValidation)
	assert.Len(t, spec.Initializers, 6)
}

func TestEmitBuildMethod_Skip(t *testing.T) {
	res := resolve(t, directive.Tree{directive.List("build_fn", directive.Word("skip"))})
	assert.Nil(t, EmitBuildMethod(&res.Record, nil))
}

func TestEmitErrorType(t *testing.T) {
	res := resolve(t, nil)

	spec := EmitErrorType(&res.Record)
	require.NotNil(t, spec)
	assert.Equal(t, "LoremBuilderError", spec.Name)
	assert.Equal(t, "LoremBuilderErrorKind", spec.KindType)
	assert.Equal(t, []ErrorVariant{
		{Const: "LoremBuilderErrorUninitializedField", Name: VariantUninitializedField},
		{Const: "LoremBuilderErrorValidationError", Name: VariantValidationError},
	}, spec.Variants)
	assert.Equal(t, "LoremBuilderErrorFromUninitialized", spec.FromUninitialized)

	external := resolve(t, directive.Tree{
		directive.List("build_fn", directive.List("error",
			directive.String("type", "*AppError"),
			directive.String("uninitialized", "appErrorFromField"),
		)),
	})
	assert.Nil(t, EmitErrorType(&external.Record))

	build := EmitBuildMethod(&external.Record, nil)
	assert.Equal(t, "appErrorFromField", build.FromUninitialized)
}

func TestEmitBuilder(t *testing.T) {
	res := resolve(t, directive.Tree{
		directive.List("derive", directive.Word("Stringer")),
		directive.List("field", directive.Word("public")),
	},
		field("Ipsum", directive.List("setter", directive.Word("skip"))),
		field("Tags", directive.List("setter", directive.String("each", "tag"))),
		field("Limits", directive.Word("sub_builder")),
		field("Dolor", directive.List("field", directive.Word("private"))),
	)

	spec := EmitBuilder(&res.Record, res.Fields)

	assert.Equal(t, "Lorem", spec.Record)
	assert.Equal(t, "LoremBuilder", spec.Name)
	assert.Equal(t, "LoremBuilder", spec.Self())
	assert.Equal(t, "NewLoremBuilder", spec.Constructor)
	assert.Equal(t, "LoremBuilderError", spec.ErrorType)
	assert.True(t, spec.Clone)
	assert.True(t, spec.Stringer)
	require.NotNil(t, spec.Build)
	require.NotNil(t, spec.Error)

	want := []StorageFieldSpec{
		{Name: "dolor", Field: "Dolor", Type: "int", Kind: StorageOptional, Vis: directive.Private},
		{Name: "Tags", Field: "Tags", Type: "[]string", Kind: StorageOptional, Vis: directive.Public},
		{Name: "Labels", Field: "Labels", Type: "map[string]int", Kind: StorageOptional, Vis: directive.Public},
		{Name: "Note", Field: "Note", Type: "*string", Kind: StorageOptional, Vis: directive.Public},
		{Name: "Limits", Field: "Limits", Type: "LimitsBuilder", Kind: StorageSubBuilder, Vis: directive.Public},
	}
	if diff := cmp.Diff(want, spec.Fields); diff != "" {
		t.Errorf("storage fields mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, []string{"Dolor", "Tags", "Tag", "Labels", "Note", "Limits", "Build", "Clone", "String"}, spec.Methods())

	require.Len(t, spec.Build.Initializers, 6)
	assert.Equal(t, InitDefault, spec.Build.Initializers[0].Kind)
	assert.Equal(t, InitSubBuilder, spec.Build.Initializers[5].Kind)
	assert.Equal(t, "Build", spec.Build.Initializers[5].SubBuilderFn)
}

func TestEmitBuilder_PrivateAndGeneric(t *testing.T) {
	record := &analyze.Record{
		ID:      analyze.TypeID{PkgPath: "example.com/lorem", Name: "pair"},
		PkgName: "lorem",
		TypeParams: []analyze.TypeParam{
			{Name: "K", Constraint: "comparable"},
			{Name: "V", Constraint: "any"},
		},
		Fields: []analyze.Field{
			{Name: "key", Type: "K", Kind: analyze.TypeKindTypeParam},
			{Name: "value", Type: "V", Kind: analyze.TypeKindTypeParam, Index: 1},
		},
	}

	res, diags := policy.Resolve(record, nil)
	require.True(t, diags.IsValid(), diags.Error())

	spec := EmitBuilder(&res.Record, res.Fields)
	assert.Equal(t, "pairBuilder", spec.Name)
	assert.Equal(t, "newPairBuilder", spec.Constructor)
	assert.Equal(t, "pairBuilderError", spec.ErrorType)
	assert.Equal(t, "[K comparable, V any]", spec.TypeParams)
	assert.Equal(t, "pairBuilder[K, V]", spec.Self())
	assert.Equal(t, "pair[K, V]", spec.RecordType())
	assert.Equal(t, "pairBuilderErrorFromUninitialized", spec.Build.FromUninitialized)

	// Setters stay public by default.
	require.Len(t, spec.Setters, 2)
	assert.Equal(t, "Key", spec.Setters[0].Name)
	assert.Equal(t, "K", spec.Setters[0].Param)
}

func TestEmitBuilder_CustomConstructor(t *testing.T) {
	res := resolve(t, directive.Tree{directive.Word("custom_constructor")})

	spec := EmitBuilder(&res.Record, res.Fields)
	assert.Empty(t, spec.Constructor)
}

func TestEmitBuilder_Deterministic(t *testing.T) {
	tree := directive.Tree{
		directive.String("pattern", "immutable"),
		directive.Word("try_setter"),
	}

	first := resolve(t, tree, field("Tags", directive.List("setter", directive.String("each", "tag"))))
	second := resolve(t, tree, field("Tags", directive.List("setter", directive.String("each", "tag"))))

	if diff := cmp.Diff(EmitBuilder(&first.Record, first.Fields), EmitBuilder(&second.Record, second.Fields)); diff != "" {
		t.Errorf("builder specs differ (-first +second):\n%s", diff)
	}
}

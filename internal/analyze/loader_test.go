package analyze

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const basicPkg = "builder-generator/examples/basic"

func loadBasic(t *testing.T) *Schema {
	t.Helper()

	schema, err := NewAnalyzer().LoadPackages(basicPkg)
	require.NoError(t, err)
	require.NotNil(t, schema)

	return schema
}

func TestAnalyzer_LoadPackages(t *testing.T) {
	schema := loadBasic(t)

	require.Contains(t, schema.Packages, basicPkg)

	pkg := schema.Packages[basicPkg]
	assert.Equal(t, "basic", pkg.Name)
	assert.NotEmpty(t, pkg.Dir)

	// Only struct types are records; name order comes from the package scope.
	var names []string
	for _, id := range pkg.Records {
		names = append(names, id.Name)
	}

	assert.Equal(t, []string{"Limits", "Lorem", "Pair", "Server", "internalState"}, names)
	assert.Equal(t, []string{basicPkg}, schema.PackagePaths())
	assert.Len(t, schema.RecordsIn(basicPkg), 5)
	assert.Nil(t, schema.RecordsIn("missing"))
}

func TestAnalyzer_LoremFields(t *testing.T) {
	schema := loadBasic(t)

	lorem := schema.GetRecord(TypeID{PkgPath: basicPkg, Name: "Lorem"})
	require.NotNil(t, lorem)

	assert.Equal(t, "Lorem", lorem.Name())
	assert.Equal(t, "basic", lorem.PkgName)
	assert.True(t, lorem.Exported)
	assert.False(t, lorem.IsGeneric())
	assert.Equal(t, []string{"Ipsum", "Dolor", "Tags", "Labels", "Note", "CreatedAt"}, lorem.FieldNames())

	tests := []struct {
		name string
		typ  string
		kind TypeKind
		elem string
		key  string
	}{
		{name: "Ipsum", typ: "string", kind: TypeKindBasic},
		{name: "Dolor", typ: "int", kind: TypeKindBasic},
		{name: "Tags", typ: "[]string", kind: TypeKindSlice, elem: "string"},
		{name: "Labels", typ: "map[string]string", kind: TypeKindMap, elem: "string", key: "string"},
		{name: "Note", typ: "*string", kind: TypeKindPointer, elem: "string"},
		{name: "CreatedAt", typ: "time.Time", kind: TypeKindStruct},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, ok := lorem.Field(tt.name)
			require.True(t, ok)

			assert.Equal(t, tt.typ, f.Type)
			assert.Equal(t, tt.kind, f.Kind)
			assert.Equal(t, tt.elem, f.Elem)
			assert.Equal(t, tt.key, f.Key)
			assert.Equal(t, i, f.Index)
			assert.True(t, f.Exported)
		})
	}

	createdAt, _ := lorem.Field("CreatedAt")
	assert.True(t, createdAt.Named)
	assert.Equal(t, []Import{{Path: "time", Name: "time"}}, lorem.Imports)

	tags, _ := lorem.Field("Tags")
	assert.True(t, tags.IsCollection())
}

func TestAnalyzer_GenericRecord(t *testing.T) {
	schema := loadBasic(t)

	pair := schema.GetRecord(TypeID{PkgPath: basicPkg, Name: "Pair"})
	require.NotNil(t, pair)

	require.True(t, pair.IsGeneric())
	assert.Equal(t, []TypeParam{{Name: "K", Constraint: "comparable"}, {Name: "V", Constraint: "any"}}, pair.TypeParams)
	assert.Equal(t, "[K comparable, V any]", pair.TypeParamsDecl())
	assert.Equal(t, "[K, V]", pair.TypeArgs())

	key, ok := pair.Field("Key")
	require.True(t, ok)
	assert.Equal(t, "K", key.Type)
	assert.Equal(t, TypeKindTypeParam, key.Kind)
}

func TestAnalyzer_NestedRecordField(t *testing.T) {
	schema := loadBasic(t)

	server := schema.GetRecord(TypeID{PkgPath: basicPkg, Name: "Server"})
	require.NotNil(t, server)

	limits, ok := server.Field("Limits")
	require.True(t, ok)
	assert.Equal(t, "Limits", limits.Type)
	assert.Equal(t, TypeKindStruct, limits.Kind)
	assert.True(t, limits.Named)
	assert.Empty(t, server.Imports)

	internal := schema.GetRecord(TypeID{PkgPath: basicPkg, Name: "internalState"})
	require.NotNil(t, internal)
	assert.False(t, internal.Exported)
	assert.False(t, internal.Fields[0].Exported)
}

func TestAnalyzer_GetRecord(t *testing.T) {
	analyzer := NewAnalyzer()
	_, err := analyzer.LoadPackages(basicPkg)
	require.NoError(t, err)

	rec, err := analyzer.GetRecord(basicPkg, "Lorem")
	require.NoError(t, err)
	assert.Equal(t, "Lorem", rec.Name())

	_, err = analyzer.GetRecord(basicPkg, "ExampleKind")
	assert.Error(t, err)
}

func TestAnalyzer_LoadErrors(t *testing.T) {
	_, err := NewAnalyzer().LoadPackages("builder-generator/does/not/exist")
	assert.Error(t, err)
}

func TestTypeID_String(t *testing.T) {
	id := TypeID{PkgPath: basicPkg, Name: "Lorem"}
	assert.Equal(t, "builder-generator/examples/basic.Lorem", id.String())

	// Empty package path
	idNoPkg := TypeID{Name: "int"}
	assert.Equal(t, "int", idNoPkg.String())
}

func TestTypeKind_String(t *testing.T) {
	assert.Equal(t, "basic", TypeKindBasic.String())
	assert.Equal(t, "struct", TypeKindStruct.String())
	assert.Equal(t, "pointer", TypeKindPointer.String())
	assert.Equal(t, "slice", TypeKindSlice.String())
	assert.Equal(t, "map", TypeKindMap.String())
	assert.Equal(t, "type parameter", TypeKindTypeParam.String())
	assert.Equal(t, "unknown", TypeKindUnknown.String())
}

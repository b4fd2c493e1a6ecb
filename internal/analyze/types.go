package analyze

import (
	"sort"
	"strings"

	"builder-generator/internal/common"
)

// TypeID uniquely identifies a type by its package path and name.
type TypeID struct {
	PkgPath string // e.g., "builder-generator/examples/basic"
	Name    string // e.g., "Lorem"
}

// String returns a human-readable representation of the TypeID.
func (t TypeID) String() string {
	if t.PkgPath == "" {
		return t.Name
	}

	return t.PkgPath + "." + t.Name
}

// TypeKind is the shape of a field type, as far as the builder cares.
type TypeKind int

const (
	TypeKindUnknown   TypeKind = iota
	TypeKindBasic              // int, string, bool, etc.
	TypeKindStruct             // struct type
	TypeKindPointer            // pointer to another type
	TypeKindSlice              // slice of another type
	TypeKindArray              // array of another type
	TypeKindMap                // map from key to value type
	TypeKindInterface          // interface type
	TypeKindFunc               // func type
	TypeKindChan               // channel type
	TypeKindTypeParam          // type parameter of a generic record
)

// String returns a human-readable representation of the TypeKind.
func (k TypeKind) String() string {
	switch k {
	case TypeKindBasic:
		return "basic"
	case TypeKindStruct:
		return "struct"
	case TypeKindPointer:
		return "pointer"
	case TypeKindSlice:
		return "slice"
	case TypeKindArray:
		return "array"
	case TypeKindMap:
		return "map"
	case TypeKindInterface:
		return "interface"
	case TypeKindFunc:
		return "func"
	case TypeKindChan:
		return "chan"
	case TypeKindTypeParam:
		return "type parameter"
	default:
		return common.UnknownStr
	}
}

// Field describes a struct field of a record.
type Field struct {
	Name     string   // Go field name
	Type     string   // Type expression relative to the record package, e.g. "[]time.Time"
	Kind     TypeKind // Shape of the (underlying) field type
	Elem     string   // Pointer, slice and array element type; map value type
	Key      string   // Map key type
	Named    bool     // Whether the field type is a defined (named) type
	Exported bool     // Whether the field is exported
	Embedded bool     // Whether the field is embedded (anonymous)
	Index    int      // Field index in the struct
}

// IsCollection reports whether the field supports element-wise accumulation.
func (f *Field) IsCollection() bool {
	return f.Kind == TypeKindSlice || f.Kind == TypeKindMap
}

// TypeParam is a type parameter of a generic record.
type TypeParam struct {
	Name       string
	Constraint string
}

// Import is a package referenced by field types or type constraints.
type Import struct {
	Path string
	Name string
}

// Record describes a named struct type.
type Record struct {
	ID         TypeID
	PkgName    string
	Exported   bool
	TypeParams []TypeParam
	Fields     []Field
	Imports    []Import
}

// Name returns the record type name.
func (r *Record) Name() string {
	return r.ID.Name
}

// Field returns the named field.
func (r *Record) Field(name string) (*Field, bool) {
	for i := range r.Fields {
		if r.Fields[i].Name == name {
			return &r.Fields[i], true
		}
	}

	return nil, false
}

// FieldNames returns field names in declaration order.
func (r *Record) FieldNames() []string {
	names := make([]string, len(r.Fields))
	for i, f := range r.Fields {
		names[i] = f.Name
	}

	return names
}

// IsGeneric returns true if the record declares type parameters.
func (r *Record) IsGeneric() bool {
	return !common.IsEmpty(r.TypeParams)
}

// TypeParamsDecl returns the declaration form "[K comparable, V any]", or "".
func (r *Record) TypeParamsDecl() string {
	if !r.IsGeneric() {
		return ""
	}

	parts := make([]string, len(r.TypeParams))
	for i, tp := range r.TypeParams {
		parts[i] = tp.Name + " " + tp.Constraint
	}

	return "[" + strings.Join(parts, ", ") + "]"
}

// TypeArgs returns the instantiation form "[K, V]", or "".
func (r *Record) TypeArgs() string {
	if !r.IsGeneric() {
		return ""
	}

	parts := make([]string, len(r.TypeParams))
	for i, tp := range r.TypeParams {
		parts[i] = tp.Name
	}

	return "[" + strings.Join(parts, ", ") + "]"
}

// Schema holds all records of the loaded packages.
type Schema struct {
	// Records maps TypeID to Record for all named struct types.
	Records map[TypeID]*Record
	// Packages maps package paths to their package info.
	Packages map[string]*PackageInfo
}

// NewSchema creates a new empty Schema.
func NewSchema() *Schema {
	return &Schema{
		Records:  make(map[TypeID]*Record),
		Packages: make(map[string]*PackageInfo),
	}
}

// GetRecord returns the Record for a given TypeID, or nil if not found.
func (s *Schema) GetRecord(id TypeID) *Record {
	return s.Records[id]
}

// RecordsIn returns the records of a package in name order.
func (s *Schema) RecordsIn(pkgPath string) []*Record {
	pkg, ok := s.Packages[pkgPath]
	if !ok {
		return nil
	}

	out := make([]*Record, 0, len(pkg.Records))
	for _, id := range pkg.Records {
		out = append(out, s.Records[id])
	}

	return out
}

// PackagePaths returns the loaded package paths in sorted order.
func (s *Schema) PackagePaths() []string {
	paths := make([]string, 0, len(s.Packages))
	for p := range s.Packages {
		paths = append(paths, p)
	}

	sort.Strings(paths)

	return paths
}

// PackageInfo holds information about a loaded package.
type PackageInfo struct {
	Path    string   // Import path
	Name    string   // Package name
	Dir     string   // Directory of the package sources
	Records []TypeID // Struct types defined in this package, sorted by name
}

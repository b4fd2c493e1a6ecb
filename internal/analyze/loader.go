package analyze

import (
	"fmt"
	"go/types"
	"path/filepath"
	"sort"

	"golang.org/x/tools/go/packages"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports

// Analyzer loads Go packages and extracts record schemas.
type Analyzer struct {
	schema *Schema
	dir    string
}

// NewAnalyzer creates a new Analyzer.
func NewAnalyzer() *Analyzer {
	return &Analyzer{
		schema: NewSchema(),
	}
}

// WithDir sets the working directory patterns are resolved against.
func (a *Analyzer) WithDir(dir string) *Analyzer {
	a.dir = dir
	return a
}

// LoadPackages loads the specified packages and extracts their records.
// Patterns are standard Go package patterns (e.g., "./examples/basic").
func (a *Analyzer) LoadPackages(patterns ...string) (*Schema, error) {
	cfg := &packages.Config{
		Mode: LoadMode,
		Dir:  a.dir,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	// Check for package errors
	var errs []error
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			errs = append(errs, e)
		}
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("package errors: %v", errs)
	}

	for _, pkg := range pkgs {
		if err := a.processPackage(pkg); err != nil {
			return nil, fmt.Errorf("failed to process package %s: %w", pkg.PkgPath, err)
		}
	}

	return a.schema, nil
}

// Schema returns the records extracted so far.
func (a *Analyzer) Schema() *Schema {
	return a.schema
}

// processPackage extracts struct types from a loaded package.
func (a *Analyzer) processPackage(pkg *packages.Package) error {
	if pkg.Types == nil {
		return fmt.Errorf("no type information")
	}

	pkgInfo := &PackageInfo{
		Path: pkg.PkgPath,
		Name: pkg.Name,
	}

	if len(pkg.GoFiles) > 0 {
		pkgInfo.Dir = filepath.Dir(pkg.GoFiles[0])
	}

	scope := pkg.Types.Scope()
	for _, name := range scope.Names() {
		typeName, ok := scope.Lookup(name).(*types.TypeName)
		if !ok || typeName.IsAlias() {
			continue
		}

		named, ok := typeName.Type().(*types.Named)
		if !ok {
			continue
		}

		st, ok := named.Underlying().(*types.Struct)
		if !ok {
			continue
		}

		rec := a.analyzeRecord(pkg.Types, named, st)
		a.schema.Records[rec.ID] = rec
		pkgInfo.Records = append(pkgInfo.Records, rec.ID)
	}

	a.schema.Packages[pkg.PkgPath] = pkgInfo

	return nil
}

// analyzeRecord describes one named struct.
func (a *Analyzer) analyzeRecord(pkg *types.Package, named *types.Named, st *types.Struct) *Record {
	q := newQualifier(pkg)
	obj := named.Obj()

	rec := &Record{
		ID:       TypeID{PkgPath: pkg.Path(), Name: obj.Name()},
		PkgName:  pkg.Name(),
		Exported: obj.Exported(),
	}

	if tps := named.TypeParams(); tps != nil {
		for i := 0; i < tps.Len(); i++ {
			tp := tps.At(i)
			rec.TypeParams = append(rec.TypeParams, TypeParam{
				Name:       tp.Obj().Name(),
				Constraint: types.TypeString(tp.Constraint(), q.qualify),
			})
		}
	}

	for i := 0; i < st.NumFields(); i++ {
		v := st.Field(i)
		rec.Fields = append(rec.Fields, analyzeField(v, i, q))
	}

	rec.Imports = q.imports()

	return rec
}

// analyzeField describes one struct field.
func analyzeField(v *types.Var, index int, q *qualifier) Field {
	t := v.Type()

	f := Field{
		Name:     v.Name(),
		Type:     types.TypeString(t, q.qualify),
		Exported: v.Exported(),
		Embedded: v.Embedded(),
		Index:    index,
	}

	switch t.(type) {
	case *types.Named, *types.Alias:
		f.Named = true
	}

	if _, ok := t.(*types.TypeParam); ok {
		f.Kind = TypeKindTypeParam
		return f
	}

	switch ut := t.Underlying().(type) {
	case *types.Basic:
		f.Kind = TypeKindBasic
	case *types.Struct:
		f.Kind = TypeKindStruct
	case *types.Pointer:
		f.Kind = TypeKindPointer
		f.Elem = types.TypeString(ut.Elem(), q.qualify)
	case *types.Slice:
		f.Kind = TypeKindSlice
		f.Elem = types.TypeString(ut.Elem(), q.qualify)
	case *types.Array:
		f.Kind = TypeKindArray
		f.Elem = types.TypeString(ut.Elem(), q.qualify)
	case *types.Map:
		f.Kind = TypeKindMap
		f.Key = types.TypeString(ut.Key(), q.qualify)
		f.Elem = types.TypeString(ut.Elem(), q.qualify)
	case *types.Interface:
		f.Kind = TypeKindInterface
	case *types.Signature:
		f.Kind = TypeKindFunc
	case *types.Chan:
		f.Kind = TypeKindChan
	default:
		f.Kind = TypeKindUnknown
	}

	return f
}

// qualifier renders package-qualified names relative to the record package
// and remembers every foreign package it was asked about.
type qualifier struct {
	self *types.Package
	seen map[string]Import
}

func newQualifier(self *types.Package) *qualifier {
	return &qualifier{self: self, seen: make(map[string]Import)}
}

func (q *qualifier) qualify(p *types.Package) string {
	if p == nil || p.Path() == q.self.Path() {
		return ""
	}

	q.seen[p.Path()] = Import{Path: p.Path(), Name: p.Name()}

	return p.Name()
}

func (q *qualifier) imports() []Import {
	out := make([]Import, 0, len(q.seen))
	for _, imp := range q.seen {
		out = append(out, imp)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })

	return out
}

// GetRecord returns the Record for a struct by package path and type name.
func (a *Analyzer) GetRecord(pkgPath, typeName string) (*Record, error) {
	id := TypeID{PkgPath: pkgPath, Name: typeName}

	rec := a.schema.GetRecord(id)
	if rec == nil {
		return nil, fmt.Errorf("record %s not found", id)
	}

	return rec, nil
}

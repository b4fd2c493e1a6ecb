package plan

import (
	"builder-generator/internal/analyze"
	"builder-generator/internal/diagnostic"
	"builder-generator/internal/emit"
	"builder-generator/internal/policy"
)

// Plan is the final output of the planning pipeline. It contains everything
// needed for code generation.
type Plan struct {
	// PkgPath is the import path of the package the builders are generated into.
	PkgPath string
	// PkgName is the name of that package.
	PkgName string
	// Builders is the list of planned builders, in directive document order.
	Builders []Builder
	// Diagnostics contains all warnings and errors from planning.
	Diagnostics diagnostic.Diagnostics
}

// Builder is one planned builder.
type Builder struct {
	// Record is the schema of the built record.
	Record *analyze.Record
	// Policy is the resolved configuration of the record and its fields.
	Policy *policy.Resolved
	// Spec describes the builder to generate.
	Spec emit.BuilderSpec
}

// Builder returns the planned builder of the named record.
func (p *Plan) Builder(record string) (*Builder, bool) {
	for i := range p.Builders {
		if p.Builders[i].Record.Name() == record {
			return &p.Builders[i], true
		}
	}

	return nil, false
}

// RecordNames returns the names of the planned records.
func (p *Plan) RecordNames() []string {
	names := make([]string, len(p.Builders))
	for i, b := range p.Builders {
		names[i] = b.Record.Name()
	}

	return names
}

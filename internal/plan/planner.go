package plan

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"builder-generator/internal/analyze"
	"builder-generator/internal/diagnostic"
	"builder-generator/internal/directive"
	"builder-generator/internal/emit"
	"builder-generator/internal/match"
	"builder-generator/internal/policy"
)

// Config holds configuration for the planning process.
type Config struct {
	// AllRecords plans a builder for every struct of the package, using the
	// default policy for records without directives.
	AllRecords bool
	// StrictMode fails when any record has configuration errors.
	StrictMode bool
	// Logger receives debug traces of the resolution. Nil discards them.
	Logger *slog.Logger
}

// DefaultConfig returns the default planning configuration.
func DefaultConfig() Config {
	return Config{
		AllRecords: false,
		StrictMode: false,
	}
}

// Planner runs the planning pipeline for one package.
type Planner struct {
	schema *analyze.Schema
	doc    *directive.Document
	config Config
	logger *slog.Logger
}

// NewPlanner creates a new Planner. doc may be nil when Config.AllRecords is set.
func NewPlanner(schema *analyze.Schema, doc *directive.Document, config Config) *Planner {
	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	if doc == nil {
		doc = &directive.Document{Version: directive.DefaultVersion}
	}

	return &Planner{
		schema: schema,
		doc:    doc,
		config: config,
		logger: logger,
	}
}

// Plan resolves the directives of every record of pkgPath and returns the
// builders to generate.
func (p *Planner) Plan(pkgPath string) (*Plan, error) {
	if p.schema == nil {
		return nil, errors.New("schema is required")
	}

	info, ok := p.schema.Packages[pkgPath]
	if !ok {
		return nil, fmt.Errorf("package %q was not loaded", pkgPath)
	}

	plan := &Plan{
		PkgPath:  pkgPath,
		PkgName:  info.Name,
		Builders: []Builder{},
	}

	records := p.schema.RecordsIn(pkgPath)
	known := make([]string, len(records))

	for i, r := range records {
		known[i] = r.Name()
	}

	planned := make(map[string]bool)

	for i := range p.doc.Records {
		rd := &p.doc.Records[i]

		record := p.schema.GetRecord(analyze.TypeID{PkgPath: pkgPath, Name: rd.Name})
		if record == nil {
			plan.Diagnostics.AddErrorWithSuggestions(diagnostic.CodeUnknownRecord,
				fmt.Sprintf("package %s has no struct type %s", info.Name, rd.Name),
				rd.Name, "", match.Suggest(rd.Name, known))

			continue
		}

		planned[rd.Name] = true
		p.planRecord(plan, record, rd)
	}

	if p.config.AllRecords {
		for _, record := range records {
			if planned[record.Name()] {
				continue
			}

			p.planRecord(plan, record, nil)
		}
	}

	checkCollisions(plan, known)

	if p.config.StrictMode && plan.Diagnostics.HasErrors() {
		return plan, fmt.Errorf("strict mode: planning failed: %w", plan.Diagnostics.Error())
	}

	return plan, nil
}

// planRecord resolves one record. Records with configuration errors are
// reported and left out of the plan.
func (p *Planner) planRecord(plan *Plan, record *analyze.Record, rd *directive.RecordDirectives) {
	log := p.logger.With("record", record.Name())
	log.Debug("resolving record", "fields", len(record.Fields), "directives", rd != nil)

	resolved, diags := policy.Resolve(record, rd)
	plan.Diagnostics.Merge(diags)

	if diags.HasErrors() {
		log.Debug("skipping record with configuration errors", "errors", len(diags.Errors))
		return
	}

	for _, fp := range resolved.Fields {
		if fp.SetterEnabled && fp.FieldEnabled {
			log.Debug("deriving setter", "field", fp.Name, "setter", fp.SetterName, "pattern", fp.Pattern)
		} else {
			log.Debug("skipping setter", "field", fp.Name, "storage", fp.FieldEnabled)
		}
	}

	spec := emit.EmitBuilder(&resolved.Record, resolved.Fields)
	log.Debug("planned builder", "builder", spec.Name, "setters", len(spec.Setters),
		"clone", spec.Clone, "generated_error", spec.Error != nil)

	plan.Builders = append(plan.Builders, Builder{
		Record: record,
		Policy: resolved,
		Spec:   spec,
	})
}

// RecordsWithout returns the package records that have no directives, in
// name order.
func (p *Planner) RecordsWithout(pkgPath string) []string {
	var out []string

	for _, r := range p.schema.RecordsIn(pkgPath) {
		if _, ok := p.doc.Record(r.Name()); !ok {
			out = append(out, r.Name())
		}
	}

	slices.Sort(out)

	return out
}

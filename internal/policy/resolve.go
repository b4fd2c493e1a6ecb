package policy

import (
	"fmt"

	"builder-generator/internal/analyze"
	"builder-generator/internal/diagnostic"
	"builder-generator/internal/directive"
	"builder-generator/internal/match"
)

// Resolved is the fully determined policy of one record and its fields.
type Resolved struct {
	Record RecordPolicy  `yaml:"record"`
	Fields []FieldPolicy `yaml:"fields"`
}

// Field returns the policy of the named field, or nil.
func (r *Resolved) Field(name string) *FieldPolicy {
	for i := range r.Fields {
		if r.Fields[i].Name == name {
			return &r.Fields[i]
		}
	}

	return nil
}

// Resolve parses the directive trees of a record and resolves them against
// its schema. Fields keep declaration order. A nil rd resolves every option
// to its default.
func Resolve(record *analyze.Record, rd *directive.RecordDirectives) (*Resolved, diagnostic.Diagnostics) {
	var diags diagnostic.Diagnostics

	name := record.Name()

	if rd == nil {
		rd = &directive.RecordDirectives{Name: name}
	}

	recordOpts, d := directive.ParseRecordOptions(name, rd.Builder)
	diags.Merge(d)

	rp, d := ResolveRecord(record, recordOpts)
	diags.Merge(d)

	for _, fd := range rd.Fields {
		if _, ok := record.Field(fd.Name); ok {
			continue
		}

		msg := fmt.Sprintf("record %s has no field %s", name, fd.Name)
		if fd.Pos.Line > 0 {
			msg += " at " + fd.Pos.String()
		}

		diags.AddErrorWithSuggestions(diagnostic.CodeUnknownField, msg, name, fd.Name,
			match.Suggest(fd.Name, record.FieldNames()))
	}

	out := &Resolved{Fields: make([]FieldPolicy, 0, len(record.Fields))}

	for _, field := range record.Fields {
		fieldOpts, d := directive.ParseFieldOptions(name, field.Name, rd.Field(field.Name))
		diags.Merge(d)

		fp, d := ResolveField(field, fieldOpts, &rp)
		diags.Merge(d)

		out.Fields = append(out.Fields, fp)
	}

	diags.Merge(Complete(&rp, out.Fields))

	out.Record = rp

	return out, diags
}

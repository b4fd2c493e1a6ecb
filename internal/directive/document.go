package directive

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultVersion is the document version assumed when none is given.
const DefaultVersion = "1"

// Document is a parsed directive file: builder directives per record.
type Document struct {
	Version string             `yaml:"version,omitempty"`
	Records []RecordDirectives `yaml:"records"`
}

// RecordDirectives holds the record-scope tree and the per-field trees of
// one record. Fields are kept in declaration order of the document.
type RecordDirectives struct {
	Name    string     `yaml:"name"`
	Builder Tree       `yaml:"builder,omitempty"`
	Fields  FieldTrees `yaml:"fields,omitempty"`
	Pos     Pos        `yaml:"-"`
}

// FieldDirectives is the directive tree attached to a single field.
type FieldDirectives struct {
	Name    string
	Builder Tree
	Pos     Pos
}

// FieldTrees is the ordered list of field directive trees of a record.
type FieldTrees []FieldDirectives

// Record returns the directives for the named record.
func (d *Document) Record(name string) (*RecordDirectives, bool) {
	for i := range d.Records {
		if d.Records[i].Name == name {
			return &d.Records[i], true
		}
	}

	return nil, false
}

// RecordNames returns the names of all records in document order.
func (d *Document) RecordNames() []string {
	names := make([]string, len(d.Records))
	for i, r := range d.Records {
		names[i] = r.Name
	}

	return names
}

// Field returns the tree attached to the named field, or an empty tree.
func (r *RecordDirectives) Field(name string) Tree {
	for _, f := range r.Fields {
		if f.Name == name {
			return f.Builder
		}
	}

	return nil
}

// FieldNames returns the names of all fields with directives.
func (r *RecordDirectives) FieldNames() []string {
	names := make([]string, len(r.Fields))
	for i, f := range r.Fields {
		names[i] = f.Name
	}

	return names
}

// Validate checks the document shape: record names must be present and
// unique, field names unique per record.
func (d *Document) Validate() error {
	seen := make(map[string]bool, len(d.Records))

	for _, r := range d.Records {
		if r.Name == "" {
			return fmt.Errorf("%s: record without a name", r.Pos)
		}

		if seen[r.Name] {
			return fmt.Errorf("%s: record %q declared more than once", r.Pos, r.Name)
		}

		seen[r.Name] = true

		fields := make(map[string]bool, len(r.Fields))
		for _, f := range r.Fields {
			if fields[f.Name] {
				return fmt.Errorf("%s: field %q of record %q declared more than once", f.Pos, f.Name, r.Name)
			}

			fields[f.Name] = true
		}
	}

	return nil
}

// Format is a directive document syntax.
type Format int

const (
	FormatYAML Format = iota
	FormatHCL
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatYAML:
		return "yaml"
	case FormatHCL:
		return "hcl"
	default:
		return "unknown"
	}
}

// FormatFromPath picks the document format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".hcl":
		return FormatHCL, nil
	default:
		return 0, fmt.Errorf("unsupported directive file extension %q (want .yaml, .yml or .hcl)", filepath.Ext(path))
	}
}

// LoadFile reads and parses a directive file, picking the syntax from its
// extension.
func LoadFile(path string) (*Document, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read directive file %s: %w", path, err)
	}

	return Parse(data, path, format)
}

// Parse parses directive data in the given format.
func Parse(data []byte, filename string, format Format) (*Document, error) {
	var (
		doc *Document
		err error
	)

	switch format {
	case FormatHCL:
		doc, err = ParseHCL(data, filename)
	default:
		doc, err = ParseYAML(data, filename)
	}

	if err != nil {
		return nil, err
	}

	applyDefaults(doc)

	if err := doc.Validate(); err != nil {
		return nil, err
	}

	return doc, nil
}

func applyDefaults(doc *Document) {
	if doc.Version == "" {
		doc.Version = DefaultVersion
	}
}

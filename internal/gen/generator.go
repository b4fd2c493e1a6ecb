package gen

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"golang.org/x/tools/imports"

	"builder-generator/internal/common"
	"builder-generator/internal/plan"
)

// RuntimeImport is the import path of the runtime package used by generated code.
const RuntimeImport = "builder-generator/buildrt"

// GeneratorConfig holds configuration for code generation.
type GeneratorConfig struct {
	// OutputDir is the directory where generated files are written. It is
	// also where unformatted debug sidecars go when formatting fails.
	OutputDir string
	// FileSuffix is appended to the lower-cased record name.
	FileSuffix string
	// RuntimeImport overrides the import path of the runtime package.
	RuntimeImport string
	// GenerateComments enables doc comments on generated declarations.
	GenerateComments bool
	// Logger receives debug traces. Nil discards them.
	Logger *slog.Logger
}

// DefaultGeneratorConfig returns the default generator configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		OutputDir:        ".",
		FileSuffix:       "_builder.go",
		RuntimeImport:    RuntimeImport,
		GenerateComments: true,
	}
}

// Generator generates Go code from a plan.
type Generator struct {
	config GeneratorConfig
	logger *slog.Logger
}

// NewGenerator creates a new Generator with the given configuration.
func NewGenerator(config GeneratorConfig) *Generator {
	if config.FileSuffix == "" {
		config.FileSuffix = DefaultGeneratorConfig().FileSuffix
	}

	if config.RuntimeImport == "" {
		config.RuntimeImport = RuntimeImport
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Generator{config: config, logger: logger}
}

// GeneratedFile represents a generated Go source file.
type GeneratedFile struct {
	// Filename is the name of the file (e.g., "lorem_builder.go").
	Filename string
	// Content is the formatted Go source code.
	Content []byte
}

// Generate generates one file per planned builder, in plan order.
func (g *Generator) Generate(p *plan.Plan) ([]GeneratedFile, error) {
	files := make([]GeneratedFile, 0, len(p.Builders))

	for i := range p.Builders {
		b := &p.Builders[i]

		file, err := g.generateBuilder(p, b)
		if err != nil {
			return nil, fmt.Errorf("generating builder for %s: %w", b.Record.Name(), err)
		}

		g.logger.Debug("generated builder", "record", b.Record.Name(), "file", file.Filename, "bytes", len(file.Content))

		files = append(files, *file)
	}

	return files, nil
}

// generateBuilder renders and formats the file of one builder.
func (g *Generator) generateBuilder(p *plan.Plan, b *plan.Builder) (*GeneratedFile, error) {
	data := g.buildTemplateData(p, b)

	var buf bytes.Buffer
	if err := builderTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}

	formatted, err := imports.Process(data.Filename, buf.Bytes(), &imports.Options{
		Comments:  true,
		TabIndent: true,
		TabWidth:  8,
	})
	if err != nil {
		// Best-effort: write unformatted code to a sidecar file to aid debugging.
		if g.config.OutputDir != "" {
			_ = writeDebugUnformatted(g.config.OutputDir, data.Filename, buf.Bytes())
		}

		return &GeneratedFile{
			Filename: data.Filename,
			Content:  buf.Bytes(),
		}, fmt.Errorf("formatting code: %w (unformatted code returned)", err)
	}

	return &GeneratedFile{
		Filename: data.Filename,
		Content:  formatted,
	}, nil
}

// Filename returns the name of the file generated for a record.
func (g *Generator) Filename(record string) string {
	return strings.ToLower(record) + g.config.FileSuffix
}

// importSpec represents an import statement.
type importSpec struct {
	Alias string
	Path  string
}

// collectImports lists every package the builder file may use. Unused ones
// are removed when the file is formatted.
func (g *Generator) collectImports(b *plan.Builder) []importSpec {
	seen := make(map[string]bool)

	var out []importSpec

	add := func(alias, pkgPath string) {
		if pkgPath == "" || seen[pkgPath] || pkgPath == b.Record.ID.PkgPath {
			return
		}

		seen[pkgPath] = true

		if alias == common.PkgAlias(pkgPath) {
			alias = ""
		}

		out = append(out, importSpec{Alias: alias, Path: pkgPath})
	}

	for _, std := range []string{"fmt", "maps", "slices", "strings"} {
		add("", std)
	}

	for _, imp := range b.Record.Imports {
		add(imp.Name, imp.Path)
	}

	add("buildrt", g.config.RuntimeImport)

	return out
}

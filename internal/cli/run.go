package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"path/filepath"

	"github.com/davecgh/go-spew/spew"

	"builder-generator/internal/analyze"
	"builder-generator/internal/diagnostic"
	"builder-generator/internal/directive"
	"builder-generator/internal/gen"
	"builder-generator/internal/plan"
)

// DefaultDirectives is the directive file looked up in the package directory.
const DefaultDirectives = "builder.yaml"

var dumpConfig = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// Run executes the generation pipeline for one package. Reports go to stdout,
// logs and diagnostics to stderr.
func Run(config *Config, stdout, stderr io.Writer) error {
	logger := NewLogger(config.LogLevel, config.LogFormat, stderr)

	logger.Debug("loading package", "pattern", config.Pkg, "dir", config.Dir)

	schema, err := analyze.NewAnalyzer().WithDir(config.Dir).LoadPackages(config.Pkg)
	if err != nil {
		return fmt.Errorf("loading %s: %w", config.Pkg, err)
	}

	paths := schema.PackagePaths()
	if len(paths) != 1 {
		return &ExitError{
			Code:    ExitUsage,
			Message: fmt.Sprintf("-pkg %q matched %d packages; exactly one is needed", config.Pkg, len(paths)),
		}
	}

	pkgPath := paths[0]
	info := schema.Packages[pkgPath]

	doc, err := loadDirectives(config, info.Dir, logger)
	if err != nil {
		return err
	}

	planner := plan.NewPlanner(schema, doc, plan.Config{
		AllRecords: config.AllRecords,
		StrictMode: config.Strict,
		Logger:     logger,
	})

	p, err := planner.Plan(pkgPath)
	if p != nil {
		reportDiagnostics(stderr, p.Diagnostics, logger)
	}

	if err != nil {
		return &ExitError{Code: ExitFailure, Message: err.Error()}
	}

	if err := explain(config, p, stdout); err != nil {
		return err
	}

	outDir := resolvePath(config.Dir, config.OutDir)
	if outDir == "" {
		outDir = info.Dir
	}

	generator := gen.NewGenerator(gen.GeneratorConfig{
		OutputDir:        outDir,
		FileSuffix:       config.Suffix,
		RuntimeImport:    gen.RuntimeImport,
		GenerateComments: !config.NoComment,
		Logger:           logger,
	})

	files, err := generator.Generate(p)
	if err != nil {
		return fmt.Errorf("generating %s: %w", pkgPath, err)
	}

	if config.DryRun {
		for _, f := range files {
			fmt.Fprintf(stdout, "// %s\n%s\n", filepath.Join(outDir, f.Filename), f.Content)
		}
	} else {
		written, err := gen.WriteFiles(files, outDir)
		for _, path := range written {
			logger.Info("wrote builder", "file", path)
		}

		if err != nil {
			return err
		}

		logger.Debug("generation complete", "builders", len(files), "written", len(written), "unchanged", len(files)-len(written))
	}

	if n := len(p.Diagnostics.Errors); n > 0 {
		return &ExitError{Code: ExitFailure, Message: fmt.Sprintf("%d configuration error(s); affected records were not generated", n)}
	}

	return nil
}

// loadDirectives reads the directive file. A missing default file is only
// accepted when every record is planned anyway.
func loadDirectives(config *Config, pkgDir string, logger *slog.Logger) (*directive.Document, error) {
	path := resolvePath(config.Dir, config.Directives)
	explicit := path != ""

	if !explicit {
		path = filepath.Join(pkgDir, DefaultDirectives)
	}

	doc, err := directive.LoadFile(path)
	if err == nil {
		logger.Debug("loaded directives", "file", path, "records", len(doc.Records))
		return doc, nil
	}

	if !explicit && config.AllRecords && errors.Is(err, fs.ErrNotExist) {
		logger.Debug("no directive file, using defaults", "file", path)
		return nil, nil
	}

	return nil, &ExitError{Code: ExitFailure, Message: fmt.Sprintf("reading directives: %v", err)}
}

// explain prints the -dump and -explain reports.
func explain(config *Config, p *plan.Plan, stdout io.Writer) error {
	if config.Dump {
		dumpConfig.Fdump(stdout, plan.Export(p))
	}

	switch config.Explain {
	case ExplainText:
		fmt.Fprint(stdout, plan.FormatReport(plan.GenerateReport(p)))
	case ExplainYAML:
		data, err := plan.ExportYAML(p)
		if err != nil {
			return fmt.Errorf("exporting plan: %w", err)
		}

		if _, err := stdout.Write(data); err != nil {
			return err
		}
	}

	return nil
}

// reportDiagnostics prints errors and warnings; infos are logged at debug level.
func reportDiagnostics(w io.Writer, diags diagnostic.Diagnostics, logger *slog.Logger) {
	for _, d := range diags.Errors {
		fmt.Fprintf(w, "error: %s\n", d)
	}

	for _, d := range diags.Warnings {
		fmt.Fprintf(w, "warning: %s\n", d)
	}

	for _, d := range diags.Infos {
		logger.Debug(d.Message, "code", d.Code, "scope", d.Scope())
	}
}

// resolvePath joins a relative path to dir. Empty paths stay empty.
func resolvePath(dir, path string) string {
	if path == "" || dir == "" || filepath.IsAbs(path) {
		return path
	}

	return filepath.Join(dir, path)
}

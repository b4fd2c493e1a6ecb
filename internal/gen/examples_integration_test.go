package gen_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/go/packages"

	"builder-generator/internal/analyze"
	"builder-generator/internal/directive"
	"builder-generator/internal/gen"
	"builder-generator/internal/plan"
)

const basicPkgPath = "builder-generator/examples/basic"

// generateBasic plans and generates the builders of examples/basic. It
// returns the repository root, the package directory and the files.
func generateBasic(t *testing.T) (string, string, []gen.GeneratedFile) {
	t.Helper()

	repoRoot, err := filepath.Abs(filepath.Join("..", ".."))
	require.NoError(t, err)

	schema, err := analyze.NewAnalyzer().WithDir(repoRoot).LoadPackages(basicPkgPath)
	require.NoError(t, err)

	doc, err := directive.LoadFile(filepath.Join(repoRoot, "examples", "basic", "builder.yaml"))
	require.NoError(t, err)

	p, err := plan.NewPlanner(schema, doc, plan.DefaultConfig()).Plan(basicPkgPath)
	require.NoError(t, err)
	require.True(t, p.Diagnostics.IsValid(), p.Diagnostics.Error())
	assert.Equal(t, []string{"Lorem", "Pair", "Limits", "Server"}, p.RecordNames())

	config := gen.DefaultGeneratorConfig()
	config.OutputDir = t.TempDir()

	files, err := gen.NewGenerator(config).Generate(p)
	require.NoError(t, err)
	require.Len(t, files, 4)

	return repoRoot, schema.Packages[basicPkgPath].Dir, files
}

// TestExamples_TypeCheck generates the builders of examples/basic and
// type-checks the package with the generated files overlaid.
func TestExamples_TypeCheck(t *testing.T) {
	repoRoot, dir, files := generateBasic(t)

	overlay := make(map[string][]byte, len(files))

	for _, f := range files {
		overlay[filepath.Join(dir, f.Filename)] = f.Content
	}

	pkgs, err := packages.Load(&packages.Config{
		Mode:    packages.NeedName | packages.NeedTypes | packages.NeedSyntax | packages.NeedTypesInfo,
		Dir:     repoRoot,
		Overlay: overlay,
	}, basicPkgPath)
	require.NoError(t, err)
	require.Len(t, pkgs, 1)

	for _, e := range pkgs[0].Errors {
		t.Errorf("type check: %v", e)
	}

	if t.Failed() {
		for _, f := range files {
			t.Logf("generated file %s:\n%s", f.Filename, f.Content)
		}

		return
	}

	scope := pkgs[0].Types.Scope()
	for _, name := range []string{"LoremBuilder", "NewPairBuilder", "LimitsBuilderError", "ServerBuilderErrorKind"} {
		assert.NotNil(t, scope.Lookup(name), name)
	}
}

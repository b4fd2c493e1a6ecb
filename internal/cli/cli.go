package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
)

// Exit codes.
const (
	ExitFailure = 1
	ExitUsage   = 2
)

// Explain formats.
const (
	ExplainText = "text"
	ExplainYAML = "yaml"
)

// ExitError is an error that carries the process exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Config holds the parsed command line.
type Config struct {
	// Pkg is the package pattern to load, e.g. "." under go generate.
	Pkg string
	// Directives is the directive file. Empty means builder.yaml in the
	// package directory.
	Directives string
	// OutDir is where generated files go. Empty means the package directory.
	OutDir string
	// Suffix is appended to the lower-cased record name of each file.
	Suffix string
	// AllRecords plans a builder for every struct of the package.
	AllRecords bool
	// Strict fails the run on the first record with configuration errors.
	Strict bool
	// Dump prints the resolved plan with go-spew.
	Dump bool
	// Explain prints a report of the plan ("text" or "yaml").
	Explain string
	// DryRun generates without writing files.
	DryRun    bool
	NoComment bool
	LogLevel  string
	LogFormat string
	// Dir is the directory the package pattern and relative paths resolve
	// against. Empty means the process working directory.
	Dir string
}

// Parse processes command-line arguments. It returns the parsed Config, a
// boolean telling whether the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*Config, bool, error) {
	flagSet := flag.NewFlagSet("builder-generator", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
builder-generator - generates builders for Go structs from directive files.

Usage:
  builder-generator [options]

Typically run from a go:generate line:
  //go:generate go run builder-generator/cmd/builder-generator -pkg . -directives builder.yaml

Options:
`)
		flagSet.PrintDefaults()
	}

	var config Config

	flagSet.StringVar(&config.Pkg, "pkg", "", "Package pattern to load, e.g. '.' or './examples/basic'.")
	flagSet.StringVar(&config.Directives, "directives", "", "Directive file (.yaml, .yml or .hcl). Defaults to builder.yaml in the package directory.")
	flagSet.StringVar(&config.OutDir, "out", "", "Output directory. Defaults to the package directory.")
	flagSet.StringVar(&config.Suffix, "suffix", "_builder.go", "Suffix of generated file names.")
	flagSet.BoolVar(&config.AllRecords, "all", false, "Generate a builder for every struct of the package.")
	flagSet.BoolVar(&config.Strict, "strict", false, "Fail when any record has configuration errors.")
	flagSet.BoolVar(&config.Dump, "dump", false, "Dump the resolved plan.")
	flagSet.StringVar(&config.Explain, "explain", "", "Print a plan report. Options: 'text' or 'yaml'.")
	flagSet.BoolVar(&config.DryRun, "dry-run", false, "Generate without writing files.")
	flagSet.BoolVar(&config.NoComment, "no-comments", false, "Omit doc comments from generated code.")
	flagSet.StringVar(&config.LogLevel, "log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	flagSet.StringVar(&config.LogFormat, "log-format", "text", "Log output format. Options: 'text' or 'json'.")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}

		return nil, false, &ExitError{Code: ExitUsage, Message: err.Error()}
	}

	if config.Pkg == "" && flagSet.NArg() > 0 {
		config.Pkg = flagSet.Arg(0)
	}

	if config.Pkg == "" {
		flagSet.Usage()
		return nil, true, nil
	}

	if err := config.validate(); err != nil {
		return nil, false, &ExitError{Code: ExitUsage, Message: err.Error()}
	}

	return &config, false, nil
}

// validate normalizes the enumerated flags and rejects unknown values.
func (c *Config) validate() error {
	c.LogFormat = strings.ToLower(c.LogFormat)
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return errors.New("invalid log-format: must be 'text' or 'json'")
	}

	c.LogLevel = strings.ToLower(c.LogLevel)
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return errors.New("invalid log-level: must be 'debug', 'info', 'warn', or 'error'")
	}

	c.Explain = strings.ToLower(c.Explain)
	switch c.Explain {
	case "", ExplainText, ExplainYAML:
	default:
		return errors.New("invalid explain: must be 'text' or 'yaml'")
	}

	if !strings.HasSuffix(c.Suffix, ".go") {
		return fmt.Errorf("invalid suffix %q: must end in .go", c.Suffix)
	}

	return nil
}

// Package main provides the CLI entrypoint for builder-generator.
//
// builder-generator reads builder directives for the structs of one Go
// package and writes a builder type for each of them:
//   - Parses the package (go/types) to learn the struct fields
//   - Resolves YAML or HCL directives into per-field policies
//   - Generates setters, a Build method and the builder error type
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"builder-generator/internal/cli"
)

func main() {
	if err := run(os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}

		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.ExitFailure)
	}
}

// run parses args and executes the pipeline; main only maps errors to exit codes.
func run(stdout, stderr io.Writer, args []string) error {
	config, shouldExit, err := cli.Parse(args, stdout)
	if err != nil {
		return err
	}

	if shouldExit {
		return nil
	}

	return cli.Run(config, stdout, stderr)
}

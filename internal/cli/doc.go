// Package cli parses command-line arguments, validates user input and runs
// the generation pipeline: load the package, read the directives, plan the
// builders and write one file per builder. Process-level concerns such as
// exit codes are reported through ExitError.
package cli

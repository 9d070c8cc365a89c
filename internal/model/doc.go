// Package model defines the domain types and value objects for the
// mojifix CLI.
//
// It holds the per-file result (FileResult), the batch aggregate (Summary),
// the process exit codes (ExitCode), and a custom error type (CLIError)
// that carries an exit code up to the command layer.
package model

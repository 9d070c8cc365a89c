// Package cli implements the cobra-based CLI commands for mojifix.
//
// Each subcommand (fix, check, reverse) is defined in its own file within
// this package. This file defines the root command, which also runs fix when
// it is given paths directly, and handles global flags.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/mojifix/internal/model"
)

// Global flag variables shared across all subcommands.
// They are bound to persistent flags on the root command, so fix, check and
// reverse see the same values without declaring the flags again.
var (
	// jsonOutput switches command output to a JSON report on stdout.
	// Errors are then written to stderr as JSON objects as well.
	jsonOutput bool

	// verbose enables debug logging on stderr: the config file in use,
	// skipped paths and per-file mapping counts.
	verbose bool

	// configPath is an explicit config file; when empty, the working
	// directory is searched for one of config.FileNames.
	configPath string
)

// Build information, set at build time via ldflags and injected from the
// main package.
var (
	// Version is the semantic version of the binary (e.g., "1.0.0").
	Version = "dev"

	// Commit is the Git commit hash the binary was built from.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// NewRootCommand creates and configures the root cobra command.
//
// Invoked with paths, the root command behaves like "mojifix fix", which
// keeps the familiar "mojifix docs/" usage. Invoked without arguments it
// prints help and fails.
func NewRootCommand() *cobra.Command {
	flags := &batchFlags{}

	rootCmd := &cobra.Command{
		// Use is the one-line usage pattern shown in help output.
		Use:   "mojifix [file_or_directory...]",
		Short: "Repair UTF-8 mojibake in markdown files",
		Long: `mojifix repairs text that was UTF-8 encoded, misread as Windows-1252
(or Latin-1), and saved again as UTF-8: "âœ…" becomes "✅" and
"Iâ€™m" becomes "I’m".

Files that do not look double-encoded are left byte-for-byte unchanged.

Examples:
  mojifix docs/specs/file.md
  mojifix docs/
  mojifix check --json docs/`,

		// Paths are free-form; subcommand names still take precedence.
		Args: cobra.ArbitraryArgs,

		// SilenceUsage keeps cobra from printing usage on every error.
		// A failed repair is not a usage mistake.
		SilenceUsage: true,

		// SilenceErrors leaves error output to Execute, which formats it
		// as text or JSON depending on --json.
		SilenceErrors: true,

		// Version is displayed when the --version flag is used.
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),

		// PersistentPreRun runs before every subcommand, after flags are
		// parsed, so the logger sees the final --verbose value.
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			initLogger(cmd.ErrOrStderr())
		},

		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				_ = cmd.Help()
				return model.NewCLIError(model.ExitGeneralError, "no files or directories given")
			}
			return runBatch(cmd, flags, args, modeFix)
		},
	}

	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output a JSON report")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: .mojifix.{yaml,yml,json,jsonc} in the working directory)")

	// The root command accepts the same flags as fix, since it runs fix
	// when given paths.
	addBatchFlags(rootCmd, flags, true)

	// Register subcommands. Each is defined in its own file.
	rootCmd.AddCommand(NewFixCommand())
	rootCmd.AddCommand(NewCheckCommand())
	rootCmd.AddCommand(NewReverseCommand())

	return rootCmd
}

// Execute runs the root command and translates errors into exit codes.
// CLIError values carry their own code; other errors exit with 1.
func Execute(rootCmd *cobra.Command) {
	if err := rootCmd.Execute(); err != nil {
		var cliErr *model.CLIError
		if errors.As(err, &cliErr) {
			// An empty message means the command already reported the
			// outcome and only the exit code is left to apply.
			if cliErr.Message != "" || cliErr.Err != nil {
				printError(cliErr.Message, cliErr.Err)
			}
			os.Exit(int(cliErr.Code))
		}

		printError(err.Error(), nil)
		os.Exit(int(model.ExitGeneralError))
	}
}

// printError writes an error to stderr as text or JSON depending on --json.
func printError(message string, underlying error) {
	if jsonOutput {
		errObj := map[string]interface{}{
			"error": map[string]interface{}{
				"message": message,
			},
		}
		if underlying != nil {
			if errMap, ok := errObj["error"].(map[string]interface{}); ok {
				errMap["detail"] = underlying.Error()
			}
		}
		data, _ := json.MarshalIndent(errObj, "", "  ")
		fmt.Fprintln(os.Stderr, string(data))
		return
	}

	if underlying != nil {
		fmt.Fprintf(os.Stderr, "Error: %s: %v\n", message, underlying)
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", message)
	}
}

// IsJSONOutput returns whether the --json flag is set.
func IsJSONOutput() bool {
	return jsonOutput
}

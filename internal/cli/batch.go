package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/mojifix/internal/config"
	"github.com/shinji-kodama/mojifix/internal/discover"
	"github.com/shinji-kodama/mojifix/internal/model"
	"github.com/shinji-kodama/mojifix/internal/repair"
)

// batchMode selects between rewriting files and only reporting.
type batchMode int

const (
	modeFix batchMode = iota
	modeCheck
)

// batchFlags holds the flag values shared by the root, fix and check
// commands. Flags that are not set leave the config file value in place.
type batchFlags struct {
	extensions []string
	exclude    []string
	jobs       int
	strict     bool
	dryRun     bool
	only       []string
}

// addBatchFlags registers the file-selection and repair flags on cmd.
// check is always a dry run, so it does not get --dry-run.
func addBatchFlags(cmd *cobra.Command, flags *batchFlags, withDryRun bool) {
	cmd.Flags().StringSliceVarP(&flags.extensions, "ext", "e", nil,
		"File extensions to process (default: .md)")
	cmd.Flags().StringSliceVar(&flags.exclude, "exclude", nil,
		"Directory name patterns to skip while walking, replacing the config file list (e.g. node_modules,vendor*)")
	cmd.Flags().IntVarP(&flags.jobs, "jobs", "j", 1,
		"Number of files to process concurrently")
	cmd.Flags().BoolVar(&flags.strict, "strict", false,
		"Refuse repairs that leave characters above U+00FF untouched")
	cmd.Flags().StringSliceVar(&flags.only, "only", nil,
		"Only list files with these statuses: fixed, clean, unchanged, failed")
	if withDryRun {
		cmd.Flags().BoolVarP(&flags.dryRun, "dry-run", "n", false,
			"Report what would be repaired without writing")
	}
}

// resolveConfig merges defaults, the config file, and explicitly set flags.
func resolveConfig(cmd *cobra.Command, flags *batchFlags) (*config.Config, error) {
	path := configPath
	if path == "" {
		if wd, err := os.Getwd(); err == nil {
			if found, ok := config.Find(wd); ok {
				path = found
			}
		}
	}

	cfg := config.Default()
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			var cliErr *model.CLIError
			if errors.As(err, &cliErr) {
				return nil, cliErr
			}
			return nil, model.WrapCLIError(model.ExitConfigError, "invalid config file", err)
		}
		cfg = loaded
		VerboseLog("Loaded config from %s", path)
	}

	if cmd.Flags().Changed("ext") {
		cfg.Extensions = flags.extensions
	}
	if cmd.Flags().Changed("exclude") {
		cfg.Exclude = flags.exclude
	}
	if cmd.Flags().Changed("jobs") {
		cfg.Jobs = flags.jobs
	}
	if cmd.Flags().Changed("strict") {
		cfg.Strict = flags.strict
	}

	if err := cfg.Normalize(); err != nil {
		return nil, model.WrapCLIError(model.ExitConfigError, "invalid configuration", err)
	}
	return cfg, nil
}

// parseOnly converts --only values into a status filter. An empty filter
// lists every file.
func parseOnly(values []string) (map[model.FileStatus]bool, error) {
	if len(values) == 0 {
		return nil, nil
	}
	filter := make(map[model.FileStatus]bool, len(values))
	for _, v := range values {
		status, err := model.ParseFileStatus(v)
		if err != nil {
			return nil, model.WrapCLIError(model.ExitConfigError, "invalid --only value", err)
		}
		filter[status] = true
	}
	return filter, nil
}

// runBatch is the shared body of the root, fix and check commands:
// discover files, repair them, report, and map the outcome to an error.
func runBatch(cmd *cobra.Command, flags *batchFlags, args []string, mode batchMode) error {
	// Step 1: Resolve configuration and flags.
	cfg, err := resolveConfig(cmd, flags)
	if err != nil {
		return err
	}
	only, err := parseOnly(flags.only)
	if err != nil {
		return err
	}
	dryRun := mode == modeCheck || flags.dryRun

	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()

	// Step 2: Expand arguments into files.
	found := discover.Discover(args, discover.Options{
		Extensions: cfg.Extensions,
		Exclude:    cfg.Exclude,
	})
	for _, s := range found.Skipped {
		if s.Err != nil {
			VerboseLog("Skipped %s (%s): %v", s.Path, s.Reason, s.Err)
		}
	}
	if !IsJSONOutput() {
		printSkipped(out, errOut, found.Skipped, cfg)
	}

	// An empty run is reported on stdout like any other outcome; the
	// returned error only carries the exit status.
	if len(found.Files) == 0 {
		if IsJSONOutput() {
			printReportJSON(out, nil, found.Skipped, model.Summary{}, dryRun, only)
		} else {
			fmt.Fprintf(out, "No %s found to process.\n", fileNoun(cfg))
		}
		return model.NewCLIError(model.ExitGeneralError, "")
	}

	// Step 3: Repair.
	if !IsJSONOutput() {
		fmt.Fprintf(out, "Processing %d %s...\n", len(found.Files), fileNounCount(cfg))
	}
	VerboseLog("Using %d worker(s), strict=%t, dry-run=%t", cfg.Jobs, cfg.Strict, dryRun)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	results := repair.Run(ctx, found.Files, repair.Options{
		DryRun: dryRun,
		Strict: cfg.Strict,
		Jobs:   cfg.Jobs,
	})
	summary := model.Summarize(results)

	for _, r := range results {
		logger.Debug("processed file",
			"path", r.Path,
			"status", r.Status.String(),
			"windows1252", r.Mapping.Windows1252,
			"latin1", r.Mapping.Latin1,
			"passthrough", r.Mapping.Passthrough,
		)
	}

	// Step 4: Report.
	if IsJSONOutput() {
		printReportJSON(out, results, found.Skipped, summary, dryRun, only)
	} else {
		printReportText(out, errOut, results, summary, dryRun, only)
	}

	// Step 5: Map the outcome to an exit code.
	if summary.Failed > 0 {
		return model.NewCLIError(model.ExitGeneralError,
			fmt.Sprintf("%d file(s) failed", summary.Failed))
	}
	if mode == modeCheck && summary.Fixed > 0 {
		return model.NewCLIError(model.ExitGeneralError,
			fmt.Sprintf("%d file(s) need repair", summary.Fixed))
	}
	return nil
}

// fileNoun names the kind of file being processed, e.g. "markdown files".
func fileNoun(cfg *config.Config) string {
	if cfg.IsMarkdownOnly() {
		return "markdown files"
	}
	return "files"
}

// fileNounCount is fileNoun for a count, e.g. "markdown file(s)".
func fileNounCount(cfg *config.Config) string {
	if cfg.IsMarkdownOnly() {
		return "markdown file(s)"
	}
	return "file(s)"
}

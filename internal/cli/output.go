package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/docker/go-units"

	"github.com/shinji-kodama/mojifix/internal/config"
	"github.com/shinji-kodama/mojifix/internal/discover"
	"github.com/shinji-kodama/mojifix/internal/model"
)

var (
	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
)

// printSkipped reports arguments that were not queued, with the same
// wording as the original fix_encoding script: extension mismatches on
// stdout, missing paths on stderr.
func printSkipped(out, errOut io.Writer, skipped []discover.Skipped, cfg *config.Config) {
	for _, s := range skipped {
		switch s.Reason {
		case discover.SkipExtension:
			if cfg.IsMarkdownOnly() {
				fmt.Fprintf(out, "Skipping non-markdown file: %s\n", s.Path)
			} else {
				fmt.Fprintf(out, "Skipping file with unlisted extension: %s\n", s.Path)
			}
		case discover.SkipNotFound:
			fmt.Fprintf(errOut, "Path not found: %s\n", s.Path)
		case discover.SkipNotRegular:
			fmt.Fprintf(errOut, "Skipping non-regular file: %s\n", s.Path)
		default:
			fmt.Fprintf(errOut, "Cannot read %s: %v\n", s.Path, s.Err)
		}
	}
}

// StatusLabel returns the word shown before a path in the text report.
func StatusLabel(status model.FileStatus, dryRun bool) string {
	switch status {
	case model.StatusFixed:
		if dryRun {
			return "Would fix"
		}
		return "Fixed"
	case model.StatusClean:
		return "Clean"
	case model.StatusUnchanged:
		return "Unchanged"
	default:
		return "Failed"
	}
}

// printReportText writes one line per file followed by the results line.
// Unchanged and failed files also get an explanatory line on stderr.
func printReportText(out, errOut io.Writer, results []model.FileResult, summary model.Summary, dryRun bool, only map[model.FileStatus]bool) {
	for _, r := range results {
		switch r.Status {
		case model.StatusUnchanged:
			fmt.Fprintf(errOut, "Info: %s doesn't appear to have mojibake (%s)\n", r.Path, r.Reason)
		case model.StatusFailed:
			fmt.Fprintf(errOut, "Error processing %s: %s\n", r.Path, r.Reason)
		}

		if only != nil && !only[r.Status] {
			continue
		}

		mark := okStyle.Render("✓")
		if !r.Status.Succeeded() {
			mark = failStyle.Render("✗")
		}
		fmt.Fprintf(out, "%s %s: %s\n", mark, StatusLabel(r.Status, dryRun), r.Path)
	}

	fmt.Fprintf(out, "\n%s\n", FormatSummary(summary, dryRun))
}

// FormatSummary renders the final results line.
//
// Example:
//
//	Results: 3 succeeded, 1 failed (2 fixed, 4.096kB rewritten)
//	Results: 3 succeeded, 0 failed (2 would be fixed)
//	Results: 3 succeeded, 0 failed
func FormatSummary(s model.Summary, dryRun bool) string {
	line := fmt.Sprintf("Results: %d succeeded, %d failed", s.Succeeded(), s.Failed)
	if s.Fixed == 0 {
		return line
	}
	if dryRun {
		return fmt.Sprintf("%s (%d would be fixed)", line, s.Fixed)
	}
	return fmt.Sprintf("%s (%d fixed, %s rewritten)", line, s.Fixed, units.HumanSize(float64(s.BytesRewritten)))
}

// reportJSON is the --json output of the fix and check commands.
type reportJSON struct {
	DryRun  bool               `json:"dryRun"`
	Files   []model.FileResult `json:"files"`
	Skipped []discover.Skipped `json:"skipped"`
	Summary model.Summary      `json:"summary"`
}

// printReportJSON writes the whole run as one JSON document. Slices are
// never null so consumers can iterate without checks. The only filter
// narrows the files list; the summary always covers every file.
func printReportJSON(out io.Writer, results []model.FileResult, skipped []discover.Skipped, summary model.Summary, dryRun bool, only map[model.FileStatus]bool) {
	report := reportJSON{
		DryRun:  dryRun,
		Files:   make([]model.FileResult, 0, len(results)),
		Skipped: make([]discover.Skipped, 0, len(skipped)),
		Summary: summary,
	}
	for _, r := range results {
		if only != nil && !only[r.Status] {
			continue
		}
		report.Files = append(report.Files, r)
	}
	report.Skipped = append(report.Skipped, skipped...)

	data, _ := json.MarshalIndent(report, "", "  ")
	fmt.Fprintln(out, string(data))
}

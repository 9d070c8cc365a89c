// Package cli — output_test.go contains unit tests for the pure formatting
// helpers used by the fix and check commands.
package cli

import (
	"bytes"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shinji-kodama/mojifix/internal/config"
	"github.com/shinji-kodama/mojifix/internal/discover"
	"github.com/shinji-kodama/mojifix/internal/model"
)

// TestFormatSummary verifies the results line in its three shapes.
func TestFormatSummary(t *testing.T) {
	tests := []struct {
		name    string
		summary model.Summary
		dryRun  bool
		want    string
	}{
		{
			name:    "nothing fixed",
			summary: model.Summary{Total: 3, Clean: 2, Unchanged: 1},
			want:    "Results: 3 succeeded, 0 failed",
		},
		{
			name:    "fixed with bytes",
			summary: model.Summary{Total: 4, Fixed: 2, Failed: 1, Unchanged: 1, BytesRewritten: 4096},
			want:    "Results: 3 succeeded, 1 failed (2 fixed, 4.096kB rewritten)",
		},
		{
			name:    "dry run",
			summary: model.Summary{Total: 2, Fixed: 2, BytesRewritten: 100},
			dryRun:  true,
			want:    "Results: 2 succeeded, 0 failed (2 would be fixed)",
		},
		{
			name:    "empty",
			summary: model.Summary{},
			want:    "Results: 0 succeeded, 0 failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatSummary(tt.summary, tt.dryRun))
		})
	}
}

func TestStatusLabel(t *testing.T) {
	assert.Equal(t, "Fixed", StatusLabel(model.StatusFixed, false))
	assert.Equal(t, "Would fix", StatusLabel(model.StatusFixed, true))
	assert.Equal(t, "Clean", StatusLabel(model.StatusClean, true))
	assert.Equal(t, "Unchanged", StatusLabel(model.StatusUnchanged, false))
	assert.Equal(t, "Failed", StatusLabel(model.StatusFailed, false))
}

// TestPrintSkipped checks which stream each skip reason goes to.
func TestPrintSkipped(t *testing.T) {
	var out, errOut bytes.Buffer
	skipped := []discover.Skipped{
		{Path: "a.txt", Reason: discover.SkipExtension},
		{Path: "gone", Reason: discover.SkipNotFound, Err: os.ErrNotExist},
		{Path: "locked", Reason: discover.SkipUnreadable, Err: errors.New("permission denied")},
	}

	printSkipped(&out, &errOut, skipped, config.Default())
	assert.Equal(t, "Skipping non-markdown file: a.txt\n", out.String())
	assert.Contains(t, errOut.String(), "Path not found: gone\n")
	assert.Contains(t, errOut.String(), "Cannot read locked: permission denied\n")

	out.Reset()
	cfg := &config.Config{Extensions: []string{".txt"}, Jobs: 1}
	printSkipped(&out, &errOut, skipped[:1], cfg)
	assert.Equal(t, "Skipping file with unlisted extension: a.txt\n", out.String())
}

func TestParseOnly(t *testing.T) {
	filter, err := parseOnly(nil)
	assert.NoError(t, err)
	assert.Nil(t, filter)

	filter, err = parseOnly([]string{"fixed", "FAILED"})
	assert.NoError(t, err)
	assert.True(t, filter[model.StatusFixed])
	assert.True(t, filter[model.StatusFailed])
	assert.False(t, filter[model.StatusClean])

	_, err = parseOnly([]string{"nope"})
	assert.Error(t, err)
}

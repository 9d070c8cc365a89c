package cli

import (
	"github.com/spf13/cobra"
)

// NewFixCommand creates the "fix" cobra command, which repairs files in
// place.
func NewFixCommand() *cobra.Command {
	flags := &batchFlags{}

	cmd := &cobra.Command{
		Use:   "fix <file_or_directory>...",
		Short: "Repair mojibake in files, in place",
		Long: `Repair mojibake in the given files and, recursively, in matching files
inside the given directories.

A file is rewritten only when its repaired text differs from the original.
The rewrite is atomic: the file is either fully replaced or left as it was.

Examples:
  mojifix fix README.md
  mojifix fix docs/ --exclude node_modules
  mojifix fix --dry-run --ext .md,.txt notes/`,

		Args: cobra.MinimumNArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd, flags, args, modeFix)
		},
	}

	addBatchFlags(cmd, flags, true)
	return cmd
}

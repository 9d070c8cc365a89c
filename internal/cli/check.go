package cli

import (
	"github.com/spf13/cobra"
)

// NewCheckCommand creates the "check" cobra command. It reports what fix
// would do and exits non-zero when any file needs repair.
func NewCheckCommand() *cobra.Command {
	flags := &batchFlags{}

	cmd := &cobra.Command{
		Use:   "check <file_or_directory>...",
		Short: "Report files that contain mojibake without changing them",
		Long: `Scan files like "fix" does, but never write. Exits with status 1 when
at least one file would be repaired, which makes it usable as a CI gate.

Examples:
  mojifix check docs/
  mojifix check --json --only fixed docs/`,

		Args: cobra.MinimumNArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd, flags, args, modeCheck)
		},
	}

	addBatchFlags(cmd, flags, false)
	return cmd
}

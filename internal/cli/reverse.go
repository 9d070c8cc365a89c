package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/mojifix/internal/model"
	"github.com/shinji-kodama/mojifix/internal/mojibake"
)

// NewReverseCommand creates the "reverse" cobra command, a filter that
// repairs text from its arguments or from stdin.
func NewReverseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "reverse [text...]",
		Short: "Repair mojibake in text from arguments or stdin",
		Long: `Run the mojibake reverser on text and print the result. Arguments are
joined with spaces; without arguments, stdin is read to EOF.

Text that does not look double-encoded is printed unchanged.

Examples:
  mojifix reverse 'Iâ€™m testing'
  pbpaste | mojifix reverse`,

		Args: cobra.ArbitraryArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runReverse(cmd, args)
		},
	}
}

// reverseJSON is the --json output of the reverse command.
type reverseJSON struct {
	Status  string         `json:"status"`
	Text    string         `json:"text"`
	Mapping mojibake.Stats `json:"mapping"`
}

func runReverse(cmd *cobra.Command, args []string) error {
	fromArgs := len(args) > 0

	var input string
	if fromArgs {
		input = strings.Join(args, " ")
	} else {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return model.WrapCLIError(model.ExitGeneralError, "failed to read stdin", err)
		}
		input = string(data)
	}

	res, err := mojibake.Reverse(input)
	if err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "cannot reverse input", err)
	}
	if res.Status == mojibake.StatusUnchanged {
		VerboseLog("Input doesn't appear to have mojibake (invalid UTF-8 at byte %d after reversal)", res.InvalidOffset)
	}

	out := cmd.OutOrStdout()
	if IsJSONOutput() {
		data, _ := json.MarshalIndent(reverseJSON{
			Status:  res.Status.String(),
			Text:    res.Text,
			Mapping: res.Stats,
		}, "", "  ")
		fmt.Fprintln(out, string(data))
		return nil
	}

	fmt.Fprint(out, res.Text)
	if fromArgs {
		fmt.Fprintln(out)
	}
	return nil
}

package cmd

import (
	"github.com/mj1618/focus-cli/internal/output"
	"github.com/spf13/cobra"
)

var startOrFocusCmd = &cobra.Command{
	Use:   "start-or-focus <application_binary> <window_name>",
	Short: "Focus an application's most recent window, or start it",
	Long: `Focus the most recently used window matching window_name, or start
application_binary when no window matches.

window_name is a WM_CLASS type tag such as "Mail.Thunderbird": windows with
exactly that type are tried first, then any window of the application
("Thunderbird"). A name without a dot only matches by application.

Examples:
  focus-cli start-or-focus thunderbird Mail.Thunderbird
  focus-cli start-or-focus firefox Firefox`,
	Args: cobra.ExactArgs(2),
	RunE: runStartOrFocus,
}

func init() {
	rootCmd.AddCommand(startOrFocusCmd)
}

func runStartOrFocus(cmd *cobra.Command, args []string) error {
	runner, done, err := newRunner()
	if err != nil {
		return err
	}
	defer done()

	result, err := runner.StartOrFocus(cmd.Context(), args[0], args[1])
	if err != nil {
		return err
	}
	return output.Print(result)
}

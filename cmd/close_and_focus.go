package cmd

import (
	"errors"

	"github.com/mj1618/focus-cli/internal/focus"
	"github.com/mj1618/focus-cli/internal/output"
	"github.com/mj1618/focus-cli/internal/platform"
	"github.com/spf13/cobra"
)

var closeAndFocusCmd = &cobra.Command{
	Use:   "close-and-focus",
	Short: "Close the focused window and focus the previous window of the same application",
	Long: `Close the currently focused window, then focus the most recently used
remaining window of the same application, if any.

If the focused window cannot be found in the window list (it may have
just closed) nothing is closed and the command still succeeds.`,
	Args: cobra.NoArgs,
	RunE: runCloseAndFocus,
}

func init() {
	rootCmd.AddCommand(closeAndFocusCmd)
}

func runCloseAndFocus(cmd *cobra.Command, args []string) error {
	runner, done, err := newRunner()
	if err != nil {
		return err
	}
	defer done()

	return reportClose(runner.CloseAndFocus(cmd.Context()))
}

// reportClose prints the result of close-and-focus. A focused window that
// vanished before it could be closed is not a failure.
func reportClose(result focus.CloseResult, err error) error {
	if errors.Is(err, platform.ErrActiveWindowNotFound) {
		log.Warn().Err(err).Msg("nothing closed")
		return output.Print(result)
	}
	if err != nil {
		return err
	}
	return output.Print(result)
}

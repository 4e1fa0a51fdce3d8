package cmd

import (
	"fmt"

	"github.com/mj1618/focus-cli/internal/focus"
	"github.com/mj1618/focus-cli/internal/model"
	"github.com/mj1618/focus-cli/internal/output"
	"github.com/spf13/cobra"
)

var focusCmd = &cobra.Command{
	Use:   "focus",
	Short: "Bring a window to the foreground by id",
	Long:  "Focus a window by its X window id, as printed by the list command (e.g. 0x03a00007).",
	Args:  cobra.NoArgs,
	RunE:  runFocus,
}

func init() {
	rootCmd.AddCommand(focusCmd)
	focusCmd.Flags().String("id", "", "X window id, hexadecimal")
}

func runFocus(cmd *cobra.Command, args []string) error {
	raw, _ := cmd.Flags().GetString("id")
	if raw == "" {
		return fmt.Errorf("specify --id")
	}
	id, err := model.ParseWindowID(raw)
	if err != nil {
		return err
	}

	runner, done, err := newRunner()
	if err != nil {
		return err
	}
	defer done()

	w, err := runner.Focus(cmd.Context(), id)
	if err != nil {
		return err
	}
	return output.Print(focus.FocusResult{OK: true, Action: "focus", Window: w})
}

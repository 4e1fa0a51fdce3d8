package cmd

import (
	"time"

	"github.com/mj1618/focus-cli/internal/model"
	"github.com/mj1618/focus-cli/internal/output"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List windows, most recently focused first",
	Long: `List the windows known to the window manager, ranked by focus recency.

Windows missing from the stacking list are left out unless --all is given.
When the window manager publishes no stacking list, all windows are listed
in window list order with rank -1.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().String("app", "", "Filter by application (e.g. Thunderbird)")
	listCmd.Flags().String("type", "", "Filter by exact type tag (e.g. Mail.Thunderbird)")
	listCmd.Flags().Bool("all", false, "Include windows missing from the stacking list")
}

func runList(cmd *cobra.Command, args []string) error {
	app, _ := cmd.Flags().GetString("app")
	typeTag, _ := cmd.Flags().GetString("type")
	all, _ := cmd.Flags().GetBool("all")

	runner, done, err := newRunner()
	if err != nil {
		return err
	}
	defer done()

	view, err := runner.Snapshot(cmd.Context())
	if err != nil {
		return err
	}

	windows := view.Select(model.Query(app, typeTag), all)
	if windows == nil {
		windows = []model.RankedWindow{}
	}
	return output.Print(output.ListResult{
		Ranked:  view.HasRecency,
		TS:      time.Now().Unix(),
		Windows: windows,
	})
}

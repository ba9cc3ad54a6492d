package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/tasktrack/internal/config"
	"github.com/twiced-technology-gmbh/tasktrack/internal/output"
	"github.com/twiced-technology-gmbh/tasktrack/internal/store"
)

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove completed tasks",
	Long: `Removes every completed top-level task with its subtasks.
With --all, removes every task. Task IDs are never reused.`,
	Args: cobra.NoArgs,
	RunE: runClear,
}

func init() {
	clearCmd.Flags().Bool("all", false, "remove every task, not only completed ones")
	clearCmd.Flags().BoolP("yes", "y", false, "skip confirmation prompt")
	rootCmd.AddCommand(clearCmd)
}

func runClear(cmd *cobra.Command, _ []string) error {
	all, _ := cmd.Flags().GetBool("all")
	yes, _ := cmd.Flags().GetBool("yes")

	return withBoard(true, func(ctx context.Context, _ *config.Config, s *store.Store) error {
		stats := s.Stats(nowFunc())
		pending := stats.Completed
		what := "completed tasks"
		if all {
			pending = stats.Total
			what = "tasks"
		}
		if pending == 0 {
			if outputFormat() == output.FormatJSON {
				return output.JSON(os.Stdout, map[string]any{"status": "cleared", "removed": 0, "all": all})
			}
			output.Messagef(os.Stdout, "No %s to clear", what)
			return nil
		}

		ok, err := confirm(fmt.Sprintf("Remove %d %s", pending, what), yes)
		if err != nil || !ok {
			return err
		}

		var n int
		if all {
			n, err = s.ClearAll(ctx)
		} else {
			n, err = s.ClearCompleted(ctx)
		}
		if err = checkSaved(err); err != nil {
			return err
		}

		if outputFormat() == output.FormatJSON {
			return output.JSON(os.Stdout, map[string]any{"status": "cleared", "removed": n, "all": all})
		}
		output.Messagef(os.Stdout, "Removed %d %s", n, what)
		return nil
	})
}

package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/tasktrack/internal/config"
	"github.com/twiced-technology-gmbh/tasktrack/internal/output"
	"github.com/twiced-technology-gmbh/tasktrack/internal/store"
)

var toggleCmd = &cobra.Command{
	Use:     "toggle ID[,ID,...]",
	Aliases: []string{"done"},
	Short:   "Toggle task completion",
	Long: `Completes an open task, or reopens a completed one as not_started.
Completing a task completes its subtasks; reopening resets them. Completing
the last open subtask completes the parent.`,
	Args: cobra.ExactArgs(1),
	RunE: runToggle,
}

func init() {
	rootCmd.AddCommand(toggleCmd)
}

func runToggle(_ *cobra.Command, args []string) error {
	ids, err := parseIDs(args[0])
	if err != nil {
		return err
	}

	return withBoard(true, func(ctx context.Context, _ *config.Config, s *store.Store) error {
		toggle := func(id int) error {
			if _, err := requireTask(s, id); err != nil {
				return err
			}
			_, err := s.ToggleTask(ctx, id)
			return checkSaved(err)
		}

		if len(ids) > 1 {
			return runBatch(ids, toggle)
		}

		if err := toggle(ids[0]); err != nil {
			return err
		}
		t := s.FindByID(ids[0])
		if outputFormat() == output.FormatJSON {
			return output.JSON(os.Stdout, t)
		}
		output.Messagef(os.Stdout, "Task #%d is now %s", t.ID, t.Status)
		if parent := s.Parent(t.ID); parent != nil && parent.Completed && t.Completed {
			output.Messagef(os.Stdout, "  Parent #%d is %s", parent.ID, parent.Status)
		}
		return nil
	})
}

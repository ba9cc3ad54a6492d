package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/tasktrack/internal/clierr"
	"github.com/twiced-technology-gmbh/tasktrack/internal/config"
	"github.com/twiced-technology-gmbh/tasktrack/internal/output"
	"github.com/twiced-technology-gmbh/tasktrack/internal/store"
	"github.com/twiced-technology-gmbh/tasktrack/internal/task"
)

var moveCmd = &cobra.Command{
	Use:   "move ID[,ID,...] [STATUS]",
	Short: "Move a task to a different status",
	Long: `Changes the status of a task. Provide the new status directly
(not_started, in_progress, completed), or use --next/--prev to move along
the board columns. Multiple IDs can be provided as a comma-separated list.`,
	Args: cobra.RangeArgs(1, 2), //nolint:mnd // 1 or 2 positional args
	RunE: runMove,
}

func init() {
	moveCmd.Flags().Bool("next", false, "move to next status")
	moveCmd.Flags().Bool("prev", false, "move to previous status")
	rootCmd.AddCommand(moveCmd)
}

// moveResult wraps a task with a changed flag for JSON output.
type moveResult struct {
	*task.Task
	Changed bool `json:"changed"`
}

func runMove(cmd *cobra.Command, args []string) error {
	ids, err := parseIDs(args[0])
	if err != nil {
		return err
	}

	return withBoard(true, func(ctx context.Context, _ *config.Config, s *store.Store) error {
		// Single ID: full output.
		if len(ids) == 1 {
			return moveSingleTask(ctx, s, ids[0], cmd, args)
		}

		// Batch mode.
		return runBatch(ids, func(id int) error {
			_, _, err := executeMove(ctx, s, id, cmd, args)
			return err
		})
	})
}

func moveSingleTask(ctx context.Context, s *store.Store, id int, cmd *cobra.Command, args []string) error {
	t, oldStatus, err := executeMove(ctx, s, id, cmd, args)
	if err != nil {
		return err
	}

	changed := oldStatus != ""
	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, moveResult{Task: t, Changed: changed})
	}
	if !changed {
		output.Messagef(os.Stdout, "Task #%d is already at %s", t.ID, t.Status)
		return nil
	}
	output.Messagef(os.Stdout, "Moved task #%d: %s -> %s", id, oldStatus, t.Status)
	return nil
}

// executeMove resolves the target status and applies it. If the task was
// already there, oldStatus is empty and nothing is written.
func executeMove(ctx context.Context, s *store.Store, id int, cmd *cobra.Command, args []string) (*task.Task, task.Status, error) {
	t, err := requireTask(s, id)
	if err != nil {
		return nil, "", err
	}

	newStatus, err := resolveTargetStatus(cmd, args, t)
	if err != nil {
		return nil, "", err
	}

	if t.Status == newStatus {
		return t, "", nil
	}

	oldStatus := t.Status
	t, err = s.UpdateTaskStatus(ctx, id, newStatus)
	if err = checkSaved(err); err != nil {
		return nil, "", err
	}
	return t, oldStatus, nil
}

func resolveTargetStatus(cmd *cobra.Command, args []string, t *task.Task) (task.Status, error) {
	next, _ := cmd.Flags().GetBool("next")
	prev, _ := cmd.Flags().GetBool("prev")

	switch {
	case len(args) == 2: //nolint:mnd // positional arg
		return task.ParseStatus(args[1])
	case next:
		idx := t.Status.Index()
		if idx < 0 || idx >= len(task.Statuses)-1 {
			return "", task.ValidateBoundaryError(t.ID, t.Status, "last")
		}
		return task.Statuses[idx+1], nil
	case prev:
		idx := t.Status.Index()
		if idx <= 0 {
			return "", task.ValidateBoundaryError(t.ID, t.Status, "first")
		}
		return task.Statuses[idx-1], nil
	default:
		return "", clierr.New(clierr.InvalidInput, "provide a target status or use --next/--prev")
	}
}

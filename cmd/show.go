package cmd

import (
	"context"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/tasktrack/internal/config"
	"github.com/twiced-technology-gmbh/tasktrack/internal/output"
	"github.com/twiced-technology-gmbh/tasktrack/internal/store"
	"github.com/twiced-technology-gmbh/tasktrack/internal/task"
)

var showCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Show task details",
	Long:  `Displays full details of a single task or subtask, including its subtasks.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(_ *cobra.Command, args []string) error {
	id, err := strconv.Atoi(strings.TrimPrefix(args[0], "#"))
	if err != nil {
		return task.ValidateTaskID(args[0])
	}

	return withBoard(false, func(_ context.Context, _ *config.Config, s *store.Store) error {
		t, err := requireTask(s, id)
		if err != nil {
			return err
		}

		switch outputFormat() {
		case output.FormatJSON:
			return output.JSON(os.Stdout, t)
		case output.FormatCompact:
			output.TaskDetailCompact(os.Stdout, t)
		default:
			output.TaskDetail(os.Stdout, t, s.Parent(id))
		}
		return nil
	})
}

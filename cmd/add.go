package cmd

import (
	"context"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/twiced-technology-gmbh/tasktrack/internal/config"
	"github.com/twiced-technology-gmbh/tasktrack/internal/output"
	"github.com/twiced-technology-gmbh/tasktrack/internal/store"
	"github.com/twiced-technology-gmbh/tasktrack/internal/task"
)

var addCmd = &cobra.Command{
	Use:     "add TEXT...",
	Aliases: []string{"create"},
	Short:   "Add a task or subtask",
	Long: `Adds a task at the top of the list. With --parent, adds a subtask to the
given top-level task instead. Multiple arguments are joined with spaces.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

func init() {
	addCmd.Flags().SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		switch name {
		case "subtask-of", "to":
			name = "parent"
		}
		return pflag.NormalizedName(name)
	})
	addCmd.Flags().IntP("parent", "p", 0, "parent task ID (adds a subtask)")
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	text := strings.Join(args, " ")
	parent, _ := cmd.Flags().GetInt("parent")

	return withBoard(true, func(ctx context.Context, _ *config.Config, s *store.Store) error {
		var (
			t   *task.Task
			err error
		)
		if cmd.Flags().Changed("parent") {
			t, err = s.AddSubtask(ctx, parent, text)
		} else {
			t, err = s.AddTask(ctx, text)
		}
		if err = checkSaved(err); err != nil {
			return err
		}

		if outputFormat() == output.FormatJSON {
			return output.JSON(os.Stdout, t)
		}
		if t.ParentID != nil {
			output.Messagef(os.Stdout, "Added subtask #%d to #%d: %s", t.ID, *t.ParentID, t.Text)
			return nil
		}
		output.Messagef(os.Stdout, "Added task #%d: %s", t.ID, t.Text)
		return nil
	})
}

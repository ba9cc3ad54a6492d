package cmd

import (
	"context"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/tasktrack/internal/clierr"
	"github.com/twiced-technology-gmbh/tasktrack/internal/config"
	"github.com/twiced-technology-gmbh/tasktrack/internal/output"
	"github.com/twiced-technology-gmbh/tasktrack/internal/store"
	"github.com/twiced-technology-gmbh/tasktrack/internal/task"
	"github.com/twiced-technology-gmbh/tasktrack/internal/view"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tasks",
	Long: `Lists top-level tasks with their subtasks. The saved filter (see
'tasktrack filter') applies unless --filter overrides it for this call.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringP("filter", "f", "", "completion filter (all, pending, completed)")
	listCmd.Flags().StringSlice("status", nil, "filter by status (comma-separated)")
	listCmd.Flags().StringP("search", "s", "", "search task and subtask text (case-insensitive)")
	listCmd.Flags().String("sort", "", "sort field ("+strings.Join(view.SortFields, ", ")+"); default is newest first")
	listCmd.Flags().BoolP("reverse", "r", false, "reverse sort order")
	listCmd.Flags().IntP("limit", "n", 0, "limit number of results")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	filterFlag, _ := cmd.Flags().GetString("filter")
	statusFlags, _ := cmd.Flags().GetStringSlice("status")
	search, _ := cmd.Flags().GetString("search")
	sortBy, _ := cmd.Flags().GetString("sort")
	reverse, _ := cmd.Flags().GetBool("reverse")
	limit, _ := cmd.Flags().GetInt("limit")

	if sortBy != "" && !slices.Contains(view.SortFields, sortBy) {
		return clierr.Newf(clierr.InvalidInput, "invalid --sort field %q; valid: %s",
			sortBy, strings.Join(view.SortFields, ", "))
	}

	statuses := make([]task.Status, 0, len(statusFlags))
	for _, v := range statusFlags {
		st, err := task.ParseStatus(v)
		if err != nil {
			return err
		}
		statuses = append(statuses, st)
	}

	return withBoard(false, func(_ context.Context, cfg *config.Config, s *store.Store) error {
		ctrl := view.Load(cfg.Dir())
		if filterFlag != "" {
			if err := ctrl.SetFilter(filterFlag); err != nil {
				return err
			}
		}

		tasks := view.Filter(ctrl.Visible(s), view.FilterOptions{Statuses: statuses, Search: search})
		view.Sort(tasks, sortBy, reverse)
		if limit > 0 && len(tasks) > limit {
			tasks = tasks[:limit]
		}

		return outputTaskList(tasks)
	})
}

func outputTaskList(tasks []*task.Task) error {
	switch outputFormat() {
	case output.FormatJSON:
		return output.JSON(os.Stdout, tasks)
	case output.FormatCompact:
		output.TaskCompact(os.Stdout, tasks)
	default:
		output.TaskTable(os.Stdout, tasks)
	}
	return nil
}

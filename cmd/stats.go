package cmd

import (
	"context"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/tasktrack/internal/clierr"
	"github.com/twiced-technology-gmbh/tasktrack/internal/config"
	"github.com/twiced-technology-gmbh/tasktrack/internal/date"
	"github.com/twiced-technology-gmbh/tasktrack/internal/output"
	"github.com/twiced-technology-gmbh/tasktrack/internal/store"
	"github.com/twiced-technology-gmbh/tasktrack/internal/view"
)

// nowFunc is the clock for commands that report on "today".
var nowFunc = time.Now

var statsCmd = &cobra.Command{
	Use:     "stats",
	Aliases: []string{"summary"},
	Short:   "Show board statistics",
	Long: `Displays task counts per status, completion rate, and how many tasks were
created and completed today (or on the day given with --on).`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

func init() {
	statsCmd.Flags().String("on", "", "report created/completed counts for this day (YYYY-MM-DD)")
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, _ []string) error {
	now := nowFunc()
	if on, _ := cmd.Flags().GetString("on"); on != "" {
		d, err := date.Parse(on)
		if err != nil {
			return clierr.New(clierr.InvalidInput, err.Error()).
				WithDetails(map[string]any{"on": on})
		}
		now = d.Midday(time.Local)
	}

	return withBoard(false, func(_ context.Context, cfg *config.Config, s *store.Store) error {
		summary := view.Load(cfg.Dir()).Summary(cfg.Board.Name, s, now)

		switch outputFormat() {
		case output.FormatJSON:
			return output.JSON(os.Stdout, summary)
		case output.FormatCompact:
			output.OverviewCompact(os.Stdout, summary)
		default:
			output.OverviewTable(os.Stdout, summary)
		}
		return nil
	})
}

package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/tasktrack/internal/output"
	"github.com/twiced-technology-gmbh/tasktrack/internal/view"
)

var filterCmd = &cobra.Command{
	Use:   "filter [all|pending|completed]",
	Short: "Show or set the saved list filter",
	Long:  `Without an argument, prints the saved filter. With one, saves it for 'list' and the TUI.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return updateView(args, func(c *view.Controller, v string) error { return c.SetFilter(v) })
	},
}

var viewCmd = &cobra.Command{
	Use:   "view [list|board]",
	Short: "Show or set the saved TUI layout",
	Long:  `Without an argument, prints the saved view mode. With one, saves it for the TUI.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return updateView(args, func(c *view.Controller, v string) error { return c.SetMode(v) })
	},
}

func init() {
	rootCmd.AddCommand(filterCmd)
	rootCmd.AddCommand(viewCmd)
}

// updateView loads the saved view state, applies set when an argument was
// given, and prints the result.
func updateView(args []string, set func(*view.Controller, string) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctrl := view.Load(cfg.Dir())
	if len(args) == 1 {
		if err := set(ctrl, args[0]); err != nil {
			return err
		}
		if err := ctrl.Save(cfg.Dir()); err != nil {
			return err
		}
	}

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, ctrl)
	}
	output.Messagef(os.Stdout, "filter: %s", ctrl.Filter)
	output.Messagef(os.Stdout, "view:   %s", ctrl.Mode)
	return nil
}

package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/tasktrack/internal/config"
	"github.com/twiced-technology-gmbh/tasktrack/internal/output"
	"github.com/twiced-technology-gmbh/tasktrack/internal/store"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write a JSON backup of all tasks",
	Long: `Writes every task with its subtasks to tasks_backup_YYYY-MM-DD.json in the
current directory, or to the file given with --output. Use "-" for stdout.`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringP("output", "o", "", "output file (default tasks_backup_YYYY-MM-DD.json, - for stdout)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	path, _ := cmd.Flags().GetString("output")

	return withBoard(false, func(_ context.Context, _ *config.Config, s *store.Store) error {
		now := nowFunc()
		if path == "-" {
			return s.Export(os.Stdout, now)
		}
		if path == "" {
			path = store.ExportFileName(now)
		}

		f, err := os.Create(path) //nolint:gosec // user-chosen export path
		if err != nil {
			return fmt.Errorf("creating export file: %w", err)
		}
		if err := s.Export(f, now); err != nil {
			_ = f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("closing export file: %w", err)
		}

		abs, _ := filepath.Abs(path)
		if outputFormat() == output.FormatJSON {
			return output.JSON(os.Stdout, map[string]any{
				"status": "exported",
				"file":   abs,
				"tasks":  len(s.Tasks()),
			})
		}
		output.Messagef(os.Stdout, "Exported %d tasks to %s", len(s.Tasks()), abs)
		return nil
	})
}

package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/tasktrack/internal/clierr"
	"github.com/twiced-technology-gmbh/tasktrack/internal/config"
	"github.com/twiced-technology-gmbh/tasktrack/internal/output"
	"github.com/twiced-technology-gmbh/tasktrack/internal/storage"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new task board",
	Long: `Creates a .tasktrack directory in the current directory (or --dir) holding
config.yml and an empty task store.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	initCmd.Flags().String("name", "", "board name (defaults to current directory name)")
	initCmd.Flags().String("backend", config.DefaultBackend, "storage backend ("+strings.Join(storage.Backends, ", ")+")")
	initCmd.Flags().Int("max-length", config.DefaultTextLimit, "maximum task and subtask text length")
	initCmd.Flags().Int("title-lines", config.DefaultTitleLines, "text lines shown per card in the TUI board")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, _ []string) error {
	dir := flagDir
	if dir == "" {
		dir = config.DefaultDir
	}
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("resolving path: %w", err)
	}
	if config.Exists(absDir) {
		return clierr.Newf(clierr.BoardAlreadyExists, "board already initialized in %s", absDir).
			WithDetails(map[string]any{"dir": absDir})
	}

	name, _ := cmd.Flags().GetString("name")
	if name == "" {
		name = defaultBoardName(absDir)
	}

	cfg := config.NewDefault(name)
	cfg.SetDir(absDir)
	cfg.Storage.Backend, _ = cmd.Flags().GetString("backend")
	cfg.Limits.TaskText, _ = cmd.Flags().GetInt("max-length")
	cfg.Limits.SubtaskText = cfg.Limits.TaskText
	cfg.TUI.TitleLines, _ = cmd.Flags().GetInt("title-lines")
	if err := cfg.Validate(); err != nil {
		return clierr.New(clierr.InvalidInput, err.Error())
	}
	if err := cfg.Create(); err != nil {
		return err
	}

	// Opening the backend once creates the SQLite schema up front.
	backend, err := storage.Open(context.Background(), cfg.StorageOptions())
	if err != nil {
		return clierr.Storage("creating storage", err)
	}
	_ = backend.Close()

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, map[string]any{
			"status":  "initialized",
			"dir":     absDir,
			"name":    name,
			"config":  cfg.ConfigPath(),
			"backend": cfg.Storage.Backend,
			"data":    cfg.StorageOptions().Path(),
		})
	}

	output.Messagef(os.Stdout, "Initialized board %q in %s", name, absDir)
	output.Messagef(os.Stdout, "  Config:  %s", cfg.ConfigPath())
	output.Messagef(os.Stdout, "  Storage: %s (%s)", cfg.Storage.Backend, cfg.StorageOptions().Path())
	output.Messagef(os.Stdout, "  Limit:   %d characters", cfg.Limits.TaskText)
	return nil
}

// defaultBoardName names a board after the project holding it: the parent
// of a .tasktrack directory, otherwise the directory itself.
func defaultBoardName(absDir string) string {
	if filepath.Base(absDir) == config.DefaultDir {
		return filepath.Base(filepath.Dir(absDir))
	}
	return filepath.Base(absDir)
}

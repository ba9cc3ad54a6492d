// Package cmd implements the tasktrack CLI commands.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/tasktrack/internal/activity"
	"github.com/twiced-technology-gmbh/tasktrack/internal/clierr"
	"github.com/twiced-technology-gmbh/tasktrack/internal/config"
	"github.com/twiced-technology-gmbh/tasktrack/internal/filelock"
	"github.com/twiced-technology-gmbh/tasktrack/internal/output"
	"github.com/twiced-technology-gmbh/tasktrack/internal/storage"
	"github.com/twiced-technology-gmbh/tasktrack/internal/store"
	"github.com/twiced-technology-gmbh/tasktrack/internal/task"
)

// version is set at build time via ldflags.
var version = "dev"

// envDir names the environment variable that overrides board discovery.
const envDir = "TASKTRACK_DIR"

// lockTimeout bounds how long a mutating command waits for another one.
const lockTimeout = 5 * time.Second

// Global flags.
var (
	flagJSON    bool
	flagTable   bool
	flagCompact bool
	flagDir     string
	flagNoColor bool
)

var rootCmd = &cobra.Command{
	Use:   "tasktrack",
	Short: "Task list with subtasks and a status board",
	Long: `tasktrack keeps a list of tasks and one level of subtasks, each in one of
three statuses: not_started, in_progress, completed.
Run tasktrack without arguments to open the TUI.`,
	Version:       version,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE:          runTUI,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if flagNoColor || os.Getenv("NO_COLOR") != "" {
			output.DisableColor()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVar(&flagTable, "table", false, "output as table")
	rootCmd.PersistentFlags().BoolVar(&flagCompact, "compact", false, "compact one-line-per-record output")
	rootCmd.PersistentFlags().BoolVar(&flagCompact, "oneline", false, "alias for --compact")
	rootCmd.PersistentFlags().StringVar(&flagDir, "dir", "", "path to board directory (env "+envDir+")")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable color output")
}

// Execute runs the root command.
func Execute() {
	_, err := rootCmd.ExecuteC()
	if err == nil {
		return
	}

	// Handle SilentError: exit with code, no output.
	var silent *clierr.SilentError
	if errors.As(err, &silent) {
		os.Exit(silent.Code)
	}

	if outputFormat() == output.FormatJSON {
		os.Exit(output.JSONError(os.Stdout, err))
	}

	fmt.Fprintln(os.Stderr, "Error:", err)
	var cliErr *clierr.Error
	if errors.As(err, &cliErr) {
		os.Exit(cliErr.ExitCode())
	}
	os.Exit(1)
}

// defaultHomeDir returns the path to ~/.config/tasktrack.
func defaultHomeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".config", config.HomeDirName), nil
}

// resolveDir returns the board directory: --dir, then $TASKTRACK_DIR, then
// the nearest .tasktrack above the working directory, then the home board.
func resolveDir() (string, error) {
	if flagDir != "" {
		return flagDir, nil
	}
	if env := os.Getenv(envDir); env != "" {
		return env, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting working directory: %w", err)
	}

	dir, err := config.FindDir(cwd)
	if err == nil {
		return dir, nil
	}

	// Fall back to ~/.config/tasktrack.
	return defaultHomeDir()
}

// loadConfig finds and loads the board config. The home board is created
// on first use; any other missing board is BOARD_NOT_FOUND.
func loadConfig() (*config.Config, error) {
	dir, err := resolveDir()
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(dir)
	if err == nil {
		return cfg, nil
	}
	if !errors.Is(err, config.ErrNotFound) {
		return nil, err
	}

	homeDir, homeErr := defaultHomeDir()
	if homeErr != nil || dir != homeDir {
		return nil, clierr.Newf(clierr.BoardNotFound,
			"no task board in %s (run 'tasktrack init' to create one)", dir).
			WithDetails(map[string]any{"dir": dir})
	}
	return config.Init(homeDir, "tasktrack")
}

// openStore opens the board's task store with activity logging wired in.
func openStore(ctx context.Context, cfg *config.Config) (*store.Store, error) {
	backend, err := storage.Open(ctx, cfg.StorageOptions())
	if err != nil {
		return nil, clierr.Storage("opening storage", err)
	}
	s, err := store.Open(ctx, backend, store.Options{
		MaxTextLength:    cfg.Limits.TaskText,
		MaxSubtaskLength: cfg.Limits.SubtaskText,
		Recorder:         activity.New(cfg.Dir()),
	})
	if err != nil {
		_ = backend.Close()
		return nil, clierr.Storage("", err)
	}
	printWarnings(s)
	return s, nil
}

// withBoard loads the config and store and runs fn. Mutating commands
// pass locked so the read-modify-write is serialized across processes.
func withBoard(locked bool, fn func(ctx context.Context, cfg *config.Config, s *store.Store) error) error {
	ctx := context.Background()
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if locked {
		lockCtx, cancel := context.WithTimeout(ctx, lockTimeout)
		lock, err := filelock.Acquire(lockCtx, cfg.LockPath())
		cancel()
		if err != nil {
			return fmt.Errorf("acquiring lock: %w", err)
		}
		defer lock.Release() //nolint:errcheck // best-effort unlock on exit
	}

	s, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	return fn(ctx, cfg, s)
}

// outputFormat returns the detected output format from flags/env.
func outputFormat() output.Format {
	return output.Detect(flagJSON, flagTable, flagCompact)
}

// printWarnings writes load warnings to stderr.
func printWarnings(s *store.Store) {
	for _, w := range s.Warnings() {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", w)
	}
}

// checkSaved turns a persistence failure into STORAGE_FAILURE. The
// process exits right after, so the in-memory change would be lost.
func checkSaved(err error) error {
	if err == nil || !store.IsSaveError(err) {
		return err
	}
	return clierr.Storage("", err)
}

// requireTask returns the task with id, or TASK_NOT_FOUND.
func requireTask(s *store.Store, id int) (*task.Task, error) {
	t := s.FindByID(id)
	if t == nil {
		return nil, task.ValidateTaskNotFound(id)
	}
	return t, nil
}

// parseIDs splits a comma-separated ID string into deduplicated int IDs.
func parseIDs(arg string) ([]int, error) {
	parts := strings.Split(arg, ",")
	ids := make([]int, 0, len(parts))
	seen := make(map[int]bool, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		id, err := strconv.Atoi(strings.TrimPrefix(p, "#"))
		if err != nil || id < 1 {
			return nil, task.ValidateTaskID(p)
		}
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// runBatch executes fn for each ID and reports every outcome. Returns a
// SilentError with exit code 1 if any operation failed.
func runBatch(ids []int, fn func(int) error) error {
	results := make([]output.BatchResult, 0, len(ids))
	for _, id := range ids {
		results = append(results, output.NewBatchResult(id, fn(id)))
	}

	failed := 0
	if outputFormat() == output.FormatJSON {
		if err := output.JSON(os.Stdout, results); err != nil {
			return err
		}
		for _, r := range results {
			if !r.OK {
				failed++
			}
		}
	} else {
		failed = output.BatchSummary(os.Stdout, os.Stderr, results)
	}

	if failed > 0 {
		return &clierr.SilentError{Code: 1}
	}
	return nil
}

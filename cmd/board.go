package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/twiced-technology-gmbh/tasktrack/internal/config"
	"github.com/twiced-technology-gmbh/tasktrack/internal/output"
	"github.com/twiced-technology-gmbh/tasktrack/internal/store"
	"github.com/twiced-technology-gmbh/tasktrack/internal/view"
	"github.com/twiced-technology-gmbh/tasktrack/internal/watcher"
)

var flagWatch bool

const defaultBoardWidth = 96

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Show tasks as status columns",
	Long: `Displays top-level tasks in three columns: Not Started, In Progress
and Completed. The board always shows every task regardless of the saved filter.

Use --watch to keep the display live-updating. The board re-renders
automatically whenever the task data changes on disk (e.g., from another
terminal). Press Ctrl+C to stop.`,
	Args: cobra.NoArgs,
	RunE: runBoard,
}

func init() {
	rootCmd.AddCommand(boardCmd)
	boardCmd.Flags().BoolVarP(&flagWatch, "watch", "w", false, "live-update the board on file changes")
}

func runBoard(_ *cobra.Command, _ []string) error {
	return withBoard(false, func(ctx context.Context, cfg *config.Config, s *store.Store) error {
		// Render once.
		if err := renderBoard(s); err != nil {
			return err
		}

		if !flagWatch {
			return nil
		}

		return watchBoard(ctx, cfg, s)
	})
}

func renderBoard(s *store.Store) error {
	cols := view.New().Buckets(s)

	switch outputFormat() {
	case output.FormatJSON:
		return output.JSON(os.Stdout, cols)
	case output.FormatCompact:
		output.BoardCompact(os.Stdout, cols)
	default:
		output.BoardTable(os.Stdout, cols, terminalWidth())
	}
	return nil
}

func watchBoard(ctx context.Context, cfg *config.Config, s *store.Store) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	w, err := watcher.New(cfg.WatchPaths(), func() {
		if err := s.Reload(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: reloading tasks: %v\n", err)
			return
		}
		printWarnings(s)
		clearScreen()
		if err := renderBoard(s); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: rendering board: %v\n", err)
		}
	})
	if err != nil {
		return fmt.Errorf("starting file watcher: %w", err)
	}
	defer w.Close()

	fmt.Fprintln(os.Stderr, "Watching for changes... (Ctrl+C to stop)")

	w.Run(ctx, func(watchErr error) {
		fmt.Fprintf(os.Stderr, "Warning: file watcher: %v\n", watchErr)
	})

	return nil
}

// terminalWidth returns the stdout width, or a default when not a terminal.
func terminalWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return defaultBoardWidth
}

// clearScreen sends ANSI escape codes to clear the terminal and move the
// cursor to the top-left corner.
func clearScreen() {
	fmt.Fprint(os.Stdout, "\033[2J\033[H")
}

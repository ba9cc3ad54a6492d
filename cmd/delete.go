package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/twiced-technology-gmbh/tasktrack/internal/clierr"
	"github.com/twiced-technology-gmbh/tasktrack/internal/config"
	"github.com/twiced-technology-gmbh/tasktrack/internal/output"
	"github.com/twiced-technology-gmbh/tasktrack/internal/store"
)

var deleteCmd = &cobra.Command{
	Use:     "delete ID[,ID,...]",
	Aliases: []string{"rm"},
	Short:   "Delete a task",
	Long: `Deletes a task together with its subtasks. Prompts for confirmation in interactive mode.
Multiple IDs can be provided as a comma-separated list (requires --yes).`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

func init() {
	deleteCmd.Flags().BoolP("yes", "y", false, "skip confirmation prompt")
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
	ids, err := parseIDs(args[0])
	if err != nil {
		return err
	}

	yes, _ := cmd.Flags().GetBool("yes")

	// Batch mode requires --yes.
	if len(ids) > 1 && !yes {
		return clierr.New(clierr.ConfirmationReq, "batch delete requires --yes")
	}

	return withBoard(true, func(ctx context.Context, _ *config.Config, s *store.Store) error {
		if len(ids) > 1 {
			return runBatch(ids, func(id int) error {
				return executeDelete(ctx, s, id)
			})
		}
		return deleteSingleTask(ctx, s, ids[0], yes)
	})
}

// deleteSingleTask handles a single task delete with confirmation and output.
func deleteSingleTask(ctx context.Context, s *store.Store, id int, yes bool) error {
	t, err := requireTask(s, id)
	if err != nil {
		return err
	}

	prompt := fmt.Sprintf("Delete task #%d %q", t.ID, t.Text)
	if n := len(t.Subtasks); n > 0 {
		prompt += fmt.Sprintf(" and its %d subtasks", n)
	}
	ok, err := confirm(prompt, yes)
	if err != nil || !ok {
		return err
	}

	if err := executeDelete(ctx, s, id); err != nil {
		return err
	}

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, map[string]any{
			"status": "deleted",
			"id":     t.ID,
			"text":   t.Text,
		})
	}

	output.Messagef(os.Stdout, "Deleted task #%d: %s", t.ID, t.Text)
	return nil
}

func executeDelete(ctx context.Context, s *store.Store, id int) error {
	if _, err := requireTask(s, id); err != nil {
		return err
	}
	_, err := s.DeleteTask(ctx, id)
	return checkSaved(err)
}

// confirm asks a yes/no question on stderr unless yes is set. It refuses
// to prompt when stdin is not a terminal.
func confirm(prompt string, yes bool) (bool, error) {
	if yes {
		return true, nil
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return false, clierr.New(clierr.ConfirmationReq,
			"cannot prompt for confirmation (not a terminal); use --yes")
	}
	fmt.Fprintf(os.Stderr, "%s? [y/N] ", prompt)
	reader := bufio.NewReader(os.Stdin)
	answer, _ := reader.ReadString('\n')
	answer = strings.TrimSpace(strings.ToLower(answer))
	if answer != "y" && answer != "yes" {
		fmt.Fprintln(os.Stderr, "Canceled.")
		return false, nil
	}
	return true, nil
}

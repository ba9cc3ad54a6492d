package cmd

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/tasktrack/internal/clierr"
	"github.com/twiced-technology-gmbh/tasktrack/internal/config"
	"github.com/twiced-technology-gmbh/tasktrack/internal/output"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or modify board configuration",
	Long:  `View the full configuration, get a specific key, or set a writable value.`,
	RunE:  runConfigShow,
}

var configGetCmd = &cobra.Command{
	Use:   "get KEY",
	Short: "Get a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set KEY VALUE",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2), //nolint:mnd // key and value
	RunE:  runConfigSet,
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

// configAccessor describes how to get and set a config key.
type configAccessor struct {
	get      func(*config.Config) any
	set      func(*config.Config, string) error
	writable bool
}

func configAccessors() map[string]configAccessor {
	return map[string]configAccessor{
		"version": {
			get: func(c *config.Config) any { return c.Version },
		},
		"board.name": {
			get:      func(c *config.Config) any { return c.Board.Name },
			set:      func(c *config.Config, v string) error { c.Board.Name = v; return nil },
			writable: true,
		},
		"board.description": {
			get:      func(c *config.Config) any { return c.Board.Description },
			set:      func(c *config.Config, v string) error { c.Board.Description = v; return nil },
			writable: true,
		},
		"storage.backend": {
			get: func(c *config.Config) any { return c.Storage.Backend },
		},
		"storage.file": {
			get: func(c *config.Config) any { return c.StorageOptions().Path() },
		},
		"storage.key": {
			get: func(c *config.Config) any { return c.Storage.Key },
		},
		"limits.task_text": {
			get:      func(c *config.Config) any { return c.Limits.TaskText },
			set:      intSetter("limits.task_text", func(c *config.Config, n int) { c.Limits.TaskText = n }),
			writable: true,
		},
		"limits.subtask_text": {
			get:      func(c *config.Config) any { return c.Limits.SubtaskText },
			set:      intSetter("limits.subtask_text", func(c *config.Config, n int) { c.Limits.SubtaskText = n }),
			writable: true,
		},
		"tui.title_lines": {
			get:      func(c *config.Config) any { return c.TitleLines() },
			set:      intSetter("tui.title_lines", func(c *config.Config, n int) { c.TUI.TitleLines = n }),
			writable: true,
		},
		"tui.confirm_delete": {
			get: func(c *config.Config) any { return c.ConfirmDelete() },
			set: func(c *config.Config, v string) error {
				b, err := strconv.ParseBool(v)
				if err != nil {
					return clierr.Newf(clierr.InvalidInput,
						"invalid tui.confirm_delete %q: must be true or false", v)
				}
				c.TUI.ConfirmDelete = &b
				return nil
			},
			writable: true,
		},
	}
}

// intSetter parses an integer value; range checks are left to Validate.
func intSetter(key string, apply func(*config.Config, int)) func(*config.Config, string) error {
	return func(c *config.Config, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil {
			return clierr.Newf(clierr.InvalidInput, "invalid %s %q: must be an integer", key, v)
		}
		apply(c, n)
		return nil
	}
}

// allConfigKeys returns config keys in display order.
func allConfigKeys() []string {
	return []string{
		"version",
		"board.name",
		"board.description",
		"storage.backend",
		"storage.file",
		"storage.key",
		"limits.task_text",
		"limits.subtask_text",
		"tui.title_lines",
		"tui.confirm_delete",
	}
}

func runConfigShow(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	accessors := configAccessors()

	if outputFormat() == output.FormatJSON {
		m := make(map[string]any, len(accessors))
		for _, key := range allConfigKeys() {
			m[key] = accessors[key].get(cfg)
		}
		return output.JSON(os.Stdout, m)
	}

	// Table mode: key-value pairs.
	for _, key := range allConfigKeys() {
		val := accessors[key].get(cfg)
		fmt.Fprintf(os.Stdout, "%-20s %v\n", key, formatConfigValue(val))
	}
	return nil
}

func lookupAccessor(key string) (configAccessor, error) {
	acc, ok := configAccessors()[key]
	if !ok {
		keys := allConfigKeys()
		slices.Sort(keys)
		return acc, clierr.Newf(clierr.InvalidInput, "unknown config key %q", key).
			WithDetails(map[string]any{"key": key, "allowed": keys})
	}
	return acc, nil
}

func runConfigGet(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	acc, err := lookupAccessor(args[0])
	if err != nil {
		return err
	}

	val := acc.get(cfg)

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, val)
	}

	fmt.Fprintln(os.Stdout, formatConfigValue(val))
	return nil
}

func runConfigSet(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	key, value := args[0], args[1]
	acc, err := lookupAccessor(key)
	if err != nil {
		return err
	}
	if !acc.writable {
		return clierr.Newf(clierr.InvalidInput, "config key %q is read-only", key)
	}

	if err := acc.set(cfg, value); err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return clierr.New(clierr.InvalidInput, err.Error())
	}

	if err := cfg.Save(); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, map[string]any{"key": key, "value": acc.get(cfg)})
	}

	output.Messagef(os.Stdout, "Set %s = %v", key, formatConfigValue(acc.get(cfg)))
	return nil
}

func formatConfigValue(val any) string {
	switch v := val.(type) {
	case []string:
		return strings.Join(v, ", ")
	case string:
		if v == "" {
			return "--"
		}
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}

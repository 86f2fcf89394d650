package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/xvierd/git-onboard/internal/config"
	"github.com/xvierd/git-onboard/internal/domain"
	"github.com/xvierd/git-onboard/internal/ports"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View and edit settings",
	Long: `Shows the current settings and lets you change them one at a time.
Settings are stored in ~/.gitonboard/config.toml.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		printConfig(out, app.config)

		keys := config.EditableKeys()
		for {
			choices := make([]ports.Choice, 0, len(keys)+1)
			for _, k := range keys {
				v, _ := app.config.Get(k)
				choices = append(choices, ports.Choice{Label: k, Desc: v})
			}
			choices = append(choices, ports.Choice{Label: "Done"})

			idx, err := app.prompter.Choose("What would you like to change?", choices)
			if errors.Is(err, domain.ErrAborted) || (err == nil && idx == len(keys)) {
				fmt.Fprintln(out, "  No further changes.")
				return nil
			}
			if err != nil {
				return err
			}

			if err := editSetting(out, app.prompter, app.config, keys[idx]); err != nil {
				if errors.Is(err, domain.ErrAborted) {
					return nil
				}
				return err
			}
		}
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print one setting",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := app.config.Get(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), v)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one setting",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := app.config.Set(args[0], args[1]); err != nil {
			return err
		}
		if err := config.Save(app.config); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}
		v, _ := app.config.Get(args[0])
		fmt.Fprintf(cmd.OutOrStdout(), "  Saved: %s = %s\n", args[0], v)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
}

func printConfig(out io.Writer, cfg *config.Config) {
	path, _ := config.GetConfigPath()
	fmt.Fprintln(out)
	fmt.Fprintln(out, "  Current configuration:")
	fmt.Fprintf(out, "  (%s)\n", path)
	fmt.Fprintln(out)
	for _, k := range config.EditableKeys() {
		v, _ := cfg.Get(k)
		if v == "" {
			v = "(default)"
		}
		fmt.Fprintf(out, "    %-24s %s\n", k, v)
	}
	fmt.Fprintf(out, "    %-24s %s\n", "storage.data_dir", cfg.Storage.DataDir)
	fmt.Fprintln(out)
}

// editSetting asks for a new value until it validates or the learner
// leaves it blank.
func editSetting(out io.Writer, p ports.Prompter, cfg *config.Config, key string) error {
	current, _ := cfg.Get(key)
	for {
		raw, err := p.Ask(fmt.Sprintf("New value for %s [%s] (Enter to keep):", key, current))
		if err != nil {
			return err
		}
		if raw == "" {
			fmt.Fprintln(out, "  Unchanged.")
			return nil
		}
		if err := cfg.Set(key, raw); err != nil {
			fmt.Fprintf(out, "  %v\n", err)
			continue
		}
		if err := config.Save(cfg); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}
		v, _ := cfg.Get(key)
		fmt.Fprintf(out, "  Saved: %s = %s\n", key, v)
		return nil
	}
}

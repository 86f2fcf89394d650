// Package cmd provides the CLI commands for git-onboard.
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xvierd/git-onboard/internal/config"
	"github.com/xvierd/git-onboard/internal/domain"
)

var (
	// Version info (set at build time via ldflags)
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"

	// Global flags
	dbPath      string
	plainMode   bool
	verbose     bool
	workDirFlag string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "onboard",
	Short: "Git Onboard - learn Git by using it",
	Long: `Git Onboard walks you through Git step by step. It runs the real git
commands for you, shows exactly what Git printed, and explains what
it means in plain language.

Run "onboard" with no arguments to open the guided menu, or name a
lesson (for example "onboard merge") to jump straight into it.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeServices(cmd.OutOrStdout())
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return cleanupServices()
	},
	RunE: runMenu,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to the progress database (default: ~/.gitonboard/onboard.db)")
	rootCmd.PersistentFlags().BoolVar(&plainMode, "plain", false, "Use plain numbered prompts instead of the interactive picker")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Write debug details to the log file")
	rootCmd.PersistentFlags().StringVarP(&workDirFlag, "dir", "C", "", "Run as if started in this directory")

	// Set version - cobra handles --version automatically
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("Git Onboard\nVersion: {{.Version}}\n")

	for _, e := range domain.Menu {
		rootCmd.AddCommand(newWorkflowCmd(e))
	}
	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(mcpCmd)
}

// runMenu implements the bare "onboard" command: git check, welcome on
// first launch, then the main menu.
func runMenu(cmd *cobra.Command, args []string) error {
	ctx := setupSignalHandler()

	version, err := app.coach.CheckGit(ctx)
	if err != nil {
		app.logger.Error("git not available", zap.Error(err))
		_ = cleanupServices()
		os.Exit(1)
	}
	app.logger.Info("starting menu", zap.String("git", version), zap.String("version", Version))

	if app.config.FirstRun {
		if err := app.coach.Welcome(); err != nil {
			if errors.Is(err, domain.ErrAborted) {
				return nil
			}
			return err
		}
		app.config.FirstRun = false
		if err := config.Save(app.config); err != nil {
			app.logger.Warn("failed to clear first_run", zap.Error(err))
		}
	}

	return app.coach.MainMenu(ctx)
}

// newWorkflowCmd builds the subcommand that jumps straight into one menu
// workflow.
func newWorkflowCmd(e domain.MenuEntry) *cobra.Command {
	w := e.Workflow
	return &cobra.Command{
		Use:   string(w),
		Short: e.Label,
		Long:  e.Description,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := setupSignalHandler()
			if _, err := app.coach.CheckGit(ctx); err != nil {
				_ = cleanupServices()
				os.Exit(1)
			}

			err := app.coach.Run(ctx, w)
			if errors.Is(err, domain.ErrAborted) {
				fmt.Fprintln(cmd.OutOrStdout(), "\n  Interrupted.")
				return nil
			}
			return err
		},
	}
}

package cmd

import (
	"github.com/spf13/cobra"
)

var historyLimit int

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show where you are in the five-step flow",
	Long: `Prints THE FULL FLOW for the repository in the current directory,
marking the steps you've already done and the one to do next.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.coach.PrintProgress(setupSignalHandler())
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List the git commands that were run for you",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.coach.PrintHistory(setupSignalHandler(), historyLimit)
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Number of commands to show")
}

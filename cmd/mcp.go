package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xvierd/git-onboard/internal/adapters/mcp"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol (MCP) server for integration with AI assistants.
The server explains git status and push errors the way the lessons do,
and reports the learner's progress and command history.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// stdout carries the protocol, so status goes to stderr.
		fmt.Fprintln(cmd.ErrOrStderr(), "Starting MCP server on stdio. Press Ctrl+C to stop.")

		server := mcp.NewServer(app.lessons, Version)
		if err := server.Start(setupSignalHandler()); err != nil {
			return fmt.Errorf("MCP server error: %w", err)
		}
		return nil
	},
}

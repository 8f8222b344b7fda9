package cmd

import (
	"github.com/huangsam/spendchart/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the Spendchart MCP server",
	Long:  `Launch an MCP server that allows AI agents to compute chart layouts and hit-tests via standard tools.`,
	Args:  cobra.NoArgs,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// Logs already go to stderr, so stdio stays clean for the protocol
		return sharedSetup(rootCtx, cmd, args)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, stateManager)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

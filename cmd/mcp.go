package cmd

import (
	"github.com/spf13/cobra"
	"github.com/vanadhikar/sifarish/internal/mcp"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp <claims-file>",
	Short: "Start the Sifarish MCP server",
	Long:  `Launch an MCP server that allows AI agents to query scheme recommendations via standard tools.`,
	Args:  cobra.MaximumNArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// Suppress the normal header logs when running in MCP mode
		// to avoid polluting stdio which is used for the protocol.
		return sharedSetup(rootCtx, cmd, args)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, claimSource)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

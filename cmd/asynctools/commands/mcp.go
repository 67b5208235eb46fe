package commands

import (
	"github.com/erraggy/asynctools/internal/mcpserver"
	"github.com/spf13/cobra"
)

func newMCPCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Run the MCP server over stdio",
		Long: `Run a Model Context Protocol server over stdio exposing the validate,
parse, render, list_channels, and list_operations tools.

Defaults are configured with ASYNCTOOLS_* environment variables, for example
ASYNCTOOLS_VALIDATE_LINT=true or ASYNCTOOLS_CACHE_ENABLED=false.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return mcpserver.Run(cmd.Context())
		},
	}
}

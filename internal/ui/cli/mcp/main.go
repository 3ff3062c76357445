package mcp

import (
	"fmt"
	"os"

	"github.com/isaacphi/awsdocs/internal/appState"
	"github.com/isaacphi/awsdocs/internal/mcp"
	"github.com/spf13/cobra"
)

var (
	MCPCmd = &cobra.Command{
		Use:   "mcp",
		Short: "Work with external MCP servers",
	}

	toolsCmd = &cobra.Command{
		Use:   "tools",
		Short: "Display MCP tools information",
		Long:  "Initialize the configured MCP servers and display the tools they provide",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := appState.Get()

			client := mcp.New(app.Config.MCPServers, app.Logger)
			if err := client.Initialize(cmd.Context()); err != nil {
				return fmt.Errorf("failed to initialize MCP client: %w", err)
			}
			defer client.Shutdown()

			if len(client.Tools()) == 0 {
				fmt.Println("No MCP tools available")
				return nil
			}
			client.PrintTools(os.Stdout)
			return nil
		},
	}
)

func init() {
	MCPCmd.AddCommand(toolsCmd)
}

package tools

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/isaacphi/awsdocs/internal/appState"
	"github.com/isaacphi/awsdocs/internal/mcp"
	"github.com/isaacphi/awsdocs/internal/tool"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	formatFlag string
	importFlag bool

	ToolsCmd = &cobra.Command{
		Use:   "tools",
		Short: "Describe the available tools",
		Long: `Describe the available tools in one of several formats:

  text       human readable summary
  json       name, description and input schema of every tool
  yaml       the same descriptors as YAML
  anthropic  tool definitions for the Anthropic messages API`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app := appState.Get()
			if importFlag {
				if _, err := app.ImportMCPTools(cmd.Context()); err != nil {
					return err
				}
			}
			return printTools(cmd.OutOrStdout(), app.Tools, formatFlag)
		},
	}
)

func printTools(w io.Writer, reg *tool.Registry, format string) error {
	switch format {
	case "text":
		for _, t := range reg.List() {
			fmt.Fprintf(w, "%s:\n", t.ID)
			mcp.PrintTool(w, t, "  ")
			fmt.Fprintln(w)
		}
		return nil
	case "json":
		return writeJSON(w, reg.Describe())
	case "anthropic":
		return writeJSON(w, tool.AnthropicTools(reg))
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(reg.Describe()); err != nil {
			return fmt.Errorf("failed to encode tools: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q (want text, json, yaml or anthropic)", format)
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode tools: %w", err)
	}
	return nil
}

func init() {
	ToolsCmd.Flags().StringVarP(&formatFlag, "format", "f", "text", "Output format: text, json, yaml or anthropic")
	ToolsCmd.Flags().BoolVar(&importFlag, "import-mcp", false, "Include the tools of the configured MCP servers")
}

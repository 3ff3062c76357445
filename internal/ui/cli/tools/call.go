package tools

import (
	"context"
	"fmt"
	"io"

	"github.com/isaacphi/awsdocs/internal/appState"
	"github.com/isaacphi/awsdocs/internal/tool"
	"github.com/spf13/cobra"
)

var CallCmd = &cobra.Command{
	Use:   "call [tool] [json-arguments]",
	Short: "Invoke a tool with raw JSON arguments",
	Long: `Invoke a tool exactly as an agent would. Arguments may be the argument
object itself or an envelope with the arguments under "context".

  awsdocs call search_documentation '{"search_phrase": "s3 versioning", "limit": 3}'`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := appState.Get()
		if importFlag {
			if _, err := app.ImportMCPTools(cmd.Context()); err != nil {
				return err
			}
		}

		input := "{}"
		if len(args) == 2 {
			input = args[1]
		}
		return call(cmd.Context(), cmd.OutOrStdout(), app.Tools, args[0], input)
	},
}

func init() {
	CallCmd.Flags().BoolVar(&importFlag, "import-mcp", false, "Make the tools of the configured MCP servers callable")
}

// call runs a tool through its langchaingo wrapper, the same string-in,
// text-out path an agent built on langchaingo takes.
func call(ctx context.Context, w io.Writer, reg *tool.Registry, name, input string) error {
	lc, err := tool.LangchainTool(reg, name)
	if err != nil {
		return err
	}
	text, err := lc.Call(ctx, input)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, text)
	return nil
}

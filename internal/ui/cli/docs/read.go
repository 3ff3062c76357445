// Package docs holds the commands that call the documentation tools
// directly from the terminal.
package docs

import (
	"context"
	"fmt"

	"github.com/isaacphi/awsdocs/internal/appState"
	docsvc "github.com/isaacphi/awsdocs/internal/docs"
	"github.com/isaacphi/awsdocs/internal/tool"
	"github.com/isaacphi/awsdocs/internal/ui/tui/pager"
	"github.com/spf13/cobra"
)

var (
	maxLengthFlag   int
	startIndexFlag  int
	interactiveFlag bool
)

var ReadCmd = &cobra.Command{
	Use:   "read [url]",
	Short: "Fetch an AWS documentation page as markdown",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := appState.Get()
		url := args[0]
		readArgs := map[string]any{
			"url":         url,
			"max_length":  maxLengthFlag,
			"start_index": startIndexFlag,
		}

		if interactiveFlag {
			if err := checkArguments(app.Tools, tool.ReadDocumentationID, readArgs); err != nil {
				return err
			}
			fetch := func(ctx context.Context, startIndex int) (docsvc.Page, error) {
				return app.Docs.ReadPage(ctx, url, maxLengthFlag, startIndex)
			}
			return pager.Run(cmd.Context(), fetch, app.Config.Pager)
		}

		return invokeAndPrint(cmd, tool.ReadDocumentationID, readArgs)
	},
}

// checkArguments validates args against a tool's schema without running it.
func checkArguments(reg *tool.Registry, name string, args map[string]any) error {
	t, ok := reg.Get(name)
	if !ok {
		return fmt.Errorf("%w: %s", tool.ErrToolNotFound, name)
	}
	return t.Validator().Validate(args)
}

// invokeAndPrint runs a registry tool so the call is logged and recorded like
// any agent call, then prints the formatted result.
func invokeAndPrint(cmd *cobra.Command, name string, args map[string]any) error {
	result, err := appState.Get().Tools.Invoke(cmd.Context(), name, args)
	if err != nil {
		return err
	}
	text, err := tool.FormatResult(result)
	if err != nil {
		return fmt.Errorf("failed to format result: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), text)
	return nil
}

func init() {
	ReadCmd.Flags().IntVarP(&maxLengthFlag, "max-length", "m", 5000, "Maximum number of characters to return")
	ReadCmd.Flags().IntVarP(&startIndexFlag, "start-index", "s", 0, "Character offset to start reading from")
	ReadCmd.Flags().BoolVarP(&interactiveFlag, "interactive", "i", false, "Open the page in an interactive pager")
}

package docs

import (
	"fmt"
	"text/tabwriter"

	"github.com/isaacphi/awsdocs/internal/appState"
	"github.com/isaacphi/awsdocs/internal/domain"
	"github.com/isaacphi/awsdocs/internal/tool"
	"github.com/spf13/cobra"
)

var (
	limitFlag int
	jsonFlag  bool
)

var SearchCmd = &cobra.Command{
	Use:   "search [phrase]",
	Short: "Search the AWS documentation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		toolArgs := map[string]any{
			"search_phrase": args[0],
			"limit":         limitFlag,
		}
		if jsonFlag {
			return invokeAndPrint(cmd, tool.SearchDocumentationID, toolArgs)
		}

		result, err := appState.Get().Tools.Invoke(cmd.Context(), tool.SearchDocumentationID, toolArgs)
		if err != nil {
			return err
		}
		results, _ := result.([]domain.SearchResult)

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "Rank\tTitle\tURL")
		for _, r := range results {
			fmt.Fprintf(w, "%d\t%s\t%s\n", r.RankOrder, truncate(r.Title, 60), r.URL)
		}
		return w.Flush()
	},
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}

func init() {
	SearchCmd.Flags().IntVarP(&limitFlag, "limit", "n", 10, "Maximum number of results")
	SearchCmd.Flags().BoolVar(&jsonFlag, "json", false, "Print results as JSON")
}

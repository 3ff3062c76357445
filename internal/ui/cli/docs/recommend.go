package docs

import (
	"fmt"
	"text/tabwriter"

	"github.com/isaacphi/awsdocs/internal/appState"
	"github.com/isaacphi/awsdocs/internal/domain"
	"github.com/isaacphi/awsdocs/internal/tool"
	"github.com/spf13/cobra"
)

var RecommendCmd = &cobra.Command{
	Use:   "recommend [url]",
	Short: "List pages related to an AWS documentation page",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		toolArgs := map[string]any{"url": args[0]}
		if jsonFlag {
			return invokeAndPrint(cmd, tool.RecommendID, toolArgs)
		}

		result, err := appState.Get().Tools.Invoke(cmd.Context(), tool.RecommendID, toolArgs)
		if err != nil {
			return err
		}
		results, _ := result.([]domain.RecommendationResult)

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "Context\tTitle\tURL")
		for _, r := range results {
			fmt.Fprintf(w, "%s\t%s\t%s\n", orDash(r.Context), truncate(r.Title, 60), r.URL)
		}
		return w.Flush()
	},
}

func orDash(note string) string {
	if note == "" {
		return "-"
	}
	return truncate(note, 30)
}

func init() {
	RecommendCmd.Flags().BoolVar(&jsonFlag, "json", false, "Print results as JSON")
}

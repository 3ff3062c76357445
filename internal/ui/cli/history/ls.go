package history

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/isaacphi/awsdocs/internal/repository"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "ls",
	Short: "List recent tool invocations",
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, err := historyRepo()
		if err != nil {
			return err
		}

		invocations, err := repo.List(cmd.Context(), repository.ListFilter{ToolID: toolFlag, Limit: limitFlag})
		if err != nil {
			return fmt.Errorf("failed to list invocations: %w", err)
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tCreated\tTool\tOutcome\tDuration\tSize\tArguments")

		for _, inv := range invocations {
			args := inv.Arguments
			if len(args) > 50 {
				args = args[:47] + "..."
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\t%s\n",
				inv.ID.String()[:8],
				inv.CreatedAt.Format(time.RFC822),
				inv.ToolID,
				inv.Outcome,
				inv.Duration.Round(time.Millisecond),
				inv.ResultSize,
				args,
			)
		}
		w.Flush()

		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show [invocation_id]",
	Short: "Show one invocation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, err := historyRepo()
		if err != nil {
			return err
		}

		inv, err := repo.FindByPartialID(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("failed to find invocation: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Invocation %s\n", inv.ID)
		fmt.Fprintf(out, "Tool:      %s\n", inv.ToolID)
		fmt.Fprintf(out, "Created:   %s\n", inv.CreatedAt.Format(time.RFC822))
		fmt.Fprintf(out, "Outcome:   %s\n", inv.Outcome)
		fmt.Fprintf(out, "Duration:  %s\n", inv.Duration)
		fmt.Fprintf(out, "Size:      %d\n", inv.ResultSize)
		fmt.Fprintf(out, "Arguments: %s\n", inv.Arguments)
		if inv.Error != "" {
			fmt.Fprintf(out, "Error:     %s\n", inv.Error)
		}
		return nil
	},
}

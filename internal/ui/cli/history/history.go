package history

import (
	"errors"

	"github.com/isaacphi/awsdocs/internal/appState"
	"github.com/isaacphi/awsdocs/internal/repository"
	"github.com/spf13/cobra"
)

var (
	limitFlag int
	toolFlag  string
	forceFlag bool
)

var HistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect recorded tool invocations",
}

func historyRepo() (repository.InvocationRepository, error) {
	repo := appState.Get().History
	if repo == nil {
		return nil, errors.New("history is disabled (set history.enabled to true)")
	}
	return repo, nil
}

func init() {
	listCmd.Flags().IntVarP(&limitFlag, "limit", "n", 20, "Limit the number of invocations to show (0 for all)")
	listCmd.Flags().StringVarP(&toolFlag, "tool", "t", "", "Only show invocations of this tool")
	clearCmd.Flags().BoolVarP(&forceFlag, "force", "f", false, "Clear without confirmation")

	HistoryCmd.AddCommand(listCmd, showCmd, clearCmd)
}

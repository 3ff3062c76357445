package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/isaacphi/awsdocs/internal/appState"
	"github.com/isaacphi/awsdocs/internal/config"
	configCmd "github.com/isaacphi/awsdocs/internal/ui/cli/config"
	"github.com/isaacphi/awsdocs/internal/ui/cli/docs"
	"github.com/isaacphi/awsdocs/internal/ui/cli/history"
	"github.com/isaacphi/awsdocs/internal/ui/cli/mcp"
	"github.com/isaacphi/awsdocs/internal/ui/cli/serve"
	"github.com/isaacphi/awsdocs/internal/ui/cli/tools"
	"github.com/spf13/cobra"
)

var (
	logLevel      string
	logFile       string
	configVerbose bool
	noHistory     bool
)

var rootCmd = &cobra.Command{
	Use:               "awsdocs",
	Short:             "Read, search and explore AWS documentation",
	Long:              `awsdocs fetches AWS documentation pages as markdown, searches the documentation index and serves the same tools to agents over MCP.`,
	SilenceUsage:      true,
	DisableAutoGenTag: true,
}

func Execute() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up the root command to use this context
	rootCmd.SetContext(ctx)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Add global flags for logging
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Set logging level (DEBUG, INFO, WARN, ERROR)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Log file path (defaults to stderr)")
	rootCmd.PersistentFlags().BoolVar(&configVerbose, "config-verbose", false, "Log where every configuration value came from")
	rootCmd.PersistentFlags().BoolVar(&noHistory, "no-history", false, "Do not record tool invocations")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		// Initialize app with runtime overrides
		overrides := &config.RuntimeOverrides{Verbose: configVerbose}
		if logLevel != "" {
			overrides.LogLevel = &logLevel
		}
		if logFile != "" {
			overrides.LogFile = &logFile
		}
		if noHistory {
			disabled := false
			overrides.HistoryEnabled = &disabled
		}
		return appState.Initialize(overrides)
	}

	rootCmd.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		return appState.Cleanup()
	}

	// Remove "completions" command
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(
		serve.ServeCmd,
		docs.ReadCmd,
		docs.SearchCmd,
		docs.RecommendCmd,
		tools.ToolsCmd,
		tools.CallCmd,
		mcp.MCPCmd,
		configCmd.ConfigCmd,
		history.HistoryCmd,
	)
}

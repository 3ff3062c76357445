package serve

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/isaacphi/awsdocs/internal/appState"
	"github.com/isaacphi/awsdocs/internal/mcp"
	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 5 * time.Second

var (
	httpFlag   bool
	addrFlag   string
	importFlag bool

	ServeCmd = &cobra.Command{
		Use:   "serve",
		Short: "Serve the documentation tools over MCP",
		Long: `Serve the documentation tools to an MCP host.

By default the server speaks MCP over stdin/stdout. With --http it listens
for streamable HTTP on /mcp and also exposes /metrics and /healthz.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			app := appState.Get()

			if importFlag {
				if _, err := app.ImportMCPTools(ctx); err != nil {
					return err
				}
			}

			server := mcp.NewServer(app.Tools, app.Config.Server, app.Logger)

			if !httpFlag {
				app.Logger.Info("serving MCP over stdio", "tools", len(app.Tools.List()))
				return server.Run(ctx, &mcpsdk.StdioTransport{})
			}

			addr := app.Config.Server.HTTPAddr
			if addrFlag != "" {
				addr = addrFlag
			}
			return serveHTTP(ctx, addr, mcp.NewHTTPHandler(server, app.Metrics.Handler()))
		},
	}
)

func serveHTTP(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	fmt.Fprintf(os.Stderr, "Listening on http://%s/mcp\n", addr)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func init() {
	ServeCmd.Flags().BoolVar(&httpFlag, "http", false, "Serve streamable HTTP instead of stdio")
	ServeCmd.Flags().StringVar(&addrFlag, "addr", "", "HTTP listen address (defaults to server.httpAddr)")
	ServeCmd.Flags().BoolVar(&importFlag, "import-mcp", false, "Also export the tools of the configured MCP servers")
}

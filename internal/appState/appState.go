package appState

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/isaacphi/awsdocs/internal/config"
	"github.com/isaacphi/awsdocs/internal/docs"
	"github.com/isaacphi/awsdocs/internal/mcp"
	"github.com/isaacphi/awsdocs/internal/metrics"
	"github.com/isaacphi/awsdocs/internal/repository"
	"github.com/isaacphi/awsdocs/internal/repository/sqlite"
	"github.com/isaacphi/awsdocs/internal/tool"
)

// App holds the global application state
type App struct {
	Config  *config.ConfigSchema
	Logger  *slog.Logger
	Docs    *docs.Service
	Tools   *tool.Registry
	Metrics *metrics.Metrics
	// History is nil when history is disabled.
	History repository.InvocationRepository

	closers []io.Closer // closed in reverse order
}

var (
	globalApp *App
	initOnce  sync.Once
	initErr   error
	mu        sync.RWMutex
)

// Initialize creates the global app instance with the given overrides
func Initialize(overrides *config.RuntimeOverrides) error {
	initOnce.Do(func() {
		app, err := New(overrides)
		if err != nil {
			initErr = err
			return
		}

		mu.Lock()
		globalApp = app
		mu.Unlock()

		// Set as default logger
		slog.SetDefault(app.Logger)
	})
	return initErr
}

// New loads the configuration and wires every component behind the tool
// registry: the docs service, metrics and, when enabled, invocation history.
func New(overrides *config.RuntimeOverrides) (*App, error) {
	cfg, err := config.New(overrides)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, closer, err := setupLogger(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}

	app := &App{
		Config: cfg,
		Logger: logger,
	}
	if closer != nil {
		app.closers = append(app.closers, closer)
	}

	app.Docs, err = docs.NewService(cfg.Docs, docs.NewHTTPClient(cfg.Docs), logger)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to create docs service: %w", err)
	}

	app.Tools = tool.NewRegistry(logger)
	if err := app.Tools.Register(tool.DocumentationTools(app.Docs)...); err != nil {
		app.Close()
		return nil, err
	}

	app.Metrics = metrics.New()
	app.Tools.AddObserver(app.Metrics)

	if cfg.History.Enabled {
		dbPath, err := expandHome(cfg.History.DBPath)
		if err != nil {
			app.Close()
			return nil, err
		}
		repo, err := sqlite.Initialize(dbPath)
		if err != nil {
			app.Close()
			return nil, fmt.Errorf("failed to open history: %w", err)
		}
		app.History = repo
		app.closers = append(app.closers, repo)
		app.Tools.AddObserver(repository.NewRecorder(repo))
	}

	return app, nil
}

// ImportMCPTools starts the configured external MCP servers and registers
// their tools next to the built-in ones. The servers stop on Close.
func (a *App) ImportMCPTools(ctx context.Context) (*mcp.Client, error) {
	client := mcp.New(a.Config.MCPServers, a.Logger)
	if err := client.Initialize(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize MCP client: %w", err)
	}
	a.closers = append(a.closers, closerFunc(func() error {
		client.Shutdown()
		return nil
	}))

	if err := a.Tools.Register(client.Tools()...); err != nil {
		return nil, err
	}
	return client, nil
}

// Close releases the resources the app opened, newest first.
func (a *App) Close() error {
	var firstErr error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	a.closers = nil
	return firstErr
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

// Get returns the global app instance and panics if not initialized
func Get() *App {
	mu.RLock()
	defer mu.RUnlock()

	if globalApp == nil {
		panic("app not initialized")
	}
	return globalApp
}

// TryGet returns the global app instance and a boolean indicating if it's initialized
func TryGet() (*App, bool) {
	mu.RLock()
	defer mu.RUnlock()
	return globalApp, globalApp != nil
}

// Cleanup performs cleanup of app resources
func Cleanup() error {
	mu.Lock()
	defer mu.Unlock()

	if globalApp != nil {
		return globalApp.Close()
	}
	return nil
}

func setupLogger(cfg config.Log) (*slog.Logger, io.Closer, error) {
	var level slog.Level

	switch cfg.Level {
	case "DEBUG":
		level = slog.LevelDebug
	case "INFO":
		level = slog.LevelInfo
	case "WARN":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: true,
	}

	if cfg.File == "" {
		// stdout carries the stdio MCP transport
		handler := slog.NewTextHandler(os.Stderr, opts)
		return slog.New(handler), nil, nil
	}

	path, err := expandHome(cfg.File)
	if err != nil {
		return nil, nil, err
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	handler := slog.NewTextHandler(file, opts)
	return slog.New(handler), file, nil
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// Package mcp connects awsdocs to the Model Context Protocol in both
// directions: it imports tools from external MCP servers and serves the tool
// registry to MCP hosts.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"sort"
	"strings"
	"sync"

	"github.com/isaacphi/awsdocs/internal/config"
	"github.com/isaacphi/awsdocs/internal/tool"
	mcp_golang "github.com/metoro-io/mcp-golang"
	"github.com/metoro-io/mcp-golang/transport/stdio"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

const nameSeparator = "__"

// Client manages multiple MCP server connections
type Client struct {
	servers     map[string]config.MCPServer
	clients     map[string]*mcp_golang.Client
	commands    map[string]*exec.Cmd
	tools       map[string]*tool.Tool
	logger      *slog.Logger
	mu          sync.RWMutex
	initialized bool
}

// New creates a new MCP client manager
func New(servers map[string]config.MCPServer, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		servers:  servers,
		clients:  make(map[string]*mcp_golang.Client),
		commands: make(map[string]*exec.Cmd),
		tools:    make(map[string]*tool.Tool),
		logger:   logger.With("component", "mcp-client"),
	}
}

// Initialize starts all configured servers and establishes connections in parallel
func (c *Client) Initialize(ctx context.Context) error {
	c.mu.Lock()
	if c.initialized {
		c.mu.Unlock()
		return errors.New("client already initialized")
	}
	c.mu.Unlock()

	g, gctx := errgroup.WithContext(ctx)

	for name, server := range c.servers {
		g.Go(func() error {
			if err := c.startServer(gctx, name, server); err != nil {
				return errors.Wrapf(err, "server %s", name)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		c.kill()
		return errors.Wrap(err, "failed to initialize servers")
	}

	if err := c.buildToolRegistry(ctx); err != nil {
		c.kill()
		return errors.Wrap(err, "failed to build tool registry")
	}

	c.mu.Lock()
	c.initialized = true
	c.mu.Unlock()

	return nil
}

// startServer starts a single server and establishes its client connection
func (c *Client) startServer(ctx context.Context, name string, server config.MCPServer) error {
	if strings.Contains(name, nameSeparator) {
		return fmt.Errorf("invalid server name format, can't contain '%s', got '%s'", nameSeparator, name)
	}

	cmd := exec.Command(server.Command, server.Args...)
	cmd.Stderr = os.Stderr

	if server.Env != nil {
		cmd.Env = os.Environ()
		for k, v := range server.Env {
			cmd.Env = append(cmd.Env, fmt.Sprintf("%s=%s", k, v))
		}
	}

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return errors.Wrap(err, "failed to get stdin pipe")
	}

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return errors.Wrap(err, "failed to get stdout pipe")
	}

	if err := cmd.Start(); err != nil {
		return errors.Wrap(err, "failed to start server")
	}

	transport := stdio.NewStdioServerTransportWithIO(stdout, stdin)
	client := mcp_golang.NewClient(transport)

	if _, err := client.Initialize(ctx); err != nil {
		if kerr := stopProcess(cmd); kerr != nil {
			c.logger.Warn("failed to kill server", "server", name, "error", kerr)
		}
		return errors.Wrap(err, "failed to initialize client")
	}
	c.logger.Debug("started mcp server", "server", name, "command", server.Command)

	c.mu.Lock()
	c.clients[name] = client
	c.commands[name] = cmd
	c.mu.Unlock()

	return nil
}

// buildToolRegistry converts every advertised tool definition into a
// validated tool named server__tool
func (c *Client) buildToolRegistry(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.tools = make(map[string]*tool.Tool)

	for serverName, client := range c.clients {
		response, err := client.ListTools(ctx, nil)
		if err != nil {
			return errors.Wrapf(err, "failed to list tools for server %s", serverName)
		}

		for _, mcpTool := range response.Tools {
			description := ""
			if mcpTool.Description != nil {
				description = *mcpTool.Description
			}
			t := ConvertTool(serverName, mcpTool.Name, description, mcpTool.InputSchema, c.CallTool)
			c.tools[t.ID] = t
		}
	}

	return nil
}

// CallFunc forwards a validated call to the server owning the tool.
type CallFunc func(ctx context.Context, fullName string, arguments any) (*mcp_golang.ToolResponse, error)

// ConvertTool turns an external tool definition into a registry tool. The
// input schema goes through the schema translator, so arguments are checked
// locally before the server sees them.
func ConvertTool(serverName, toolName, description string, inputSchema any, call CallFunc) *tool.Tool {
	fullName := serverName + nameSeparator + toolName
	return tool.New(fullName, description, schemaMap(inputSchema),
		func(ctx context.Context, args map[string]any) (any, error) {
			resp, err := call(ctx, fullName, args)
			if err != nil {
				return nil, err
			}
			return ResponseText(resp), nil
		})
}

func schemaMap(inputSchema any) map[string]any {
	switch s := inputSchema.(type) {
	case nil:
		return nil
	case map[string]any:
		return s
	}
	data, err := json.Marshal(inputSchema)
	if err != nil {
		return nil
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil
	}
	return out
}

// ResponseText joins the text parts of a tool response.
func ResponseText(resp *mcp_golang.ToolResponse) string {
	if resp == nil {
		return ""
	}
	var parts []string
	for _, content := range resp.Content {
		if content != nil && content.TextContent != nil {
			parts = append(parts, content.TextContent.Text)
		}
	}
	return strings.Join(parts, "\n")
}

// CallTool calls a tool using its fully qualified name (serverName__toolName)
func (c *Client) CallTool(ctx context.Context, name string, arguments any) (*mcp_golang.ToolResponse, error) {
	parts := strings.SplitN(name, nameSeparator, 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid tool name format, expected 'server%stool', got '%s'", nameSeparator, name)
	}

	serverName, toolName := parts[0], parts[1]

	c.mu.RLock()
	client, exists := c.clients[serverName]
	c.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("server %s not found", serverName)
	}

	return client.CallTool(ctx, toolName, arguments)
}

// Tools returns the imported tools sorted by name
func (c *Client) Tools() []*tool.Tool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.tools))
	for name := range c.tools {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]*tool.Tool, 0, len(names))
	for _, name := range names {
		out = append(out, c.tools[name])
	}
	return out
}

// Shutdown stops all servers and cleans up resources in parallel
func (c *Client) Shutdown() {
	c.mu.Lock()
	wasInitialized := c.initialized
	c.initialized = false
	c.mu.Unlock()

	if wasInitialized {
		c.kill()
	}
}

func (c *Client) kill() {
	c.mu.Lock()
	defer c.mu.Unlock()

	var wg sync.WaitGroup
	for name, cmd := range c.commands {
		if cmd == nil || cmd.Process == nil {
			continue
		}
		wg.Add(1)
		go func(name string, cmd *exec.Cmd) {
			defer wg.Done()
			if err := stopProcess(cmd); err != nil {
				c.logger.Warn("failed to kill server", "server", name, "error", err)
			}
		}(name, cmd)
	}
	wg.Wait()

	c.commands = make(map[string]*exec.Cmd)
	c.clients = make(map[string]*mcp_golang.Client)
	c.tools = make(map[string]*tool.Tool)
}

// stopProcess kills a started server and reaps it.
func stopProcess(cmd *exec.Cmd) error {
	err := cmd.Process.Kill()
	_ = cmd.Wait()
	return err
}

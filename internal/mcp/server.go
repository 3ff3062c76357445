package mcp

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/isaacphi/awsdocs/internal/config"
	"github.com/isaacphi/awsdocs/internal/schema"
	"github.com/isaacphi/awsdocs/internal/tool"
	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

// NewServer exports every registry tool over MCP. Arguments reach the
// registry untouched, so envelope handling and validation happen in one place.
func NewServer(reg *tool.Registry, info config.Server, logger *slog.Logger) *mcpsdk.Server {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "mcp-server")

	server := mcpsdk.NewServer(&mcpsdk.Implementation{Name: info.Name, Version: info.Version}, nil)

	for _, t := range reg.List() {
		server.AddTool(&mcpsdk.Tool{
			Name:        t.ID,
			Description: t.Description,
			InputSchema: objectSchema(t.InputSchema),
		}, handlerFor(reg, t.ID, logger))
	}

	return server
}

func handlerFor(reg *tool.Registry, name string, logger *slog.Logger) mcpsdk.ToolHandler {
	return func(ctx context.Context, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
		var raw json.RawMessage
		if req != nil && req.Params != nil {
			raw = req.Params.Arguments
		}

		result, err := reg.Invoke(ctx, name, raw)
		if err != nil {
			if !schema.IsValidationError(err) {
				logger.Error("tool call failed", "tool", name, "error", err)
			}
			return errorResult(err.Error()), nil
		}

		text, err := tool.FormatResult(result)
		if err != nil {
			return errorResult(err.Error()), nil
		}
		return &mcpsdk.CallToolResult{
			Content: []mcpsdk.Content{&mcpsdk.TextContent{Text: text}},
		}, nil
	}
}

func errorResult(msg string) *mcpsdk.CallToolResult {
	return &mcpsdk.CallToolResult{
		IsError: true,
		Content: []mcpsdk.Content{&mcpsdk.TextContent{Text: msg}},
	}
}

// objectSchema returns a copy of s whose top level declares type object, which
// MCP requires of every tool input schema.
func objectSchema(s map[string]any) map[string]any {
	out := make(map[string]any, len(s)+1)
	for k, v := range s {
		out[k] = v
	}
	out["type"] = "object"
	return out
}

package tool

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/tmc/langchaingo/tools"
)

// langchainTool exposes a registry tool to langchaingo agents, which pass the
// model's JSON arguments as a single string.
type langchainTool struct {
	reg  *Registry
	tool *Tool
}

var _ tools.Tool = langchainTool{}

func (l langchainTool) Name() string        { return l.tool.ID }
func (l langchainTool) Description() string { return l.tool.Description }

func (l langchainTool) Call(ctx context.Context, input string) (string, error) {
	result, err := l.reg.Invoke(ctx, l.tool.ID, input)
	if err != nil {
		return "", err
	}
	return FormatResult(result)
}

// LangchainTool wraps the named tool for a langchaingo agent. The returned
// tool takes the JSON arguments as a string and answers with formatted text.
func LangchainTool(reg *Registry, name string) (tools.Tool, error) {
	t, ok := reg.Get(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrToolNotFound, name)
	}
	return langchainTool{reg: reg, tool: t}, nil
}

// AnthropicTools describes every registered tool for the Messages API.
func AnthropicTools(reg *Registry) []anthropic.ToolUnionParam {
	list := reg.List()
	out := make([]anthropic.ToolUnionParam, 0, len(list))
	for _, t := range list {
		out = append(out, anthropic.ToolUnionParam{OfTool: &anthropic.ToolParam{
			Name:        t.ID,
			Description: anthropic.String(t.Description),
			InputSchema: anthropic.ToolInputSchemaParam{
				Properties: t.InputSchema["properties"],
				Required:   t.Validator().RequiredFields(),
			},
		}})
	}
	return out
}

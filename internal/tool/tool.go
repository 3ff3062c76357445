// Package tool adapts schema-validated handlers to the calling conventions of
// agent hosts: MCP servers, langchaingo agents and the Anthropic messages API.
package tool

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/isaacphi/awsdocs/internal/schema"
)

// Handler runs a tool with arguments that already passed validation.
type Handler func(ctx context.Context, args map[string]any) (any, error)

// Tool is a named, schema-validated callable. The validator is built once
// from InputSchema and the tool is read-only afterwards.
type Tool struct {
	ID          string
	Description string
	InputSchema map[string]any

	validator *schema.Validator
	handler   Handler
}

// New translates inputSchema into the tool's validator.
func New(id, description string, inputSchema map[string]any, handler Handler) *Tool {
	if inputSchema == nil {
		inputSchema = map[string]any{"type": "object"}
	}
	return &Tool{
		ID:          id,
		Description: description,
		InputSchema: inputSchema,
		validator:   schema.Translate(schema.FromMap(inputSchema)),
		handler:     handler,
	}
}

func (t *Tool) Validator() *schema.Validator { return t.validator }

// Execute unwraps the call envelope, validates and fills defaults, then runs
// the handler. A *schema.ValidationError is returned as is.
func (t *Tool) Execute(ctx context.Context, input any) (any, error) {
	args, err := UnwrapArguments(input)
	if err != nil {
		return nil, err
	}

	parsed, err := t.validator.Parse(args)
	if err != nil {
		return nil, err
	}
	if cleaned, ok := parsed.(map[string]any); ok {
		args = cleaned
	}

	return t.handler(ctx, args)
}

// UnwrapArguments normalizes a raw call into its argument object. Hosts send
// either the arguments themselves or an envelope carrying them under
// "context"; when "context" holds an object, that object wins.
func UnwrapArguments(input any) (map[string]any, error) {
	var envelope map[string]any

	switch v := input.(type) {
	case nil:
		return map[string]any{}, nil
	case map[string]any:
		envelope = v
	case json.RawMessage:
		return UnwrapArguments([]byte(v))
	case string:
		return UnwrapArguments([]byte(v))
	case []byte:
		if len(v) == 0 {
			return map[string]any{}, nil
		}
		if err := json.Unmarshal(v, &envelope); err != nil {
			return nil, &schema.ValidationError{Issues: []schema.Issue{{
				Message: fmt.Sprintf("arguments are not a JSON object: %v", err),
			}}}
		}
		if envelope == nil {
			return map[string]any{}, nil
		}
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("encoding arguments: %w", err)
		}
		return UnwrapArguments(data)
	}

	if inner, ok := envelope["context"].(map[string]any); ok {
		return inner, nil
	}
	return envelope, nil
}

package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/isaacphi/awsdocs/internal/tool"
)

func sampleRegistry(t *testing.T) *tool.Registry {
	t.Helper()
	reg := tool.NewRegistry(nil)
	require.NoError(t, reg.Register(tool.New("lookup", "Look something up", map[string]any{
		"type": "object",
		"properties": map[string]any{
			"q": map[string]any{"type": "string", "description": "query"},
		},
		"required": []any{"q"},
	}, func(ctx context.Context, args map[string]any) (any, error) { return args["q"], nil })))
	return reg
}

func TestPrintToolsFormats(t *testing.T) {
	reg := sampleRegistry(t)

	t.Run("text", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, printTools(&out, reg, "text"))
		assert.Contains(t, out.String(), "lookup:\n  description: Look something up\n")
		assert.Contains(t, out.String(), "    required:\n      - q\n")
	})

	t.Run("json", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, printTools(&out, reg, "json"))

		var decoded []map[string]any
		require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
		require.Len(t, decoded, 1)
		assert.Equal(t, "lookup", decoded[0]["name"])
	})

	t.Run("yaml", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, printTools(&out, reg, "yaml"))

		var decoded []map[string]any
		require.NoError(t, yaml.Unmarshal(out.Bytes(), &decoded))
		require.Len(t, decoded, 1)
		assert.Equal(t, "Look something up", decoded[0]["description"])
	})

	t.Run("anthropic", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, printTools(&out, reg, "anthropic"))
		assert.Contains(t, out.String(), `"name": "lookup"`)
		assert.Contains(t, out.String(), `"input_schema"`)
	})

	t.Run("unknown", func(t *testing.T) {
		assert.ErrorContains(t, printTools(&bytes.Buffer{}, reg, "xml"), `unknown format "xml"`)
	})
}

func TestCall(t *testing.T) {
	reg := sampleRegistry(t)

	var out bytes.Buffer
	require.NoError(t, call(context.Background(), &out, reg, "lookup", `{"context": {"q": "lambda"}}`))
	assert.Equal(t, "lambda\n", out.String())

	err := call(context.Background(), &bytes.Buffer{}, reg, "lookup", `{}`)
	assert.ErrorContains(t, err, "q: required")

	err = call(context.Background(), &bytes.Buffer{}, reg, "missing", `{}`)
	assert.ErrorIs(t, err, tool.ErrToolNotFound)
}

package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type reflectInput struct {
	Query string `json:"query" jsonschema:"required" jsonschema_description:"What to look for"`
	Limit int    `json:"limit,omitempty" jsonschema:"minimum=1,maximum=50,default=10"`
	Exact bool   `json:"exact,omitempty"`
}

func TestReflectProducesTranslatableSchema(t *testing.T) {
	raw := Reflect[reflectInput]()

	assert.Equal(t, "object", raw["type"])
	assert.NotContains(t, raw, "$schema")
	assert.NotContains(t, raw, "$ref")

	v := Translate(FromMap(raw))
	require.Equal(t, KindObject, v.Kind())
	assert.Equal(t, []string{"query"}, v.RequiredFields())

	limit, ok := v.Field("limit")
	require.True(t, ok)
	assert.Equal(t, KindInteger, limit.Validator.Kind())
	lo, hi := limit.Validator.Bounds()
	require.NotNil(t, lo)
	require.NotNil(t, hi)
	assert.Equal(t, 1.0, *lo)
	assert.Equal(t, 50.0, *hi)
	assert.Equal(t, 10.0, limit.Validator.Default())

	query, ok := v.Field("query")
	require.True(t, ok)
	assert.Equal(t, "What to look for", query.Validator.Description())

	out, err := v.Parse(map[string]any{"query": "lambda"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"query": "lambda", "limit": 10.0}, out)
}

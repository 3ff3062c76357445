package tool

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLangchainTool(t *testing.T) {
	reg, docs := docsRegistry(t)

	lc, err := LangchainTool(reg, SearchDocumentationID)
	require.NoError(t, err)
	assert.Equal(t, SearchDocumentationID, lc.Name())
	assert.Contains(t, lc.Description(), "Search AWS documentation")

	out, err := lc.Call(context.Background(), `{"search_phrase":"s3","limit":2}`)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"rank_order":1,"url":"https://docs.aws.amazon.com/a.html","title":"s3"}]`, out)
	assert.Equal(t, []int{2}, docs.searches)

	read, err := LangchainTool(reg, ReadDocumentationID)
	require.NoError(t, err)
	_, err = read.Call(context.Background(), `{}`)
	assert.ErrorContains(t, err, "url: required")
}

func TestLangchainToolLookup(t *testing.T) {
	reg, docs := docsRegistry(t)

	lc, err := LangchainTool(reg, RecommendID)
	require.NoError(t, err)
	assert.Equal(t, RecommendID, lc.Name())

	out, err := lc.Call(context.Background(), `{"url":"https://docs.aws.amazon.com/a.html"}`)
	require.NoError(t, err)
	assert.Contains(t, out, `"context": "Similar content"`)
	assert.Equal(t, []string{"https://docs.aws.amazon.com/a.html"}, docs.recs)

	_, err = LangchainTool(reg, "missing")
	assert.ErrorIs(t, err, ErrToolNotFound)
}

func TestAnthropicTools(t *testing.T) {
	reg, _ := docsRegistry(t)

	params := AnthropicTools(reg)
	require.Len(t, params, 3)

	read := params[0].OfTool
	require.NotNil(t, read)
	assert.Equal(t, ReadDocumentationID, read.Name)
	assert.Equal(t, []string{"url"}, read.InputSchema.Required)

	props, ok := read.InputSchema.Properties.(map[string]any)
	require.True(t, ok)
	assert.Contains(t, props, "max_length")
	assert.Contains(t, props, "start_index")
}

package tool

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"github.com/isaacphi/awsdocs/internal/domain"
	"github.com/isaacphi/awsdocs/internal/schema"
	"github.com/mitchellh/mapstructure"
)

const (
	ReadDocumentationID   = "read_documentation"
	SearchDocumentationID = "search_documentation"
	RecommendID           = "recommend"
)

var (
	//go:embed descriptions/read_documentation.md
	readDocumentationDescription string
	//go:embed descriptions/search_documentation.md
	searchDocumentationDescription string
	//go:embed descriptions/recommend.md
	recommendDescription string
)

// DocsService is the documentation backend the built-in tools call.
type DocsService interface {
	ReadDocumentation(ctx context.Context, url string, maxLength, startIndex int) string
	Search(ctx context.Context, phrase string, limit int) []domain.SearchResult
	Recommend(ctx context.Context, url string) []domain.RecommendationResult
}

type ReadDocumentationInput struct {
	URL        string `json:"url" jsonschema:"required" jsonschema_description:"URL of the AWS documentation page to read"`
	MaxLength  int    `json:"max_length,omitempty" jsonschema:"minimum=1,maximum=1000000,default=5000" jsonschema_description:"Maximum number of characters to return."`
	StartIndex int    `json:"start_index,omitempty" jsonschema:"minimum=0,default=0" jsonschema_description:"On return output starting at this character index, useful if a previous fetch was truncated and more content is required."`
}

type SearchDocumentationInput struct {
	SearchPhrase string `json:"search_phrase" jsonschema:"required" jsonschema_description:"Search phrase to use"`
	Limit        int    `json:"limit,omitempty" jsonschema:"minimum=1,maximum=50,default=10" jsonschema_description:"Maximum number of results to return"`
}

type RecommendInput struct {
	URL string `json:"url" jsonschema:"required" jsonschema_description:"URL of the AWS documentation page to get recommendations for"`
}

// DocumentationTools builds read_documentation, search_documentation and
// recommend on top of svc.
func DocumentationTools(svc DocsService) []*Tool {
	return []*Tool{
		New(ReadDocumentationID, strings.TrimSpace(readDocumentationDescription), schema.Reflect[ReadDocumentationInput](),
			Typed(func(ctx context.Context, in ReadDocumentationInput) (any, error) {
				return svc.ReadDocumentation(ctx, in.URL, in.MaxLength, in.StartIndex), nil
			})),
		New(SearchDocumentationID, strings.TrimSpace(searchDocumentationDescription), schema.Reflect[SearchDocumentationInput](),
			Typed(func(ctx context.Context, in SearchDocumentationInput) (any, error) {
				return svc.Search(ctx, in.SearchPhrase, in.Limit), nil
			})),
		New(RecommendID, strings.TrimSpace(recommendDescription), schema.Reflect[RecommendInput](),
			Typed(func(ctx context.Context, in RecommendInput) (any, error) {
				return svc.Recommend(ctx, in.URL), nil
			})),
	}
}

// Typed decodes validated arguments into T before calling fn.
func Typed[T any](fn func(ctx context.Context, in T) (any, error)) Handler {
	return func(ctx context.Context, args map[string]any) (any, error) {
		var in T
		dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			TagName:          "json",
			WeaklyTypedInput: true,
			Result:           &in,
		})
		if err != nil {
			return nil, err
		}
		if err := dec.Decode(args); err != nil {
			return nil, fmt.Errorf("decoding arguments: %w", err)
		}
		return fn(ctx, in)
	}
}

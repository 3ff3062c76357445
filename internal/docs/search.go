package docs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/isaacphi/awsdocs/internal/domain"
	"github.com/pkg/errors"
)

type searchRequest struct {
	TextQuery            textQuery          `json:"textQuery"`
	ContextAttributes    []contextAttribute `json:"contextAttributes"`
	AcceptSuggestionBody string             `json:"acceptSuggestionBody"`
	Locales              []string           `json:"locales"`
}

type textQuery struct {
	Input string `json:"input"`
}

type contextAttribute struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type searchResponse struct {
	Suggestions []struct {
		TextExcerptSuggestion *struct {
			Link           string `json:"link"`
			Title          string `json:"title"`
			Summary        string `json:"summary"`
			SuggestionBody string `json:"suggestionBody"`
		} `json:"textExcerptSuggestion"`
	} `json:"suggestions"`
}

// SearchClient queries the documentation search endpoint.
type SearchClient struct {
	client   *http.Client
	endpoint string
	domain   string
	locale   string
}

func NewSearchClient(client *http.Client, endpoint, domain, locale string) *SearchClient {
	if client == nil {
		client = http.DefaultClient
	}
	return &SearchClient{client: client, endpoint: endpoint, domain: domain, locale: locale}
}

// Search returns at most limit results in endpoint order, ranked from 1.
// Failures come back as a single result whose title describes the error.
func (c *SearchClient) Search(ctx context.Context, phrase string, limit int) []domain.SearchResult {
	results, err := c.search(ctx, phrase, limit)
	if err != nil {
		return []domain.SearchResult{{RankOrder: 1, Title: err.Error()}}
	}
	return results
}

func (c *SearchClient) search(ctx context.Context, phrase string, limit int) ([]domain.SearchResult, error) {
	body, err := json.Marshal(searchRequest{
		TextQuery:            textQuery{Input: phrase},
		ContextAttributes:    []contextAttribute{{Key: "domain", Value: c.domain}},
		AcceptSuggestionBody: "RawText",
		Locales:              []string{c.locale},
	})
	if err != nil {
		return nil, searchError(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, searchError(err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, searchError(unwrapURLError(err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("Error searching AWS docs - status code %d", resp.StatusCode)
	}

	var data searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, searchError(errors.Wrap(err, "decoding response"))
	}

	results := []domain.SearchResult{}
	for i := 0; i < min(len(data.Suggestions), limit); i++ {
		s := data.Suggestions[i].TextExcerptSuggestion
		if s == nil {
			continue
		}
		snippet := s.Summary
		if snippet == "" {
			snippet = s.SuggestionBody
		}
		results = append(results, domain.SearchResult{
			RankOrder: i + 1,
			URL:       s.Link,
			Title:     s.Title,
			Context:   snippet,
		})
	}
	return results, nil
}

func searchError(err error) error {
	return fmt.Errorf("Error searching AWS docs: %v", err)
}

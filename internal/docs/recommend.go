package docs

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/isaacphi/awsdocs/internal/domain"
	"github.com/pkg/errors"
)

type recommendationItem struct {
	URL         string `json:"url"`
	AssetTitle  string `json:"assetTitle"`
	Abstract    string `json:"abstract"`
	DateCreated string `json:"dateCreated"`
}

type recommendationResponse struct {
	HighlyRated *struct {
		Items []recommendationItem `json:"items"`
	} `json:"highlyRated"`
	Journey *struct {
		Items []struct {
			Intent string               `json:"intent"`
			URLs   []recommendationItem `json:"urls"`
		} `json:"items"`
	} `json:"journey"`
	New *struct {
		Items []recommendationItem `json:"items"`
	} `json:"new"`
	Similar *struct {
		Items []recommendationItem `json:"items"`
	} `json:"similar"`
}

// RecommendClient queries the content recommendation endpoint.
type RecommendClient struct {
	client   *http.Client
	endpoint string
}

func NewRecommendClient(client *http.Client, endpoint string) *RecommendClient {
	if client == nil {
		client = http.DefaultClient
	}
	return &RecommendClient{client: client, endpoint: endpoint}
}

// Recommend returns related pages for pageURL. Failures come back as a single
// result whose title describes the error.
func (c *RecommendClient) Recommend(ctx context.Context, pageURL string) []domain.RecommendationResult {
	results, err := c.recommend(ctx, pageURL)
	if err != nil {
		return []domain.RecommendationResult{{Title: err.Error()}}
	}
	return results
}

func (c *RecommendClient) recommend(ctx context.Context, pageURL string) ([]domain.RecommendationResult, error) {
	endpoint := c.endpoint + "?path=" + url.QueryEscape(pageURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, recommendError(err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, recommendError(unwrapURLError(err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("Error getting recommendations - status code %d", resp.StatusCode)
	}

	var data recommendationResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, recommendError(errors.Wrap(err, "decoding response"))
	}
	return flattenRecommendations(data), nil
}

// flattenRecommendations lists highly rated, journey, new and similar pages,
// in that order.
func flattenRecommendations(data recommendationResponse) []domain.RecommendationResult {
	results := []domain.RecommendationResult{}
	add := func(item recommendationItem, note string) {
		results = append(results, domain.RecommendationResult{
			URL:     item.URL,
			Title:   item.AssetTitle,
			Context: note,
		})
	}

	if data.HighlyRated != nil {
		for _, item := range data.HighlyRated.Items {
			add(item, item.Abstract)
		}
	}

	if data.Journey != nil {
		for _, group := range data.Journey.Items {
			note := ""
			if group.Intent != "" {
				note = "Intent: " + group.Intent
			}
			for _, item := range group.URLs {
				add(item, note)
			}
		}
	}

	if data.New != nil {
		for _, item := range data.New.Items {
			note := "New content"
			if item.DateCreated != "" {
				note = "New content added on " + item.DateCreated
			}
			add(item, note)
		}
	}

	if data.Similar != nil {
		for _, item := range data.Similar.Items {
			note := item.Abstract
			if note == "" {
				note = "Similar content"
			}
			add(item, note)
		}
	}

	return results
}

func recommendError(err error) error {
	return fmt.Errorf("Error getting recommendations: %v", err)
}

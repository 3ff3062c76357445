package docs

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/isaacphi/awsdocs/internal/config"
	"github.com/isaacphi/awsdocs/internal/domain"
)

// Service ties the fetcher, normalizer, paginator and the two remote clients
// together. It holds no mutable state and is safe for concurrent use.
type Service struct {
	fetcher    *Fetcher
	normalizer *Normalizer
	search     *SearchClient
	recommend  *RecommendClient
	logger     *slog.Logger
}

func NewService(cfg config.Docs, client *http.Client, logger *slog.Logger) (*Service, error) {
	policy, err := NewURLPolicy(cfg)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		fetcher:    NewFetcher(client, policy),
		normalizer: NewNormalizer(DefaultPolicy()),
		search:     NewSearchClient(client, cfg.SearchURL, cfg.Domain, cfg.Locale),
		recommend:  NewRecommendClient(client, cfg.RecommendationsURL),
		logger:     logger.With("component", "docs"),
	}, nil
}

// ReadPage fetches, normalizes and paginates a documentation page.
func (s *Service) ReadPage(ctx context.Context, url string, maxLength, startIndex int) (Page, error) {
	s.logger.Debug("reading documentation", "url", url, "max_length", maxLength, "start_index", startIndex)

	raw, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		s.logger.Warn("fetch failed", "url", url, "error", err)
		return Page{}, err
	}
	s.logger.Debug("fetched page", "url", url, "status", raw.StatusCode, "content_type", raw.ContentType, "bytes", len(raw.Body))

	content := s.normalizer.Normalize(raw.Body, raw.ContentType)
	page := Paginate(url, content, startIndex, maxLength)
	s.logger.Debug("paginated page", "url", url, "original_length", page.OriginalLength, "length", page.Length, "has_more", page.HasMore)
	return page, nil
}

// ReadDocumentation is ReadPage rendered as text. Fetch failures become their
// descriptive message instead of an error.
func (s *Service) ReadDocumentation(ctx context.Context, url string, maxLength, startIndex int) string {
	page, err := s.ReadPage(ctx, url, maxLength, startIndex)
	if err != nil {
		return err.Error()
	}
	return page.String()
}

func (s *Service) Search(ctx context.Context, phrase string, limit int) []domain.SearchResult {
	s.logger.Debug("searching documentation", "phrase", phrase, "limit", limit)
	return s.search.Search(ctx, phrase, limit)
}

func (s *Service) Recommend(ctx context.Context, url string) []domain.RecommendationResult {
	s.logger.Debug("getting recommendations", "url", url)
	return s.recommend.Recommend(ctx, url)
}

package docs

import (
	"context"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/isaacphi/awsdocs/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, handler http.Handler) (*Service, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := config.Docs{
		URLPattern:         "^" + regexp.QuoteMeta(srv.URL) + "/",
		Domain:             "docs.aws.amazon.com",
		RequiredSuffix:     ".html",
		UserAgent:          testUserAgent,
		Timeout:            5 * time.Second,
		SearchURL:          srv.URL + "/search",
		RecommendationsURL: srv.URL + "/recommendations",
		Locale:             "en_us",
	}
	svc, err := NewService(cfg, NewHTTPClient(cfg), nil)
	require.NoError(t, err)
	return svc, srv
}

func TestServiceReadDocumentation(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/guide.html", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><body><nav>menu</nav><main><h1>Guide</h1><p>` + strings.Repeat("word ", 40) + `</p></main></body></html>`))
	})
	mux.HandleFunc("/notes.html", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("plain notes"))
	})
	mux.HandleFunc("/broken.html", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})
	svc, srv := newTestService(t, mux)
	ctx := context.Background()

	t.Run("first page carries a continuation hint", func(t *testing.T) {
		out := svc.ReadDocumentation(ctx, srv.URL+"/guide.html", 20, 0)
		assert.True(t, strings.HasPrefix(out, "AWS Documentation from "+srv.URL+"/guide.html:\n\n# Guide"))
		assert.Contains(t, out, "start_index=20 to get more content.</e>")
		assert.NotContains(t, out, "menu")
	})

	t.Run("reading past the end", func(t *testing.T) {
		page, err := svc.ReadPage(ctx, srv.URL+"/guide.html", 10, 0)
		require.NoError(t, err)

		out := svc.ReadDocumentation(ctx, srv.URL+"/guide.html", 10, page.OriginalLength)
		assert.Contains(t, out, "<e>No more content available.</e>")
	})

	t.Run("plain text passes through", func(t *testing.T) {
		out := svc.ReadDocumentation(ctx, srv.URL+"/notes.html", 100, 0)
		assert.Equal(t, "AWS Documentation from "+srv.URL+"/notes.html:\n\nplain notes", out)
	})

	t.Run("status failure becomes text", func(t *testing.T) {
		out := svc.ReadDocumentation(ctx, srv.URL+"/broken.html", 100, 0)
		assert.Equal(t, "Failed to fetch "+srv.URL+"/broken.html - status code 403", out)
	})

	t.Run("policy failure becomes text", func(t *testing.T) {
		out := svc.ReadDocumentation(ctx, srv.URL+"/guide", 100, 0)
		assert.Equal(t, "Invalid URL: URL must end with .html", out)
	})
}

func TestServiceSearchAndRecommend(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/search", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"suggestions":[{"textExcerptSuggestion":{"link":"https://docs.aws.amazon.com/a.html","title":"A"}}]}`))
	})
	mux.HandleFunc("/recommendations", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"similar":{"items":[{"url":"https://docs.aws.amazon.com/b.html","assetTitle":"B"}]}}`))
	})
	svc, _ := newTestService(t, mux)

	found := svc.Search(context.Background(), "lambda", 10)
	require.Len(t, found, 1)
	assert.Equal(t, "A", found[0].Title)

	recs := svc.Recommend(context.Background(), "https://docs.aws.amazon.com/a.html")
	require.Len(t, recs, 1)
	assert.Equal(t, "Similar content", recs[0].Context)
}

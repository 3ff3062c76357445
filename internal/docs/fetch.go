// Package docs retrieves AWS documentation pages, turns them into markdown and
// serves them in resumable pages. It also wraps the documentation search and
// recommendation endpoints.
package docs

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/isaacphi/awsdocs/internal/config"
	"github.com/pkg/errors"
)

// PreconditionError reports a URL that may not be fetched. No request is made.
type PreconditionError struct {
	URL    string
	Reason string
}

func (e *PreconditionError) Error() string {
	return "Invalid URL: " + e.Reason
}

// TransportError reports a failed request or a non-success response.
type TransportError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("Failed to fetch %s - status code %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("Failed to fetch %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// URLPolicy decides which URLs the fetcher is allowed to request.
type URLPolicy struct {
	Pattern *regexp.Regexp
	Domain  string
	Suffix  string
}

// NewURLPolicy compiles the configured trusted-domain pattern.
func NewURLPolicy(cfg config.Docs) (URLPolicy, error) {
	re, err := regexp.Compile(cfg.URLPattern)
	if err != nil {
		return URLPolicy{}, errors.Wrapf(err, "compiling url pattern %q", cfg.URLPattern)
	}
	return URLPolicy{Pattern: re, Domain: cfg.Domain, Suffix: cfg.RequiredSuffix}, nil
}

// Check reports the first rule rawURL violates. The domain rule is checked
// before the suffix rule.
func (p URLPolicy) Check(rawURL string) error {
	if p.Pattern != nil && !p.Pattern.MatchString(rawURL) {
		return &PreconditionError{URL: rawURL, Reason: fmt.Sprintf("URL must be from the %s domain", p.Domain)}
	}
	if p.Suffix != "" && !strings.HasSuffix(rawURL, p.Suffix) {
		return &PreconditionError{URL: rawURL, Reason: fmt.Sprintf("URL must end with %s", p.Suffix)}
	}
	return nil
}

// RawContent is an unprocessed response body.
type RawContent struct {
	URL         string
	Body        string
	ContentType string
	StatusCode  int
}

// Fetcher issues a single GET per call. It never retries.
type Fetcher struct {
	client *http.Client
	policy URLPolicy
}

func NewFetcher(client *http.Client, policy URLPolicy) *Fetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &Fetcher{client: client, policy: policy}
}

// Fetch checks rawURL against the policy and downloads it. Errors are either
// *PreconditionError or *TransportError.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*RawContent, error) {
	if err := f.policy.Check(rawURL); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &TransportError{URL: rawURL, Err: err}
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &TransportError{URL: rawURL, Err: unwrapURLError(err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &TransportError{URL: rawURL, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{URL: rawURL, StatusCode: resp.StatusCode, Err: errors.Wrap(err, "reading body")}
	}

	return &RawContent{
		URL:         rawURL,
		Body:        string(body),
		ContentType: resp.Header.Get("Content-Type"),
		StatusCode:  resp.StatusCode,
	}, nil
}

// unwrapURLError drops the "Get \"url\":" prefix net/http adds, since the
// message already names the URL.
func unwrapURLError(err error) error {
	var ue *url.Error
	if errors.As(err, &ue) && ue.Err != nil {
		return ue.Err
	}
	return err
}

package docs

import (
	"net/http"

	"github.com/isaacphi/awsdocs/internal/config"
)

// NewHTTPClient builds the process-wide client used for every outbound call.
// It is read-only after construction.
func NewHTTPClient(cfg config.Docs) *http.Client {
	return &http.Client{
		Timeout: cfg.Timeout,
		Transport: &headerRoundTripper{
			base: http.DefaultTransport,
			headers: map[string]string{
				"User-Agent": cfg.UserAgent,
			},
		},
	}
}

type headerRoundTripper struct {
	base    http.RoundTripper
	headers map[string]string
}

func (h *headerRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	base := h.base
	if base == nil {
		base = http.DefaultTransport
	}
	// RoundTrippers must not modify the caller's request.
	req = req.Clone(req.Context())
	for key, value := range h.headers {
		if value != "" {
			req.Header.Set(key, value)
		}
	}
	return base.RoundTrip(req)
}

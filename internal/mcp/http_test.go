package mcp

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/isaacphi/awsdocs/internal/config"
	"github.com/isaacphi/awsdocs/internal/metrics"
)

func TestHTTPHandlerRoutes(t *testing.T) {
	m := metrics.New()
	reg := echoRegistry(t)
	reg.AddObserver(m)

	srv := httptest.NewServer(NewHTTPHandler(NewServer(reg, config.Server{Name: "t", Version: "0"}, nil), m.Handler()))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", string(body))

	resp, err = http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	body, _ = io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "go_goroutines")

	resp, err = http.Get(srv.URL + "/nope")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHTTPHandlerWithoutMetrics(t *testing.T) {
	srv := httptest.NewServer(NewHTTPHandler(NewServer(echoRegistry(t), config.Server{Name: "t"}, nil), nil))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

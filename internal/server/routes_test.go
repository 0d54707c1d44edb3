package server

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tubeideas/internal/config"
	"tubeideas/internal/middlewares"
	"tubeideas/internal/models"
)

type stubAnalyzer struct{}

func (stubAnalyzer) CheckCredentials() error { return nil }

func (stubAnalyzer) Analyze(_ context.Context, channelURL, channelID string) (*models.AnalysisResult, error) {
	return &models.AnalysisResult{
		Channel: models.ChannelRef{ID: channelID, Title: "Stub"},
		Topics:  []string{"stub"},
	}, nil
}

func newTestServer(t *testing.T, burst int) *httptest.Server {
	t.Helper()
	cfg := &config.Config{
		AllowedOrigins: []string{"http://localhost:3000"},
		AnalyzeTimeout: time.Minute,
		LLMProvider:    config.ProviderGoogleAI,
	}
	s := &Server{
		cfg:      cfg,
		analyzer: stubAnalyzer{},
		limiter:  middlewares.NewRateLimiter(1, burst),
	}
	srv := httptest.NewServer(s.RegisterRoutes())
	t.Cleanup(srv.Close)
	return srv
}

func TestHealthRoute(t *testing.T) {
	srv := newTestServer(t, 5)

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"status":"ok"`)
}

func TestAnalyzeRoute(t *testing.T) {
	srv := newTestServer(t, 5)

	resp, err := http.Post(srv.URL+"/api/analyze", "application/json",
		strings.NewReader(`{"channelUrl":"https://youtube.com/@stub","channelId":"UC9"}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"id":"UC9"`)
}

func TestAnalyzeRouteRejectsGet(t *testing.T) {
	srv := newTestServer(t, 5)

	resp, err := http.Get(srv.URL + "/api/analyze")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestAnalyzePreflight(t *testing.T) {
	srv := newTestServer(t, 5)

	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/api/analyze", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:3000")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "http://localhost:3000", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestAnalyzeRouteIsRateLimited(t *testing.T) {
	srv := newTestServer(t, 1)

	post := func() int {
		resp, err := http.Post(srv.URL+"/api/analyze", "application/json",
			strings.NewReader(`{"channelUrl":"https://youtube.com/@stub"}`))
		require.NoError(t, err)
		resp.Body.Close()
		return resp.StatusCode
	}

	assert.Equal(t, http.StatusOK, post())
	assert.Equal(t, http.StatusTooManyRequests, post())

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode, "health is not rate limited")
}

func TestMetricsRoute(t *testing.T) {
	srv := newTestServer(t, 5)

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	resp.Body.Close()

	resp, err = http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "http_requests_total")
}

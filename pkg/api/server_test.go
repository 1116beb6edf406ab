package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouter_RequiresAPIKey(t *testing.T) {
	env := setupTestServer(t, nil)

	req := httptest.NewRequest("GET", "/api/v1/health", nil)
	w := httptest.NewRecorder()
	env.handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req = httptest.NewRequest("GET", "/api/v1/health", nil)
	req.Header.Set(apiKeyHeader, "nope")
	w = httptest.NewRecorder()
	env.handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	assert.Equal(t, float64(1), testutil.ToFloat64(env.server.metrics.authRequestsTotal.WithLabelValues(statusError)))
}

func TestRouter_MetricsUnprotected(t *testing.T) {
	env := setupTestServer(t, nil)

	env.do(t, "POST", "/api/v1/replays/decode", sampleOSR(t))
	env.do(t, "POST", "/api/v1/replays/decode", []byte{1, 2})

	req := httptest.NewRequest("GET", "/metrics", nil)
	w := httptest.NewRecorder()
	env.handler.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, "osr_http_requests_total")
	assert.Contains(t, body, "osr_codec_operations_total")
	assert.Contains(t, body, "osr_replay_bytes")

	m := env.server.metrics
	assert.Equal(t, float64(1), testutil.ToFloat64(m.codecOperationsTotal.WithLabelValues("decode", statusSuccess)))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.codecOperationsTotal.WithLabelValues("decode", statusError)))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.httpRequestsTotal.WithLabelValues("POST", "/api/v1/replays/decode", "400")))
}

func TestRouter_NilMetrics(t *testing.T) {
	server := NewServer(newMemArchive(), nil, ServerConfig{APIKey: testAPIKey}, nil, zerolog.Nop())
	handler := NewRouter(server, nil)

	req := httptest.NewRequest("POST", "/api/v1/replays/decode", strings.NewReader(string(sampleOSR(t))))
	req.Header.Set(apiKeyHeader, testAPIKey)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest("GET", "/metrics", nil)
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestNewServer_Defaults(t *testing.T) {
	server := NewServer(newMemArchive(), nil, ServerConfig{}, nil, zerolog.Nop())
	assert.Equal(t, DefaultMaxBodyBytes, server.config.MaxBodyBytes)
	assert.NotNil(t, server.codec)
}

func TestStartServer_RequiresAPIKey(t *testing.T) {
	err := StartServer(context.Background(), newMemArchive(), nil, ServerConfig{Port: 0}, zerolog.Nop())
	assert.Error(t, err)
}

func TestStartServer_ShutsDownOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- StartServer(ctx, newMemArchive(), nil, ServerConfig{Bind: "127.0.0.1", Port: 0, APIKey: testAPIKey}, zerolog.Nop())
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestServerFactory(t *testing.T) {
	starter := NewServerFactory().CreateServerStarter()
	_, ok := starter.(*DefaultServerStarter)
	assert.True(t, ok)
}

func TestRouter_Swagger(t *testing.T) {
	env := setupTestServer(t, nil)

	req := httptest.NewRequest("GET", "/swagger/swagger.json", nil)
	w := httptest.NewRecorder()
	env.handler.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var doc struct {
		Swagger  string                     `json:"swagger"`
		BasePath string                     `json:"basePath"`
		Paths    map[string]json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
	assert.Equal(t, "2.0", doc.Swagger)
	assert.Equal(t, "/api/v1", doc.BasePath)
	for _, path := range []string{"/health", "/replays/decode", "/replays/repack", "/replay-data/parse", "/replays", "/replays/{id}", "/replays/{id}/summary"} {
		assert.Contains(t, doc.Paths, path)
	}

	req = httptest.NewRequest("GET", "/swagger/index.html", nil)
	w = httptest.NewRecorder()
	env.handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "swagger-ui")

	req = httptest.NewRequest("GET", "/swagger/other", nil)
	w = httptest.NewRecorder()
	env.handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

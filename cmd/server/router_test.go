package main

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/focusflow/focusflow-api/internal/config"
)

// newTestApplication builds an application with just enough wiring to
// exercise the router; the handlers' services are never invoked.
func newTestApplication(t *testing.T) *application {
	t.Helper()

	return &application{
		config: &config.Config{
			Server: config.ServerConfig{
				Port:     8080,
				LogLevel: "info",
			},
		},
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestHealthEndpoint(t *testing.T) {
	t.Parallel()

	app := newTestApplication(t)
	router := app.setupRouter()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])

	ts, err := time.Parse(time.RFC3339, body["timestamp"])
	require.NoError(t, err, "timestamp should be RFC3339")
	assert.WithinDuration(t, time.Now().UTC(), ts, time.Minute)
}

func TestRouterUnknownRoute(t *testing.T) {
	t.Parallel()

	app := newTestApplication(t)
	router := app.setupRouter()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/unknown", nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	t.Parallel()

	app := newTestApplication(t)
	router := app.setupRouter()

	for _, path := range []string{"/api/tasks", "/api/analytics/focus-patterns"} {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, path, nil)
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code,
			"%s should reject requests without a token", path)
	}
}

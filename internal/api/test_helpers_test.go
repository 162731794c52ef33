package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/focusflow/focusflow-api/internal/api/shared"
)

// authedRequest builds a request with the given user ID in the context, the
// way the auth middleware would.
func authedRequest(method, path string, body io.Reader, userID uuid.UUID) *http.Request {
	req := httptest.NewRequest(method, path, body)
	ctx := context.WithValue(req.Context(), shared.UserIDContextKey, userID)
	return req.WithContext(ctx)
}

// authedJSONRequest marshals the payload and builds an authenticated request.
func authedJSONRequest(
	t *testing.T,
	method, path string,
	payload interface{},
	userID uuid.UUID,
) *http.Request {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := authedRequest(method, path, bytes.NewReader(body), userID)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// withPathParam attaches a chi route parameter to the request context.
func withPathParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

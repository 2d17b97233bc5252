package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen11/projectboard/internal/domain/project"
)

const testProjectID = "6f1c9a52-3b7e-4d0a-9a51-2f0e8c1d4b77"

// withChiParams sets path parameters the way chi would after routing.
func withChiParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func validProject() project.Project {
	return project.Project{
		ID:          testProjectID,
		Title:       "Website",
		Description: "Redesign landing page",
		People:      3,
		Status:      project.StatusActive,
	}
}

func jsonBody(t *testing.T, v any) io.Reader {
	t.Helper()
	buf := &bytes.Buffer{}
	require.NoError(t, json.NewEncoder(buf).Encode(v))
	return buf
}

// rawBody is a request body that is sent as is.
func rawBody(s string) io.Reader {
	return strings.NewReader(s)
}

func decodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var result T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&result), rec.Body.String())
	return result
}

func requireStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	require.Equal(t, want, rec.Code, "body = %s", rec.Body.String())
}

// assertProblem checks a problem response and returns its body.
func assertProblem(t *testing.T, rec *httptest.ResponseRecorder, want int) map[string]any {
	t.Helper()
	requireStatus(t, rec, want)
	assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
	return decodeJSON[map[string]any](t, rec)
}

package middleware_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen11/projectboard/internal/adapters/http/dto"
	"github.com/jsamuelsen11/projectboard/internal/adapters/http/middleware"
)

func TestTimeout_CompletesBeforeDeadline(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		handler    http.HandlerFunc
		wantStatus int
		wantBody   string
		wantHeader string
	}{
		{
			name: "explicit status",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Location", "/api/v1/projects/p-1")
				w.WriteHeader(http.StatusCreated)
				_, _ = w.Write([]byte(`{"id":"p-1"}`))
			},
			wantStatus: http.StatusCreated,
			wantBody:   `{"id":"p-1"}`,
			wantHeader: "/api/v1/projects/p-1",
		},
		{
			name: "implicit status",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"active":[]}`))
			},
			wantStatus: http.StatusOK,
			wantBody:   `{"active":[]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := serve(middleware.Timeout(time.Second)(tt.handler), http.MethodPost, "/api/v1/projects")
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantBody, rec.Body.String())
			assert.Equal(t, tt.wantHeader, rec.Header().Get("Location"))
		})
	}
}

func TestTimeout_ContextCarriesDeadline(t *testing.T) {
	t.Parallel()

	var hasDeadline bool
	handler := middleware.Timeout(time.Second)(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		_, hasDeadline = r.Context().Deadline()
	}))

	serve(handler, http.MethodGet, "/api/v1/board")
	assert.True(t, hasDeadline)
}

func TestTimeout_ExceedsDeadline(t *testing.T) {
	t.Parallel()

	lateWrite := make(chan error, 1)
	handler := middleware.Timeout(20*time.Millisecond)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
		time.Sleep(10 * time.Millisecond)
		_, err := w.Write([]byte("too late"))
		lateWrite <- err
	}))

	rec := serve(handler, http.MethodPut, "/api/v1/projects/p-1/status")

	require.Equal(t, http.StatusGatewayTimeout, rec.Code)
	assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))

	body := rec.Body.String()
	var problem dto.ErrorResponse
	require.NoError(t, json.Unmarshal([]byte(body), &problem))
	assert.Equal(t, "Gateway Timeout", problem.Title)
	assert.Contains(t, problem.Detail, "request exceeded 20ms")

	select {
	case err := <-lateWrite:
		assert.True(t, errors.Is(err, http.ErrHandlerTimeout))
	case <-time.After(time.Second):
		t.Fatal("handler never attempted its late write")
	}
	assert.NotContains(t, body, "too late")
}

func TestTimeout_PanicReachesRecovery(t *testing.T) {
	t.Parallel()

	handler := middleware.Chain(
		middleware.Recovery(discardLogger()),
		middleware.Timeout(time.Second),
	)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("listener failed")
	}))

	rec := serve(handler, http.MethodPost, "/api/v1/projects")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestTimeout_DisabledPassesThrough(t *testing.T) {
	t.Parallel()

	var hasDeadline bool
	handler := middleware.Timeout(0)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hasDeadline = r.Context().Deadline()
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := serve(handler, http.MethodGet, "/api/v1/board")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.False(t, hasDeadline)
}

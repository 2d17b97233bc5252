package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"github.com/jsamuelsen11/projectboard/internal/adapters/http/middleware"
	"github.com/jsamuelsen11/projectboard/internal/platform/logging"
)

func TestLogging_AccessRecord(t *testing.T) {
	t.Parallel()

	sink := &logSink{}
	r := chi.NewRouter()
	r.Use(middleware.RequestID(), middleware.CorrelationID(), middleware.Logging(sink.logger()))
	r.Post("/api/v1/board/{status}/drop", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"changed":true}`))
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/board/finished/drop", http.NoBody)
	req.Header.Set("X-Request-ID", "req-7")
	req.Header.Set("X-Correlation-ID", "corr-7")
	r.ServeHTTP(httptest.NewRecorder(), req)

	entry := sink.find(t, "request completed")
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "POST", entry["method"])
	assert.Equal(t, "/api/v1/board/finished/drop", entry["path"])
	assert.Equal(t, "/api/v1/board/{status}/drop", entry["route"])
	assert.InDelta(t, 200, entry["status"], 0)
	assert.InDelta(t, 16, entry["bytes"], 0)
	assert.Contains(t, entry, "duration")
	assert.Equal(t, "req-7", entry["request_id"])
	assert.Equal(t, "corr-7", entry["correlation_id"])
}

func TestLogging_LevelFollowsOutcome(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		path      string
		status    int
		wantLevel string
	}{
		{name: "created", path: "/api/v1/projects", status: http.StatusCreated, wantLevel: "INFO"},
		{name: "validation failure", path: "/api/v1/projects", status: http.StatusBadRequest, wantLevel: "WARN"},
		{name: "unknown project", path: "/api/v1/projects/ghost", status: http.StatusNotFound, wantLevel: "WARN"},
		{name: "listener panic", path: "/api/v1/projects", status: http.StatusInternalServerError, wantLevel: "ERROR"},
		{name: "liveness probe", path: "/health/live", status: http.StatusOK, wantLevel: "DEBUG"},
		{name: "failing readiness probe", path: "/health/ready", status: http.StatusServiceUnavailable, wantLevel: "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			sink := &logSink{}
			handler := middleware.Logging(sink.logger())(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
			}))
			handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, tt.path, http.NoBody))

			entry := sink.find(t, "request completed")
			assert.Equal(t, tt.wantLevel, entry["level"])
			assert.Empty(t, entry["route"])
		})
	}
}

func TestLogging_StoresLoggerInContext(t *testing.T) {
	t.Parallel()

	sink := &logSink{}
	handler := middleware.Chain(middleware.RequestID(), middleware.Logging(sink.logger()))(
		http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
			logging.FromContext(r.Context()).Info("project added")
		}),
	)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/projects", http.NoBody)
	req.Header.Set("X-Request-ID", "req-ctx")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	entry := sink.find(t, "project added")
	assert.Equal(t, "req-ctx", entry["request_id"])
}

func TestLogging_RedactsHeadersAtDebug(t *testing.T) {
	t.Parallel()

	sink := &logSink{}
	handler := middleware.Logging(sink.logger())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/board", http.NoBody)
	req.Header.Set("Authorization", "Bearer secret-token")
	req.Header.Set("Accept", "application/json")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	entry := sink.find(t, "request headers")
	assert.Equal(t, "[REDACTED]", entry["Authorization"])
	assert.Equal(t, "application/json", entry["Accept"])
}

// Package middleware holds the inbound request pipeline of the board API:
//
//	Recovery → RequestID → CorrelationID → OpenTelemetry → Logging → Timeout → routes
//
// Every middleware is a func(http.Handler) http.Handler; Chain composes them.
package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// responseWriter records the status and body size written by the handler so
// recovery, tracing and access logs can report them.
type responseWriter struct {
	http.ResponseWriter
	statusCode    int
	headerWritten bool
	written       int64
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
}

// WriteHeader keeps the first status; later calls are dropped, matching
// net/http's own behavior without its superfluous-call warning.
func (rw *responseWriter) WriteHeader(code int) {
	if rw.headerWritten {
		return
	}
	rw.statusCode = code
	rw.headerWritten = true
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	rw.headerWritten = true
	n, err := rw.ResponseWriter.Write(b)
	rw.written += int64(n)
	return n, err
}

// Unwrap exposes the underlying writer to http.ResponseController.
func (rw *responseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}

// routeOf returns the chi route pattern that served r, such as
// "/api/v1/projects/{id}/status". Outside a chi router, or before routing
// has happened, it returns "".
func routeOf(r *http.Request) string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return ""
	}
	return rctx.RoutePattern()
}

package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/jsamuelsen11/projectboard/internal/platform/logging"
)

// probePaths are polled by orchestrators; their access logs drop to debug.
var probePaths = map[string]bool{
	"/health/live":  true,
	"/health/ready": true,
}

// Logging writes one access log line per request and stores a child logger
// carrying request_id and correlation_id in the context, so service and
// listener logs for the request can be joined on those IDs.
//
// The level follows the outcome: 5xx logs at error, 4xx at warn, everything
// else at info. Probe endpoints log at debug. Request headers, redacted, are
// logged at debug.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			child := logger.With(
				slog.String("request_id", RequestIDFromContext(r.Context())),
				slog.String("correlation_id", CorrelationIDFromContext(r.Context())),
			)
			ctx := logging.WithLogger(r.Context(), child)

			if child.Enabled(ctx, slog.LevelDebug) {
				child.LogAttrs(ctx, slog.LevelDebug, "request headers", RedactHeaders(r.Header)...)
			}

			rw := newResponseWriter(w)
			next.ServeHTTP(rw, r.WithContext(ctx))

			child.LogAttrs(ctx, accessLevel(r.URL.Path, rw.statusCode), "request completed",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("route", routeOf(r)),
				slog.Int("status", rw.statusCode),
				slog.Int64("bytes", rw.written),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}

func accessLevel(path string, status int) slog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return slog.LevelError
	case status >= http.StatusBadRequest:
		return slog.LevelWarn
	case probePaths[path]:
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}

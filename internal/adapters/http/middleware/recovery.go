package middleware

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/jsamuelsen11/projectboard/internal/adapters/http/dto"
)

// errInternalServer is all a client learns about a panic.
var errInternalServer = errors.New("internal server error")

// Recovery turns a panic below it, typically a failing store listener, into
// an RFC 9457 500 response and an error log with the stack. The project
// mutation that triggered the listener has already been committed.
//
// http.ErrAbortHandler is re-panicked so net/http aborts the connection
// quietly. If the handler already wrote headers, only the log is emitted.
//
// Recovery is outermost, so the request ID is read back from the response
// header that RequestID sets.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rw := newResponseWriter(w)

			defer func() {
				v := recover()
				if v == nil {
					return
				}
				if err, ok := v.(error); ok && errors.Is(err, http.ErrAbortHandler) {
					panic(v)
				}

				logger.LogAttrs(r.Context(), slog.LevelError, "panic recovered",
					slog.String("panic", fmt.Sprint(v)),
					slog.String("panic_type", fmt.Sprintf("%T", v)),
					slog.String("request_id", rw.Header().Get(headerRequestID)),
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.String("stack", string(debug.Stack())),
				)

				if !rw.headerWritten {
					dto.WriteErrorResponse(rw, r, errInternalServer)
				}
			}()

			next.ServeHTTP(rw, r)
		})
	}
}

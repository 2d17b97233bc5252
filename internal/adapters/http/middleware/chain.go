package middleware

import "net/http"

// Chain composes middleware so the first argument is outermost:
//
//	Chain(Recovery(logger), RequestID(), Timeout(d))(router)
//
// is Recovery(RequestID(Timeout(router))).
func Chain(middlewares ...func(http.Handler) http.Handler) func(http.Handler) http.Handler {
	return func(handler http.Handler) http.Handler {
		for i := len(middlewares) - 1; i >= 0; i-- {
			handler = middlewares[i](handler)
		}
		return handler
	}
}

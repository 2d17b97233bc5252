package middleware

import (
	"bytes"
	"context"
	"fmt"
	"maps"
	"net/http"
	"sync"
	"time"

	"github.com/jsamuelsen11/projectboard/internal/adapters/http/dto"
)

// Timeout gives each request a deadline. The handler runs on its own
// goroutine and its response is held back until it returns; if the deadline
// wins, the client gets a 504 problem and later writes fail with
// http.ErrHandlerTimeout. Mutations the handler already made stay
// committed.
//
// Handler panics are re-raised on the request goroutine so an outer
// Recovery still handles them. A non-positive timeout disables the
// middleware.
func Timeout(timeout time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if timeout <= 0 {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			defer cancel()

			held := newHeldResponse()
			finished := make(chan any, 1)

			go func() {
				var recovered any
				defer func() { finished <- recovered }()
				defer func() { recovered = recover() }()
				next.ServeHTTP(held, r.WithContext(ctx))
			}()

			select {
			case v := <-finished:
				if v != nil {
					panic(v)
				}
				held.release(w)
			case <-ctx.Done():
				held.abandon()
				dto.WriteErrorResponse(w, r, fmt.Errorf("request exceeded %s: %w", timeout, ctx.Err()))
			}
		})
	}
}

// heldResponse collects a handler's response so it can be released or
// abandoned as a whole.
type heldResponse struct {
	mu        sync.Mutex
	header    http.Header
	body      bytes.Buffer
	status    int
	abandoned bool
}

func newHeldResponse() *heldResponse {
	return &heldResponse{header: make(http.Header)}
}

func (h *heldResponse) Header() http.Header {
	return h.header
}

func (h *heldResponse) WriteHeader(code int) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.status == 0 {
		h.status = code
	}
}

func (h *heldResponse) Write(b []byte) (int, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.abandoned {
		return 0, http.ErrHandlerTimeout
	}
	if h.status == 0 {
		h.status = http.StatusOK
	}
	return h.body.Write(b)
}

// release copies the response to w. The handler has returned.
func (h *heldResponse) release(w http.ResponseWriter) {
	h.mu.Lock()
	defer h.mu.Unlock()

	maps.Copy(w.Header(), h.header)
	if h.status != 0 {
		w.WriteHeader(h.status)
	}
	_, _ = h.body.WriteTo(w)
}

func (h *heldResponse) abandon() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.abandoned = true
}

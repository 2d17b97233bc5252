package httpclient

import (
	"context"
	"net/http"
)

type idKey int

const (
	requestIDKey idKey = iota
	correlationIDKey
)

// forwarded maps each context ID to the header it travels in.
var forwarded = []struct {
	key    idKey
	header string
}{
	{requestIDKey, "X-Request-ID"},
	{correlationIDKey, "X-Correlation-ID"},
}

// WithRequestID stores the inbound request ID for outbound calls.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// WithCorrelationID stores the correlation ID for outbound calls.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationIDKey, id)
}

// injectIDs copies the IDs found in ctx onto h. Missing or empty IDs leave
// the header untouched.
func injectIDs(ctx context.Context, h http.Header) {
	for _, f := range forwarded {
		if id, _ := ctx.Value(f.key).(string); id != "" {
			h.Set(f.header, id)
		}
	}
}

package middleware_test

import (
	"log/slog"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jsamuelsen11/projectboard/internal/adapters/http/middleware"
)

func TestRedactHeaders(t *testing.T) {
	t.Parallel()

	headers := http.Header{}
	headers.Set("Content-Type", "text/plain")
	headers.Set("Authorization", "Bearer abc")
	headers.Set("Proxy-Authorization", "Basic xyz")
	headers.Set("X-API-Key", "key-1")
	headers.Set("X-Webhook-Secret", "shh")
	headers.Add("Cookie", "a=1")
	headers.Add("Cookie", "b=2")
	headers.Add("Accept", "application/json")
	headers.Add("Accept", "application/problem+json")
	// Non-canonical keys set directly on the map.
	headers["set-cookie"] = []string{"session=1"}

	got := middleware.RedactHeaders(headers)

	want := []string{
		"Accept=application/json,application/problem+json",
		"Authorization=[REDACTED]",
		"Content-Type=text/plain",
		"Cookie=[REDACTED]",
		"Proxy-Authorization=[REDACTED]",
		"X-Api-Key=[REDACTED]",
		"X-Webhook-Secret=[REDACTED]",
		"set-cookie=[REDACTED]",
	}
	assert.Equal(t, want, render(got))
}

func render(attrs []slog.Attr) []string {
	out := make([]string, len(attrs))
	for i, a := range attrs {
		out[i] = a.String()
	}
	return out
}

func TestRedactHeaders_Empty(t *testing.T) {
	t.Parallel()

	assert.Empty(t, middleware.RedactHeaders(http.Header{}))
	assert.Empty(t, middleware.RedactHeaders(nil))
}

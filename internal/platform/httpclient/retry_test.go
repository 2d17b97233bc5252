package httpclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen11/projectboard/internal/platform/config"
)

func newRetryClient(baseURL string, attempts int, initial, maxInterval time.Duration) *Client {
	return New(&config.ClientConfig{
		BaseURL: baseURL,
		Timeout: 5 * time.Second,
		Retry: config.RetryConfig{
			MaxAttempts:     attempts,
			InitialInterval: initial,
			MaxInterval:     maxInterval,
			Multiplier:      2,
		},
		CircuitBreaker: config.CircuitBreakerConfig{
			MaxFailures:   100,
			Timeout:       time.Second,
			HalfOpenLimit: 1,
		},
	}, "webhook", nil, nil)
}

func TestNewBackOff_GrowsWithJitterAndCaps(t *testing.T) {
	t.Parallel()

	c := newRetryClient("http://localhost", 3, 100*time.Millisecond, 500*time.Millisecond)

	bounds := []struct{ lo, hi time.Duration }{
		{75 * time.Millisecond, 125 * time.Millisecond},
		{150 * time.Millisecond, 250 * time.Millisecond},
		{300 * time.Millisecond, 500 * time.Millisecond},
		{375 * time.Millisecond, 625 * time.Millisecond},
		{375 * time.Millisecond, 625 * time.Millisecond},
	}

	for range 200 {
		schedule := c.newBackOff()
		for i, b := range bounds {
			d := schedule.NextBackOff()
			assert.GreaterOrEqual(t, d, b.lo, "step %d", i)
			assert.LessOrEqual(t, d, b.hi, "step %d", i)
		}
	}
}

func TestParseRetryAfter(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		value  string
		want   time.Duration
		wantOK bool
	}{
		{name: "empty", value: ""},
		{name: "seconds", value: "3", want: 3 * time.Second, wantOK: true},
		{name: "zero", value: "0", want: 0, wantOK: true},
		{name: "negative", value: "-1"},
		{name: "future date", value: now.Add(90 * time.Second).Format(http.TimeFormat), want: 90 * time.Second, wantOK: true},
		{name: "past date", value: now.Add(-time.Hour).Format(http.TimeFormat), want: 0, wantOK: true},
		{name: "garbage", value: "soon"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := parseRetryAfter(tt.value, now)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRetryDelay(t *testing.T) {
	t.Parallel()

	now := time.Now()
	assert.Equal(t, 50*time.Millisecond, retryDelay("", 50*time.Millisecond, time.Second, now))
	assert.Equal(t, 50*time.Millisecond, retryDelay("later", 50*time.Millisecond, time.Second, now))
	assert.Equal(t, 2*time.Second, retryDelay("2", 50*time.Millisecond, 5*time.Second, now))
	assert.Equal(t, 5*time.Second, retryDelay("120", 50*time.Millisecond, 5*time.Second, now))
}

func TestIsRetryable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "canceled", err: context.Canceled, want: false},
		{name: "deadline", err: fmt.Errorf("dial: %w", context.DeadlineExceeded), want: false},
		{name: "net error", err: &net.OpError{Op: "dial", Err: errors.New("connection refused")}, want: true},
		{name: "unknown", err: errors.New("unexpected EOF"), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, isRetryable(tt.err))
		})
	}
}

func TestIsRetryableStatus(t *testing.T) {
	t.Parallel()

	for status, want := range map[int]bool{
		http.StatusOK:                  false,
		http.StatusNoContent:           false,
		http.StatusBadRequest:          false,
		http.StatusNotFound:            false,
		http.StatusConflict:            false,
		http.StatusTooManyRequests:     true,
		http.StatusInternalServerError: true,
		http.StatusBadGateway:          true,
		http.StatusServiceUnavailable:  true,
		http.StatusGatewayTimeout:      true,
	} {
		assert.Equal(t, want, isRetryableStatus(status), "status %d", status)
	}
}

func TestDoWithRetry_HonorsRetryAfter(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	t.Cleanup(srv.Close)

	// The computed backoff alone would take 10s.
	c := newRetryClient(srv.URL, 2, 10*time.Second, 10*time.Second)

	req, err := http.NewRequestWithContext(context.Background(), http.MethodPut, srv.URL+"/hooks", http.NoBody)
	require.NoError(t, err)

	start := time.Now()
	resp, err := c.Do(context.Background(), req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, int32(2), calls.Load())
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestDoWithRetry_ReplaysBody(t *testing.T) {
	t.Parallel()

	var (
		mu     sync.Mutex
		bodies []string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		mu.Lock()
		bodies = append(bodies, string(b))
		n := len(bodies)
		mu.Unlock()
		if n < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	t.Cleanup(srv.Close)

	c := newRetryClient(srv.URL, 3, time.Millisecond, 5*time.Millisecond)

	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, srv.URL, strings.NewReader(`{"revision":7}`))
	require.NoError(t, err)
	req.Header.Set(IdempotencyKeyHeader, "7")

	resp, err := c.Do(context.Background(), req)
	require.NoError(t, err)
	defer resp.Body.Close()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{`{"revision":7}`, `{"revision":7}`, `{"revision":7}`}, bodies)
}

func TestReplayable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		method string
		key    string
		want   bool
	}{
		{method: http.MethodGet, want: true},
		{method: http.MethodHead, want: true},
		{method: http.MethodPut, want: true},
		{method: http.MethodDelete, want: true},
		{method: http.MethodPost, want: false},
		{method: http.MethodPatch, want: false},
		{method: http.MethodPost, key: "rev-3", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.method+"/"+tt.key, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(tt.method, "http://localhost/x", http.NoBody)
			if tt.key != "" {
				req.Header.Set(IdempotencyKeyHeader, tt.key)
			}
			assert.Equal(t, tt.want, replayable(req))
		})
	}
}

func TestDoWithRetry_OnlyReplaysIdempotentMethods(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		method    string
		wantCalls int32
	}{
		{name: "post sent once", method: http.MethodPost, wantCalls: 1},
		{name: "patch sent once", method: http.MethodPatch, wantCalls: 1},
		{name: "put retried", method: http.MethodPut, wantCalls: 3},
		{name: "get retried", method: http.MethodGet, wantCalls: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var calls atomic.Int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				calls.Add(1)
				w.WriteHeader(http.StatusInternalServerError)
			}))
			t.Cleanup(srv.Close)

			c := newRetryClient(srv.URL, 3, time.Millisecond, 5*time.Millisecond)

			req, err := http.NewRequestWithContext(context.Background(), tt.method, srv.URL, strings.NewReader(`{}`))
			require.NoError(t, err)

			var resp *http.Response
			err = c.doWithRetry(context.Background(), req, &resp)
			require.Error(t, err)
			require.NotNil(t, resp)
			_ = resp.Body.Close()

			assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
			assert.Equal(t, tt.wantCalls, calls.Load())
		})
	}
}

func TestDoWithRetry_CanceledWhileWaiting(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(srv.Close)

	c := newRetryClient(srv.URL, 3, 10*time.Second, 10*time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL, http.NoBody)
	require.NoError(t, err)

	var resp *http.Response
	err = c.doWithRetry(ctx, req, &resp)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Nil(t, resp)
}

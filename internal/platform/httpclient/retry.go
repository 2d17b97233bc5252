package httpclient

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v5"

	"github.com/jsamuelsen11/projectboard/internal/platform/logging"
)

// jitterFraction randomizes each backoff by ±25%.
const jitterFraction = 0.25

// newBackOff returns a fresh exponential schedule for one call to Do.
func (c *Client) newBackOff() *backoff.ExponentialBackOff {
	b := &backoff.ExponentialBackOff{
		InitialInterval:     c.retryCfg.initialInterval,
		RandomizationFactor: jitterFraction,
		Multiplier:          c.retryCfg.multiplier,
		MaxInterval:         c.retryCfg.maxInterval,
	}
	b.Reset()
	return b
}

// IdempotencyKeyHeader marks a request as safe to replay regardless of method.
const IdempotencyKeyHeader = "Idempotency-Key"

// replayable reports whether req may be sent more than once. Only idempotent
// methods qualify, unless the caller set an Idempotency-Key.
func replayable(req *http.Request) bool {
	switch req.Method {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace,
		http.MethodPut, http.MethodDelete:
		return true
	}
	return req.Header.Get(IdempotencyKeyHeader) != ""
}

// doWithRetry sends req up to maxAttempts times, or once when the request is
// not replayable. Transport errors other than
// context cancellation are retried, as are 429 and 5xx responses; a
// Retry-After header on those responses replaces the computed backoff, capped
// at the configured maximum interval.
//
// The body is buffered once and replayed on every attempt. When the last
// attempt still gets a retryable status, *resp holds that response with its
// body open and the error is non-nil. The response is passed through resp
// rather than returned so the bodyclose linter does not flag callers.
func (c *Client) doWithRetry(ctx context.Context, req *http.Request, resp **http.Response) error {
	if c.retryCfg.maxAttempts <= 0 {
		return fmt.Errorf("httpclient: maxAttempts must be >= 1, got %d", c.retryCfg.maxAttempts)
	}

	body, err := bufferRequestBody(req)
	if err != nil {
		return err
	}

	attempts := c.retryCfg.maxAttempts
	if !replayable(req) {
		attempts = 1
	}

	schedule := c.newBackOff()
	var (
		lastErr error
		wait    time.Duration
	)

	for attempt := range attempts {
		if attempt > 0 {
			if err := c.waitForRetry(ctx, req, attempt, wait, lastErr); err != nil {
				return err
			}
		}

		resetRequestBody(req, body)

		r, err := c.httpClient.Do(req)
		if err != nil {
			if !isRetryable(err) {
				return err
			}
			lastErr = err
			wait = schedule.NextBackOff()
			continue
		}

		if !isRetryableStatus(r.StatusCode) {
			*resp = r
			return nil
		}

		lastErr = fmt.Errorf("HTTP %d from %s", r.StatusCode, c.serviceName)
		if attempt == attempts-1 {
			*resp = r
			return lastErr
		}

		wait = retryDelay(r.Header.Get("Retry-After"), schedule.NextBackOff(), c.retryCfg.maxInterval, time.Now())
		drainResponseBody(r)
	}

	return lastErr
}

func bufferRequestBody(req *http.Request) ([]byte, error) {
	if req.Body == nil || req.Body == http.NoBody {
		return nil, nil
	}

	body, err := io.ReadAll(req.Body)
	if err != nil {
		return nil, fmt.Errorf("reading request body: %w", err)
	}
	_ = req.Body.Close()
	return body, nil
}

func resetRequestBody(req *http.Request, body []byte) {
	if body == nil {
		return
	}
	req.Body = io.NopCloser(bytes.NewReader(body))
	req.ContentLength = int64(len(body))
}

// drainResponseBody lets the connection be reused by the next attempt.
func drainResponseBody(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}

func (c *Client) waitForRetry(ctx context.Context, req *http.Request, attempt int, wait time.Duration, lastErr error) error {
	logging.FromContext(ctx).WarnContext(ctx, "retrying HTTP request",
		slog.String("operation", "httpclient.Do"),
		slog.String("method", req.Method),
		slog.String("url", req.URL.String()),
		slog.String("peer_service", c.serviceName),
		slog.Int("attempt", attempt+1),
		slog.Int("max_attempts", c.retryCfg.maxAttempts),
		slog.Duration("backoff", wait),
		slog.Any("error", lastErr),
	)

	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// retryDelay picks the wait before the next attempt: the server's
// Retry-After when it parses, capped at limit, otherwise fallback.
func retryDelay(header string, fallback, limit time.Duration, now time.Time) time.Duration {
	d, ok := parseRetryAfter(header, now)
	if !ok {
		return fallback
	}
	return min(d, limit)
}

// parseRetryAfter accepts both forms of RFC 9110 Retry-After: delay seconds
// and an HTTP date. Dates in the past mean retry now.
func parseRetryAfter(v string, now time.Time) (time.Duration, bool) {
	if v == "" {
		return 0, false
	}
	if secs, err := strconv.Atoi(v); err == nil {
		if secs < 0 {
			return 0, false
		}
		return time.Duration(secs) * time.Second, true
	}
	at, err := http.ParseTime(v)
	if err != nil {
		return 0, false
	}
	return max(at.Sub(now), 0), true
}

// isRetryable reports whether a transport error is worth another attempt.
// Cancellation and deadlines are final; everything else, network errors
// included, is retried.
func isRetryable(err error) bool {
	if err == nil {
		return false
	}
	return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}

// isRetryableStatus is true for 429 and every 5xx.
func isRetryableStatus(statusCode int) bool {
	return statusCode == http.StatusTooManyRequests || statusCode >= http.StatusInternalServerError
}

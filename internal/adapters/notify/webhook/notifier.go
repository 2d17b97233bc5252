// Package webhook delivers board snapshots to HTTP endpoints.
//
// The Notifier is registered as a store listener. Listen never blocks the
// store: snapshots go onto a bounded queue and a single worker posts each one
// to every configured URL concurrently. When the queue is full the snapshot is
// dropped; receivers always get a later snapshot carrying the full board, so a
// dropped one loses no state.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel/metric"

	"github.com/jsamuelsen11/projectboard/internal/adapters/notify"
	"github.com/jsamuelsen11/projectboard/internal/app/fanout"
	"github.com/jsamuelsen11/projectboard/internal/domain/project"
	"github.com/jsamuelsen11/projectboard/internal/platform/config"
	"github.com/jsamuelsen11/projectboard/internal/platform/httpclient"
	"github.com/jsamuelsen11/projectboard/internal/platform/logging"
	"github.com/jsamuelsen11/projectboard/internal/platform/telemetry"
)

// Name identifies the notifier in health checks, logs and metrics.
const Name = "webhook"

// EventHeader carries the payload's event name on every delivery.
const EventHeader = "X-Board-Event"

// ErrClosed is reported by HealthCheck once the notifier has been closed.
var ErrClosed = errors.New("webhook: notifier closed")

type delivery struct {
	ctx     context.Context
	payload notify.SnapshotPayload
}

// Notifier posts snapshot payloads to a fixed set of URLs.
type Notifier struct {
	client     *httpclient.Client
	urls       []string
	maxWorkers int
	metrics    *telemetry.Metrics
	logger     *slog.Logger
	now        func() time.Time

	mu       sync.RWMutex
	closed   bool
	queue    chan delivery
	done     chan struct{}
	revision atomic.Uint64
	dropped  atomic.Uint64
}

// New creates a Notifier and starts its delivery worker. Call Close to stop
// it. If metrics is nil, metric recording is skipped. If logger is nil,
// output is discarded.
func New(cfg config.WebhookConfig, client *httpclient.Client, metrics *telemetry.Metrics, logger *slog.Logger) *Notifier {
	queueSize := max(cfg.QueueSize, 1)

	n := &Notifier{
		client:     client,
		urls:       append([]string(nil), cfg.URLs...),
		maxWorkers: max(cfg.MaxWorkers, 1),
		metrics:    metrics,
		logger:     logging.Component(logger, Name),
		now:        time.Now,
		queue:      make(chan delivery, queueSize),
		done:       make(chan struct{}),
	}
	go n.run()
	return n
}

// Listen queues the snapshot for delivery. It matches ports.Listener.
//
// The request context's values (request ID, trace span) travel with the
// delivery; its cancellation does not.
func (n *Notifier) Listen(ctx context.Context, snapshot []project.Project) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	if n.closed {
		return
	}

	payload := notify.NewSnapshot(n.revision.Add(1), snapshot, n.now())
	select {
	case n.queue <- delivery{ctx: context.WithoutCancel(ctx), payload: payload}:
	default:
		n.dropped.Add(1)
		n.logger.WarnContext(ctx, "webhook queue full, snapshot dropped",
			slog.String("operation", "webhook.Listen"),
			slog.Uint64("revision", payload.Revision),
			slog.Int("queue_size", cap(n.queue)),
		)
		if n.metrics != nil {
			n.metrics.SnapshotsDropped.Add(ctx, 1,
				metric.WithAttributes(telemetry.AttrListener.String(Name)))
		}
	}
}

// Dropped returns the number of snapshots discarded because the queue was full.
func (n *Notifier) Dropped() uint64 {
	return n.dropped.Load()
}

// Close stops accepting snapshots and waits until queued ones are delivered
// or ctx ends. It is safe to call more than once.
func (n *Notifier) Close(ctx context.Context) error {
	n.mu.Lock()
	if !n.closed {
		n.closed = true
		close(n.queue)
	}
	n.mu.Unlock()

	select {
	case <-n.done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("webhook: waiting for pending deliveries: %w", ctx.Err())
	}
}

// Name returns the health check identifier.
func (n *Notifier) Name() string {
	return Name
}

// HealthCheck reports the circuit breaker state of the delivery client.
func (n *Notifier) HealthCheck(ctx context.Context) error {
	n.mu.RLock()
	closed := n.closed
	n.mu.RUnlock()

	if closed {
		return ErrClosed
	}
	return n.client.HealthCheck(ctx)
}

func (n *Notifier) run() {
	defer close(n.done)
	for d := range n.queue {
		n.deliver(d.ctx, d.payload)
	}
}

func (n *Notifier) deliver(ctx context.Context, payload notify.SnapshotPayload) {
	body, err := json.Marshal(payload)
	if err != nil {
		n.logger.ErrorContext(ctx, "encoding snapshot payload",
			slog.String("operation", "webhook.deliver"),
			slog.Any("error", err),
		)
		return
	}

	err = fanout.Each(ctx, n.maxWorkers, n.urls, func(ctx context.Context, url string) error {
		return n.post(ctx, url, payload.Revision, body)
	})
	if err != nil {
		n.logger.ErrorContext(ctx, "webhook delivery failed",
			slog.String("operation", "webhook.deliver"),
			slog.Uint64("revision", payload.Revision),
			slog.Any("error", err),
		)
		return
	}

	n.logger.DebugContext(ctx, "webhook delivered",
		slog.Uint64("revision", payload.Revision),
		slog.Int("targets", len(n.urls)),
	)
}

func (n *Notifier) post(ctx context.Context, url string, revision uint64, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.client.ResolveURL(url), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building request for %s: %w", url, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(EventHeader, notify.EventBoardChanged)
	// Receivers dedupe on revision, so a redelivered snapshot is harmless.
	req.Header.Set(httpclient.IdempotencyKeyHeader, strconv.FormatUint(revision, 10))

	resp, err := n.client.Do(ctx, req)
	if resp != nil {
		defer func() {
			_, _ = io.Copy(io.Discard, resp.Body)
			_ = resp.Body.Close()
		}()
	}
	if err != nil {
		return fmt.Errorf("POST %s: %w", url, err)
	}
	if resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("POST %s: unexpected status %d", url, resp.StatusCode)
	}
	return nil
}

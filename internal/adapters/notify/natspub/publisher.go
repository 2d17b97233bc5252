// Package natspub publishes board snapshots to a NATS subject.
package natspub

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/nats-io/nats.go"
	"go.opentelemetry.io/otel/metric"

	"github.com/jsamuelsen11/projectboard/internal/adapters/notify"
	"github.com/jsamuelsen11/projectboard/internal/domain/project"
	"github.com/jsamuelsen11/projectboard/internal/platform/config"
	"github.com/jsamuelsen11/projectboard/internal/platform/logging"
	"github.com/jsamuelsen11/projectboard/internal/platform/telemetry"
	"github.com/jsamuelsen11/projectboard/internal/ports"
)

// Name identifies the publisher in health checks, logs and metrics.
const Name = "nats"

// Conn is the part of *nats.Conn the publisher needs.
type Conn interface {
	Publish(subject string, data []byte) error
	Status() nats.Status
	Drain() error
}

// Connect dials the configured server. Connection state changes are logged.
func Connect(cfg config.NATSConfig, logger *slog.Logger) (*nats.Conn, error) {
	logger = logging.Component(logger, Name)

	conn, err := nats.Connect(cfg.URL,
		nats.Name(cfg.ClientName),
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			logger.Warn("nats disconnected", slog.Any("error", err))
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			logger.Info("nats reconnected", slog.String("url", c.ConnectedUrlRedacted()))
		}),
		nats.ClosedHandler(func(*nats.Conn) {
			logger.Info("nats connection closed")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connecting to nats at %s: %w", cfg.URL, err)
	}
	return conn, nil
}

// Publisher is a store listener that sends each snapshot as a JSON
// SnapshotPayload. Publishing only writes to the connection's buffer, so
// Listen does not wait on the network.
type Publisher struct {
	conn     Conn
	subject  string
	metrics  *telemetry.Metrics
	logger   *slog.Logger
	now      func() time.Time
	revision atomic.Uint64
}

// New creates a Publisher on an established connection.
func New(conn Conn, subject string, metrics *telemetry.Metrics, logger *slog.Logger) *Publisher {
	return &Publisher{
		conn:    conn,
		subject: subject,
		metrics: metrics,
		logger:  logging.Component(logger, Name),
		now:     time.Now,
	}
}

// Listen publishes the snapshot. Failures are logged and counted as
// dropped snapshots; they never reach the store.
func (p *Publisher) Listen(ctx context.Context, snapshot []project.Project) {
	payload := notify.NewSnapshot(p.revision.Add(1), snapshot, p.now())

	data, err := json.Marshal(payload)
	if err == nil {
		err = p.conn.Publish(p.subject, data)
	}
	if err == nil {
		return
	}

	p.logger.ErrorContext(ctx, "publishing snapshot",
		slog.String("operation", "natspub.Listen"),
		slog.String("subject", p.subject),
		slog.Uint64("revision", payload.Revision),
		slog.Any("error", err),
	)
	if p.metrics != nil {
		p.metrics.SnapshotsDropped.Add(ctx, 1,
			metric.WithAttributes(telemetry.AttrListener.String(Name)))
	}
}

// Name returns the health check identifier.
func (p *Publisher) Name() string {
	return Name
}

// HealthCheck maps the connection status: connected is healthy, reconnecting
// is degraded, anything else is failing.
func (p *Publisher) HealthCheck(_ context.Context) error {
	switch status := p.conn.Status(); status {
	case nats.CONNECTED:
		return nil
	case nats.RECONNECTING:
		return fmt.Errorf("%s: %w (%s)", Name, ports.ErrDegraded, status)
	default:
		return fmt.Errorf("%s: failing (%s)", Name, status)
	}
}

// Close drains the connection, flushing buffered snapshots.
func (p *Publisher) Close() error {
	if err := p.conn.Drain(); err != nil {
		return fmt.Errorf("draining nats connection: %w", err)
	}
	return nil
}

// Package events provides the synchronous publish-subscribe bus that carries
// project snapshots from the store to its listeners.
package events

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel/metric"

	"github.com/jsamuelsen11/projectboard/internal/domain/project"
	"github.com/jsamuelsen11/projectboard/internal/platform/telemetry"
	"github.com/jsamuelsen11/projectboard/internal/ports"
)

// Compile-time interface check.
var _ ports.Publisher = (*Bus)(nil)

// Bus delivers each published snapshot to every subscriber, one after another,
// in subscription order, on the publishing goroutine. Every subscriber gets
// its own copy of the snapshot.
//
// A subscriber that panics stops delivery of that snapshot to the subscribers
// after it, and the panic propagates to the publisher.
type Bus struct {
	mu        sync.RWMutex
	listeners []ports.Listener
	metrics   *telemetry.Metrics
}

// NewBus creates an empty Bus. If metrics is nil, delivery counts are not recorded.
func NewBus(metrics *telemetry.Metrics) *Bus {
	return &Bus{metrics: metrics}
}

// Subscribe registers a listener. Nil listeners are ignored; the same
// listener subscribed twice is called twice.
func (b *Bus) Subscribe(listener ports.Listener) {
	if listener == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listeners = append(b.listeners, listener)
}

// Publish calls every subscriber with a private copy of snapshot.
func (b *Bus) Publish(ctx context.Context, snapshot []project.Project) {
	b.mu.RLock()
	listeners := make([]ports.Listener, len(b.listeners))
	copy(listeners, b.listeners)
	b.mu.RUnlock()

	for _, l := range listeners {
		l(ctx, project.Clone(snapshot))
		b.recordDelivery(ctx)
	}
}

// Len returns the number of subscribers.
func (b *Bus) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.listeners)
}

func (b *Bus) recordDelivery(ctx context.Context) {
	if b.metrics == nil || b.metrics.ListenerNotifications == nil {
		return
	}
	b.metrics.ListenerNotifications.Add(ctx, 1, metric.WithAttributes(telemetry.AttrResult.String("delivered")))
}

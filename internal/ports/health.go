package ports

import (
	"context"
	"errors"
)

// ErrDegraded marks a health check failure where the component still works
// at reduced capacity, such as a webhook target whose breaker is half-open or
// a NATS connection that is reconnecting. Checkers wrap it with %w.
var ErrDegraded = errors.New("degraded")

// HealthChecker is implemented by every optional board sink that can report
// its health: webhook delivery and the NATS publisher.
type HealthChecker interface {
	// Name identifies the component in readiness output ("webhook", "nats").
	Name() string

	// HealthCheck returns nil when healthy. Errors wrapping ErrDegraded do not
	// fail readiness.
	HealthCheck(ctx context.Context) error
}

// HealthRegistry runs the registered checkers for the readiness endpoint.
type HealthRegistry interface {
	Register(checker HealthChecker)

	// CheckAll returns results keyed by checker name; nil means healthy.
	CheckAll(ctx context.Context) map[string]error
}

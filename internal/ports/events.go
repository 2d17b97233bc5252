package ports

import (
	"context"

	"github.com/jsamuelsen11/projectboard/internal/domain/project"
)

// Listener receives a snapshot of every project after each store mutation.
// The snapshot is a private copy; listeners may keep or modify it freely.
// Listeners run synchronously on the mutating goroutine and must not call
// back into the store.
type Listener func(ctx context.Context, snapshot []project.Project)

// Publisher delivers snapshots to registered listeners in registration order.
type Publisher interface {
	// Subscribe registers a listener. There is no removal.
	Subscribe(listener Listener)

	// Publish calls every listener with its own copy of snapshot.
	Publish(ctx context.Context, snapshot []project.Project)
}

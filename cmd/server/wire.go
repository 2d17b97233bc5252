package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	nethttp "net/http"

	"github.com/samber/do/v2"

	adapthttp "github.com/jsamuelsen11/projectboard/internal/adapters/http"
	"github.com/jsamuelsen11/projectboard/internal/adapters/http/handlers"
	"github.com/jsamuelsen11/projectboard/internal/adapters/http/middleware"
	"github.com/jsamuelsen11/projectboard/internal/adapters/notify/natspub"
	"github.com/jsamuelsen11/projectboard/internal/adapters/notify/webhook"
	"github.com/jsamuelsen11/projectboard/internal/app"
	"github.com/jsamuelsen11/projectboard/internal/app/board"
	"github.com/jsamuelsen11/projectboard/internal/app/events"
	"github.com/jsamuelsen11/projectboard/internal/app/store"
	"github.com/jsamuelsen11/projectboard/internal/platform/config"
	"github.com/jsamuelsen11/projectboard/internal/platform/health"
	"github.com/jsamuelsen11/projectboard/internal/platform/httpclient"
	"github.com/jsamuelsen11/projectboard/internal/platform/telemetry"
	"github.com/jsamuelsen11/projectboard/internal/ports"
)

// provide registers every service constructor. The config, logger and
// metrics must already be in the injector.
func provide(i do.Injector) {
	do.Provide(i, func(i do.Injector) (*events.Bus, error) {
		return events.NewBus(do.MustInvoke[*telemetry.Metrics](i)), nil
	})
	do.Provide(i, func(do.Injector) (*board.Projection, error) {
		return board.NewProjection(), nil
	})
	do.Provide(i, newStore)
	do.Provide(i, newProjectService)
	do.Provide(i, func(i do.Injector) (ports.HealthRegistry, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return health.New(health.WithCheckTimeout(cfg.Server.HealthCheckTimeout)), nil
	})

	do.Provide(i, newWebhookNotifier)
	do.Provide(i, newNATSPublisher)

	do.Provide(i, newRouter)
	do.Provide(i, func(i do.Injector) (*adapthttp.Server, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return adapthttp.NewServer(cfg.Server, do.MustInvoke[nethttp.Handler](i), do.MustInvoke[*slog.Logger](i)), nil
	})
}

// newStore subscribes the projection first so the board view is current
// before any other listener runs.
func newStore(i do.Injector) (*store.Store, error) {
	st := store.New(do.MustInvoke[*events.Bus](i))
	st.AddListener(do.MustInvoke[*board.Projection](i).Listen)
	return st, nil
}

func newProjectService(i do.Injector) (ports.ProjectService, error) {
	return app.NewProjectService(
		do.MustInvoke[*store.Store](i),
		do.MustInvoke[*board.Projection](i),
		do.MustInvoke[*telemetry.Metrics](i),
		do.MustInvoke[*slog.Logger](i),
	), nil
}

func newWebhookNotifier(i do.Injector) (*webhook.Notifier, error) {
	cfg := do.MustInvoke[*config.Config](i).Webhook
	metrics := do.MustInvoke[*telemetry.Metrics](i)
	logger := do.MustInvoke[*slog.Logger](i)

	client := httpclient.New(&cfg.Client, webhook.Name, metrics, logger)
	return webhook.New(cfg, client, metrics, logger), nil
}

func newNATSPublisher(i do.Injector) (*natspub.Publisher, error) {
	cfg := do.MustInvoke[*config.Config](i).NATS
	logger := do.MustInvoke[*slog.Logger](i)

	conn, err := natspub.Connect(cfg, logger)
	if err != nil {
		return nil, err
	}
	return natspub.New(conn, cfg.Subject, do.MustInvoke[*telemetry.Metrics](i), logger), nil
}

// newRouter stacks middleware outermost first: recovery must see panics
// from everything below it, and the timeout only bounds handlers.
func newRouter(i do.Injector) (nethttp.Handler, error) {
	cfg := do.MustInvoke[*config.Config](i)
	logger := do.MustInvoke[*slog.Logger](i)
	svc := do.MustInvoke[ports.ProjectService](i)

	return adapthttp.NewRouter(
		handlers.NewProjectHandler(svc),
		handlers.NewBoardHandler(svc),
		handlers.NewHealthHandler(do.MustInvoke[ports.HealthRegistry](i)),
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.CorrelationID(),
		middleware.OpenTelemetry(do.MustInvoke[*telemetry.Metrics](i)),
		middleware.Logging(logger),
		middleware.Timeout(cfg.Server.RequestTimeout),
	), nil
}

// sinks are the outbound snapshot listeners that were enabled.
type sinks struct {
	webhook *webhook.Notifier
	nats    *natspub.Publisher
}

// attachSinks subscribes each enabled sink to the store and registers its
// health check.
func attachSinks(i do.Injector, cfg *config.Config) (*sinks, error) {
	st := do.MustInvoke[*store.Store](i)
	registry := do.MustInvoke[ports.HealthRegistry](i)
	out := &sinks{}

	if cfg.Webhook.Enabled {
		n, err := do.Invoke[*webhook.Notifier](i)
		if err != nil {
			return nil, fmt.Errorf("wiring webhook notifier: %w", err)
		}
		st.AddListener(n.Listen)
		registry.Register(n)
		out.webhook = n
	}

	if cfg.NATS.Enabled {
		p, err := do.Invoke[*natspub.Publisher](i)
		if err != nil {
			return nil, errors.Join(fmt.Errorf("wiring nats publisher: %w", err), out.Close(context.Background()))
		}
		st.AddListener(p.Listen)
		registry.Register(p)
		out.nats = p
	}

	return out, nil
}

// Close flushes queued webhook deliveries and drains the NATS connection.
func (s *sinks) Close(ctx context.Context) error {
	var errs []error
	if s.webhook != nil {
		errs = append(errs, s.webhook.Close(ctx))
	}
	if s.nats != nil {
		errs = append(errs, s.nats.Close())
	}
	return errors.Join(errs...)
}

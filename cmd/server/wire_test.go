package main

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/samber/do/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen11/projectboard/internal/app/board"
	"github.com/jsamuelsen11/projectboard/internal/app/events"
	"github.com/jsamuelsen11/projectboard/internal/app/store"
	"github.com/jsamuelsen11/projectboard/internal/platform/config"
	"github.com/jsamuelsen11/projectboard/internal/platform/telemetry"
)

func newInjector(t *testing.T, cfg *config.Config) do.Injector {
	t.Helper()

	injector := do.New()
	do.ProvideValue(injector, cfg)
	do.ProvideValue(injector, slog.New(slog.DiscardHandler))
	do.ProvideValue(injector, (*telemetry.Metrics)(nil))
	provide(injector)
	return injector
}

func TestAttachSinks_SubscribesAfterProjection(t *testing.T) {
	t.Parallel()

	hook := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	t.Cleanup(hook.Close)

	cfg := &config.Config{
		Server: config.ServerConfig{HealthCheckTimeout: time.Second, RequestTimeout: time.Second},
		Webhook: config.WebhookConfig{
			Enabled:    true,
			URLs:       []string{hook.URL},
			QueueSize:  4,
			MaxWorkers: 1,
			Client: config.ClientConfig{
				Timeout: time.Second,
				Retry:   config.RetryConfig{MaxAttempts: 1, Multiplier: 1},
				CircuitBreaker: config.CircuitBreakerConfig{
					MaxFailures: 5, Timeout: time.Second, HalfOpenLimit: 1,
				},
			},
		},
	}
	injector := newInjector(t, cfg)

	st := do.MustInvoke[*store.Store](injector)
	bus := do.MustInvoke[*events.Bus](injector)
	assert.Equal(t, 1, bus.Len())

	out, err := attachSinks(injector, cfg)
	require.NoError(t, err)
	require.NotNil(t, out.webhook)
	assert.Nil(t, out.nats)
	assert.Equal(t, 2, bus.Len())

	st.AddProject(context.Background(), "Website", "Redesign landing page", 3)
	assert.Equal(t, uint64(1), do.MustInvoke[*board.Projection](injector).Revision())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, out.Close(ctx))
}

func TestAttachSinks_NoneEnabled(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{Server: config.ServerConfig{HealthCheckTimeout: time.Second}}
	injector := newInjector(t, cfg)

	out, err := attachSinks(injector, cfg)
	require.NoError(t, err)
	assert.Equal(t, 1, do.MustInvoke[*events.Bus](injector).Len())
	require.NoError(t, out.Close(context.Background()))
}

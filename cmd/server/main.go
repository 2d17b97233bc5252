// Command server runs the project board API. The profile named by
// APP_PROFILE selects the config layer; SIGINT or SIGTERM starts a graceful
// shutdown that drains requests, then sinks, then telemetry.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/samber/do/v2"

	adapthttp "github.com/jsamuelsen11/projectboard/internal/adapters/http"
	"github.com/jsamuelsen11/projectboard/internal/app/board"
	"github.com/jsamuelsen11/projectboard/internal/app/events"
	"github.com/jsamuelsen11/projectboard/internal/platform/config"
	"github.com/jsamuelsen11/projectboard/internal/platform/logging"
)

const (
	drainTimeout = 15 * time.Second
	sinkTimeout  = 10 * time.Second
	otelTimeout  = 5 * time.Second
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	profile := os.Getenv("APP_PROFILE")
	if profile == "" {
		return errors.New("APP_PROFILE must name a config profile (local, dev or prod)")
	}

	cfg, err := config.Load(profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	logger := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	otel, err := startTelemetry(ctx, cfg.Telemetry)
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}
	defer flush(logger, "telemetry", otelTimeout, otel.Shutdown)

	injector := do.New()
	do.ProvideValue(injector, cfg)
	do.ProvideValue(injector, logger)
	do.ProvideValue(injector, otel.metrics)
	provide(injector)

	server, err := do.Invoke[*adapthttp.Server](injector)
	if err != nil {
		return fmt.Errorf("wiring server: %w", err)
	}

	// Sinks subscribe after the projection so they see a current board.
	out, err := attachSinks(injector, cfg)
	if err != nil {
		return err
	}
	defer flush(logger, "snapshot sinks", sinkTimeout, out.Close)

	logger.Info("project board starting",
		slog.String("profile", profile),
		slog.Bool("webhook", cfg.Webhook.Enabled),
		slog.Bool("nats", cfg.NATS.Enabled),
		slog.Int("listeners", do.MustInvoke[*events.Bus](injector).Len()),
	)
	if err := server.Run(ctx, drainTimeout); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	logger.Info("shutdown complete",
		slog.Uint64("revision", do.MustInvoke[*board.Projection](injector).Revision()),
	)
	return nil
}

// flush runs a shutdown step under its own timeout and logs its failure.
func flush(logger *slog.Logger, what string, timeout time.Duration, fn func(context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := fn(ctx); err != nil {
		logger.Error("shutdown step failed", slog.String("step", what), slog.Any("error", err))
	}
}

package main

import (
	"context"
	"errors"
	"fmt"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/jsamuelsen11/projectboard/internal/platform/config"
	"github.com/jsamuelsen11/projectboard/internal/platform/telemetry"
)

// otelProviders owns the SDK providers. With telemetry disabled every field
// is nil and metrics calls are skipped by their callers.
type otelProviders struct {
	tracer  *sdktrace.TracerProvider
	meter   *sdkmetric.MeterProvider
	metrics *telemetry.Metrics
}

func startTelemetry(ctx context.Context, cfg config.TelemetryConfig) (*otelProviders, error) {
	if !cfg.Enabled {
		return &otelProviders{}, nil
	}

	o := &otelProviders{}
	var err error
	if o.tracer, err = telemetry.InitTracer(ctx, cfg.ServiceName, cfg.Exporter, cfg.Endpoint); err != nil {
		return nil, fmt.Errorf("tracer: %w", err)
	}
	if o.meter, err = telemetry.InitMeter(ctx, cfg.ServiceName, cfg.Exporter, cfg.Endpoint); err != nil {
		return nil, errors.Join(fmt.Errorf("meter: %w", err), o.Shutdown(ctx))
	}
	if o.metrics, err = telemetry.NewMetrics(o.meter, cfg.ServiceName); err != nil {
		return nil, errors.Join(fmt.Errorf("instruments: %w", err), o.Shutdown(ctx))
	}
	return o, nil
}

// Shutdown flushes whichever providers were started.
func (o *otelProviders) Shutdown(ctx context.Context) error {
	var errs []error
	if o.tracer != nil {
		if err := o.tracer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer shutdown: %w", err))
		}
	}
	if o.meter != nil {
		if err := o.meter.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter shutdown: %w", err))
		}
	}
	return errors.Join(errs...)
}

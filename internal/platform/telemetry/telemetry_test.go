package telemetry_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/jsamuelsen11/projectboard/internal/platform/telemetry"
)

func TestInitTracer(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		exporter string
		endpoint string
		wantErr  string
	}{
		{name: "stdout", exporter: telemetry.ExporterStdout},
		{name: "otlp plaintext", exporter: telemetry.ExporterOTLP, endpoint: "http://localhost:4318"},
		{name: "otlp bare host", exporter: telemetry.ExporterOTLP, endpoint: "localhost:4318"},
		{name: "otlp without endpoint", exporter: telemetry.ExporterOTLP, wantErr: "requires an endpoint"},
		{name: "unknown exporter", exporter: "zipkin", wantErr: `unsupported exporter "zipkin"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tp, err := telemetry.InitTracer(ctx, "projectboard-test", tt.exporter, tt.endpoint)
			if tt.wantErr != "" {
				require.ErrorContains(t, err, tt.wantErr)
				assert.Nil(t, tp)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, tp)
			// No collector runs in unit tests, so an OTLP flush may fail.
			t.Cleanup(func() { _ = tp.Shutdown(ctx) })
		})
	}
}

func TestInitTracer_InstallsPropagators(t *testing.T) {
	ctx := context.Background()

	tp, err := telemetry.InitTracer(ctx, "projectboard-test", telemetry.ExporterStdout, "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = tp.Shutdown(ctx) })

	fields := otel.GetTextMapPropagator().Fields()
	assert.Contains(t, fields, "traceparent")
	assert.Contains(t, fields, "baggage")
}

func TestInitMeter(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		exporter string
		endpoint string
		wantErr  string
	}{
		{name: "stdout", exporter: telemetry.ExporterStdout},
		{name: "otlp tls", exporter: telemetry.ExporterOTLP, endpoint: "https://collector.example.com:4318"},
		{name: "otlp blank endpoint", exporter: telemetry.ExporterOTLP, endpoint: "  ", wantErr: "requires an endpoint"},
		{name: "unknown exporter", exporter: "prometheus", wantErr: `unsupported exporter "prometheus"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mp, err := telemetry.InitMeter(ctx, "projectboard-test", tt.exporter, tt.endpoint)
			if tt.wantErr != "" {
				require.ErrorContains(t, err, tt.wantErr)
				assert.Nil(t, mp)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, mp)
			t.Cleanup(func() { _ = mp.Shutdown(ctx) })
		})
	}
}

// collect gathers the current value of every Int64 counter by metric name
// and a single attribute.
func collect(t *testing.T, reader *sdkmetric.ManualReader, key attribute.Key) map[string]map[string]int64 {
	t.Helper()

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	out := make(map[string]map[string]int64)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				continue
			}
			byAttr := make(map[string]int64)
			for _, dp := range sum.DataPoints {
				v, _ := dp.Attributes.Value(key)
				byAttr[v.AsString()] += dp.Value
			}
			out[m.Name] = byAttr
		}
	}
	return out
}

func TestNewMetrics_RecordsBoardInstruments(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(ctx) })

	metrics, err := telemetry.NewMetrics(mp, "projectboard-test")
	require.NoError(t, err)

	metrics.ProjectsCreated.Add(ctx, 2)
	metrics.ProjectsMoved.Add(ctx, 1, metric.WithAttributes(telemetry.AttrProjectStatus.String("finished")))
	metrics.ProjectsMoved.Add(ctx, 1, metric.WithAttributes(telemetry.AttrProjectStatus.String("finished")))
	metrics.ProjectsMoved.Add(ctx, 1, metric.WithAttributes(telemetry.AttrProjectStatus.String("active")))

	got := collect(t, reader, telemetry.AttrProjectStatus)
	assert.Equal(t, map[string]int64{"": 2}, got["board.projects.created"])
	assert.Equal(t, map[string]int64{"finished": 2, "active": 1}, got["board.projects.moved"])
}

func TestNewMetrics_RecordsListenerInstruments(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(ctx) })

	metrics, err := telemetry.NewMetrics(mp, "projectboard-test")
	require.NoError(t, err)

	metrics.ListenerNotifications.Add(ctx, 3, metric.WithAttributes(telemetry.AttrListener.String("projection")))
	metrics.SnapshotsDropped.Add(ctx, 1, metric.WithAttributes(telemetry.AttrListener.String("webhook")))
	metrics.SnapshotsDropped.Add(ctx, 1, metric.WithAttributes(telemetry.AttrListener.String("nats")))

	got := collect(t, reader, telemetry.AttrListener)
	assert.Equal(t, map[string]int64{"projection": 3}, got["board.listener.notifications"])
	assert.Equal(t, map[string]int64{"webhook": 1, "nats": 1}, got["board.snapshots.dropped"])
}

func TestNewMetrics_NoopProvider(t *testing.T) {
	t.Parallel()

	metrics, err := telemetry.NewMetrics(noop.NewMeterProvider(), "projectboard-test")
	require.NoError(t, err)

	assert.NotPanics(t, func() {
		ctx := context.Background()
		metrics.ServerRequestTotal.Add(ctx, 1)
		metrics.ClientRequestDuration.Record(ctx, 0.25)
		metrics.ProjectsMoved.Add(ctx, 1,
			metric.WithAttributes(telemetry.AttrProjectStatus.String("finished")))
	})
}

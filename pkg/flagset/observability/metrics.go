package observability

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsRecorder records flag registry metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordMutation records a TrySet call and whether it took effect.
	RecordMutation(ctx context.Context, flag string, enabled, ok bool)

	// RecordPersist records a load or save against a store backend.
	RecordPersist(ctx context.Context, op, backend string, duration time.Duration, err error)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	mutations      metric.Int64Counter
	persistOps     metric.Int64Counter
	persistErrors  metric.Int64Counter
	persistLatency metric.Float64Histogram
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

// getDefaultMetrics lazily initializes the shared OTel instruments.
func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("flagset")

	mutations, err := meter.Int64Counter("flagset.mutations",
		metric.WithDescription("Number of flag mutation attempts"),
	)
	if err != nil {
		return nil, err
	}

	persistOps, err := meter.Int64Counter("flagset.persist.operations",
		metric.WithDescription("Number of load and save operations"),
	)
	if err != nil {
		return nil, err
	}

	persistErrors, err := meter.Int64Counter("flagset.persist.errors",
		metric.WithDescription("Number of failed load and save operations"),
	)
	if err != nil {
		return nil, err
	}

	persistLatency, err := meter.Float64Histogram("flagset.persist.latency_ms",
		metric.WithDescription("Load and save latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		mutations:      mutations,
		persistOps:     persistOps,
		persistErrors:  persistErrors,
		persistLatency: persistLatency,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder that uses OpenTelemetry.
// If metrics initialization fails, returns a no-op recorder.
//
// The recorder uses the global OTel meter provider. Configure the provider
// before calling this function:
//
//	otel.SetMeterProvider(yourProvider)
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return m
}

// RecordMutation records a mutation attempt.
func (m *otelMetrics) RecordMutation(ctx context.Context, flag string, enabled, ok bool) {
	m.mutations.Add(ctx, 1, metric.WithAttributes(
		attribute.String("flag", flag),
		attribute.Bool("enabled", enabled),
		attribute.Bool("success", ok),
	))
}

// RecordPersist records a persistence operation.
func (m *otelMetrics) RecordPersist(ctx context.Context, op, backend string, duration time.Duration, err error) {
	attrs := metric.WithAttributes(
		attribute.String("operation", op),
		attribute.String("backend", backend),
	)

	m.persistOps.Add(ctx, 1, attrs)
	m.persistLatency.Record(ctx, float64(duration.Milliseconds()), attrs)

	if err != nil {
		m.persistErrors.Add(ctx, 1, attrs)
	}
}

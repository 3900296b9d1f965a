package observability

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

type aiMetrics struct {
	attemptCount    metric.Int64Counter
	attemptDuration metric.Float64Histogram
	attemptErrors   metric.Int64Counter
	fallbackCount   metric.Int64Counter
}

var (
	aiMetricsOnce sync.Once
	aiMetricsInst aiMetrics
	aiMetricsOK   bool
)

func ensureAIMetrics() {
	aiMetricsOnce.Do(func() {
		meter := otel.Meter(meterName + "/ai")

		attemptCount, err := meter.Int64Counter(
			"ai.provider.attempt.count",
			metric.WithDescription("Number of completion provider attempts"),
		)
		if err != nil {
			return
		}
		attemptDuration, err := meter.Float64Histogram(
			"ai.provider.attempt.duration",
			metric.WithDescription("Completion provider attempt duration in milliseconds"),
			metric.WithUnit("ms"),
		)
		if err != nil {
			return
		}
		attemptErrors, err := meter.Int64Counter(
			"ai.provider.attempt.errors",
			metric.WithDescription("Number of failed completion provider attempts"),
		)
		if err != nil {
			return
		}
		fallbackCount, err := meter.Int64Counter(
			"ai.operation.fallback.count",
			metric.WithDescription("Number of operations resolved by the deterministic fallback"),
		)
		if err != nil {
			return
		}

		aiMetricsInst = aiMetrics{
			attemptCount:    attemptCount,
			attemptDuration: attemptDuration,
			attemptErrors:   attemptErrors,
			fallbackCount:   fallbackCount,
		}
		aiMetricsOK = true
	})
}

// RecordAIAttempt records one completion provider attempt for an operation
func RecordAIAttempt(ctx context.Context, provider, operation string, duration time.Duration, err error) {
	ensureAIMetrics()
	if !aiMetricsOK {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String("ai.provider", provider),
		attribute.String("ai.operation", operation),
	}

	aiMetricsInst.attemptCount.Add(ctx, 1, metric.WithAttributes(attrs...))
	aiMetricsInst.attemptDuration.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))
	if err != nil {
		aiMetricsInst.attemptErrors.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
}

// RecordAIFallback records an operation that exhausted every provider
func RecordAIFallback(ctx context.Context, operation string) {
	ensureAIMetrics()
	if !aiMetricsOK {
		return
	}
	aiMetricsInst.fallbackCount.Add(ctx, 1, metric.WithAttributes(
		attribute.String("ai.operation", operation),
	))
}

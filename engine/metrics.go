package engine

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics holds the instruments recorded around engine round trips.
type Metrics struct {
	requestDuration metric.Float64Histogram
	requestCounter  metric.Int64Counter
	errorCounter    metric.Int64Counter
	batchSize       metric.Int64Histogram
}

// InitMetrics creates the engine client instruments on the global meter
// provider.
func InitMetrics() (*Metrics, error) {
	meter := otel.Meter("engineql")

	requestDuration, err := meter.Float64Histogram(
		"engine.request.duration",
		metric.WithDescription("Duration of engine round trips in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create request duration histogram: %w", err)
	}

	requestCounter, err := meter.Int64Counter(
		"engine.requests.total",
		metric.WithDescription("Total number of operations dispatched to the engine"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create request counter: %w", err)
	}

	errorCounter, err := meter.Int64Counter(
		"engine.errors.total",
		metric.WithDescription("Total number of failed engine operations"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create error counter: %w", err)
	}

	batchSize, err := meter.Int64Histogram(
		"engine.batch.size",
		metric.WithDescription("Number of operations submitted per batch"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create batch size histogram: %w", err)
	}

	return &Metrics{
		requestDuration: requestDuration,
		requestCounter:  requestCounter,
		errorCounter:    errorCounter,
		batchSize:       batchSize,
	}, nil
}

// RecordRequest records one engine round trip with its duration and outcome.
func (m *Metrics) RecordRequest(ctx context.Context, duration time.Duration, failed bool, operationType string) {
	if m == nil {
		return
	}
	attrs := []attribute.KeyValue{
		attribute.String("operation_type", operationType),
		attribute.Bool("failed", failed),
	}

	m.requestDuration.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))
	m.requestCounter.Add(ctx, 1, metric.WithAttributes(attrs...))

	if failed {
		m.errorCounter.Add(ctx, 1, metric.WithAttributes(
			attribute.String("operation_type", operationType),
		))
	}
}

// RecordBatchSize records the number of operations submitted in one batch.
func (m *Metrics) RecordBatchSize(ctx context.Context, size int64) {
	if m == nil {
		return
	}
	m.batchSize.Record(ctx, size)
}

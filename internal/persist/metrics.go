package persist

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/pixil98/go-fishing/internal/persist"

// Failure reasons recorded on the failures counter.
const (
	ReasonUnavailable = "unavailable"
	ReasonSnapshot    = "snapshot"
	ReasonWrite       = "write"
)

// Recorder counts synchronizer activity.
type Recorder interface {
	Upserted(ctx context.Context)
	Failed(ctx context.Context, reason string)
	Dropped(ctx context.Context)
	Resynced(ctx context.Context)
}

// MeterRecorder records to OpenTelemetry counters.
type MeterRecorder struct {
	upserts  metric.Int64Counter
	failures metric.Int64Counter
	dropped  metric.Int64Counter
	resyncs  metric.Int64Counter
}

// NewMeterRecorder creates the counters on meter. A nil meter uses the global provider.
func NewMeterRecorder(meter metric.Meter) (*MeterRecorder, error) {
	if meter == nil {
		meter = otel.Meter(instrumentationName)
	}

	var r MeterRecorder
	var err error

	if r.upserts, err = meter.Int64Counter("fishing.persist.upserts",
		metric.WithDescription("Economy records written to the durable store.")); err != nil {
		return nil, fmt.Errorf("creating upserts counter: %w", err)
	}
	if r.failures, err = meter.Int64Counter("fishing.persist.failures",
		metric.WithDescription("Economy records that could not be written.")); err != nil {
		return nil, fmt.Errorf("creating failures counter: %w", err)
	}
	if r.dropped, err = meter.Int64Counter("fishing.persist.dropped",
		metric.WithDescription("Persistence requests dropped because the queue was full.")); err != nil {
		return nil, fmt.Errorf("creating dropped counter: %w", err)
	}
	if r.resyncs, err = meter.Int64Counter("fishing.persist.resyncs",
		metric.WithDescription("Full resync passes over every resident identity.")); err != nil {
		return nil, fmt.Errorf("creating resyncs counter: %w", err)
	}

	return &r, nil
}

func (r *MeterRecorder) Upserted(ctx context.Context) {
	r.upserts.Add(ctx, 1)
}

func (r *MeterRecorder) Failed(ctx context.Context, reason string) {
	r.failures.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", reason)))
}

func (r *MeterRecorder) Dropped(ctx context.Context) {
	r.dropped.Add(ctx, 1)
}

func (r *MeterRecorder) Resynced(ctx context.Context) {
	r.resyncs.Add(ctx, 1)
}

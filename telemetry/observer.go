// Package telemetry exports dispatch signals to OpenTelemetry.
package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/toolrack/toolrack/dispatch"
)

// DispatchObserver records dispatch cycles as OpenTelemetry metrics and spans.
type DispatchObserver struct {
	tracer trace.Tracer

	cycles   metric.Int64Counter
	failures metric.Int64Counter
	latency  metric.Float64Histogram
}

// NewDispatchObserver creates a dispatch observer bound to the provided
// meter and tracer.
func NewDispatchObserver(meter metric.Meter, tracer trace.Tracer) (*DispatchObserver, error) {
	cycles, err := meter.Int64Counter(
		"toolrack.dispatch.cycles",
		metric.WithDescription("Number of dispatch cycles"),
	)
	if err != nil {
		return nil, err
	}
	failures, err := meter.Int64Counter(
		"toolrack.dispatch.failures",
		metric.WithDescription("Number of contained dispatch failures"),
	)
	if err != nil {
		return nil, err
	}
	latency, err := meter.Float64Histogram(
		"toolrack.dispatch.latency",
		metric.WithDescription("Dispatch cycle latency in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	return &DispatchObserver{
		tracer:   tracer,
		cycles:   cycles,
		failures: failures,
		latency:  latency,
	}, nil
}

// ObserveDispatch records one dispatch cycle result.
func (o *DispatchObserver) ObserveDispatch(observation dispatch.Observation) {
	if o == nil {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String("unit_name", observation.UnitName),
		attribute.String("transport", string(observation.Transport)),
		attribute.Bool("success", observation.Success),
	}
	if observation.ErrorKind != "" {
		attrs = append(attrs, attribute.String("error_kind", observation.ErrorKind))
	}

	ctx := context.Background()
	options := metric.WithAttributes(attrs...)
	o.cycles.Add(ctx, 1, options)
	o.latency.Record(ctx, float64(time.Duration(observation.DurationMS)*time.Millisecond)/float64(time.Second), options)
	if !observation.Success {
		o.failures.Add(ctx, 1, options)
	}

	if o.tracer == nil {
		return
	}
	spanAttrs := append(attrs, attribute.String("cycle_id", observation.CycleID))
	_, span := o.tracer.Start(ctx, "dispatch.cycle", trace.WithAttributes(spanAttrs...))
	if !observation.Success {
		span.SetStatus(codes.Error, observation.ErrorKind)
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

var _ dispatch.Observer = (*DispatchObserver)(nil)

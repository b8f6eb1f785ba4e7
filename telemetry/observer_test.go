package telemetry_test

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/toolrack/toolrack/dispatch"
	"github.com/toolrack/toolrack/telemetry"
	"github.com/toolrack/toolrack/unit"
)

func newTestMeter() (*metric.ManualReader, *metric.MeterProvider) {
	reader := metric.NewManualReader()
	mp := metric.NewMeterProvider(metric.WithReader(reader))
	return reader, mp
}

// collectMetrics reads all metrics from the reader.
func collectMetrics(t *testing.T, reader *metric.ManualReader) *metricdata.ResourceMetrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("failed to collect metrics: %v", err)
	}
	return &rm
}

// findMetric searches for a metric by name in the collected data.
func findMetric(rm *metricdata.ResourceMetrics, name string) *metricdata.Metrics {
	for _, scope := range rm.ScopeMetrics {
		for i := range scope.Metrics {
			if scope.Metrics[i].Name == name {
				return &scope.Metrics[i]
			}
		}
	}
	return nil
}

func TestDispatchObserverRecordsMetrics(t *testing.T) {
	reader, mp := newTestMeter()
	meter := mp.Meter("test-dispatch-observer")
	tracer := noop.NewTracerProvider().Tracer("test-dispatch-observer")

	observer, err := telemetry.NewDispatchObserver(meter, tracer)
	if err != nil {
		t.Fatalf("NewDispatchObserver() error = %v", err)
	}

	observer.ObserveDispatch(dispatch.Observation{
		UnitName:   "Fx Rates",
		Transport:  unit.RunnerKindNative,
		CycleID:    "cycle-1",
		DurationMS: 120,
		Success:    true,
	})
	observer.ObserveDispatch(dispatch.Observation{
		UnitName:   "Fx Rates",
		Transport:  unit.RunnerKindExec,
		CycleID:    "cycle-2",
		DurationMS: 45,
		Success:    false,
		ErrorKind:  unit.RunErrorCodeUnitFailure,
	})

	rm := collectMetrics(t, reader)

	cycles := findMetric(rm, "toolrack.dispatch.cycles")
	if cycles == nil {
		t.Fatal("toolrack.dispatch.cycles metric not found")
	}
	if _, ok := cycles.Data.(metricdata.Sum[int64]); !ok {
		t.Fatalf("toolrack.dispatch.cycles type = %T, want Sum[int64]", cycles.Data)
	}

	failures := findMetric(rm, "toolrack.dispatch.failures")
	if failures == nil {
		t.Fatal("toolrack.dispatch.failures metric not found")
	}
	sum, ok := failures.Data.(metricdata.Sum[int64])
	if !ok {
		t.Fatalf("toolrack.dispatch.failures type = %T, want Sum[int64]", failures.Data)
	}
	var failureCount int64
	for _, point := range sum.DataPoints {
		failureCount += point.Value
	}
	if failureCount != 1 {
		t.Fatalf("failure count = %d, want 1", failureCount)
	}

	latency := findMetric(rm, "toolrack.dispatch.latency")
	if latency == nil {
		t.Fatal("toolrack.dispatch.latency metric not found")
	}
	if _, ok := latency.Data.(metricdata.Histogram[float64]); !ok {
		t.Fatalf("toolrack.dispatch.latency type = %T, want Histogram[float64]", latency.Data)
	}
}

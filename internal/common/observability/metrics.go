package observability

import (
	"context"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
)

// Observability records per-run OpenTelemetry instruments, exported through
// the Prometheus registry so they land in the same textfile as the counters.
type Observability struct {
	meterProvider *metric.MeterProvider
	meter         otelmetric.Meter
	runDuration   otelmetric.Float64Histogram
	bytesRead     otelmetric.Int64Histogram
	bytesWritten  otelmetric.Int64Histogram
}

// New builds the meter provider. A nil registerer means the default registry.
// On exporter failure the returned value is inert but safe to use.
func New(serviceName string, registerer promclient.Registerer) (*Observability, error) {
	if registerer == nil {
		registerer = promclient.DefaultRegisterer
	}

	exporter, err := prometheus.New(prometheus.WithRegisterer(registerer))
	if err != nil {
		return &Observability{}, err
	}

	provider := metric.NewMeterProvider(metric.WithReader(exporter))
	otel.SetMeterProvider(provider)

	meter := provider.Meter(serviceName)

	runDuration, _ := meter.Float64Histogram(
		"stage_run_duration",
		otelmetric.WithDescription("Stage invocation duration"),
		otelmetric.WithUnit("ms"),
	)

	bytesRead, _ := meter.Int64Histogram(
		"stage_data_read",
		otelmetric.WithDescription("Size of the input data file"),
		otelmetric.WithUnit("By"),
	)

	bytesWritten, _ := meter.Int64Histogram(
		"stage_data_written",
		otelmetric.WithDescription("Size of the output data file"),
		otelmetric.WithUnit("By"),
	)

	return &Observability{
		meterProvider: provider,
		meter:         meter,
		runDuration:   runDuration,
		bytesRead:     bytesRead,
		bytesWritten:  bytesWritten,
	}, nil
}

func (o *Observability) RecordRun(ctx context.Context, taskType string, duration time.Duration, status string) {
	if o == nil || o.runDuration == nil {
		return
	}
	o.runDuration.Record(ctx, float64(duration.Milliseconds()), otelmetric.WithAttributes(
		attribute.String("task_type", taskType),
		attribute.String("status", status),
	))
}

func (o *Observability) RecordDataSizes(ctx context.Context, taskType string, read, written int64) {
	if o == nil || o.bytesRead == nil {
		return
	}
	attrs := otelmetric.WithAttributes(attribute.String("task_type", taskType))
	if read >= 0 {
		o.bytesRead.Record(ctx, read, attrs)
	}
	if written >= 0 {
		o.bytesWritten.Record(ctx, written, attrs)
	}
}

func (o *Observability) Shutdown() {
	if o == nil || o.meterProvider == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = o.meterProvider.Shutdown(ctx)
}

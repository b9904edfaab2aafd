package observability

import (
	"context"
	"log"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
)

type Observability struct {
	meterProvider *metric.MeterProvider
	meter         otelmetric.Meter
	loadCounter   otelmetric.Int64Counter
	loadDuration  otelmetric.Float64Histogram
}

func New(serviceName string) *Observability {
	exporter, err := prometheus.New()
	if err != nil {
		log.Printf("Failed to create Prometheus exporter: %v", err)
		return &Observability{}
	}

	provider := metric.NewMeterProvider(metric.WithReader(exporter))
	otel.SetMeterProvider(provider)

	meter := provider.Meter(serviceName)

	loadCounter, _ := meter.Int64Counter(
		"screen.loads",
		otelmetric.WithDescription("Number of screen loads"),
	)

	loadDuration, _ := meter.Float64Histogram(
		"screen.load.duration",
		otelmetric.WithDescription("Screen load duration"),
		otelmetric.WithUnit("ms"),
	)

	return &Observability{
		meterProvider: provider,
		meter:         meter,
		loadCounter:   loadCounter,
		loadDuration:  loadDuration,
	}
}

func (o *Observability) RecordScreenLoad(ctx context.Context, screen, outcome string) {
	if o.loadCounter != nil {
		o.loadCounter.Add(ctx, 1, otelmetric.WithAttributes(
			attribute.String("screen", screen),
			attribute.String("outcome", outcome),
		))
	}
}

func (o *Observability) RecordLoadDuration(ctx context.Context, screen string, duration time.Duration) {
	if o.loadDuration != nil {
		o.loadDuration.Record(ctx, float64(duration.Milliseconds()), otelmetric.WithAttributes(
			attribute.String("screen", screen),
		))
	}
}

func (o *Observability) Shutdown() {
	if o.meterProvider != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		o.meterProvider.Shutdown(ctx)
	}
}

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
	chatCounter   otelmetric.Int64Counter
	chatDuration  otelmetric.Float64Histogram
	actionCounter otelmetric.Int64Counter
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

	chatCounter, _ := meter.Int64Counter(
		"chat.resolved",
		otelmetric.WithDescription("Number of chat messages resolved"),
	)

	chatDuration, _ := meter.Float64Histogram(
		"chat.resolution.duration",
		otelmetric.WithDescription("Chat resolution duration"),
		otelmetric.WithUnit("ms"),
	)

	actionCounter, _ := meter.Int64Counter(
		"chat.actions.dispatched",
		otelmetric.WithDescription("Number of confirmed actions dispatched to the backend"),
	)

	return &Observability{
		meterProvider: provider,
		meter:         meter,
		chatCounter:   chatCounter,
		chatDuration:  chatDuration,
		actionCounter: actionCounter,
	}
}

func (o *Observability) RecordChatResolved(ctx context.Context, intent, language string) {
	if o.chatCounter != nil {
		o.chatCounter.Add(ctx, 1, otelmetric.WithAttributes(
			attribute.String("intent", intent),
			attribute.String("language", language),
		))
	}
}

func (o *Observability) RecordResolutionDuration(ctx context.Context, duration time.Duration, intent string) {
	if o.chatDuration != nil {
		o.chatDuration.Record(ctx, float64(duration.Milliseconds()), otelmetric.WithAttributes(
			attribute.String("intent", intent),
		))
	}
}

func (o *Observability) RecordActionDispatched(ctx context.Context, action, outcome string) {
	if o.actionCounter != nil {
		o.actionCounter.Add(ctx, 1, otelmetric.WithAttributes(
			attribute.String("action", action),
			attribute.String("outcome", outcome),
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

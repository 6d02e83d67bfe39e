package infra

import (
	"context"

	texporter "github.com/GoogleCloudPlatform/opentelemetry-operations-go/exporter/trace"
	gcppropagator "github.com/GoogleCloudPlatform/opentelemetry-operations-go/propagator"
	"github.com/cockroachdb/errors"
	"go.opentelemetry.io/contrib/detectors/gcp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.37.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"google.golang.org/api/option"
)

const (
	TracingExporterGcp  = "gcp"
	TracingExporterOtlp = "otlp"
)

type TelemetryRessources struct {
	TracerProvider    trace.TracerProvider
	Tracer            trace.Tracer
	TextMapPropagator propagation.TextMapPropagator
	shutdown          func(context.Context) error
}

func (r TelemetryRessources) Shutdown(ctx context.Context) error {
	if r.shutdown == nil {
		return nil
	}
	return r.shutdown(ctx)
}

func NoopTelemetry() TelemetryRessources {
	provider := noop.NewTracerProvider()
	return TelemetryRessources{
		TracerProvider: provider,
		Tracer:         provider.Tracer(""),
	}
}

func InitTelemetry(ctx context.Context, configuration TelemetryConfiguration, apiVersion string) (TelemetryRessources, error) {
	if !configuration.Enabled {
		return NoopTelemetry(), nil
	}

	var exporter sdktrace.SpanExporter
	switch configuration.Exporter {
	case TracingExporterGcp:
		gcpExporter, err := texporter.New(
			texporter.WithProjectID(configuration.ProjectId),
			texporter.WithTraceClientOptions([]option.ClientOption{option.WithTelemetryDisabled()}),
		)
		if err != nil {
			return TelemetryRessources{}, errors.Wrap(err, "texporter.New error")
		}
		exporter = gcpExporter
	case TracingExporterOtlp:
		otlpExporter, err := otlptracegrpc.New(ctx)
		if err != nil {
			return TelemetryRessources{}, errors.Wrap(err, "otlptracegrpc.New error")
		}
		exporter = otlpExporter
	default:
		return TelemetryRessources{}, errors.Newf("unknown tracing exporter '%s'", configuration.Exporter)
	}

	res, err := resource.New(ctx,
		resource.WithDetectors(gcp.NewDetector()),
		resource.WithTelemetrySDK(),
		resource.WithAttributes(
			semconv.ServiceNameKey.String(configuration.ApplicationName),
			semconv.ServiceVersion(apiVersion),
		),
	)
	if err != nil {
		return TelemetryRessources{}, errors.Wrap(err, "resource.New error")
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.ParentBased(SpanNameSampler{SamplingMap: configuration.SamplingMap})),
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)

	propagators := propagation.NewCompositeTextMapPropagator(
		gcppropagator.CloudTraceFormatPropagator{},
		propagation.TraceContext{},
		propagation.Baggage{},
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagators)

	return TelemetryRessources{
		TracerProvider:    tp,
		Tracer:            tp.Tracer(configuration.ApplicationName),
		TextMapPropagator: propagators,
		shutdown:          tp.Shutdown,
	}, nil
}

// SpanNameSampler samples root spans with a ratio chosen from their name.
type SpanNameSampler struct {
	SamplingMap map[string]float64
}

func (s SpanNameSampler) ShouldSample(p sdktrace.SamplingParameters) sdktrace.SamplingResult {
	ratio, ok := s.SamplingMap[p.Name]
	if !ok {
		ratio = 1
	}
	return sdktrace.TraceIDRatioBased(ratio).ShouldSample(p)
}

func (s SpanNameSampler) Description() string {
	return "SpanNameSampler"
}

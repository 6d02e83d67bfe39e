package infra

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

func TestInitTelemetry_DisabledIsNoop(t *testing.T) {
	telemetry, err := InitTelemetry(context.Background(), TelemetryConfiguration{Enabled: false}, "test")
	require.NoError(t, err)

	_, span := telemetry.Tracer.Start(context.Background(), "span")
	assert.False(t, span.SpanContext().IsValid())
	assert.NoError(t, telemetry.Shutdown(context.Background()))
}

func TestSpanNameSampler(t *testing.T) {
	sampler := SpanNameSampler{SamplingMap: map[string]float64{"GET /liveness": 0}}
	traceId := trace.TraceID{1, 2, 3}

	dropped := sampler.ShouldSample(sdktrace.SamplingParameters{TraceID: traceId, Name: "GET /liveness"})
	assert.Equal(t, sdktrace.Drop, dropped.Decision)

	kept := sampler.ShouldSample(sdktrace.SamplingParameters{TraceID: traceId, Name: "POST /imports"})
	assert.Equal(t, sdktrace.RecordAndSample, kept.Decision)
}

func TestInitTelemetry_UnknownExporter(t *testing.T) {
	_, err := InitTelemetry(context.Background(),
		TelemetryConfiguration{Enabled: true, Exporter: "zipkin"}, "test")
	assert.Error(t, err)
}

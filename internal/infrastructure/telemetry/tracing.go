package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"github.com/jhoicas/Estoque-api/pkg/logger"
)

// InitTracing configura un exporter OTLP HTTP si endpoint no está vacío.
// Sin endpoint el tracer global queda no-op y el shutdown devuelto no hace nada.
func InitTracing(ctx context.Context, log *logger.Logger, endpoint, serviceName, environment string) (func(context.Context) error, error) {
	if endpoint == "" {
		if log != nil {
			log.Info().Msg("tracing deshabilitado: OTEL_EXPORTER_OTLP_ENDPOINT vacío")
		}
		return func(context.Context) error { return nil }, nil
	}

	exporter, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpoint(endpoint), otlptracehttp.WithInsecure())
	if err != nil {
		return nil, err
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.DeploymentEnvironment(environment),
		),
	)
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	if log != nil {
		log.Info().Str("endpoint", endpoint).Msg("tracing inicializado")
	}
	return tp.Shutdown, nil
}

package otel

import (
	"context"
	"hotel/config"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"google.golang.org/grpc/credentials/insecure"
)

type Otel interface {
	NewScope(ctx context.Context, scopeName, spanName string) (context.Context, Scope)
	Shutdown(ctx context.Context) error
}

type otelImpl struct {
	provider oteltrace.TracerProvider
	sdk      *trace.TracerProvider
}

func (o *otelImpl) NewScope(ctx context.Context, scopeName, spanName string) (context.Context, Scope) {
	ctx, span := o.provider.Tracer(scopeName).Start(ctx, spanName)

	return ctx, NewScope(span)
}

func (o *otelImpl) Shutdown(ctx context.Context) error {
	if o.sdk == nil {
		return nil
	}

	return o.sdk.Shutdown(ctx)
}

// New builds an OTLP/gRPC tracer. An empty endpoint yields a no-op tracer so
// local runs and tests need no collector.
func New(cfg *config.Config) Otel {
	endpoint := cfg.External.Otel.Endpoint
	if endpoint == "" {
		log.Info().Msg("OTEL endpoint not configured, tracing disabled")

		return &otelImpl{provider: noop.NewTracerProvider()}
	}

	exporter, err := otlptracegrpc.New(context.Background(),
		otlptracegrpc.WithEndpoint(endpoint),
		otlptracegrpc.WithTLSCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create OTLP exporter")
	}

	provider := trace.NewTracerProvider(
		trace.WithBatcher(exporter),
		trace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String(cfg.App.Name),
			semconv.DeploymentEnvironmentKey.String(cfg.Server.Env),
		)),
	)

	otel.SetTracerProvider(provider)

	log.Info().Str("endpoint", endpoint).Msg("OTEL tracer initialized")

	return &otelImpl{provider: provider, sdk: provider}
}

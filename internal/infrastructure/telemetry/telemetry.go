// Package telemetry wires optional OpenTelemetry tracing.
//
// Tracing is off unless GITHOOKS_OTEL_STDOUT=true, in which case every hook
// run and every configured command is printed as a span on stderr.
package telemetry

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

const stdoutEnv = "GITHOOKS_OTEL_STDOUT"

// Enabled reports whether span export is switched on.
func Enabled() bool {
	return os.Getenv(stdoutEnv) == "true"
}

// Init installs the global tracer provider and returns its shutdown
// function. With tracing disabled a no-op provider is installed.
func Init(serviceName, version string) (func(context.Context) error, error) {
	if !Enabled() {
		otel.SetTracerProvider(tracenoop.NewTracerProvider())
		return func(context.Context) error { return nil }, nil
	}
	provider, err := NewProvider(os.Stderr, serviceName, version)
	if err != nil {
		return nil, err
	}
	otel.SetTracerProvider(provider)
	return provider.Shutdown, nil
}

// NewProvider builds a provider that writes spans to w as they end.
func NewProvider(w io.Writer, serviceName, version string) (*sdktrace.TracerProvider, error) {
	exporter, err := stdouttrace.New(stdouttrace.WithWriter(w), stdouttrace.WithPrettyPrint())
	if err != nil {
		return nil, fmt.Errorf("telemetry: stdout exporter: %w", err)
	}
	res := resource.NewSchemaless(
		attribute.String("service.name", serviceName),
		attribute.String("service.version", version),
	)
	return sdktrace.NewTracerProvider(
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithSyncer(exporter),
	), nil
}

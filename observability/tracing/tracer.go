// Package tracing exposes the OpenTelemetry tracer of newsdash.
// Without a configured provider the global no-op provider is used.
package tracing

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// Tracer returns the application tracer
func Tracer() trace.Tracer {
	return otel.Tracer("newsdash")
}

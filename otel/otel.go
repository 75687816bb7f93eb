//go:build otel

package otel

import (
	"context"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Tracer adapts OpenTelemetry tracing to middleware.Trace.
type Tracer struct {
	tracer trace.Tracer
}

// NewTracer creates an OpenTelemetry tracer adapter.
func NewTracer(name string) (*Tracer, error) {
	if name == "" {
		name = "csphead"
	}
	return &Tracer{tracer: otel.Tracer(name)}, nil
}

// Start starts an OpenTelemetry span for the request.
func (t *Tracer) Start(r *http.Request) (context.Context, func(status int)) {
	if t == nil || r == nil {
		return context.Background(), func(int) {}
	}

	spanCtx, span := t.tracer.Start(r.Context(), r.Method+" "+r.URL.Path)

	attrs := []attribute.KeyValue{
		attribute.String("http.method", r.Method),
		attribute.String("http.target", r.URL.Path),
	}
	if r.Host != "" {
		attrs = append(attrs, attribute.String("http.host", r.Host))
	}
	if r.UserAgent() != "" {
		attrs = append(attrs, attribute.String("http.user_agent", r.UserAgent()))
	}
	span.SetAttributes(attrs...)

	return spanCtx, func(status int) {
		span.SetAttributes(attribute.Int("http.status_code", status))
		if status >= http.StatusInternalServerError {
			span.SetStatus(codes.Error, http.StatusText(status))
		} else {
			span.SetStatus(codes.Ok, "")
		}
		span.End()
	}
}

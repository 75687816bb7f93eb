//go:build !otel

package otel

import (
	"context"
	"net/http"
)

// Tracer is a no-op tracer when OpenTelemetry is disabled.
type Tracer struct{}

// NewTracer returns ErrUnavailable when the otel build tag is not enabled.
func NewTracer(name string) (*Tracer, error) {
	_ = name
	return nil, ErrUnavailable
}

// Start implements the middleware tracer interface as a no-op.
func (t *Tracer) Start(r *http.Request) (context.Context, func(status int)) {
	if r == nil {
		return context.Background(), func(int) {}
	}
	return r.Context(), func(int) {}
}

package otel

import "errors"

// ErrUnavailable indicates OpenTelemetry support is disabled. NewTracer
// returns it when the binary was built without the otel build tag, so
// callers can fall back to an untraced chain.
var ErrUnavailable = errors.New("otel build tag not enabled")

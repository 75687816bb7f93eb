package middleware

import (
	"context"
	"net/http"
)

// Tracer starts spans for incoming requests.
type Tracer interface {
	Start(r *http.Request) (context.Context, func(status int))
}

// TraceOptions configures tracing middleware.
type TraceOptions struct {
	Tracer    Tracer
	SkipPaths []string
}

// DefaultTraceOptions returns default tracing options.
func DefaultTraceOptions(tracer Tracer) TraceOptions {
	return TraceOptions{
		Tracer:    tracer,
		SkipPaths: []string{"/metrics", "/health"},
	}
}

// Trace records request spans using the provided tracer.
func Trace(tracer Tracer) func(http.Handler) http.Handler {
	return TraceWithOptions(DefaultTraceOptions(tracer))
}

// TraceWithOptions records request spans with options.
func TraceWithOptions(options TraceOptions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if options.Tracer == nil || shouldSkipPath(r.URL.Path, options.SkipPaths) {
				next.ServeHTTP(w, r)
				return
			}

			traceCtx, finish := options.Tracer.Start(r)
			if traceCtx != nil {
				r = r.WithContext(traceCtx)
			}

			recorder := newResponseRecorder(w)
			next.ServeHTTP(recorder, r)

			if finish != nil {
				finish(recorder.Status())
			}
		})
	}
}

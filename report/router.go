package report

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

// RouterOptions configures the collector routes.
type RouterOptions struct {
	Store        Store
	Metrics      *Metrics
	Logger       *slog.Logger
	Path         string
	MaxBodyBytes int64

	// AllowedOrigins enables CORS on the read endpoints when non-empty,
	// so browser dashboards on other origins can query /reports.
	AllowedOrigins []string

	// CollectorMiddleware wraps only the collector endpoint, typically
	// with a rate limit keyed by reporter address.
	CollectorMiddleware []func(http.Handler) http.Handler

	// Health and Ready are mounted at /health and /ready when set;
	// /health falls back to a static ok response otherwise.
	Health http.Handler
	Ready  http.Handler
}

// NewRouter mounts the collector endpoint, the recent-report listing, and
// the operational routes on a chi router.
func NewRouter(options RouterOptions) *chi.Mux {
	r := chi.NewRouter()

	if len(options.AllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: options.AllowedOrigins,
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			MaxAge:         300,
		}))
	}

	path := options.Path
	if path == "" {
		path = "/csp-reports"
	}
	store := options.Store
	if store == nil {
		store = NewMemoryStore(0)
	}

	collector := NewHandler(HandlerOptions{
		Store:        store,
		Logger:       options.Logger,
		Metrics:      options.Metrics,
		MaxBodyBytes: options.MaxBodyBytes,
	})
	// All methods route to the collector so it can answer 405 itself.
	r.With(options.CollectorMiddleware...).Handle(path, collector)

	r.Method(http.MethodGet, "/reports", ListHandler(store, options.Logger))

	if options.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", options.Metrics.Handler())
	}

	if options.Health != nil {
		r.Method(http.MethodGet, "/health", options.Health)
	} else {
		r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"status":"ok"}`))
		})
	}
	if options.Ready != nil {
		r.Method(http.MethodGet, "/ready", options.Ready)
	}

	return r
}

package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/devmarvs/csphead"
	"github.com/devmarvs/csphead/config"
	"github.com/devmarvs/csphead/health"
	"github.com/devmarvs/csphead/logging"
	"github.com/devmarvs/csphead/middleware"
	"github.com/devmarvs/csphead/otel"
	"github.com/devmarvs/csphead/report"
)

var (
	serveConfig    string
	serveEnvPrefix string
	serveListen    string
	serveOrigins   []string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the violation report collector",
	Long: `Run an HTTP collector that accepts violation reports on the configured
report path, stores them in Postgres or in memory, and exposes them on
/reports alongside /metrics, /health, and /ready.

Examples:
  cspctl serve --config csphead.yaml
  CSPHEAD_REPORT_DATABASE_URL=postgres://... cspctl serve`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveConfig, "config", "", "path to a YAML config file")
	serveCmd.Flags().StringVar(&serveEnvPrefix, "env-prefix", "CSPHEAD_", "environment variable prefix for overrides")
	serveCmd.Flags().StringVar(&serveListen, "listen", "", "listen address, overrides the config")
	serveCmd.Flags().StringSliceVar(&serveOrigins, "allow-origin", nil, "origins allowed to query /reports")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(serveConfig, serveEnvPrefix)
	if err != nil {
		return err
	}
	if serveListen != "" {
		cfg.Listen = serveListen
	}

	logger := logging.NewLogger(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var store report.Store
	if cfg.Report.DatabaseURL != "" {
		pool, err := report.NewPool(ctx, cfg.Report.DatabaseURL)
		if err != nil {
			return err
		}
		defer pool.Close()
		pgstore := report.NewPgxStore(pool)
		if err := pgstore.CreateSchema(ctx); err != nil {
			return err
		}
		store = pgstore
		logger.Info("reports stored in postgres")
		if cfg.Report.RetentionDays > 0 {
			go pruneLoop(ctx, pgstore, cfg.Report.RetentionDays, logger)
		}
	} else {
		store = report.NewMemoryStore(cfg.Report.Keep)
		logger.Info("reports stored in memory", slog.Int("keep", cfg.Report.Keep))
	}

	var collectorMiddleware []func(http.Handler) http.Handler
	if cfg.Report.RatePerSecond > 0 {
		burst := cfg.Report.RateBurst
		if burst <= 0 {
			burst = 10
		}
		limiter := middleware.NewLimiter(cfg.Report.RatePerSecond, burst,
			middleware.LimiterTTL(10*time.Minute))
		collectorMiddleware = append(collectorMiddleware,
			middleware.RateLimit(limiter, middleware.RateLimitRetryAfter(time.Second)))
		logger.Info("report rate limit enabled",
			slog.Float64("per_second", cfg.Report.RatePerSecond),
			slog.Int("burst", burst),
		)
	}

	registry := health.New(health.WithTimeout(5 * time.Second))
	registry.Add("collector", func(context.Context) error { return nil })
	registry.AddReady("store", func(ctx context.Context) error {
		_, err := store.Count(ctx)
		return err
	})

	metrics := report.NewMetrics()
	router := report.NewRouter(report.RouterOptions{
		Store:               store,
		Metrics:             metrics,
		Logger:              logger,
		Path:                cfg.Report.Path,
		MaxBodyBytes:        cfg.Report.MaxBodyBytes,
		AllowedOrigins:      serveOrigins,
		CollectorMiddleware: collectorMiddleware,
		Health:              registry.Handler(),
		Ready:               registry.ReadyHandler(),
	})

	// The collector never serves document content, so its own policy
	// locks everything down.
	chain := []func(http.Handler) http.Handler{
		middleware.RequestID(),
		middleware.Recover(logger),
		middleware.LoggerWithOptions(middleware.LoggerOptions{
			Logger:    logger,
			SkipPaths: []string{"/health", "/ready", "/metrics"},
		}),
		middleware.SecurityHeaders(middleware.SecurityHeadersOptions{
			ContentTypeNosniff: true,
			FrameOptions:       "DENY",
			ReferrerPolicy:     "strict-origin-when-cross-origin",
			ContentSecurityPolicy: csphead.New().
				MustSet(csphead.DefaultSrc, csphead.SourceNone).
				MustSet(csphead.FrameAncestors, csphead.SourceNone).
				MustSet(csphead.BaseURI, csphead.SourceNone),
		}),
	}
	if tracer, err := otel.NewTracer("cspctl"); err == nil {
		chain = append(chain, middleware.Trace(tracer))
	} else if !errors.Is(err, otel.ErrUnavailable) {
		return err
	}

	handler := http.Handler(router)
	for i := len(chain) - 1; i >= 0; i-- {
		handler = chain[i](handler)
	}

	server := &http.Server{
		Addr:              cfg.Listen,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("collector starting",
			slog.String("address", cfg.Listen),
			slog.String("path", cfg.Report.Path),
		)
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// pruneLoop deletes reports older than the retention window once an hour.
func pruneLoop(ctx context.Context, store *report.PgxStore, retentionDays int, logger *slog.Logger) {
	olderThan := time.Duration(retentionDays) * 24 * time.Hour
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		removed, err := store.Prune(ctx, olderThan)
		if err != nil {
			logger.Error("prune reports", "error", err)
		} else if removed > 0 {
			logger.Info("pruned reports", slog.Int64("removed", removed))
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

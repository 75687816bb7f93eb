package report

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the collector's Prometheus metrics.
type Metrics struct {
	Registry      *prometheus.Registry
	ReportsTotal  *prometheus.CounterVec
	RejectedTotal *prometheus.CounterVec
	ReportBytes   prometheus.Histogram
	StoreErrors   prometheus.Counter
}

// NewMetrics creates and registers the metrics on a dedicated registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		Registry: reg,

		ReportsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "csp_reports_total",
			Help: "Total number of accepted violation reports.",
		}, []string{"directive", "disposition"}),

		RejectedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "csp_reports_rejected_total",
			Help: "Total number of rejected report requests.",
		}, []string{"reason"}),

		ReportBytes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "csp_report_bytes",
			Help:    "Size of accepted report payloads in bytes.",
			Buckets: []float64{256, 512, 1024, 2048, 4096, 8192, 16384, 65536},
		}),

		StoreErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "csp_report_store_errors_total",
			Help: "Total number of report store failures.",
		}),
	}

	reg.MustRegister(
		m.ReportsTotal,
		m.RejectedTotal,
		m.ReportBytes,
		m.StoreErrors,
	)

	return m
}

// Handler returns the Prometheus HTTP handler for the dedicated registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}

package report

import (
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"

	"github.com/devmarvs/csphead"
	"github.com/devmarvs/csphead/logging"
)

// HandlerOptions configures the collector endpoint.
type HandlerOptions struct {
	Store        Store
	Logger       *slog.Logger
	Metrics      *Metrics
	MaxBodyBytes int64
}

// Handler accepts violation reports POSTed by user agents to the
// report-uri endpoint and hands them to a Store.
type Handler struct {
	store   Store
	logger  *slog.Logger
	metrics *Metrics
	maxBody int64
	now     func() time.Time
	newID   func() string
}

// NewHandler creates the collector. A nil store keeps the most recent
// reports in memory.
func NewHandler(options HandlerOptions) *Handler {
	store := options.Store
	if store == nil {
		store = NewMemoryStore(0)
	}
	logger := options.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	maxBody := options.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = 64 << 10
	}
	return &Handler{
		store:   store,
		logger:  logger,
		metrics: options.Metrics,
		maxBody: maxBody,
		now:     time.Now,
		newID:   func() string { return uuid.New().String() },
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		h.reject(w, http.StatusMethodNotAllowed, "method")
		return
	}
	if !acceptableContentType(r.Header.Get("Content-Type")) {
		h.reject(w, http.StatusUnsupportedMediaType, "content_type")
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBody))
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.reject(w, http.StatusRequestEntityTooLarge, "too_large")
			return
		}
		h.reject(w, http.StatusBadRequest, "read")
		return
	}

	parsed, err := Parse(body)
	if err != nil {
		h.logger.Debug("rejected report", "error", err)
		h.reject(w, http.StatusBadRequest, "invalid")
		return
	}

	received := Received{
		ID:         h.newID(),
		ReceivedAt: h.now().UTC(),
		UserAgent:  r.Header.Get("User-Agent"),
		RemoteAddr: r.RemoteAddr,
		Body:       parsed.Body,
	}
	if err := h.store.Save(r.Context(), received); err != nil {
		h.logger.Error("save report", "error", err)
		if h.metrics != nil {
			h.metrics.StoreErrors.Inc()
		}
		http.Error(w, "storage failure", http.StatusInternalServerError)
		return
	}

	if h.metrics != nil {
		h.metrics.ReportsTotal.WithLabelValues(directiveLabel(parsed.Body), dispositionLabel(parsed.Body)).Inc()
		h.metrics.ReportBytes.Observe(float64(len(body)))
	}
	h.logger.Debug("report received",
		"id", received.ID,
		"directive", parsed.Body.Directive(),
		"document_uri", parsed.Body.DocumentURI,
		"blocked_uri", parsed.Body.BlockedURI,
	)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) reject(w http.ResponseWriter, status int, reason string) {
	if h.metrics != nil {
		h.metrics.RejectedTotal.WithLabelValues(reason).Inc()
	}
	http.Error(w, http.StatusText(status), status)
}

func acceptableContentType(value string) bool {
	// User agents send application/csp-report; tooling tends to send
	// plain JSON. An absent header is tolerated.
	if value == "" {
		return true
	}
	mediaType, _, err := mime.ParseMediaType(value)
	if err != nil {
		return false
	}
	switch mediaType {
	case "application/csp-report", "application/json", "application/reports+json":
		return true
	}
	return false
}

// directiveLabel keeps metric cardinality bounded by the directive
// allow-list.
func directiveLabel(b Body) string {
	directive := b.Directive()
	if !csphead.ValidDirective(directive) {
		return "other"
	}
	return strings.ToLower(directive)
}

func dispositionLabel(b Body) string {
	switch b.Disposition {
	case "enforce", "report":
		return b.Disposition
	}
	return "unknown"
}

// ListHandler serves the most recent reports as a JSON array, newest
// first. The limit query parameter caps the page size.
func ListHandler(store Store, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = logging.Discard()
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		limit := 100
		if value := r.URL.Query().Get("limit"); value != "" {
			if n, err := strconv.Atoi(value); err == nil && n > 0 {
				limit = n
			}
		}

		reports, err := store.Recent(r.Context(), limit)
		if err != nil {
			logger.Error("list reports", "error", err)
			http.Error(w, "storage failure", http.StatusInternalServerError)
			return
		}
		if reports == nil {
			reports = []Received{}
		}

		data, err := sonic.Marshal(reports)
		if err != nil {
			logger.Error("encode reports", "error", err)
			http.Error(w, "encode failure", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(data)
	})
}

package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Labels is a simple key:value map for metric dimensions.
type Labels map[string]string

// Metric names.
const (
	HTTPRequests     = "http_requests_total"
	HTTPDuration     = "http_request_duration_seconds"
	ULIDsIssued      = "ulid_issued_total"
	ULIDsExhausted   = "ulid_increment_exhausted_total"
	labelUnknown     = "unknown"
	defaultStatusStr = "0"
)

// MetricsRecorder captures counters and histograms.
type MetricsRecorder interface {
	IncCounter(name string, labels Labels)
	AddCounter(name string, value float64, labels Labels)
	ObserveHistogram(name string, value float64, labels Labels)
}

// PrometheusHandler returns the standard /metrics handler for the given
// gatherer, or the default registry when nil.
func PrometheusHandler(g prometheus.Gatherer) http.Handler {
	if g == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

// NoopMetrics discards everything.
type NoopMetrics struct{}

func (NoopMetrics) IncCounter(_ string, _ Labels)                  {}
func (NoopMetrics) AddCounter(_ string, _ float64, _ Labels)       {}
func (NoopMetrics) ObserveHistogram(_ string, _ float64, _ Labels) {}

// PrometheusRecorder implements MetricsRecorder for HTTP traffic and ULID
// issuance.
type PrometheusRecorder struct {
	requests  *prometheus.CounterVec
	durations *prometheus.HistogramVec
	issued    *prometheus.CounterVec
	exhausted prometheus.Counter
}

// NewPrometheusRecorder wires counters and histograms with standard names.
// When registerer is nil the default Prometheus registerer is used.
func NewPrometheusRecorder(registerer prometheus.Registerer, buckets []float64) *PrometheusRecorder {
	reg := registerer
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if len(buckets) == 0 {
		buckets = []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1}
	}
	f := promauto.With(reg)
	return &PrometheusRecorder{
		requests: f.NewCounterVec(prometheus.CounterOpts{
			Name: HTTPRequests,
			Help: "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		durations: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    HTTPDuration,
			Help:    "HTTP request duration in seconds",
			Buckets: buckets,
		}, []string{"method", "route", "status"}),
		issued: f.NewCounterVec(prometheus.CounterOpts{
			Name: ULIDsIssued,
			Help: "ULIDs constructed, by construction path",
		}, []string{"source"}),
		exhausted: f.NewCounter(prometheus.CounterOpts{
			Name: ULIDsExhausted,
			Help: "Increment requests that hit the 80-bit randomness limit",
		}),
	}
}

func (p *PrometheusRecorder) IncCounter(name string, labels Labels) {
	p.AddCounter(name, 1, labels)
}

func (p *PrometheusRecorder) AddCounter(name string, value float64, labels Labels) {
	if p == nil {
		return
	}
	switch name {
	case HTTPRequests:
		method, route, status := sanitizeHTTPLabels(labels)
		p.requests.WithLabelValues(method, route, status).Add(value)
	case ULIDsIssued:
		source := labels["source"]
		if source == "" {
			source = labelUnknown
		}
		p.issued.WithLabelValues(source).Add(value)
	case ULIDsExhausted:
		p.exhausted.Add(value)
	}
}

func (p *PrometheusRecorder) ObserveHistogram(name string, value float64, labels Labels) {
	if p == nil || name != HTTPDuration {
		return
	}
	method, route, status := sanitizeHTTPLabels(labels)
	p.durations.WithLabelValues(method, route, status).Observe(value)
}

// Middleware instruments HTTP traffic using a provided recorder.
type Middleware struct {
	M MetricsRecorder
}

// New constructs a metrics middleware.
func New(m MetricsRecorder) *Middleware {
	if m == nil {
		m = NoopMetrics{}
	}
	return &Middleware{M: m}
}

// Handler wraps the next handler to record counters and duration. The
// route label is the chi pattern so ULID path values do not explode label
// cardinality.
func (mw *Middleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := &respWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(ww, r)

		labels := Labels{
			"method": r.Method,
			"route":  routePattern(r),
			"status": strconv.Itoa(ww.status),
		}
		mw.M.IncCounter(HTTPRequests, labels)
		mw.M.ObserveHistogram(HTTPDuration, time.Since(start).Seconds(), labels)
	})
}

func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return labelUnknown
}

type respWriter struct {
	http.ResponseWriter
	status int
}

func (w *respWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func sanitizeHTTPLabels(labels Labels) (method, route, status string) {
	method = labels["method"]
	if method == "" {
		method = "UNKNOWN"
	}
	route = labels["route"]
	if route == "" {
		route = labelUnknown
	}
	status = labels["status"]
	if status == "" {
		status = defaultStatusStr
	}
	return method, route, status
}

package requestlog

import (
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/aatuh/ulid-toolkit/ports"
)

// Middleware writes an access log line through ports.Logger.
type Middleware struct {
	Log   ports.Logger
	quiet map[string]bool
}

// New creates the middleware. Successful requests to a quiet path, such as
// health probes and metric scrapes, are logged at debug.
func New(log ports.Logger, quiet ...string) *Middleware {
	m := &Middleware{Log: log, quiet: make(map[string]bool, len(quiet))}
	for _, p := range quiet {
		m.quiet[p] = true
	}
	return m
}

// Handler logs one line per request. Server errors log at error level,
// client errors at warn. The route is the chi pattern, so ULID lookups
// group under /v1/ulids/{value}.
func (m *Middleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := &respWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(ww, r)

		kv := []any{
			"method", r.Method,
			"path", r.URL.Path,
			"route", route(r),
			"status", ww.status,
			"bytes", ww.bytes,
			"dur_ms", time.Since(start).Milliseconds(),
			"ip", clientIP(r),
			"ua", r.UserAgent(),
			"rid", requestID(r),
		}
		switch {
		case ww.status >= 500:
			m.Log.Error("http", kv...)
		case ww.status >= 400:
			m.Log.Warn("http", kv...)
		case m.quiet[r.URL.Path]:
			m.Log.Debug("http", kv...)
		default:
			m.Log.Info("http", kv...)
		}
	})
}

type respWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (w *respWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *respWriter) Write(b []byte) (int, error) {
	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func route(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		return rctx.RoutePattern()
	}
	return ""
}

func requestID(r *http.Request) string {
	if id := middleware.GetReqID(r.Context()); id != "" {
		return id
	}
	return r.Header.Get("X-Request-ID")
}

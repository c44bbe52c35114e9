package bootstrap

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/aatuh/ulid-toolkit/chi"
	"github.com/aatuh/ulid-toolkit/health"
	recoverx "github.com/aatuh/ulid-toolkit/httpx/recover"
	metricsmw "github.com/aatuh/ulid-toolkit/middleware/metrics"
	"github.com/aatuh/ulid-toolkit/middleware/requestlog"
	"github.com/aatuh/ulid-toolkit/ports"
	"github.com/aatuh/ulid-toolkit/specs"
)

// RouterOptions configures NewDefaultRouter.
type RouterOptions struct {
	Metrics     metricsmw.MetricsRecorder
	CORSOrigins []string
}

// NewDefaultRouter constructs a router with the default middleware stack.
func NewDefaultRouter(log ports.Logger, opts RouterOptions) ports.HTTPRouter {
	var r ports.HTTPRouter = chi.New()
	var mw ports.HTTPMiddleware = chi.NewMiddleware()

	// Core middlewares
	r.Use(mw.RequestID())
	r.Use(mw.RealIP())
	r.Use(recoverx.Middleware(log))

	// Standard middlewares
	r.Use(cors.Handler(corsOptions(opts.CORSOrigins)))
	r.Use(requestlog.New(log, specs.Livez, specs.Readyz, specs.Metrics).Handler)
	r.Use(metricsmw.New(opts.Metrics).Handler)

	return r
}

func corsOptions(origins []string) cors.Options {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-Id"},
		AllowCredentials: false,
		MaxAge:           300,
	}
}

// MountSystemEndpoints registers health and metrics endpoints. A nil
// gatherer serves the default Prometheus registry.
func MountSystemEndpoints(r ports.HTTPRouter, hm *health.Handler, g prometheus.Gatherer) {
	hm.RegisterRoutes(r)
	r.Get(specs.Metrics, metricsmw.PrometheusHandler(g).ServeHTTP)
}

// StartServer runs an HTTP server and performs graceful shutdown when the
// context is canceled.
func StartServer(ctx context.Context, addr string, handler http.Handler, log ports.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server starting", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		log.Info("http server shutting down", "addr", addr)
		shctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shctx)
	case err := <-errCh:
		return err
	}
}

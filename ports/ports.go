package ports

import (
	"context"
	"net/http"
	"time"

	"github.com/aatuh/ulid-toolkit/ulid"
)

// Logger is a tiny façade to avoid vendor lock-in.
type Logger interface {
	Debug(msg string, kv ...any)
	Info(msg string, kv ...any)
	Warn(msg string, kv ...any)
	Error(msg string, kv ...any)
}

// Clock is the wall clock ULIDs are stamped from. It satisfies ulid.Clock.
type Clock interface {
	Now() time.Time
}

// IDGen issues ULIDs. New is the text form of Next.
type IDGen interface {
	Next() (ulid.ULID, error)
	New() (string, error)
}

// Validator checks decoded request bodies.
type Validator interface {
	Validate(ctx context.Context, value any) error
	ValidateStruct(ctx context.Context, obj any) error
}

// HTTPRouter is the routing surface the service registers on.
type HTTPRouter interface {
	http.Handler
	Get(pattern string, h http.HandlerFunc)
	Post(pattern string, h http.HandlerFunc)
	Use(middlewares ...func(http.Handler) http.Handler)
}

// HTTPMiddleware exposes the router's request ID and real IP middleware.
type HTTPMiddleware interface {
	RequestID() func(http.Handler) http.Handler
	RealIP() func(http.Handler) http.Handler
}

// URLParamExtractor reads path parameters such as {value}.
type URLParamExtractor interface {
	URLParam(r *http.Request, key string) string
}

// HealthStatus is the outcome of a check. Ordered from best to worst.
type HealthStatus string

const (
	HealthStatusHealthy   HealthStatus = "healthy"
	HealthStatusDegraded  HealthStatus = "degraded"
	HealthStatusUnhealthy HealthStatus = "unhealthy"
)

// HealthResult is a single check's outcome, or the aggregate of several.
// Checks is only set on aggregates.
type HealthResult struct {
	Status    HealthStatus            `json:"status"`
	Message   string                  `json:"message,omitempty"`
	Timestamp time.Time               `json:"timestamp"`
	Duration  time.Duration           `json:"duration,omitempty"`
	Checks    map[string]HealthStatus `json:"checks,omitempty"`
}

// HealthChecker is one named probe, e.g. "entropy" or "clock".
type HealthChecker interface {
	Name() string
	Check(ctx context.Context) HealthResult
}

// HealthManager runs registered checkers for the liveness and readiness
// endpoints.
type HealthManager interface {
	RegisterChecker(checker HealthChecker)
	GetLiveness(ctx context.Context) HealthResult
	GetReadiness(ctx context.Context) HealthResult
}

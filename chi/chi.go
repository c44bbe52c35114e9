package chi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/aatuh/ulid-toolkit/httpx"
	"github.com/aatuh/ulid-toolkit/ports"
	"github.com/aatuh/ulid-toolkit/ulid"
)

// ChiRouter wraps chi.Mux to implement ports.HTTPRouter.
type ChiRouter struct {
	*chi.Mux
}

// New creates a chi router whose 404 and 405 answers are problem+json,
// like every other error the service returns.
func New() ports.HTTPRouter {
	mux := chi.NewRouter()
	mux.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteSimpleProblem(w, http.StatusNotFound, http.StatusText(http.StatusNotFound), "no route for "+r.URL.Path)
	})
	mux.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteSimpleProblem(w, http.StatusMethodNotAllowed, http.StatusText(http.StatusMethodNotAllowed), r.Method+" is not supported on "+r.URL.Path)
	})
	return &ChiRouter{Mux: mux}
}

// Middleware exposes chi's request ID and real IP middleware.
type Middleware struct{}

func NewMiddleware() ports.HTTPMiddleware {
	return &Middleware{}
}

func (m *Middleware) RequestID() func(http.Handler) http.Handler {
	return middleware.RequestID
}

func (m *Middleware) RealIP() func(http.Handler) http.Handler {
	return middleware.RealIP
}

// URLParamExtractor implements ports.URLParamExtractor over chi's route
// context.
type URLParamExtractor struct{}

func NewURLParamExtractor() *URLParamExtractor {
	return &URLParamExtractor{}
}

func (u *URLParamExtractor) URLParam(r *http.Request, key string) string {
	return chi.URLParam(r, key)
}

// ULIDParam decodes the path parameter key as a ULID text form.
func (u *URLParamExtractor) ULIDParam(r *http.Request, key string) (ulid.ULID, error) {
	return ulid.Parse(chi.URLParam(r, key))
}

var (
	_ ports.HTTPRouter        = (*ChiRouter)(nil)
	_ ports.URLParamExtractor = (*URLParamExtractor)(nil)
)

package recover

import (
	"net/http"

	"github.com/aatuh/ulid-toolkit/httpx"
	"github.com/aatuh/ulid-toolkit/ports"
)

// Middleware converts panics into RFC-7807 problem+json responses and logs
// them. Panic values are never sent to clients. An entropy source that
// fails panics, so this is where such faults surface.
func Middleware(log ports.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}
					log.Error("panic recovered", "method", r.Method, "path", r.URL.Path, "panic", rec)
					httpx.WriteProblem(w, http.StatusInternalServerError, httpx.Problem{
						Title:  http.StatusText(http.StatusInternalServerError),
						Detail: "internal server error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

package health

import (
	"net/http"

	"github.com/aatuh/ulid-toolkit/httpx"
	"github.com/aatuh/ulid-toolkit/ports"
	"github.com/aatuh/ulid-toolkit/specs"
)

// Handler provides HTTP handlers for health endpoints.
type Handler struct {
	manager ports.HealthManager
}

// NewHandler creates a new health handler.
func NewHandler(manager ports.HealthManager) *Handler {
	return &Handler{manager: manager}
}

// LivenessHandler handles liveness checks.
func (h *Handler) LivenessHandler(w http.ResponseWriter, r *http.Request) {
	writeResult(w, h.manager.GetLiveness(r.Context()))
}

// ReadinessHandler handles readiness checks.
func (h *Handler) ReadinessHandler(w http.ResponseWriter, r *http.Request) {
	writeResult(w, h.manager.GetReadiness(r.Context()))
}

// writeResult answers 503 only for unhealthy; degraded still serves
// traffic.
func writeResult(w http.ResponseWriter, result ports.HealthResult) {
	status := http.StatusOK
	if result.Status == ports.HealthStatusUnhealthy {
		status = http.StatusServiceUnavailable
	}
	w.Header().Set("Cache-Control", "no-store")
	httpx.WriteJSON(w, status, result)
}

// RegisterRoutes registers the health endpoints on the given router.
func (h *Handler) RegisterRoutes(router ports.HTTPRouter) {
	router.Get(specs.Livez, h.LivenessHandler)
	router.Get(specs.Readyz, h.ReadinessHandler)
}

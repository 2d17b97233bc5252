package handlers

import (
	"errors"
	"net/http"

	"github.com/jsamuelsen11/projectboard/internal/adapters/http/dto"
	"github.com/jsamuelsen11/projectboard/internal/ports"
)

// HealthHandler serves the probe endpoints. The board itself lives in memory
// and is always ready; the registry holds the optional snapshot sinks.
type HealthHandler struct {
	registry ports.HealthRegistry
}

// NewHealthHandler creates a HealthHandler over the given registry.
func NewHealthHandler(registry ports.HealthRegistry) *HealthHandler {
	return &HealthHandler{registry: registry}
}

// Liveness handles GET /health/live.
func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, dto.HealthResponse{Status: dto.HealthOK})
}

// Readiness handles GET /health/ready. Sinks that report ports.ErrDegraded
// downgrade the status to "degraded" but keep 200; any other failure is 503.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	resp := dto.HealthResponse{Status: dto.HealthReady, Checks: map[string]string{}}
	code := http.StatusOK

	for name, err := range h.registry.CheckAll(r.Context()) {
		switch {
		case err == nil:
			resp.Checks[name] = dto.HealthOK
		case errors.Is(err, ports.ErrDegraded):
			resp.Checks[name] = err.Error()
			if code == http.StatusOK {
				resp.Status = dto.HealthDegraded
			}
		default:
			resp.Checks[name] = err.Error()
			resp.Status = dto.HealthNotReady
			code = http.StatusServiceUnavailable
		}
	}

	writeJSON(w, r, code, resp)
}

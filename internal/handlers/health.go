package handlers

import (
	"net/http"

	"github.com/crucial707/asset-registry/internal/registry"
)

// HealthHandler serves liveness and readiness checks.
type HealthHandler struct {
	Registry *registry.Registry
}

// Health always reports ok while the process serves requests.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Ready reports the registry size. The registry lives in memory, so it is ready once constructed.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, map[string]any{
		"status": "ready",
		"assets": h.Registry.Len(),
	})
}

package handlers

import (
	"net/http"

	"github.com/crucial707/asset-registry/internal/registry"
)

// AuditHandler serves the in-memory audit trail.
type AuditHandler struct {
	Log *registry.AuditLog
}

// ListAudit returns retained audit entries, newest first.
func (h *AuditHandler) ListAudit(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, h.Log.Entries())
}

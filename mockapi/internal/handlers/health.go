package handlers

import (
	"net/http"
	"time"

	"github.com/dataflow-systems/integration-stack/common/httputil"
)

// Health serves GET /health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status": "healthy",
		"services": map[string]string{
			"customers": "available",
			"products":  "available",
			"analytics": "available",
		},
		"timestamp": h.now().Format(time.RFC3339),
	})
}

// Home serves GET /.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		httputil.WriteError(w, http.StatusNotFound, "not found")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]string{
		"message":   "Mock APIs are running",
		"timestamp": h.now().Format(time.RFC3339),
	})
}

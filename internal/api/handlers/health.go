package handlers

import (
	"net/http"
)

// HealthHandler provides a minimal liveness check, reporting how many
// locations the loaded matrix covers.
type HealthHandler struct {
	Locations int
}

func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	res := map[string]any{
		"status":    "ok",
		"locations": h.Locations,
	}
	writeJSON(w, r, http.StatusOK, res)
}

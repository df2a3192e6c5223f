package handlers

import (
	"log"
	"net/http"
	"strings"

	"fleet-dispatch-sim/internal/api/dto"
	"fleet-dispatch-sim/internal/ports"
)

// DecisionHandler exposes read-only access to persisted decision logs.
type DecisionHandler struct {
	Store ports.DecisionStore
}

func (h *DecisionHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	if h.Store == nil {
		writeError(w, r, http.StatusNotFound, "decision persistence is not configured")
		return
	}

	runID := strings.TrimSpace(r.URL.Query().Get("run_id"))
	if runID == "" {
		writeError(w, r, http.StatusBadRequest, "run_id is required")
		return
	}

	records, err := h.Store.ListByRun(r.Context(), runID)
	if err != nil {
		log.Printf("list decisions failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListDecisionsResponse{
		RunID:     runID,
		Decisions: make([]dto.DecisionResponse, 0, len(records)),
	}
	for _, rec := range records {
		res.Decisions = append(res.Decisions, toDecisionResponse(rec.Decision))
	}

	writeJSON(w, r, http.StatusOK, res)
}

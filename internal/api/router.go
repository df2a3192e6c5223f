package api

import (
	"net/http"

	"fleet-dispatch-sim/internal/adapters/matrix"
	"fleet-dispatch-sim/internal/api/handlers"
	"fleet-dispatch-sim/internal/ports"
)

// NewRouter wires HTTP handlers with their dependencies and returns an
// http.Handler. This is the API composition root; handlers stay unaware
// of concrete adapters behind the ports.
func NewRouter(oracle *matrix.Oracle, store ports.DecisionStore) http.Handler {
	mux := http.NewServeMux()

	healthHandler := &handlers.HealthHandler{Locations: len(oracle.Locations())}
	simHandler := &handlers.SimulationHandler{Oracle: oracle, Store: store}
	decisionHandler := &handlers.DecisionHandler{Store: store}

	mux.HandleFunc("/health", healthHandler.Check)
	mux.HandleFunc("/simulations", simHandler.Run)
	mux.HandleFunc("/decisions", decisionHandler.List)

	return loggingMiddleware(mux)
}

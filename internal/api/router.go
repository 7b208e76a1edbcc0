package api

import (
	"net/http"

	"stopline-planner-service/internal/api/handlers"
	"stopline-planner-service/internal/ports"
	"stopline-planner-service/internal/services"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(planner *services.Planner, recorder ports.StopEventRecorder, clock ports.Clock) http.Handler {
	mux := http.NewServeMux()

	cycleHandler := &handlers.CycleHandler{Planner: planner, Clock: clock}
	stopLineHandler := &handlers.StopLineHandler{Planner: planner}
	eventHandler := &handlers.EventHandler{Recorder: recorder}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/cycles", cycleHandler.Run)
	mux.HandleFunc("/stoplines", stopLineHandler.List)
	mux.HandleFunc("/events", eventHandler.List)

	return loggingMiddleware(mux)
}

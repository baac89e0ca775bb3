package routes

import (
	"mvp-orchestrator/api/rest/handlers"

	"github.com/gorilla/mux"
)

// SetupRoutes configures all API routes
func SetupRoutes(r *mux.Router, statuses handlers.StatusReader) {
	statusHandler := handlers.NewStatusHandler(statuses)

	r.Use(RequestID)

	api := r.PathPrefix("/v1").Subrouter()
	api.HandleFunc("/status/{projectId}", statusHandler.GetStatus).Methods("GET")
}

package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"mvp-orchestrator/core/models"
	"mvp-orchestrator/core/repository"
	"mvp-orchestrator/logging"

	"github.com/gorilla/mux"
)

// StatusReader reads denormalized status records
type StatusReader interface {
	Get(ctx context.Context, projectID string) (*models.StatusRecord, error)
}

// StatusHandler handles status-related HTTP requests
type StatusHandler struct {
	statuses StatusReader
}

// NewStatusHandler creates a new status handler
func NewStatusHandler(statuses StatusReader) *StatusHandler {
	return &StatusHandler{statuses: statuses}
}

// GetStatus handles GET /v1/status/{projectId}
func (h *StatusHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	projectID := vars["projectId"]

	rec, err := h.statuses.Get(r.Context(), projectID)
	if errors.Is(err, repository.ErrStatusNotFound) {
		http.Error(w, "Status not found", http.StatusNotFound)
		return
	}
	if err != nil {
		logging.Error(err, "reading status record failed", "projectId", projectID)
		http.Error(w, "Failed to read status", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(rec)
}

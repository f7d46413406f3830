package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"campuscraft/internal/service"
	"campuscraft/internal/storage"
)

// AssignmentService is the assignment store as seen by the HTTP layer.
type AssignmentService interface {
	Views() []service.AssignmentView
	Create(ctx context.Context, in service.AssignmentInput) (storage.Assignment, error)
	Update(ctx context.Context, id string, patch service.AssignmentPatch) (storage.Assignment, error)
	ToggleStatus(ctx context.Context, id string) (storage.Assignment, error)
	Delete(ctx context.Context, id string) error
	Stats() service.AssignmentStats
}

// AssignmentHandler handles HTTP requests for the assignment tracker.
type AssignmentHandler struct {
	assignments AssignmentService
}

// NewAssignmentHandler creates a new AssignmentHandler.
func NewAssignmentHandler(assignments AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{assignments: assignments}
}

// List returns every assignment with its deadline status, newest first.
func (h *AssignmentHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r.Context(), http.StatusOK, h.assignments.Views())
}

// Create adds an assignment.
func (h *AssignmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in service.AssignmentInput
	if !decodeJSON(w, r, &in) {
		return
	}
	a, err := h.assignments.Create(r.Context(), in)
	writeMutation(w, r.Context(), http.StatusCreated, a, err, "Failed to create assignment")
}

// Update applies a partial update.
func (h *AssignmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	var patch service.AssignmentPatch
	if !decodeJSON(w, r, &patch) {
		return
	}
	a, err := h.assignments.Update(r.Context(), chi.URLParam(r, "id"), patch)
	writeMutation(w, r.Context(), http.StatusOK, a, err, "Failed to update assignment")
}

// Toggle flips the assignment between pending and completed.
func (h *AssignmentHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	a, err := h.assignments.ToggleStatus(r.Context(), chi.URLParam(r, "id"))
	writeMutation(w, r.Context(), http.StatusOK, a, err, "Failed to update assignment")
}

// Delete removes an assignment.
func (h *AssignmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.assignments.Delete(r.Context(), chi.URLParam(r, "id"))
	writeDeleted(w, r.Context(), err, "Failed to delete assignment")
}

// Stats returns the tracker counters.
func (h *AssignmentHandler) Stats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r.Context(), http.StatusOK, h.assignments.Stats())
}

package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"campuscraft/internal/search"
	"campuscraft/internal/service"
	"campuscraft/internal/storage"
)

// ResourceService is the resource store as seen by the HTTP layer.
type ResourceService interface {
	Search(q search.Query) []storage.Resource
	Create(ctx context.Context, in service.ResourceInput) (storage.Resource, error)
	Update(ctx context.Context, id string, patch service.ResourcePatch) (storage.Resource, error)
	Rate(ctx context.Context, id string, rating int) (storage.Resource, error)
	Delete(ctx context.Context, id string) error
	Subjects() []string
	Types() []string
	Stats() service.ResourceStats
}

// ResourceHandler handles HTTP requests for study resources.
type ResourceHandler struct {
	resources ResourceService
}

// NewResourceHandler creates a new ResourceHandler.
func NewResourceHandler(resources ResourceService) *ResourceHandler {
	return &ResourceHandler{resources: resources}
}

// RatingRequest is the body of a rating update.
type RatingRequest struct {
	Rating int `json:"rating"`
}

// List returns the resources matching the q, subject and type parameters.
func (h *ResourceHandler) List(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	q := search.Query{
		Term:    params.Get("q"),
		Subject: params.Get("subject"),
		Type:    params.Get("type"),
	}
	writeJSON(w, r.Context(), http.StatusOK, h.resources.Search(q))
}

// Create adds a resource.
func (h *ResourceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in service.ResourceInput
	if !decodeJSON(w, r, &in) {
		return
	}
	res, err := h.resources.Create(r.Context(), in)
	writeMutation(w, r.Context(), http.StatusCreated, res, err, "Failed to add resource")
}

// Update applies a partial update.
func (h *ResourceHandler) Update(w http.ResponseWriter, r *http.Request) {
	var patch service.ResourcePatch
	if !decodeJSON(w, r, &patch) {
		return
	}
	res, err := h.resources.Update(r.Context(), chi.URLParam(r, "id"), patch)
	writeMutation(w, r.Context(), http.StatusOK, res, err, "Failed to update resource")
}

// Rate sets a resource's 1-5 rating.
func (h *ResourceHandler) Rate(w http.ResponseWriter, r *http.Request) {
	var req RatingRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	res, err := h.resources.Rate(r.Context(), chi.URLParam(r, "id"), req.Rating)
	writeMutation(w, r.Context(), http.StatusOK, res, err, "Failed to rate resource")
}

// Delete removes a resource.
func (h *ResourceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.resources.Delete(r.Context(), chi.URLParam(r, "id"))
	writeDeleted(w, r.Context(), err, "Failed to delete resource")
}

// Subjects returns the subject filter options, All first.
func (h *ResourceHandler) Subjects(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r.Context(), http.StatusOK, h.resources.Subjects())
}

// Types returns the type filter options.
func (h *ResourceHandler) Types(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r.Context(), http.StatusOK, h.resources.Types())
}

// Stats returns the library counters.
func (h *ResourceHandler) Stats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r.Context(), http.StatusOK, h.resources.Stats())
}

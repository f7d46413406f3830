package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"campuscraft/internal/contextutil"
	"campuscraft/internal/media"
	"campuscraft/internal/service"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// MutationResponse wraps the entity returned by a create or update.
// Warning is set when the change was applied but could not be saved.
type MutationResponse struct {
	Data    any    `json:"data"`
	Warning string `json:"warning,omitempty"`
}

// StatusResponse is returned by operations with no entity to report.
type StatusResponse struct {
	Status  string `json:"status"`
	Warning string `json:"warning,omitempty"`
}

// writeJSON encodes v with the given status.
func writeJSON(w http.ResponseWriter, ctx context.Context, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to encode response", "error", err)
	}
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(ErrorResponse{
		Error: message,
	})
}

// decodeJSON reads the request body into v, answering 400 on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		ctx := r.Context()
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

// writeMutation answers a create or update. A persistence warning keeps the success status.
func writeMutation(w http.ResponseWriter, ctx context.Context, statusCode int, data any, err error, defaultMsg string) {
	resp := MutationResponse{Data: data}
	if err != nil {
		if !service.IsPersistenceWarning(err) {
			handleServiceError(w, ctx, err, defaultMsg)
			return
		}
		resp.Warning = err.Error()
	}
	writeJSON(w, ctx, statusCode, resp)
}

// writeDeleted answers a delete.
func writeDeleted(w http.ResponseWriter, ctx context.Context, err error, defaultMsg string) {
	resp := StatusResponse{Status: "deleted"}
	if err != nil {
		if !service.IsPersistenceWarning(err) {
			handleServiceError(w, ctx, err, defaultMsg)
			return
		}
		resp.Warning = err.Error()
	}
	writeJSON(w, ctx, http.StatusOK, resp)
}

// handleServiceError maps service errors to appropriate HTTP status codes and responses.
func handleServiceError(w http.ResponseWriter, ctx context.Context, err error, defaultMsg string) {
	logger := contextutil.LoggerFromContext(ctx)

	var validationErr *service.ValidationError
	if errors.As(err, &validationErr) {
		logger.WarnContext(ctx, "validation failed", "error", err)
		fields := make(map[string]string, len(validationErr.Fields))
		for _, f := range validationErr.Fields {
			fields[f.Field] = f.Message
		}
		writeJSON(w, ctx, http.StatusBadRequest, ErrorResponse{Error: "Validation failed", Fields: fields})
		return
	}

	if errors.Is(err, service.ErrInvalidInput) {
		writeError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	if errors.Is(err, service.ErrNotFound) {
		logger.WarnContext(ctx, "entity not found", "error", err)
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	if errors.Is(err, media.ErrTooLarge) {
		writeError(w, http.StatusRequestEntityTooLarge, "Payload too large")
		return
	}

	var accessErr *media.AccessError
	if errors.As(err, &accessErr) || errors.Is(err, media.ErrEmpty) {
		logger.WarnContext(ctx, "media unavailable", "error", err)
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	logger.ErrorContext(ctx, "service error", "error", err)
	writeError(w, http.StatusInternalServerError, defaultMsg)
}

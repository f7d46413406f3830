package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"campuscraft/internal/contextutil"
	"campuscraft/internal/export"
	"campuscraft/internal/gpa"
	"campuscraft/internal/service"
	"campuscraft/internal/storage"
)

// SubjectService is the subject store as seen by the HTTP layer.
type SubjectService interface {
	List() []storage.Subject
	Create(ctx context.Context, in service.SubjectInput) (storage.Subject, error)
	Update(ctx context.Context, id string, patch service.SubjectPatch) (storage.Subject, error)
	Delete(ctx context.Context, id string) error
	Stats() service.SubjectStats
}

// SubjectHandler handles HTTP requests for the CGPA calculator.
type SubjectHandler struct {
	subjects       SubjectService
	maxUploadBytes int64
}

// NewSubjectHandler creates a new SubjectHandler.
func NewSubjectHandler(subjects SubjectService, maxUploadBytes int64) *SubjectHandler {
	return &SubjectHandler{subjects: subjects, maxUploadBytes: maxUploadBytes}
}

// CGPAResponse is the CGPA summary.
type CGPAResponse struct {
	CGPA         float64    `json:"cgpa"`
	Display      string     `json:"display"`
	Status       gpa.Status `json:"status"`
	TotalCredits int        `json:"totalCredits"`
	SubjectCount int        `json:"subjectCount"`
}

// ImportRowError reports one spreadsheet row that was not imported.
type ImportRowError struct {
	Row    int               `json:"row"`
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// ImportResponse summarizes a spreadsheet import.
type ImportResponse struct {
	Imported int              `json:"imported"`
	Skipped  []ImportRowError `json:"skipped,omitempty"`
	Warning  string           `json:"warning,omitempty"`
}

// List returns the subjects in insertion order.
func (h *SubjectHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r.Context(), http.StatusOK, h.subjects.List())
}

// Create adds a subject.
func (h *SubjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in service.SubjectInput
	if !decodeJSON(w, r, &in) {
		return
	}
	s, err := h.subjects.Create(r.Context(), in)
	writeMutation(w, r.Context(), http.StatusCreated, s, err, "Failed to add subject")
}

// Replace overwrites a subject's name, credits and grade.
func (h *SubjectHandler) Replace(w http.ResponseWriter, r *http.Request) {
	var in service.SubjectInput
	if !decodeJSON(w, r, &in) {
		return
	}
	s, err := h.subjects.Update(r.Context(), chi.URLParam(r, "id"), service.SubjectPatch{
		Name:    &in.Name,
		Credits: &in.Credits,
		Grade:   &in.Grade,
	})
	writeMutation(w, r.Context(), http.StatusOK, s, err, "Failed to update subject")
}

// Delete removes a subject.
func (h *SubjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.subjects.Delete(r.Context(), chi.URLParam(r, "id"))
	writeDeleted(w, r.Context(), err, "Failed to delete subject")
}

// CGPA returns the current CGPA and its classification.
func (h *SubjectHandler) CGPA(w http.ResponseWriter, r *http.Request) {
	st := h.subjects.Stats()
	writeJSON(w, r.Context(), http.StatusOK, CGPAResponse{
		CGPA:         st.CGPA.Rounded(),
		Display:      st.CGPA.Display(),
		Status:       st.CGPA.Status,
		TotalCredits: st.TotalCredits,
		SubjectCount: st.Count,
	})
}

// Grades returns the grade table.
func (h *SubjectHandler) Grades(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r.Context(), http.StatusOK, gpa.Grades())
}

// Import adds every valid row of an uploaded .xlsx file (name, credits, grade).
func (h *SubjectHandler) Import(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	file, _, err := r.FormFile("file")
	if err != nil {
		logger.WarnContext(ctx, "missing import file", "error", err)
		writeError(w, http.StatusBadRequest, "Upload an .xlsx file in the \"file\" field")
		return
	}
	defer file.Close()

	rows, err := export.ReadSubjects(file)
	if err != nil {
		logger.WarnContext(ctx, "unreadable import file", "error", err)
		writeError(w, http.StatusBadRequest, "File is not a readable .xlsx workbook")
		return
	}

	var resp ImportResponse
	for _, row := range rows {
		_, err := h.subjects.Create(ctx, row.Input)
		if err == nil {
			resp.Imported++
			continue
		}
		if service.IsPersistenceWarning(err) {
			resp.Imported++
			resp.Warning = err.Error()
			continue
		}

		skip := ImportRowError{Row: row.Row, Error: err.Error()}
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			skip.Fields = make(map[string]string, len(verr.Fields))
			for _, f := range verr.Fields {
				skip.Fields[f.Field] = f.Message
			}
			skip.Error = fmt.Sprintf("row %d is invalid", row.Row)
		}
		resp.Skipped = append(resp.Skipped, skip)
	}

	logger.InfoContext(ctx, "subjects imported", "imported", resp.Imported, "skipped", len(resp.Skipped))
	writeJSON(w, ctx, http.StatusOK, resp)
}

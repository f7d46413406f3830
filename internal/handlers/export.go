package handlers

import (
	"fmt"
	"net/http"
	"time"

	"campuscraft/internal/contextutil"
	"campuscraft/internal/export"
	"campuscraft/internal/gpa"
	"campuscraft/internal/service"
)

// ExportHandler streams every collection as an .xlsx workbook.
type ExportHandler struct {
	stores *service.Stores
	now    func() time.Time
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(stores *service.Stores) *ExportHandler {
	return &ExportHandler{stores: stores, now: time.Now}
}

// ServeHTTP writes the workbook as an attachment.
func (h *ExportHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	subjects := h.stores.Subjects.List()
	f, err := export.Workbook(export.Snapshot{
		Assignments: h.stores.Assignments.List(),
		Subjects:    subjects,
		Notes:       h.stores.Notes.List(),
		Resources:   h.stores.Resources.List(),
		CGPA:        gpa.Compute(subjects),
	})
	if err != nil {
		logger.ErrorContext(ctx, "failed to build export", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to build export")
		return
	}
	defer f.Close()

	name := export.FileName(h.now())
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	if _, err := f.WriteTo(w); err != nil {
		logger.ErrorContext(ctx, "failed to write export", "error", err)
		return
	}
	logger.InfoContext(ctx, "export written", "file", name)
}

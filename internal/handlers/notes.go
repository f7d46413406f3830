package handlers

import (
	"context"
	"errors"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"campuscraft/internal/contextutil"
	"campuscraft/internal/media"
	"campuscraft/internal/service"
	"campuscraft/internal/storage"
)

// NoteService is the note store as seen by the HTTP layer.
type NoteService interface {
	Get(id string) (storage.Note, error)
	Search(term string) []storage.Note
	CreateText(ctx context.Context, in service.NoteInput) (storage.Note, error)
	CreateAudio(ctx context.Context, payload []byte) (storage.Note, error)
	CreateImage(ctx context.Context, fileName string, payload []byte) (storage.Note, error)
	Update(ctx context.Context, id string, patch service.NotePatch) (storage.Note, error)
	Delete(ctx context.Context, id string) error
	Stats() service.NoteStats
}

// NotesHandler handles HTTP requests for quick notes.
type NotesHandler struct {
	notes          NoteService
	maxUploadBytes int64
}

// NewNotesHandler creates a new NotesHandler.
func NewNotesHandler(notes NoteService, maxUploadBytes int64) *NotesHandler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = media.DefaultMaxBytes
	}
	return &NotesHandler{notes: notes, maxUploadBytes: maxUploadBytes}
}

// noteRequest accepts tags either as a list or as a comma-separated string.
type noteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Tags    any    `json:"tags"`
}

func (req noteRequest) tags() []string {
	switch v := req.Tags.(type) {
	case string:
		return service.ParseTags(v)
	case []any:
		out := make([]string, 0, len(v))
		for _, t := range v {
			if s, ok := t.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// List returns the notes matching the optional q parameter, newest first.
func (h *NotesHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r.Context(), http.StatusOK, h.notes.Search(r.URL.Query().Get("q")))
}

// Create adds a text note.
func (h *NotesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req noteRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	n, err := h.notes.CreateText(r.Context(), service.NoteInput{
		Title:   req.Title,
		Content: req.Content,
		Tags:    req.tags(),
	})
	writeMutation(w, r.Context(), http.StatusCreated, n, err, "Failed to create note")
}

// CreateAudio stores a recording sent as the raw body or as a multipart "file" field.
func (h *NotesHandler) CreateAudio(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	payload, _, err := h.capture(w, r)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to read recording")
		return
	}
	n, err := h.notes.CreateAudio(ctx, payload)
	writeMutation(w, ctx, http.StatusCreated, n, err, "Failed to create audio note")
}

// CreateImage stores an image sent as a multipart "file" field.
func (h *NotesHandler) CreateImage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if !isMultipart(r) {
		writeError(w, http.StatusBadRequest, "Upload the image in the \"file\" field of a multipart form")
		return
	}
	payload, name, err := h.capture(w, r)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to read image")
		return
	}
	n, err := h.notes.CreateImage(ctx, name, payload)
	writeMutation(w, ctx, http.StatusCreated, n, err, "Failed to create image note")
}

// capture reads an upload through a media session so the source is always released.
func (h *NotesHandler) capture(w http.ResponseWriter, r *http.Request) ([]byte, string, error) {
	logger := contextutil.LoggerFromContext(r.Context())
	session := media.NewSession(h.maxUploadBytes)
	var name string

	err := session.Start(func() (io.ReadCloser, error) {
		if !isMultipart(r) {
			return r.Body, nil
		}
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes+1<<20)
		file, header, err := r.FormFile("file")
		if err != nil {
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				return nil, media.ErrTooLarge
			}
			return nil, err
		}
		name = header.Filename
		return file, nil
	})
	if err != nil {
		if errors.Is(err, media.ErrTooLarge) {
			return nil, "", media.ErrTooLarge
		}
		logger.WarnContext(r.Context(), "upload could not be opened", "error", err)
		return nil, "", err
	}

	payload, err := session.Finish()
	if err != nil {
		return nil, "", err
	}
	return payload, name, nil
}

func isMultipart(r *http.Request) bool {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && strings.HasPrefix(mt, "multipart/")
}

// Update edits a text note.
func (h *NotesHandler) Update(w http.ResponseWriter, r *http.Request) {
	var patch service.NotePatch
	if !decodeJSON(w, r, &patch) {
		return
	}
	n, err := h.notes.Update(r.Context(), chi.URLParam(r, "id"), patch)
	writeMutation(w, r.Context(), http.StatusOK, n, err, "Failed to update note")
}

// Delete removes a note.
func (h *NotesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.notes.Delete(r.Context(), chi.URLParam(r, "id"))
	writeDeleted(w, r.Context(), err, "Failed to delete note")
}

// Stats returns per-type note counts.
func (h *NotesHandler) Stats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r.Context(), http.StatusOK, h.notes.Stats())
}

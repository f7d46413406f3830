package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"

	"campuscraft/internal/contextutil"
	"campuscraft/internal/service"
	"campuscraft/internal/storage"
)

// NoteReader looks up a single note.
type NoteReader interface {
	Get(id string) (storage.Note, error)
}

// NoteHandler serves a note as a rendered HTML page.
type NoteHandler struct {
	notes    NoteReader
	parser   goldmark.Markdown
	template *template.Template
}

// notePageData holds template data for rendered note pages.
type notePageData struct {
	Title    string
	Type     storage.NoteType
	Created  string
	Tags     []string
	Content  template.HTML
	AudioURL template.URL
	ImageURL template.URL
}

// NewNoteHandler creates a new handler for note pages.
func NewNoteHandler(notes NoteReader) *NoteHandler {
	tmpl := template.Must(template.New("note").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{.Title}} | Campus Craft</title>
  <style>
    body {
      font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', sans-serif;
      margin: 0 auto;
      padding: 2rem;
      max-width: 820px;
      line-height: 1.7;
      background: #f8fafc;
      color: #1e293b;
    }
    header {
      margin-bottom: 1.5rem;
      border-bottom: 1px solid #e2e8f0;
      padding-bottom: 1rem;
    }
    h1 {
      margin: 0;
      font-size: 1.8rem;
    }
    article {
      background: #fff;
      border: 1px solid #e2e8f0;
      border-radius: 12px;
      padding: 1.5rem 2rem;
    }
    pre {
      background: #f1f5f9;
      padding: 1rem;
      overflow-x: auto;
      border-radius: 8px;
    }
    code {
      font-family: 'SFMono-Regular', Consolas, 'Liberation Mono', Menlo, monospace;
    }
    img {
      max-width: 100%;
      border-radius: 8px;
    }
    .meta {
      color: #64748b;
      font-size: 0.9rem;
    }
    .tag {
      display: inline-block;
      background: #e0e7ff;
      color: #3730a3;
      border-radius: 999px;
      padding: 0 0.6rem;
      margin-right: 0.3rem;
      font-size: 0.8rem;
    }
  </style>
</head>
<body>
  <header>
    <h1>{{.Title}}</h1>
    <p class="meta">{{.Type}} note &middot; {{.Created}}</p>
    {{range .Tags}}<span class="tag">{{.}}</span>{{end}}
  </header>
  <article>
    {{if .AudioURL}}<audio controls src="{{.AudioURL}}"></audio>{{end}}
    {{if .ImageURL}}<img src="{{.ImageURL}}" alt="{{.Title}}">{{end}}
    {{.Content}}
  </article>
</body>
</html>`))

	return &NoteHandler{
		notes: notes,
		// Raw HTML in note content is not rendered.
		parser: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				extension.Typographer,
			),
			goldmark.WithParserOptions(
				parser.WithAutoHeadingID(),
			),
		),
		template: tmpl,
	}
}

// ServeHTTP renders the requested note as HTML.
func (h *NoteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		http.Error(w, "note id is required", http.StatusBadRequest)
		return
	}

	note, err := h.notes.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			http.Error(w, "note not found", http.StatusNotFound)
			return
		}
		logger.ErrorContext(ctx, "failed to load note", "id", id, "error", err)
		http.Error(w, "failed to load note", http.StatusInternalServerError)
		return
	}

	htmlContent, err := h.renderMarkdown([]byte(note.Content))
	if err != nil {
		logger.ErrorContext(ctx, "failed to render markdown", "id", id, "error", err)
		http.Error(w, "failed to render note", http.StatusInternalServerError)
		return
	}

	pageData := notePageData{
		Title:   note.Title,
		Type:    note.Type,
		Created: note.CreatedAt.Format(time.RFC1123),
		Tags:    note.Tags,
		Content: template.HTML(htmlContent),
	}
	// Media URLs are data URLs built by the note store, never user-supplied links.
	if strings.HasPrefix(note.AudioURL, "data:audio/") {
		pageData.AudioURL = template.URL(note.AudioURL)
	}
	if strings.HasPrefix(note.ImageURL, "data:image/") {
		pageData.ImageURL = template.URL(note.ImageURL)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.template.Execute(w, pageData); err != nil {
		logger.ErrorContext(ctx, "failed to execute note template", "id", id, "error", err)
		http.Error(w, "failed to render note", http.StatusInternalServerError)
		return
	}
}

func (h *NoteHandler) renderMarkdown(content []byte) (string, error) {
	var buf bytes.Buffer
	if err := h.parser.Convert(content, &buf); err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}
	return buf.String(), nil
}

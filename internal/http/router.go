package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"campuscraft/internal/handlers"
	"campuscraft/internal/service"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	Stores         *service.Stores
	Storage        handlers.Pinger
	Backend        string
	MaxUploadBytes int64
	IndexHTML      string
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(LoggerMiddleware)
	r.Use(RequestLogger)
	r.Use(CORS)

	assignments := handlers.NewAssignmentHandler(deps.Stores.Assignments)
	subjects := handlers.NewSubjectHandler(deps.Stores.Subjects, deps.MaxUploadBytes)
	notes := handlers.NewNotesHandler(deps.Stores.Notes, deps.MaxUploadBytes)
	resources := handlers.NewResourceHandler(deps.Stores.Resources)

	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodGet, "/health", handlers.NewHealthHandler(deps.Storage, deps.Backend))
		r.Method(http.MethodGet, "/export", handlers.NewExportHandler(deps.Stores))

		r.Route("/assignments", func(r chi.Router) {
			r.Get("/", assignments.List)
			r.Post("/", assignments.Create)
			r.Get("/stats", assignments.Stats)
			r.Patch("/{id}", assignments.Update)
			r.Delete("/{id}", assignments.Delete)
			r.Post("/{id}/toggle", assignments.Toggle)
		})

		r.Route("/subjects", func(r chi.Router) {
			r.Get("/", subjects.List)
			r.Post("/", subjects.Create)
			r.Get("/cgpa", subjects.CGPA)
			r.Get("/grades", subjects.Grades)
			r.Post("/import", subjects.Import)
			r.Put("/{id}", subjects.Replace)
			r.Delete("/{id}", subjects.Delete)
		})

		r.Route("/notes", func(r chi.Router) {
			r.Get("/", notes.List)
			r.Post("/", notes.Create)
			r.Post("/audio", notes.CreateAudio)
			r.Post("/image", notes.CreateImage)
			r.Get("/stats", notes.Stats)
			r.Patch("/{id}", notes.Update)
			r.Delete("/{id}", notes.Delete)
		})

		r.Route("/resources", func(r chi.Router) {
			r.Get("/", resources.List)
			r.Post("/", resources.Create)
			r.Get("/stats", resources.Stats)
			r.Get("/subjects", resources.Subjects)
			r.Get("/types", resources.Types)
			r.Patch("/{id}", resources.Update)
			r.Delete("/{id}", resources.Delete)
			r.Post("/{id}/rating", resources.Rate)
		})
	})

	r.Method(http.MethodGet, "/notes/{id}", handlers.NewNoteHandler(deps.Stores.Notes))

	// Serve HTML page at root
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(deps.IndexHTML))
	})

	return r
}

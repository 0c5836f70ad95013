package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/starford/notepad/internal/noteservice"
)

// RouterConfig holds what the API router needs besides the service.
type RouterConfig struct {
	// Token enables bearer auth on every route when non-empty.
	Token string
	// Events is mounted at GET /events when set.
	Events    http.Handler
	AboutText string
}

// NewRouter returns the /api sub-router.
func NewRouter(svc *noteservice.Service, cfg RouterConfig) chi.Router {
	h := NewHandler(svc, cfg.AboutText)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(cfg.Token != "", cfg.Token))

	r.Route("/notes", func(r chi.Router) {
		r.Get("/", h.ListNotes)
		r.Post("/", h.CreateNote)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.GetNote)
			r.Delete("/", h.DeleteNote)
		})
	})
	r.Get("/about", h.About)

	if cfg.Events != nil {
		r.Method(http.MethodGet, "/events", cfg.Events)
	}
	return r
}

package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mgierok/guitar-specs2/frontend/internal/logger"
)

// NewRouter mounts the page handlers behind the request middleware chain.
func NewRouter(h *Handler, log logger.Logger) http.Handler {
	router := chi.NewRouter()
	router.Use(RequestID)
	router.Use(RequestLogger(log))
	router.Use(h.Recoverer)

	router.Get("/", h.Home)
	router.Get("/guitars", h.Guitars)
	router.Get("/guitars/", h.NotFound)
	router.Get("/guitars/{slug}", h.Guitar)
	router.Get("/compare", h.Compare)
	router.Get("/sitemap.xml", h.Sitemap)
	router.Get("/robots.txt", h.Robots)
	router.Get("/healthz", h.Health)
	router.NotFound(h.NotFound)

	return router
}

package handlers

import (
	"github.com/go-chi/chi"
)

func (h *Handler) SetRoutes(r *chi.Mux) {
	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.HealthHandler)
		r.Get("/status", h.StatusHandler)

		r.Route("/cards", func(r chi.Router) {
			r.Get("/", h.ListCardsHandler)
			r.Post("/", h.CreateCardHandler)
			r.Get("/{id}", h.GetCardHandler)
			r.Get("/{id}/full", h.GetCardFullHandler)
			r.Patch("/{id}", h.PatchCardHandler)
		})

		r.Post("/ingest/{producer}", h.IngestHandler)

		r.Route("/tasks", func(r chi.Router) {
			r.Get("/", h.ListTasksHandler)
			r.Patch("/{id}", h.PatchTaskHandler)
		})
	})
}

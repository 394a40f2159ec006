package wire

import (
	"travel-agency/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireDestination(r chi.Router, destinationHandler *adaptor.DestinationHandler, guard guards) {
	r.Route("/api/destinations", func(r chi.Router) {
		// ==================== PUBLIC ROUTES ====================
		r.Get("/", destinationHandler.GetAll)
		r.Get("/latest", destinationHandler.GetLatest)
		r.Get("/special/latest", destinationHandler.GetLatestSpecial)
		r.Get("/recommended/{type}", destinationHandler.GetRecommended)
		r.Get("/type/{type}", destinationHandler.GetByType)
		r.Get("/slug/{slug}", destinationHandler.GetBySlug)
		r.Get("/{id}", destinationHandler.GetByID)

		// ==================== ADMIN ROUTES ====================
		r.Group(func(r chi.Router) {
			r.Use(guard.auth)
			r.Use(guard.admin)

			r.Post("/", destinationHandler.Create)
			r.Put("/{id}", destinationHandler.Update) // PUT dan PATCH sama-sama partial update
			r.Patch("/{id}", destinationHandler.Update)
			r.Delete("/{id}", destinationHandler.Delete)
		})
	})
}

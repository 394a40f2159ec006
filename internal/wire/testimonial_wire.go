package wire

import (
	"travel-agency/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireTestimonial(r chi.Router, testimonialHandler *adaptor.TestimonialHandler, guard guards) {
	r.Route("/api/testimonials", func(r chi.Router) {
		// ==================== PUBLIC ROUTES ====================
		r.Get("/", testimonialHandler.GetAll)
		r.Get("/latest", testimonialHandler.GetLatest)
		r.Get("/{id}", testimonialHandler.GetByID)

		// ==================== ADMIN ROUTES ====================
		r.Group(func(r chi.Router) {
			r.Use(guard.auth)
			r.Use(guard.admin)

			r.Post("/", testimonialHandler.Create)
			r.Post("/upload", testimonialHandler.Upload)
			r.Patch("/{id}", testimonialHandler.Update)
			r.Delete("/{id}", testimonialHandler.Delete)
		})
	})
}

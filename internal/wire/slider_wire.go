package wire

import (
	"travel-agency/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireSlider(r chi.Router, sliderHandler *adaptor.SliderHandler, guard guards) {
	r.Route("/api/sliders", func(r chi.Router) {
		// ==================== PUBLIC ROUTES ====================
		r.Get("/", sliderHandler.GetAll)
		r.Get("/{id}", sliderHandler.GetByID)

		// ==================== ADMIN ROUTES ====================
		r.Group(func(r chi.Router) {
			r.Use(guard.auth)
			r.Use(guard.admin)

			r.Post("/", sliderHandler.Create)
			r.Put("/{id}", sliderHandler.Update)
			r.Delete("/{id}", sliderHandler.Delete)
			r.Put("/{id}/reorder", sliderHandler.Reorder)
		})
	})
}

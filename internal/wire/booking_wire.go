package wire

import (
	"travel-agency/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireBooking(r chi.Router, bookingHandler *adaptor.BookingHandler, guard guards) {
	r.Route("/api/bookings", func(r chi.Router) {
		// ==================== PUBLIC ROUTES ====================
		// POST /api/bookings/quote - token optional, anonymous callers get a temporary user
		r.With(guard.optional).Post("/quote", bookingHandler.CreateQuote)

		// ==================== PROTECTED ROUTES (require auth) ====================
		r.With(guard.auth).Get("/user/me", bookingHandler.GetMyBookings)

		// ==================== ADMIN ROUTES ====================
		r.Group(func(r chi.Router) {
			r.Use(guard.auth)
			r.Use(guard.admin)

			r.Get("/", bookingHandler.GetAll)
			r.Get("/{id}", bookingHandler.GetByID)
			r.Put("/{id}", bookingHandler.Update)
			r.Put("/{id}/status", bookingHandler.UpdateStatus)
			r.Post("/{id}/participants", bookingHandler.AddParticipant)
		})
	})
}

package wire

import (
	"travel-agency/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireSubscription(r chi.Router, subscriptionHandler *adaptor.SubscriptionHandler, guard guards) {
	r.Route("/api/subscriptions", func(r chi.Router) {
		// ==================== PUBLIC ROUTES ====================
		r.Post("/", subscriptionHandler.Subscribe)

		// ==================== ADMIN ROUTES ====================
		r.Group(func(r chi.Router) {
			r.Use(guard.auth)
			r.Use(guard.admin)

			r.Get("/", subscriptionHandler.GetAll)
			r.Delete("/{id}", subscriptionHandler.Unsubscribe)
			r.Patch("/{id}/toggle", subscriptionHandler.Toggle)
		})
	})
}

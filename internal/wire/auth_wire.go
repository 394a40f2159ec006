package wire

import (
	"travel-agency/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireAuth(r chi.Router, authHandler *adaptor.AuthHandler, guard guards) {
	// ==================== PUBLIC ROUTES ====================
	r.Post("/api/auth/login", authHandler.Login)
	r.Post("/api/auth/refresh", authHandler.Refresh)

	// ==================== PROTECTED ROUTES ====================
	r.With(guard.auth).Get("/api/auth/me", authHandler.Me)
}

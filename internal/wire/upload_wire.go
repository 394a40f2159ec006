package wire

import (
	"travel-agency/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireUpload(r chi.Router, uploadHandler *adaptor.UploadHandler, guard guards) {
	// ==================== ADMIN ROUTES ====================
	r.With(guard.auth, guard.admin).Post("/api/upload/{folder}", uploadHandler.Upload)
}

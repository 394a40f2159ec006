package adaptor

import (
	"encoding/json"
	"net/http"

	"travel-agency/internal/dto/request"
	"travel-agency/internal/usecase"
	"travel-agency/pkg/utils"

	"go.uber.org/zap"
)

type AuthHandler struct {
	service usecase.AuthService
	errs    errorWriter
	log     *zap.Logger
}

func NewAuthHandler(service usecase.AuthService, opts Options, log *zap.Logger) *AuthHandler {
	log = log.With(zap.String("handler", "auth"))
	return &AuthHandler{
		service: service,
		errs:    newErrorWriter(log, opts),
		log:     log,
	}
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errs.badRequest(w, r, "Invalid request body")
		return
	}

	response, err := h.service.Login(r.Context(), &req)
	if err != nil {
		h.errs.writeServiceError(w, r, err, "login")
		return
	}

	utils.ResponseSuccess(w, "Login successful", response)
}

// Refresh handles POST /api/auth/refresh
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req request.RefreshTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errs.badRequest(w, r, "Invalid request body")
		return
	}

	response, err := h.service.Refresh(r.Context(), &req)
	if err != nil {
		h.errs.writeServiceError(w, r, err, "refresh token")
		return
	}

	utils.ResponseSuccess(w, "Token refreshed", response)
}

// Me handles GET /api/auth/me (protected)
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseError(w, http.StatusUnauthorized, h.errs.message(r, utils.MsgUnauthorized), nil)
		return
	}

	user, err := h.service.Me(r.Context(), userID)
	if err != nil {
		h.errs.writeServiceError(w, r, err, "get current user")
		return
	}

	utils.ResponseSuccess(w, "success", user)
}

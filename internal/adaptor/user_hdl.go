package adaptor

import (
	"encoding/json"
	"net/http"

	"travel-agency/internal/dto/request"
	"travel-agency/internal/usecase"
	"travel-agency/pkg/utils"

	"go.uber.org/zap"
)

type UserHandler struct {
	service usecase.UserService
	errs    errorWriter
	log     *zap.Logger
}

func NewUserHandler(service usecase.UserService, opts Options, log *zap.Logger) *UserHandler {
	log = log.With(zap.String("handler", "user"))
	return &UserHandler{
		service: service,
		errs:    newErrorWriter(log, opts),
		log:     log,
	}
}

// GetAllUsers handles GET /api/users?page=&limit= (admin only)
func (h *UserHandler) GetAllUsers(w http.ResponseWriter, r *http.Request) {
	req := pageQuery(r)

	users, err := h.service.GetAllUsers(r.Context(), &req)
	if err != nil {
		h.errs.writeServiceError(w, r, err, "get all users")
		return
	}

	utils.ResponseSuccess(w, "Users retrieved successfully", users)
}

// GetUser handles GET /api/users/{id} (admin only)
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.errs.writeServiceError(w, r, err, "get user")
		return
	}

	user, err := h.service.GetProfile(r.Context(), id)
	if err != nil {
		h.errs.writeServiceError(w, r, err, "get user")
		return
	}

	utils.ResponseSuccess(w, "success", user)
}

// CreateUser handles POST /api/users (admin only)
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req request.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errs.badRequest(w, r, "Invalid request body")
		return
	}

	user, err := h.service.CreateUser(r.Context(), &req)
	if err != nil {
		h.errs.writeServiceError(w, r, err, "create user")
		return
	}

	utils.ResponseCreated(w, "User created", user)
}

// UpdateUser handles PUT /api/users/{id} (admin only)
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.errs.writeServiceError(w, r, err, "update user")
		return
	}

	var req request.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errs.badRequest(w, r, "Invalid request body")
		return
	}

	user, err := h.service.UpdateUser(r.Context(), id, &req)
	if err != nil {
		h.errs.writeServiceError(w, r, err, "update user")
		return
	}

	utils.ResponseSuccess(w, "User updated", user)
}

// DeleteUser handles DELETE /api/users/{id} (admin only)
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.errs.writeServiceError(w, r, err, "delete user")
		return
	}

	if err := h.service.DeleteUser(r.Context(), id); err != nil {
		h.errs.writeServiceError(w, r, err, "delete user")
		return
	}

	utils.ResponseNoContent(w)
}

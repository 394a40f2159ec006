package adaptor

import (
	"encoding/json"
	"net/http"

	"travel-agency/internal/dto/request"
	"travel-agency/internal/usecase"
	"travel-agency/pkg/utils"

	"go.uber.org/zap"
)

type SubscriptionHandler struct {
	service usecase.SubscriptionService
	errs    errorWriter
	log     *zap.Logger
}

func NewSubscriptionHandler(service usecase.SubscriptionService, opts Options, log *zap.Logger) *SubscriptionHandler {
	log = log.With(zap.String("handler", "subscription"))
	return &SubscriptionHandler{
		service: service,
		errs:    newErrorWriter(log, opts),
		log:     log,
	}
}

// Subscribe handles POST /api/subscriptions (public)
func (h *SubscriptionHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	var req request.CreateSubscriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errs.badRequest(w, r, "Invalid request body")
		return
	}

	subscription, err := h.service.Subscribe(r.Context(), &req)
	if err != nil {
		h.errs.writeServiceError(w, r, err, "subscribe")
		return
	}
	utils.ResponseCreated(w, "Subscribed", subscription)
}

// GetAll handles GET /api/subscriptions?page=&limit=&isActive= (admin)
func (h *SubscriptionHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	page := pageQuery(r)
	isActive := utils.ParseBool(r.URL.Query().Get("isActive"))

	result, err := h.service.GetAll(r.Context(), &page, isActive)
	if err != nil {
		h.errs.writeServiceError(w, r, err, "list subscriptions")
		return
	}
	utils.ResponseSuccess(w, "success", result)
}

// Unsubscribe handles DELETE /api/subscriptions/{id} (admin)
func (h *SubscriptionHandler) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.errs.writeServiceError(w, r, err, "unsubscribe")
		return
	}

	if err := h.service.Unsubscribe(r.Context(), id); err != nil {
		h.errs.writeServiceError(w, r, err, "unsubscribe")
		return
	}
	utils.ResponseNoContent(w)
}

// Toggle handles PATCH /api/subscriptions/{id}/toggle (admin)
func (h *SubscriptionHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.errs.writeServiceError(w, r, err, "toggle subscription")
		return
	}

	subscription, err := h.service.Toggle(r.Context(), id)
	if err != nil {
		h.errs.writeServiceError(w, r, err, "toggle subscription")
		return
	}
	utils.ResponseSuccess(w, "success", subscription)
}

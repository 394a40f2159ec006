package adaptor

import (
	"encoding/json"
	"net/http"

	"travel-agency/internal/dto/request"
	"travel-agency/internal/usecase"
	"travel-agency/pkg/utils"

	"go.uber.org/zap"
)

type BookingHandler struct {
	service usecase.BookingService
	errs    errorWriter
	log     *zap.Logger
}

func NewBookingHandler(service usecase.BookingService, opts Options, log *zap.Logger) *BookingHandler {
	log = log.With(zap.String("handler", "booking"))
	return &BookingHandler{
		service: service,
		errs:    newErrorWriter(log, opts),
		log:     log,
	}
}

// CreateQuote handles POST /api/bookings/quote (public, token optional)
func (h *BookingHandler) CreateQuote(w http.ResponseWriter, r *http.Request) {
	var req request.CreateQuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errs.badRequest(w, r, "Invalid request body")
		return
	}

	// anonymous callers get a temporary user from the contact info
	var userID *int64
	if id, ok := utils.GetUserIDFromContext(r.Context()); ok {
		userID = &id
	}

	booking, err := h.service.CreateQuote(r.Context(), userID, &req)
	if err != nil {
		h.errs.writeServiceError(w, r, err, "create quote")
		return
	}

	utils.ResponseCreated(w, "Quote created", booking)
}

// GetMyBookings handles GET /api/bookings/user/me (protected)
func (h *BookingHandler) GetMyBookings(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseError(w, http.StatusUnauthorized, h.errs.message(r, utils.MsgUnauthorized), nil)
		return
	}

	bookings, err := h.service.GetMyBookings(r.Context(), userID)
	if err != nil {
		h.errs.writeServiceError(w, r, err, "get my bookings")
		return
	}

	utils.ResponseSuccess(w, "success", bookings)
}

// ==================== ADMIN METHODS ====================

// GetAll handles GET /api/bookings?page=&limit=&status=&bookingType= (admin)
func (h *BookingHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.BookingListRequest{
		PaginatedRequest: pageQuery(r),
		Status:           query.Get("status"),
		BookingType:      query.Get("bookingType"),
	}

	bookings, err := h.service.GetPaginated(r.Context(), req)
	if err != nil {
		h.errs.writeServiceError(w, r, err, "list bookings")
		return
	}

	utils.ResponseSuccess(w, "success", bookings)
}

// GetByID handles GET /api/bookings/{id} (admin)
func (h *BookingHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.errs.writeServiceError(w, r, err, "get booking")
		return
	}

	booking, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		h.errs.writeServiceError(w, r, err, "get booking")
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}

// Update handles PUT /api/bookings/{id} (admin)
func (h *BookingHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.errs.writeServiceError(w, r, err, "update booking")
		return
	}

	var req request.UpdateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errs.badRequest(w, r, "Invalid request body")
		return
	}

	booking, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		h.errs.writeServiceError(w, r, err, "update booking")
		return
	}

	utils.ResponseSuccess(w, "Booking updated", booking)
}

// UpdateStatus handles PUT /api/bookings/{id}/status (admin)
func (h *BookingHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.errs.writeServiceError(w, r, err, "update booking status")
		return
	}

	var req request.UpdateBookingStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errs.badRequest(w, r, "Invalid request body")
		return
	}

	booking, err := h.service.UpdateStatus(r.Context(), id, &req)
	if err != nil {
		h.errs.writeServiceError(w, r, err, "update booking status")
		return
	}

	utils.ResponseSuccess(w, "Booking status updated", booking)
}

// AddParticipant handles POST /api/bookings/{id}/participants (admin)
func (h *BookingHandler) AddParticipant(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.errs.writeServiceError(w, r, err, "add participant")
		return
	}

	var req request.BookingParticipantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errs.badRequest(w, r, "Invalid request body")
		return
	}

	participant, err := h.service.AddParticipant(r.Context(), id, &req)
	if err != nil {
		h.errs.writeServiceError(w, r, err, "add participant")
		return
	}

	utils.ResponseCreated(w, "Participant added", participant)
}

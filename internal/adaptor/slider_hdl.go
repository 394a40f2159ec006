package adaptor

import (
	"encoding/json"
	"net/http"

	"travel-agency/internal/dto/request"
	"travel-agency/internal/usecase"
	"travel-agency/pkg/utils"

	"go.uber.org/zap"
)

var sliderForm = formSpec{
	"title":        kindString,
	"subtitle":     kindString,
	"location":     kindString,
	"imageUrl":     kindString,
	"buttonText":   kindString,
	"buttonUrl":    kindString,
	"isActive":     kindBool,
	"displayOrder": kindNumber,
}

type SliderHandler struct {
	service  usecase.SliderService
	maxBytes int64
	errs     errorWriter
	log      *zap.Logger
}

func NewSliderHandler(service usecase.SliderService, opts Options, log *zap.Logger) *SliderHandler {
	log = log.With(zap.String("handler", "slider"))
	return &SliderHandler{
		service:  service,
		maxBytes: opts.UploadMaxBytes,
		errs:     newErrorWriter(log, opts),
		log:      log,
	}
}

// GetAll handles GET /api/sliders?active= (public)
func (h *SliderHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	sliders, err := h.service.GetAll(r.Context(), utils.ParseBool(r.URL.Query().Get("active")))
	if err != nil {
		h.errs.writeServiceError(w, r, err, "list sliders")
		return
	}
	utils.ResponseSuccess(w, "success", sliders)
}

// GetByID handles GET /api/sliders/{id} (public)
func (h *SliderHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.errs.writeServiceError(w, r, err, "get slider")
		return
	}

	slider, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		h.errs.writeServiceError(w, r, err, "get slider")
		return
	}
	utils.ResponseSuccess(w, "success", slider)
}

// Create handles POST /api/sliders (admin, JSON or multipart with "image")
func (h *SliderHandler) Create(w http.ResponseWriter, r *http.Request) {
	limitBody(w, r, h.maxBytes, 1)

	var req request.CreateSliderRequest
	if err := decodeBody(r, &req, sliderForm); err != nil {
		h.errs.writeDecodeError(w, r, err, "create slider")
		return
	}
	image, err := formFile(r, "image", h.maxBytes)
	if err != nil {
		h.errs.writeServiceError(w, r, err, "create slider")
		return
	}

	slider, err := h.service.Create(r.Context(), &req, image)
	if err != nil {
		h.errs.writeServiceError(w, r, err, "create slider")
		return
	}
	utils.ResponseCreated(w, "Slider created", slider)
}

// Update handles PUT /api/sliders/{id} (admin)
func (h *SliderHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.errs.writeServiceError(w, r, err, "update slider")
		return
	}
	limitBody(w, r, h.maxBytes, 1)

	var req request.UpdateSliderRequest
	if err := decodeBody(r, &req, sliderForm); err != nil {
		h.errs.writeDecodeError(w, r, err, "update slider")
		return
	}
	image, err := formFile(r, "image", h.maxBytes)
	if err != nil {
		h.errs.writeServiceError(w, r, err, "update slider")
		return
	}

	slider, err := h.service.Update(r.Context(), id, &req, image)
	if err != nil {
		h.errs.writeServiceError(w, r, err, "update slider")
		return
	}
	utils.ResponseSuccess(w, "Slider updated", slider)
}

// Delete handles DELETE /api/sliders/{id} (admin)
func (h *SliderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.errs.writeServiceError(w, r, err, "delete slider")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.errs.writeServiceError(w, r, err, "delete slider")
		return
	}
	utils.ResponseNoContent(w)
}

// Reorder handles PUT /api/sliders/{id}/reorder (admin)
func (h *SliderHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.errs.writeServiceError(w, r, err, "reorder slider")
		return
	}

	var req request.ReorderSliderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errs.badRequest(w, r, "Invalid request body")
		return
	}

	result, err := h.service.Reorder(r.Context(), id, &req)
	if err != nil {
		h.errs.writeServiceError(w, r, err, "reorder slider")
		return
	}
	utils.ResponseSuccess(w, "success", result)
}

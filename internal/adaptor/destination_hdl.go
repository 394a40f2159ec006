package adaptor

import (
	"net/http"

	"travel-agency/internal/dto/request"
	"travel-agency/internal/usecase"
	"travel-agency/pkg/apperror"
	"travel-agency/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

var destinationForm = formSpec{
	"title":                 kindString,
	"slug":                  kindString,
	"imageSrc":              kindString,
	"duration":              kindString,
	"activityLevel":         kindString,
	"activityType":          kindList,
	"groupSize":             kindString,
	"description":           kindString,
	"price":                 kindNumber,
	"location":              kindString,
	"isRecommended":         kindBool,
	"isSpecial":             kindBool,
	"type":                  kindString,
	"itinerary":             kindJSON,
	"includes":              kindJSON,
	"excludes":              kindJSON,
	"tips":                  kindJSON,
	"faqs":                  kindJSON,
	"galleryImages":         kindJSON,
	"existingGalleryImages": kindJSON,
	"clearGallery":          kindBool,
}

type DestinationHandler struct {
	service  usecase.DestinationService
	maxBytes int64
	errs     errorWriter
	log      *zap.Logger
}

func NewDestinationHandler(service usecase.DestinationService, opts Options, log *zap.Logger) *DestinationHandler {
	log = log.With(zap.String("handler", "destination"))
	return &DestinationHandler{
		service:  service,
		maxBytes: opts.UploadMaxBytes,
		errs:     newErrorWriter(log, opts),
		log:      log,
	}
}

// Create handles POST /api/destinations (admin, JSON or multipart)
func (h *DestinationHandler) Create(w http.ResponseWriter, r *http.Request) {
	limitBody(w, r, h.maxBytes, usecase.MaxGalleryFiles+1)

	var req request.CreateDestinationRequest
	if err := decodeBody(r, &req, destinationForm); err != nil {
		h.errs.writeDecodeError(w, r, err, "create destination")
		return
	}

	mainImage, gallery, err := h.images(r)
	if err != nil {
		h.errs.writeServiceError(w, r, err, "create destination")
		return
	}

	destination, err := h.service.Create(r.Context(), &req, mainImage, gallery)
	if err != nil {
		h.errs.writeServiceError(w, r, err, "create destination")
		return
	}

	utils.ResponseCreated(w, "Destination created", destination)
}

// Update handles PUT and PATCH /api/destinations/{id} (admin)
func (h *DestinationHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.errs.writeServiceError(w, r, err, "update destination")
		return
	}
	limitBody(w, r, h.maxBytes, usecase.MaxGalleryFiles+1)

	var req request.UpdateDestinationRequest
	if err := decodeBody(r, &req, destinationForm); err != nil {
		h.errs.writeDecodeError(w, r, err, "update destination")
		return
	}

	mainImage, gallery, err := h.images(r)
	if err != nil {
		h.errs.writeServiceError(w, r, err, "update destination")
		return
	}

	destination, err := h.service.Update(r.Context(), id, &req, mainImage, gallery)
	if err != nil {
		h.errs.writeServiceError(w, r, err, "update destination")
		return
	}

	utils.ResponseSuccess(w, "Destination updated", destination)
}

// Delete handles DELETE /api/destinations/{id} (admin)
func (h *DestinationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.errs.writeServiceError(w, r, err, "delete destination")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.errs.writeServiceError(w, r, err, "delete destination")
		return
	}

	utils.ResponseNoContent(w)
}

// ==================== PUBLIC READS ====================

// GetAll handles GET /api/destinations?page=&limit=
func (h *DestinationHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	page := pageQuery(r)
	result, err := h.service.GetAll(r.Context(), page.Page, page.Limit)
	if err != nil {
		h.errs.writeServiceError(w, r, err, "list destinations")
		return
	}
	utils.ResponseSuccess(w, "success", result)
}

// GetByID handles GET /api/destinations/{id}
func (h *DestinationHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.errs.writeServiceError(w, r, err, "get destination")
		return
	}

	destination, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		h.errs.writeServiceError(w, r, err, "get destination")
		return
	}
	utils.ResponseSuccess(w, "success", destination)
}

// GetBySlug handles GET /api/destinations/slug/{slug}
func (h *DestinationHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	destination, err := h.service.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		h.errs.writeServiceError(w, r, err, "get destination by slug")
		return
	}
	utils.ResponseSuccess(w, "success", destination)
}

// GetLatest handles GET /api/destinations/latest?limit=
func (h *DestinationHandler) GetLatest(w http.ResponseWriter, r *http.Request) {
	limit := utils.ParseInt(r.URL.Query().Get("limit"), usecase.DefaultLatestLimit)
	destinations, err := h.service.GetLatest(r.Context(), limit)
	if err != nil {
		h.errs.writeServiceError(w, r, err, "get latest destinations")
		return
	}
	utils.ResponseSuccess(w, "success", destinations)
}

// GetLatestSpecial handles GET /api/destinations/special/latest
func (h *DestinationHandler) GetLatestSpecial(w http.ResponseWriter, r *http.Request) {
	destination, err := h.service.GetLatestSpecial(r.Context())
	if err != nil {
		h.errs.writeServiceError(w, r, err, "get latest special destination")
		return
	}
	utils.ResponseSuccess(w, "success", destination)
}

// GetRecommended handles GET /api/destinations/recommended/{type}?limit=
func (h *DestinationHandler) GetRecommended(w http.ResponseWriter, r *http.Request) {
	limit := utils.ParseInt(r.URL.Query().Get("limit"), usecase.DefaultRecommendedLimit)
	destinations, err := h.service.GetRecommendedByType(r.Context(), chi.URLParam(r, "type"), limit)
	if err != nil {
		h.errs.writeServiceError(w, r, err, "get recommended destinations")
		return
	}
	utils.ResponseSuccess(w, "success", destinations)
}

// GetByType handles GET /api/destinations/type/{type}?page=&limit=
func (h *DestinationHandler) GetByType(w http.ResponseWriter, r *http.Request) {
	page := pageQuery(r)
	result, err := h.service.GetPaginatedByType(r.Context(), chi.URLParam(r, "type"), page.Page, page.Limit)
	if err != nil {
		h.errs.writeServiceError(w, r, err, "list destinations by type")
		return
	}
	utils.ResponseSuccess(w, "success", result)
}

// images reads the imageSrc and galleryImages file fields of a multipart request
func (h *DestinationHandler) images(r *http.Request) (*request.FileUpload, []request.FileUpload, error) {
	mainImage, err := formFile(r, "imageSrc", h.maxBytes)
	if err != nil {
		return nil, nil, err
	}
	gallery, err := formFiles(r, "galleryImages", h.maxBytes)
	if err != nil {
		return nil, nil, err
	}
	if len(gallery) > usecase.MaxGalleryFiles {
		return nil, nil, apperror.Field("galleryImages", "Too many files")
	}
	return mainImage, gallery, nil
}

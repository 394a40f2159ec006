package adaptor

import (
	"net/http"

	"travel-agency/internal/dto/request"
	"travel-agency/internal/usecase"
	"travel-agency/pkg/utils"

	"go.uber.org/zap"
)

var testimonialForm = formSpec{
	"name":            kindString,
	"avatarImageUrl":  kindString,
	"rating":          kindNumber,
	"testimonialText": kindString,
	"tripImageUrls":   kindList,
}

type TestimonialHandler struct {
	service  usecase.TestimonialService
	uploads  usecase.UploadService
	maxBytes int64
	errs     errorWriter
	log      *zap.Logger
}

func NewTestimonialHandler(service usecase.TestimonialService, uploads usecase.UploadService, opts Options, log *zap.Logger) *TestimonialHandler {
	log = log.With(zap.String("handler", "testimonial"))
	return &TestimonialHandler{
		service:  service,
		uploads:  uploads,
		maxBytes: opts.UploadMaxBytes,
		errs:     newErrorWriter(log, opts),
		log:      log,
	}
}

// GetAll handles GET /api/testimonials?page=&limit=&sortBy=&sortOrder= (public)
func (h *TestimonialHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.TestimonialListRequest{
		PaginatedRequest: pageQuery(r),
		SortBy:           query.Get("sortBy"),
		SortOrder:        query.Get("sortOrder"),
	}

	result, err := h.service.GetAll(r.Context(), req)
	if err != nil {
		h.errs.writeServiceError(w, r, err, "list testimonials")
		return
	}
	utils.ResponseSuccess(w, "success", result)
}

// GetLatest handles GET /api/testimonials/latest?limit= (public)
func (h *TestimonialHandler) GetLatest(w http.ResponseWriter, r *http.Request) {
	limit := utils.ParseInt(r.URL.Query().Get("limit"), usecase.DefaultTestimonialsLatest)
	testimonials, err := h.service.GetLatest(r.Context(), limit)
	if err != nil {
		h.errs.writeServiceError(w, r, err, "latest testimonials")
		return
	}
	utils.ResponseSuccess(w, "success", testimonials)
}

// GetByID handles GET /api/testimonials/{id} (public)
func (h *TestimonialHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.errs.writeServiceError(w, r, err, "get testimonial")
		return
	}

	testimonial, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		h.errs.writeServiceError(w, r, err, "get testimonial")
		return
	}
	utils.ResponseSuccess(w, "success", testimonial)
}

// Create handles POST /api/testimonials (admin, optional "image" file for the avatar)
func (h *TestimonialHandler) Create(w http.ResponseWriter, r *http.Request) {
	limitBody(w, r, h.maxBytes, 1)

	var req request.CreateTestimonialRequest
	if err := decodeBody(r, &req, testimonialForm); err != nil {
		h.errs.writeDecodeError(w, r, err, "create testimonial")
		return
	}
	avatar, err := formFile(r, "image", h.maxBytes)
	if err != nil {
		h.errs.writeServiceError(w, r, err, "create testimonial")
		return
	}

	testimonial, err := h.service.Create(r.Context(), &req, avatar)
	if err != nil {
		h.errs.writeServiceError(w, r, err, "create testimonial")
		return
	}
	utils.ResponseCreated(w, "Testimonial created", testimonial)
}

// Update handles PATCH /api/testimonials/{id} (admin)
func (h *TestimonialHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.errs.writeServiceError(w, r, err, "update testimonial")
		return
	}
	limitBody(w, r, h.maxBytes, 1)

	var req request.UpdateTestimonialRequest
	if err := decodeBody(r, &req, testimonialForm); err != nil {
		h.errs.writeDecodeError(w, r, err, "update testimonial")
		return
	}
	avatar, err := formFile(r, "image", h.maxBytes)
	if err != nil {
		h.errs.writeServiceError(w, r, err, "update testimonial")
		return
	}

	testimonial, err := h.service.Update(r.Context(), id, &req, avatar)
	if err != nil {
		h.errs.writeServiceError(w, r, err, "update testimonial")
		return
	}
	utils.ResponseSuccess(w, "Testimonial updated", testimonial)
}

// Delete handles DELETE /api/testimonials/{id} (admin)
func (h *TestimonialHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.errs.writeServiceError(w, r, err, "delete testimonial")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.errs.writeServiceError(w, r, err, "delete testimonial")
		return
	}
	utils.ResponseNoContent(w)
}

// Upload handles POST /api/testimonials/upload (admin); stores one "file" under testimonials/
func (h *TestimonialHandler) Upload(w http.ResponseWriter, r *http.Request) {
	uploadFile(w, r, h.uploads, "testimonials", h.maxBytes, h.errs)
}

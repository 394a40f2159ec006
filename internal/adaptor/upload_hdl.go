package adaptor

import (
	"net/http"

	"travel-agency/internal/usecase"
	"travel-agency/pkg/apperror"
	"travel-agency/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type UploadHandler struct {
	service  usecase.UploadService
	maxBytes int64
	errs     errorWriter
}

func NewUploadHandler(service usecase.UploadService, opts Options, log *zap.Logger) *UploadHandler {
	return &UploadHandler{
		service:  service,
		maxBytes: opts.UploadMaxBytes,
		errs:     newErrorWriter(log.With(zap.String("handler", "upload")), opts),
	}
}

// Upload handles POST /api/upload/{folder} (admin)
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	uploadFile(w, r, h.service, chi.URLParam(r, "folder"), h.maxBytes, h.errs)
}

func uploadFile(w http.ResponseWriter, r *http.Request, service usecase.UploadService, folder string, maxBytes int64, errs errorWriter) {
	limitBody(w, r, maxBytes, 1)

	if !isMultipart(r) {
		errs.writeServiceError(w, r, apperror.Field("file", "Expected multipart/form-data"), "upload file")
		return
	}
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		errs.badRequest(w, r, "Invalid request body")
		return
	}

	file, err := formFile(r, "file", maxBytes)
	if err != nil {
		errs.writeServiceError(w, r, err, "upload file")
		return
	}

	result, err := service.Upload(r.Context(), folder, file)
	if err != nil {
		errs.writeServiceError(w, r, err, "upload file")
		return
	}
	utils.ResponseCreated(w, "File uploaded", result)
}

package adaptor

import (
	"errors"
	"net/http"

	"travel-agency/pkg/apperror"
	"travel-agency/pkg/utils"

	"go.uber.org/zap"
)

// errorWriter maps service errors to the response envelope. One per handler so
// log lines carry the handler name.
type errorWriter struct {
	log   *zap.Logger
	tr    utils.Translator
	debug bool
}

func (e errorWriter) message(r *http.Request, key string) string {
	return utils.Translate(e.tr, r.Header.Get("Accept-Language"), key)
}

// writeServiceError handles errors untuk semua operasi
func (e errorWriter) writeServiceError(w http.ResponseWriter, r *http.Request, err error, operation string) {
	var verr *apperror.ValidationError

	switch {
	case errors.As(err, &verr):
		e.log.Warn(operation+" validation failed",
			zap.Any("errors", verr.Fields),
			zap.String("operation", operation))
		utils.ResponseError(w, http.StatusBadRequest, e.message(r, utils.MsgValidation), verr.Fields)

	case errors.Is(err, apperror.ErrValidation):
		e.log.Warn(operation+" validation failed",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseError(w, http.StatusBadRequest, e.message(r, utils.MsgValidation), []string{err.Error()})

	case errors.Is(err, apperror.ErrNotFound):
		e.log.Warn(operation+" failed - not found",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseError(w, http.StatusNotFound, e.message(r, utils.MsgNotFound), []string{err.Error()})

	case errors.Is(err, apperror.ErrConstraintViolation):
		// never echo constraint names or SQL details
		e.log.Warn(operation+" failed - constraint violation",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseError(w, http.StatusBadRequest, e.message(r, utils.MsgDuplicateEntry), nil)

	case errors.Is(err, apperror.ErrAssetUpload):
		e.log.Error(operation+" failed - asset upload",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseError(w, http.StatusBadRequest, e.message(r, utils.MsgAssetUpload), nil)

	case errors.Is(err, apperror.ErrInvalidTransition):
		e.log.Warn(operation+" failed - invalid transition",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseError(w, http.StatusConflict, e.message(r, utils.MsgInvalidTransition), []string{err.Error()})

	case errors.Is(err, apperror.ErrUnauthorized):
		e.log.Warn(operation+" failed - unauthorized",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseError(w, http.StatusUnauthorized, e.message(r, utils.MsgUnauthorized), nil)

	case errors.Is(err, apperror.ErrForbidden):
		e.log.Warn(operation+" failed - forbidden",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseError(w, http.StatusForbidden, e.message(r, utils.MsgForbidden), nil)

	default:
		e.log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		var detail any
		if e.debug {
			detail = []string{err.Error()}
		}
		utils.ResponseError(w, http.StatusInternalServerError, e.message(r, utils.MsgInternalServerError), detail)
	}
}

// badRequest is for malformed payloads rejected before reaching a service
func (e errorWriter) badRequest(w http.ResponseWriter, r *http.Request, detail string) {
	utils.ResponseError(w, http.StatusBadRequest, e.message(r, utils.MsgValidation), []string{detail})
}

func (e errorWriter) writeDecodeError(w http.ResponseWriter, r *http.Request, err error, operation string) {
	if errors.Is(err, errBadBody) {
		e.log.Warn(operation+" - invalid body", zap.Error(err))
		e.badRequest(w, r, "Invalid request body")
		return
	}
	e.writeServiceError(w, r, err, operation)
}

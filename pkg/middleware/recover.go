package middleware

import (
	"net/http"

	"travel-agency/pkg/utils"

	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// Recover turns a handler panic into a 500 carrying the request id, so the
// caller can quote it and the stack trace can be found in the log.
func Recover(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rvr := recover()
				if rvr == nil {
					return
				}
				// client went away; let net/http handle it quietly
				if rvr == http.ErrAbortHandler {
					panic(rvr)
				}

				logger.Error("Handler panicked",
					append(requestFields(r), zap.Any("panic", rvr), zap.Stack("stack"))...)

				msg := "Internal server error"
				if id := chimw.GetReqID(r.Context()); id != "" {
					msg += " (request " + id + ")"
				}
				utils.ResponseError(w, http.StatusInternalServerError, msg, nil)
			}()
			next.ServeHTTP(w, r)
		})
	}
}

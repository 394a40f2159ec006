package middleware

import (
	"net/http"
	"strconv"

	"travel-agency/pkg/utils"

	"github.com/go-chi/httprate"
	"go.uber.org/zap"
)

// RateLimit throttles per client IP and, for authenticated callers, per user id.
// Health checks are never throttled.
func RateLimit(cfg utils.ThrottleConfig, jwtManager *utils.JWTManager, logger *zap.Logger) func(http.Handler) http.Handler {
	limiter := httprate.Limit(
		cfg.Limit,
		cfg.TTL,
		httprate.WithKeyFuncs(httprate.KeyByIP, userKey(jwtManager)),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			logger.Warn("Rate limit exceeded",
				zap.String("ip", r.RemoteAddr),
				zap.String("path", r.URL.Path))
			utils.ResponseError(w, http.StatusTooManyRequests, "Too many requests, please try again later", nil)
		}),
	)

	return func(next http.Handler) http.Handler {
		limited := limiter(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/health" {
				next.ServeHTTP(w, r)
				return
			}
			limited.ServeHTTP(w, r)
		})
	}
}

// userKey runs before Auth, so it reads the subject straight from the token
func userKey(jwtManager *utils.JWTManager) httprate.KeyFunc {
	return func(r *http.Request) (string, error) {
		token, ok := bearerToken(r)
		if !ok || jwtManager == nil {
			return "anonymous", nil
		}
		claims, err := jwtManager.ParseAccess(token)
		if err != nil {
			return "anonymous", nil
		}
		if id, err := claims.UserID(); err == nil {
			return "user:" + strconv.FormatInt(id, 10), nil
		}
		return "anonymous", nil
	}
}

package middleware

import (
	"net/http"
	"strings"

	"travel-agency/pkg/utils"

	"go.uber.org/zap"
)

// bearerToken extracts the token from "Authorization: Bearer <token>"
func bearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}

func authenticate(r *http.Request, jwtManager *utils.JWTManager) (*http.Request, error) {
	token, ok := bearerToken(r)
	if !ok {
		return nil, utils.ErrInvalidToken
	}

	claims, err := jwtManager.ParseAccess(token)
	if err != nil {
		return nil, err
	}
	userID, err := claims.UserID()
	if err != nil {
		return nil, err
	}

	ctx := utils.SetUserContext(r.Context(), userID, claims.Email, claims.Role)
	ctx = utils.SetTokenContext(ctx, token)
	return r.WithContext(ctx), nil
}

// Auth middleware untuk validasi access token JWT
func Auth(jwtManager *utils.JWTManager, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := bearerToken(r); !ok {
				utils.ResponseError(w, http.StatusUnauthorized, "Missing authorization token", nil)
				return
			}

			authed, err := authenticate(r, jwtManager)
			if err != nil {
				logger.Warn("Invalid access token",
					zap.Error(err),
					zap.String("path", r.URL.Path))
				utils.ResponseError(w, http.StatusUnauthorized, "Invalid or expired token", nil)
				return
			}

			next.ServeHTTP(w, authed)
		})
	}
}

// OptionalAuth attaches the principal when a valid token is present and
// otherwise lets the request through anonymously.
func OptionalAuth(jwtManager *utils.JWTManager, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := bearerToken(r); !ok {
				next.ServeHTTP(w, r)
				return
			}

			authed, err := authenticate(r, jwtManager)
			if err != nil {
				logger.Debug("Ignoring invalid optional token", zap.Error(err))
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, authed)
		})
	}
}

// RequireRole - middleware cek role, dipasang setelah Auth
func RequireRole(logger *zap.Logger, roles ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]bool, len(roles))
	for _, role := range roles {
		allowed[role] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal := utils.GetPrincipalFromContext(r.Context())
			if principal == nil {
				utils.ResponseError(w, http.StatusUnauthorized, "Authentication required", nil)
				return
			}

			if !allowed[principal.Role] {
				logger.Warn("Role check: access denied",
					zap.Int64("user_id", principal.UserID),
					zap.String("role", principal.Role),
					zap.String("path", r.URL.Path))
				utils.ResponseError(w, http.StatusForbidden, "Insufficient permissions", nil)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

package middleware

import (
	"net/http"

	"github.com/gorilla/handlers"
)

// CORS allows the configured origins; an empty list allows any origin
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	origins := allowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	return handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"X-Requested-With", "Content-Type", "Authorization", "Accept-Language"}),
		handlers.AllowCredentials(),
		handlers.MaxAge(600),
	)
}

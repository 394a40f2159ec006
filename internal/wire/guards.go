package wire

import "net/http"

type middlewareFunc = func(http.Handler) http.Handler

// guards groups the auth middleware the route files share
type guards struct {
	auth     middlewareFunc
	optional middlewareFunc
	admin    middlewareFunc
}

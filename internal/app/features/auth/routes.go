// internal/app/features/auth/routes.go
package auth

import (
	"github.com/dalemusser/flockhub/internal/app/system/ratelimit"
	"github.com/go-chi/chi/v5"
)

// Register attaches the universal-login routes to r (the /api router),
// rate limited by client IP. Both paths run the same handler.
func Register(r chi.Router, h *Handler, limiter *ratelimit.Limiter) {
	r.Group(func(g chi.Router) {
		g.Use(limiter.Middleware)
		g.Post("/universal-login", h.HandleUniversalLogin)
		g.Post("/universal-login2", h.HandleUniversalLogin)
	})
}

// internal/app/features/superadmins/routes.go
package superadmins

import (
	"github.com/dalemusser/flockhub/internal/app/system/ratelimit"
	"github.com/go-chi/chi/v5"
)

// Routes returns the superadmin subrouter; mounted under /api/superadmin.
func Routes(h *Handler, limiter *ratelimit.Limiter) chi.Router {
	r := chi.NewRouter()
	r.Post("/register", h.HandleRegister)
	r.With(limiter.Middleware).Post("/login", h.HandleLogin)
	return r
}

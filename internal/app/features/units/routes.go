// internal/app/features/units/routes.go
package units

import (
	"github.com/dalemusser/flockhub/internal/app/system/ratelimit"
	"github.com/go-chi/chi/v5"
)

// Routes returns the subrouter for one unit variant; mounted under
// /api/campus, /api/district, /api/community, or /api/cell.
func Routes(h *Handler, limiter *ratelimit.Limiter) chi.Router {
	r := chi.NewRouter()
	r.Post("/register", h.HandleRegister)
	r.With(limiter.Middleware).Post("/login", h.HandleLogin)
	r.Get("/", h.HandleList)
	r.Get("/{id}", h.HandleGet)
	return r
}

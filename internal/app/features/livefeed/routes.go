// internal/app/features/livefeed/routes.go
package livefeed

import "github.com/go-chi/chi/v5"

// Routes returns the livefeed subrouter; mounted under /api/livefeed.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.Serve)
	return r
}

// internal/app/features/members/routes.go
package members

import "github.com/go-chi/chi/v5"

// Routes returns the member subrouter; mounted under /api/members.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/register", h.HandleRegister)
	r.Get("/", h.HandleList)
	r.Get("/{id}", h.HandleGet)
	return r
}

// internal/app/features/uploads/routes.go
package uploads

import "github.com/go-chi/chi/v5"

// Register attaches the media routes to r (the /api router). The /images
// path is a historical alias for the same feed.
func Register(r chi.Router, h *Handler) {
	r.Post("/upload", h.HandleUpload)
	r.Get("/uploads", h.HandleFeed)
	r.Get("/images", h.HandleFeed)
	r.Get("/uploads/{id}", h.HandleGet)
	r.Post("/uploads/{id}/like", h.HandleLike)
}

// internal/app/features/profile/routes.go
package profile

import (
	"github.com/go-chi/chi/v5"

	"github.com/volunteerconnect/volunteerconnect/internal/app/system/auth"
)

// Routes returns the profile endpoints, mounted under /api/profile.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(auth.RequireSignedIn)
	r.Get("/", h.ServeGet)
	r.Patch("/", h.ServeUpdate)
	return r
}

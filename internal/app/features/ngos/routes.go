// internal/app/features/ngos/routes.go
package ngos

import (
	"github.com/go-chi/chi/v5"

	"github.com/volunteerconnect/volunteerconnect/internal/app/system/auth"
	"github.com/volunteerconnect/volunteerconnect/internal/domain/models"
)

// Routes returns the NGO endpoints, mounted under /api/ngos. Reads are
// public; writes require a recruiter session.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeList)
	r.Get("/{id}", h.ServeGet)

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireUserType(models.UserTypeRecruiter))
		r.Post("/", h.ServeCreate)
		r.Patch("/{id}", h.ServeUpdate)
	})
	return r
}

// internal/app/features/opportunities/routes.go
package opportunities

import (
	"github.com/go-chi/chi/v5"

	"github.com/volunteerconnect/volunteerconnect/internal/app/system/auth"
	"github.com/volunteerconnect/volunteerconnect/internal/domain/models"
)

// Routes returns the opportunity endpoints, mounted under
// /api/opportunities. Reads are public; writes require a recruiter session.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeList)
	r.Get("/{id}", h.ServeGet)

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireUserType(models.UserTypeRecruiter))
		r.Post("/", h.ServeCreate)
		r.Patch("/{id}", h.ServeUpdate)
		r.Delete("/{id}", h.ServeDelete)
	})
	return r
}

// internal/app/features/applications/routes.go
package applications

import (
	"github.com/go-chi/chi/v5"

	"github.com/volunteerconnect/volunteerconnect/internal/app/system/auth"
	"github.com/volunteerconnect/volunteerconnect/internal/domain/models"
)

// Routes returns the application endpoints, mounted under
// /api/applications. Everything requires a session; writes are split by
// user type.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(auth.RequireSignedIn)

	r.Get("/", h.ServeList)

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireUserType(models.UserTypeVolunteer))
		r.Post("/", h.ServeCreate)
	})

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireUserType(models.UserTypeRecruiter))
		r.Get("/opportunity/{id}", h.ServeListByOpportunity)
		r.Patch("/{id}", h.ServeUpdate)
	})
	return r
}

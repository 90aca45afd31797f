// internal/app/features/suggestions/routes.go
package suggestions

import (
	"github.com/go-chi/chi/v5"

	"github.com/volunteerconnect/volunteerconnect/internal/app/system/auth"
	"github.com/volunteerconnect/volunteerconnect/internal/domain/models"
)

// Routes returns the suggestion endpoints, mounted under /api/suggestions.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(auth.RequireSignedIn)

	r.Get("/", h.ServeList)

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireUserType(models.UserTypeVolunteer))
		r.Post("/", h.ServeCreate)
	})
	return r
}

// internal/app/features/authn/routes.go
package authn

import "github.com/go-chi/chi/v5"

// Routes returns the authentication endpoints, mounted under /api.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/register", h.ServeRegister)
	r.Post("/login", h.ServeLogin)
	r.Post("/logout", h.ServeLogout)
	r.Get("/user", h.ServeCurrentUser)
	return r
}

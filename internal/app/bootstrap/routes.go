// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	gsessions "github.com/gorilla/sessions"
	"go.uber.org/zap"

	applicationsfeature "github.com/volunteerconnect/volunteerconnect/internal/app/features/applications"
	authnfeature "github.com/volunteerconnect/volunteerconnect/internal/app/features/authn"
	healthfeature "github.com/volunteerconnect/volunteerconnect/internal/app/features/health"
	ngosfeature "github.com/volunteerconnect/volunteerconnect/internal/app/features/ngos"
	opportunitiesfeature "github.com/volunteerconnect/volunteerconnect/internal/app/features/opportunities"
	profilefeature "github.com/volunteerconnect/volunteerconnect/internal/app/features/profile"
	suggestionsfeature "github.com/volunteerconnect/volunteerconnect/internal/app/features/suggestions"
	sessionstore "github.com/volunteerconnect/volunteerconnect/internal/app/store/sessions"
	"github.com/volunteerconnect/volunteerconnect/internal/app/system/auth"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed.
//
// Sessions are persisted in Mongo when the durable backend is selected, so
// logins survive restarts the way the stored data does; with the memory
// backend the session lives in the signed cookie alone.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	secure := coreCfg.Env == "prod"

	var store gsessions.Store
	if deps.MongoDatabase != nil {
		ms := sessionstore.New(deps.MongoDatabase, appCfg.SessionTTL, []byte(appCfg.SessionKey))
		ms.Options(gsessions.Options{
			Path:     "/",
			Domain:   appCfg.SessionDomain,
			MaxAge:   int(appCfg.SessionTTL.Seconds()),
			HttpOnly: true,
			Secure:   secure,
			SameSite: http.SameSiteLaxMode,
		})
		store = ms
	} else {
		cs := gsessions.NewCookieStore([]byte(appCfg.SessionKey))
		cs.Options = &gsessions.Options{
			Path:     "/",
			Domain:   appCfg.SessionDomain,
			MaxAge:   int(appCfg.SessionTTL.Seconds()),
			HttpOnly: true,
			Secure:   secure,
			SameSite: http.SameSiteLaxMode,
		}
		store = cs
	}

	sessionMgr, err := auth.NewSessionManager(store, appCfg.SessionName, deps.Store, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	r := chi.NewRouter()

	// Global auth middleware: loads SessionUser into context if logged in.
	// This makes the current user available to all handlers via auth.CurrentUser(r).
	r.Use(sessionMgr.LoadSessionUser)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	r.Route("/api", func(api chi.Router) {
		authnHandler := authnfeature.NewHandler(deps.Store, sessionMgr, logger)
		api.Mount("/", authnfeature.Routes(authnHandler))

		ngosHandler := ngosfeature.NewHandler(deps.Store, logger)
		api.Mount("/ngos", ngosfeature.Routes(ngosHandler))

		oppsHandler := opportunitiesfeature.NewHandler(deps.Store, logger)
		api.Mount("/opportunities", opportunitiesfeature.Routes(oppsHandler))

		appsHandler := applicationsfeature.NewHandler(deps.Store, logger)
		api.Mount("/applications", applicationsfeature.Routes(appsHandler))

		suggestionsHandler := suggestionsfeature.NewHandler(deps.Store, logger)
		api.Mount("/suggestions", suggestionsfeature.Routes(suggestionsHandler))

		profileHandler := profilefeature.NewHandler(deps.Store, logger)
		api.Mount("/profile", profilefeature.Routes(profileHandler))
	})

	return r, nil
}

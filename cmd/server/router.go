package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Amecrec/ADIA/internal/api"
	apiMiddleware "github.com/Amecrec/ADIA/internal/api/middleware"
)

// setupRouter configures the application router with all routes and
// middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	authHandler := api.NewAuthHandler(
		app.userStore,
		app.jwtService,
		app.passwordVerifier,
		time.Duration(app.config.Auth.TokenLifetimeMinutes)*time.Minute,
	)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	generationHandler := api.NewGenerationHandler(app.orchestrator, app.materialService)
	materialHandler := api.NewMaterialHandler(app.materialService, app.queryService)

	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/refresh", authHandler.RefreshToken)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			// Generation: produce a transient bundle, then save it.
			r.Post("/materials/generate", generationHandler.Generate)
			r.Post("/materials", generationHandler.SaveBundle)

			// Library endpoints
			r.Get("/materials", materialHandler.ListMaterials)
			r.Get("/materials/{id}", materialHandler.GetMaterial)
			r.Put("/materials/{id}", materialHandler.UpdateMaterial)
			r.Delete("/materials/{id}", materialHandler.DeleteMaterial)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}

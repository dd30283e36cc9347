package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/taskline/taskline-api/internal/api"
	apiMiddleware "github.com/taskline/taskline-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware.
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
		app.credentialVerifier,
		&app.config.Auth,
		app.logger,
	)
	taskHandler := api.NewTaskHandler(app.taskStore, app.logger)
	analyzeHandler := api.NewAnalyzeHandler(app.analyzer, app.config.LLM.Provider, app.logger)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/google", authHandler.GoogleLogin)
		r.Post("/auth/logout", authHandler.Logout)
		r.Get("/auth/csrf", authHandler.CSRFToken)

		// The analyze endpoint works on a client-supplied task list and
		// needs no session.
		r.Post("/analyze", analyzeHandler.Analyze)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Get("/auth/profile", authHandler.Profile)

			r.Get("/tasks", taskHandler.ListTasks)
			r.Post("/tasks", taskHandler.CreateTask)
			r.Get("/tasks/stats", taskHandler.GetStats)
			r.Get("/tasks/search", taskHandler.SearchTasks)
			r.Get("/tasks/{id}", taskHandler.GetTask)
			r.Put("/tasks/{id}", taskHandler.UpdateTask)
			r.Patch("/tasks/{id}", taskHandler.PatchTask)
			r.Delete("/tasks/{id}", taskHandler.DeleteTask)
			r.Patch("/tasks/{id}/toggle", taskHandler.ToggleTask)
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
